package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deskops/incident-desk/internal/config"
	"github.com/deskops/incident-desk/internal/observability"
)

type rootOptions struct {
	file   string
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "incidentctl",
		Short:         "Manage IT-desk incidents stored in a local file",
		Long:          "incidentctl opens incidents, drives them through their lifecycle\nand moves them between desk files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			if !cmd.Flags().Changed("file") && cfg.Storage.FilePath != "" {
				opts.file = cfg.Storage.FilePath
			}
			opts.logger, err = observability.NewLogger(cfg.Logger)
			return err
		},
	}

	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "incidents.yaml", "Desk file (.json for JSON, YAML otherwise)")

	root.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newAddCmd(opts),
		newDispatchCmd(opts),
		newDeleteCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
		newResetCmd(opts),
		newTokenCmd(opts),
	)
	return root
}
