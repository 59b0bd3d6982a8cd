package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deskops/incident-desk/internal/persistence"
)

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an incident; unknown ids are ignored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := openDesk(cmd.Context(), opts)
			if err != nil {
				return err
			}
			d.Delete(id)
			return d.save(cmd.Context())
		},
	}
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <src>",
		Short: "Append the incidents of another desk file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := persistence.NewFileStore(args[0]).Load(cmd.Context())
			if err != nil {
				return err
			}
			d, err := openDesk(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if err := d.Import(records); err != nil {
				return err
			}
			if err := d.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d incident(s)\n", len(records))
			return nil
		},
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dst>",
		Short: "Write the desk to another file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDesk(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return d.SaveTo(cmd.Context(), persistence.NewFileStore(args[0]))
		},
	}
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard every incident and restart ids at 0",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := openDesk(cmd.Context(), opts)
			if err != nil {
				return err
			}
			d.Reset()
			return d.save(cmd.Context())
		},
	}
}
