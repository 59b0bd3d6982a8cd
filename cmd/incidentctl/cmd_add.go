package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deskops/incident-desk/internal/domain"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var f struct {
		caller, category, priority, name, note string
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Open a new incident",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			category, err := domain.ParseCategory(f.category)
			if err != nil {
				return err
			}
			priority, err := domain.ParsePriority(f.priority)
			if err != nil {
				return err
			}

			d, err := openDesk(cmd.Context(), opts)
			if err != nil {
				return err
			}
			id, err := d.Add(f.caller, category, priority, f.name, f.note)
			if err != nil {
				return err
			}
			if err := d.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created incident #%d\n", id)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.caller, "caller", "", "Who reported the incident (required)")
	fl.StringVar(&f.category, "category", "", "Category label (required)")
	fl.StringVar(&f.priority, "priority", "", "Priority label (required)")
	fl.StringVar(&f.name, "name", "", "Short title (required)")
	fl.StringVar(&f.note, "note", "", "First work note (required)")
	for _, name := range []string{"caller", "category", "priority", "name", "note"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
