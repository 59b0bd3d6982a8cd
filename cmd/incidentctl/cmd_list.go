package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deskops/incident-desk/internal/domain"
	"github.com/deskops/incident-desk/internal/service"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List incidents, optionally for one category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := openDesk(cmd.Context(), opts)
			if err != nil {
				return err
			}

			rows := d.ListAll()
			if category != "" {
				c, err := domain.ParseCategory(category)
				if err != nil {
					return err
				}
				if rows, err = d.ListByCategory(c); err != nil {
					return err
				}
			}
			return printRows(cmd, rows)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Category label, e.g. Software")
	return cmd
}

func printRows(cmd *cobra.Command, rows []service.Row) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tSTATE\tPRIORITY\tNAME")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Category, r.State, r.Priority, r.Name)
	}
	return tw.Flush()
}
