package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deskops/incident-desk/internal/domain"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one incident with its work notes",
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
			incident, ok := d.Get(id)
			if !ok {
				return fmt.Errorf("incident %d not found", id)
			}
			printIncident(cmd, incident)
			return nil
		},
	}
}

func printIncident(cmd *cobra.Command, inc *domain.Incident) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Incident: #%d %s\n", inc.ID(), inc.Name())
	fmt.Fprintf(out, "Caller:   %s\n", inc.Caller())
	fmt.Fprintf(out, "Category: %s\n", inc.Category().Label())
	fmt.Fprintf(out, "Priority: %s\n", inc.Priority().Label())
	fmt.Fprintf(out, "State:    %s\n", inc.State().Label())
	if inc.Owner() != "" {
		fmt.Fprintf(out, "Owner:    %s\n", inc.Owner())
	}
	if label := inc.OnHoldReason().Label(); label != "" {
		fmt.Fprintf(out, "On hold:  %s\n", label)
	}
	if label := inc.ResolutionCode().Label(); label != "" {
		fmt.Fprintf(out, "Resolved: %s\n", label)
	}
	if label := inc.CancellationCode().Label(); label != "" {
		fmt.Fprintf(out, "Canceled: %s\n", label)
	}
	if inc.ChangeRequest() != "" {
		fmt.Fprintf(out, "Change:   %s\n", inc.ChangeRequest())
	}

	allowed := inc.AllowedActions()
	names := make([]string, 0, len(allowed))
	for _, a := range allowed {
		names = append(names, string(a))
	}
	fmt.Fprintf(out, "Actions:  %s\n", strings.Join(names, ", "))
	fmt.Fprintf(out, "Work notes:\n%s", inc.WorkNotesText())
}
