package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deskops/incident-desk/internal/domain"
)

func newDispatchCmd(opts *rootOptions) *cobra.Command {
	var in domain.CommandInput

	cmd := &cobra.Command{
		Use:   "dispatch <id>",
		Short: "Apply a lifecycle command to an incident",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			command, err := domain.ParseCommand(in)
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
			if err := d.Dispatch(id, command); err != nil {
				// a rejected command on a canceled incident still clears its owner
				if saveErr := d.save(cmd.Context()); saveErr != nil {
					return saveErr
				}
				return err
			}
			if err := d.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Incident #%d is now %s\n", id, incident.State().Label())
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&in.Action, "action", "", "INVESTIGATE, HOLD, RESOLVE, CONFIRM, REOPEN or CANCEL (required)")
	fl.StringVar(&in.Note, "note", "", "Work note (required)")
	fl.StringVar(&in.OwnerID, "owner", "", "Owner for INVESTIGATE")
	fl.StringVar(&in.OnHoldReason, "hold-reason", "", "On-hold reason label for HOLD")
	fl.StringVar(&in.ResolutionCode, "resolution", "", "Resolution code label for RESOLVE")
	fl.StringVar(&in.CancellationCode, "cancellation", "", "Cancellation code label for CANCEL")
	_ = cmd.MarkFlagRequired("action")
	_ = cmd.MarkFlagRequired("note")
	return cmd
}
