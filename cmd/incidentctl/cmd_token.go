package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/deskops/incident-desk/internal/auth"
)

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var subject, role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tokens := auth.NewTokenManager(opts.cfg.Auth.JWTSecret, opts.cfg.Auth.AccessTokenTTLMinutes)
			token, expires, err := tokens.GenerateToken(subject, auth.Role(role))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expires.UTC().Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Operator id (required)")
	cmd.Flags().StringVar(&role, "role", string(auth.RoleOperator), "operator or supervisor")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
