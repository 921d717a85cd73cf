package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newCreateAdminCmd bootstraps an admin account. No HTTP route can create admins.
func newCreateAdminCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}
			d, err := a.build(cmd.Context())
			if err != nil {
				return err
			}
			defer d.Close()

			u, err := d.svc.Auth.CreateAdmin(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			a.log.Info("admin_created", zap.String("user_id", u.ID), zap.String("email", u.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin e-mail address")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	return cmd
}
