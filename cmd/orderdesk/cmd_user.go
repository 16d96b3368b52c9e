package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/app/services"
)

var adminEmail string

// orderdesk user:create-admin <username> <password>
var createAdminCmd = &cobra.Command{
	Use:   "user:create-admin <username> <password>",
	Short: "Create a user in the admin group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context, cmd *cobra.Command, db *gorm.DB) error {
			svc := services.NewAuthService(db, repositories.NewUserRepository(db), nil)
			u, err := svc.CreateAdmin(ctx, args[0], adminEmail, args[1])
			var verr *services.ValidationError
			if errors.As(err, &verr) {
				for field, msg := range verr.Fields {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
				}
				return err
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin %q created (id %d).\n", u.Username, u.ID)
			return nil
		})(cmd, args)
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email address")
}
