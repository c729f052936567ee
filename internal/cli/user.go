package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/a1mart/tasker/internal/core"
	"github.com/a1mart/tasker/pkg/models"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users on the remote service",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users, including inactive accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := App.Syncer.SyncAll(cmd.Context()); err != nil {
			return err
		}

		snap := App.Store.Snapshot()
		if len(snap.Users) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		fmt.Printf("%-16s %-24s %-8s %-10s %s\n", "USERNAME", "FULL NAME", "ROLE", "STATUS", "EMAIL")
		for _, u := range snap.Users {
			fmt.Printf("%-16s %-24s %-8s %-10s %s\n", u.Username, u.FullName, u.Role, u.Status, u.Email)
		}
		return nil
	},
}

var (
	userCreateEmail    string
	userCreatePassword string
	userCreateFullName string
	userCreateRole     string
)

var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a new user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := models.ParseUserRole(strings.ToUpper(userCreateRole))
		if err != nil {
			return err
		}
		if err := mutate(cmd.Context(), func(ctx context.Context) error {
			return App.Mutations.CreateUser(ctx, core.CreateUserInput{
				Username: args[0],
				Email:    userCreateEmail,
				Password: userCreatePassword,
				FullName: userCreateFullName,
				Role:     role,
			})
		}); err != nil {
			return err
		}
		fmt.Println("User created.")
		return nil
	},
}

var (
	userUpdateFullName string
	userUpdateEmail    string
	userUpdateRole     string
	userUpdateStatus   string
)

var userUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a user; only flags you pass are sent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var upd core.UserUpdate
		if cmd.Flags().Changed("full-name") {
			upd.FullName = &userUpdateFullName
		}
		if cmd.Flags().Changed("email") {
			upd.Email = &userUpdateEmail
		}
		if cmd.Flags().Changed("role") {
			role, err := models.ParseUserRole(strings.ToUpper(userUpdateRole))
			if err != nil {
				return err
			}
			upd.Role = &role
		}
		if cmd.Flags().Changed("status") {
			status, err := models.ParseUserStatus(strings.ToUpper(userUpdateStatus))
			if err != nil {
				return err
			}
			upd.Status = &status
		}

		if err := mutate(cmd.Context(), func(ctx context.Context) error {
			return App.Mutations.UpdateUser(ctx, args[0], upd)
		}); err != nil {
			return err
		}
		fmt.Println("User updated.")
		return nil
	},
}

var userDeleteYes bool

var userDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !userDeleteYes && !confirm(fmt.Sprintf("Delete user %s?", args[0])) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := mutate(cmd.Context(), func(ctx context.Context) error {
			return App.Mutations.DeleteUser(ctx, args[0])
		}); err != nil {
			return err
		}
		fmt.Println("User deleted.")
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVarP(&userCreateEmail, "email", "e", "", "email address")
	userCreateCmd.Flags().StringVarP(&userCreatePassword, "password", "p", "", "initial password")
	userCreateCmd.Flags().StringVarP(&userCreateFullName, "full-name", "n", "", "full name")
	userCreateCmd.Flags().StringVarP(&userCreateRole, "role", "r", "MEMBER", "role (VIEWER, MEMBER, ADMIN)")

	userUpdateCmd.Flags().StringVar(&userUpdateFullName, "full-name", "", "new full name")
	userUpdateCmd.Flags().StringVar(&userUpdateEmail, "email", "", "new email address")
	userUpdateCmd.Flags().StringVar(&userUpdateRole, "role", "", "new role")
	userUpdateCmd.Flags().StringVar(&userUpdateStatus, "status", "", "new status (ACTIVE, INACTIVE, SUSPENDED)")

	userDeleteCmd.Flags().BoolVarP(&userDeleteYes, "yes", "y", false, "skip the confirmation prompt")

	userCmd.AddCommand(userListCmd, userCreateCmd, userUpdateCmd, userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}
