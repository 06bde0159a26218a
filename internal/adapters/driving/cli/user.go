package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var membershipRoles []string

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage role membership",
}

var userAddCmd = &cobra.Command{
	Use:   "add --roles ROLE[,ROLE...] USERNAME...",
	Short: "Add users to roles",
	Long: `Add every USERNAME to every role given with --roles.

Roles that do not exist are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUserAdd,
}

var userRemoveCmd = &cobra.Command{
	Use:   "remove --roles ROLE[,ROLE...] USERNAME...",
	Short: "Remove users from roles",
	Long: `Remove every USERNAME from every role given with --roles.

Roles that do not exist are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUserRemove,
}

var userRolesCmd = &cobra.Command{
	Use:   "roles USERNAME",
	Short: "List the roles a user belongs to",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserRoles,
}

var userCheckCmd = &cobra.Command{
	Use:   "check USERNAME ROLE",
	Short: "Report whether a user is a member of a role",
	Args:  cobra.ExactArgs(2),
	RunE:  runUserCheck,
}

func init() {
	for _, c := range []*cobra.Command{userAddCmd, userRemoveCmd} {
		c.Flags().StringSliceVarP(&membershipRoles, "roles", "r", nil, "comma-separated role names")
		_ = c.MarkFlagRequired("roles")
	}

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userRemoveCmd)
	userCmd.AddCommand(userRolesCmd)
	userCmd.AddCommand(userCheckCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	if roleDirectory == nil {
		return errDirectoryNotConfigured
	}

	if err := roleDirectory.AddUsersToRoles(cmd.Context(), args, membershipRoles); err != nil {
		return fmt.Errorf("failed to add users: %w", err)
	}

	cmd.Printf("Added %d user(s) to %d role(s)\n", len(args), len(membershipRoles))
	return nil
}

func runUserRemove(cmd *cobra.Command, args []string) error {
	if roleDirectory == nil {
		return errDirectoryNotConfigured
	}

	if err := roleDirectory.RemoveUsersFromRoles(cmd.Context(), args, membershipRoles); err != nil {
		return fmt.Errorf("failed to remove users: %w", err)
	}

	cmd.Printf("Removed %d user(s) from %d role(s)\n", len(args), len(membershipRoles))
	return nil
}

func runUserRoles(cmd *cobra.Command, args []string) error {
	if roleDirectory == nil {
		return errDirectoryNotConfigured
	}

	names, err := roleDirectory.GetRolesForUser(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list roles: %w", err)
	}

	if len(names) == 0 {
		cmd.Printf("%s has no roles.\n", args[0])
		return nil
	}
	for _, name := range names {
		cmd.Println(name)
	}
	return nil
}

func runUserCheck(cmd *cobra.Command, args []string) error {
	if roleDirectory == nil {
		return errDirectoryNotConfigured
	}

	inRole, err := roleDirectory.IsUserInRole(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	cmd.Println(inRole)
	return nil
}
