package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var roleForce bool

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Manage roles",
}

var roleCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create an empty role",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoleCreate,
}

var roleDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a role",
	Long: `Delete a role.

A role that still has members is refused unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoleDelete,
}

var roleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all roles",
	Args:  cobra.NoArgs,
	RunE:  runRoleList,
}

var roleExistsCmd = &cobra.Command{
	Use:   "exists NAME",
	Short: "Report whether a role exists",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoleExists,
}

var roleUsersCmd = &cobra.Command{
	Use:   "users NAME",
	Short: "List the members of a role",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoleUsers,
}

var roleFindCmd = &cobra.Command{
	Use:   "find ROLE SUBSTRING",
	Short: "Find members of a role whose username contains SUBSTRING",
	Args:  cobra.ExactArgs(2),
	RunE:  runRoleFind,
}

func init() {
	roleDeleteCmd.Flags().BoolVarP(&roleForce, "force", "f", false, "delete even if the role has members")

	roleCmd.AddCommand(roleCreateCmd)
	roleCmd.AddCommand(roleDeleteCmd)
	roleCmd.AddCommand(roleListCmd)
	roleCmd.AddCommand(roleExistsCmd)
	roleCmd.AddCommand(roleUsersCmd)
	roleCmd.AddCommand(roleFindCmd)
	rootCmd.AddCommand(roleCmd)
}

func runRoleCreate(cmd *cobra.Command, args []string) error {
	if roleDirectory == nil {
		return errDirectoryNotConfigured
	}

	if err := roleDirectory.CreateRole(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}

	cmd.Printf("Created role %q\n", args[0])
	return nil
}

func runRoleDelete(cmd *cobra.Command, args []string) error {
	if roleDirectory == nil {
		return errDirectoryNotConfigured
	}

	deleted, err := roleDirectory.DeleteRole(cmd.Context(), args[0], !roleForce)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	if !deleted {
		cmd.Printf("Role %q not found\n", args[0])
		return nil
	}
	cmd.Printf("Deleted role %q\n", args[0])
	return nil
}

func runRoleList(cmd *cobra.Command, _ []string) error {
	if roleDirectory == nil {
		return errDirectoryNotConfigured
	}

	names, err := roleDirectory.GetAllRoles(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list roles: %w", err)
	}

	if len(names) == 0 {
		cmd.Println("No roles defined.")
		return nil
	}
	for _, name := range names {
		cmd.Println(name)
	}
	return nil
}

func runRoleExists(cmd *cobra.Command, args []string) error {
	if roleDirectory == nil {
		return errDirectoryNotConfigured
	}

	exists, err := roleDirectory.RoleExists(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to check role: %w", err)
	}

	cmd.Println(exists)
	return nil
}

func runRoleUsers(cmd *cobra.Command, args []string) error {
	if roleDirectory == nil {
		return errDirectoryNotConfigured
	}

	users, err := roleDirectory.GetUsersInRole(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list members: %w", err)
	}

	printUsers(cmd, users, "No members.")
	return nil
}

func runRoleFind(cmd *cobra.Command, args []string) error {
	if roleDirectory == nil {
		return errDirectoryNotConfigured
	}

	users, err := roleDirectory.FindUsersInRole(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to find members: %w", err)
	}

	printUsers(cmd, users, "No matching members.")
	return nil
}

func printUsers(cmd *cobra.Command, users []string, empty string) {
	if len(users) == 0 {
		cmd.Println(empty)
		return
	}
	for _, user := range users {
		cmd.Println(user)
	}
}
