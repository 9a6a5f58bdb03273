package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List enrolled users",
	Long:  `Lists every enrolled user with their roll number and classifier label.`,
	RunE:  runUsers,
}

func init() {
	rootCmd.AddCommand(usersCmd)
}

func runUsers(cmd *cobra.Command, args []string) error {
	svc, err := buildServices()
	if err != nil {
		return err
	}

	users, err := svc.attendance.ListUsers(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	for _, u := range users {
		fmt.Printf("%-12s %-10s %-24s %s\n", u.UserID, u.Roll, u.Name, u.ClassLabel)
	}
	fmt.Printf("\nTotal: %d users\n", len(users))
	return nil
}
