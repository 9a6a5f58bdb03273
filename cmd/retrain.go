package cmd

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var retrainCmd = &cobra.Command{
	Use:   "retrain",
	Short: "Re-register every user's enrollment image with the training project",
	Long: `Downloads each user's last enrollment image from blob storage and
re-registers it with the Custom Vision training project. Useful after the
training project has been recreated or tags were lost.`,
	RunE: runRetrain,
}

func init() {
	rootCmd.AddCommand(retrainCmd)
}

func runRetrain(cmd *cobra.Command, args []string) error {
	svc, err := buildServices()
	if err != nil {
		return err
	}

	ctx := context.Background()
	users, err := svc.attendance.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) == 0 {
		fmt.Println("No enrolled users to retrain.")
		return nil
	}

	bar := progressbar.NewOptions(len(users),
		progressbar.OptionSetDescription("Registering images"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("users"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionFullWidth(),
	)

	var successCount, skipCount, errorCount int
	var failures []string

	for _, u := range users {
		if u.LastEnrollBlob == "" {
			skipCount++
			bar.Add(1)
			continue
		}

		image, err := svc.blobs.Get(ctx, u.LastEnrollBlob)
		if err != nil {
			errorCount++
			failures = append(failures, fmt.Sprintf("%s: download failed: %v", u.UserID, err))
			bar.Add(1)
			continue
		}

		result := svc.vision.RegisterImage(ctx, image, u.ClassLabel)
		if !result.OK {
			errorCount++
			failures = append(failures, fmt.Sprintf("%s: step %s failed (status %d)", u.UserID, result.Step, result.Status))
			bar.Add(1)
			continue
		}

		successCount++
		bar.Add(1)
	}

	fmt.Printf("\n\nRetrain complete: %d registered, %d skipped (no image), %d failed\n",
		successCount, skipCount, errorCount)
	for _, f := range failures {
		fmt.Printf("  %s\n", f)
	}
	return nil
}
