package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/kozaktomas/face-attendance/internal/enroll"
	"github.com/spf13/cobra"
)

var enrollCmd = &cobra.Command{
	Use:   "enroll",
	Short: "Enroll a user from an image file",
	Long: `Enroll a user into the attendance system. The image is stored, registered
with the Custom Vision training project under the user's class label, and the
user record is created or updated.`,
	RunE: runEnroll,
}

func init() {
	rootCmd.AddCommand(enrollCmd)

	enrollCmd.Flags().String("file", "", "Path to the enrollment image (required)")
	enrollCmd.Flags().String("name", "", "Display name (required)")
	enrollCmd.Flags().String("roll", "", "Roll number (required)")
	enrollCmd.Flags().String("user-id", "", "Stable user identifier (required)")
	enrollCmd.Flags().String("label", "", "Classifier class label (required)")
	_ = enrollCmd.MarkFlagRequired("file")
	_ = enrollCmd.MarkFlagRequired("name")
	_ = enrollCmd.MarkFlagRequired("roll")
	_ = enrollCmd.MarkFlagRequired("user-id")
	_ = enrollCmd.MarkFlagRequired("label")
}

func runEnroll(cmd *cobra.Command, args []string) error {
	svc, err := buildServices()
	if err != nil {
		return err
	}

	file := mustGetString(cmd, "file")
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read image file: %w", err)
	}

	result, err := svc.enroller.Enroll(context.Background(), enroll.Request{
		Name:        mustGetString(cmd, "name"),
		Roll:        mustGetString(cmd, "roll"),
		UserID:      mustGetString(cmd, "user-id"),
		ClassLabel:  mustGetString(cmd, "label"),
		Base64Image: base64.StdEncoding.EncodeToString(data),
	})
	if err != nil {
		return fmt.Errorf("enrollment failed: %w", err)
	}

	fmt.Printf("Enrolled: %s (%s)\n", result.User.Name, result.User.UserID)
	fmt.Printf("  Label:  %s\n", result.User.ClassLabel)
	fmt.Printf("  Image:  %s\n", result.User.LastEnrollBlob)
	if result.Vision.OK {
		fmt.Println("  Training registration: ok")
	} else {
		fmt.Printf("  Training registration failed at step %q (status %d)\n", result.Vision.Step, result.Vision.Status)
	}
	return nil
}
