package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Print one day's attendance",
	Long: `Prints the attendance records of one local calendar day. The --date flag
accepts YYYY-MM-DD or DD-MM-YYYY and defaults to today.`,
	RunE: runAttendance,
}

func init() {
	rootCmd.AddCommand(attendanceCmd)

	attendanceCmd.Flags().String("date", "", "Day to list (defaults to today)")
}

func runAttendance(cmd *cobra.Command, args []string) error {
	svc, err := buildServices()
	if err != nil {
		return err
	}

	result, err := svc.attendance.ListByDay(context.Background(), mustGetString(cmd, "date"))
	if err != nil {
		return fmt.Errorf("failed to query attendance: %w", err)
	}

	fmt.Printf("Attendance for %s (%s)\n", result.Window.LocalDate, result.Window.TZName)
	fmt.Printf("UTC window: %s .. %s\n\n", result.Window.FromISO(), result.Window.ToISO())

	for _, rec := range result.Items {
		fmt.Printf("%s  %-12s %-24s %.4f  %s\n", rec.Timestamp, rec.UserID, rec.Name, rec.Confidence, rec.Status)
	}
	fmt.Printf("\nTotal: %d records\n", len(result.Items))
	return nil
}
