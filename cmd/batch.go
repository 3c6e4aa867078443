package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

var (
	batchDays     int
	batchInterval time.Duration
	snapshotBank  string
	snapshotDay   int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run the daily interest and fee batch",
}

var batchRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one or more business days",
	Long: `Runs the daily batch --days times. With --interval the batch instead keeps
running on that interval until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		if batchInterval > 0 {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			fmt.Printf("Running the daily batch every %s. Press Ctrl+C to stop.\n", batchInterval)
			_ = ledgerService.BatchDriver().Run(ctx, batchInterval)
			fmt.Printf("Stopped after day %d.\n", ledgerService.BatchDriver().Day())
			return
		}
		if batchDays < 1 {
			exitWithError(fmt.Errorf("--days must be at least 1"))
			return
		}

		results, err := ledgerService.RunDailyBatch(cmd.Context(), batchDays)
		for _, r := range results {
			fmt.Printf("Day %d: %d postings, %d executed, %d cancelled\n", r.Day, r.Postings, r.Executed, r.Cancelled)
		}
		if err != nil {
			exitWithError(err)
		}
	},
}

var batchSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Show a bank's end-of-day balances",
	Run: func(cmd *cobra.Command, args []string) {
		day, balances, err := ledgerService.GetSnapshot(snapshotBank, snapshotDay)
		if err != nil {
			exitWithError(err)
			return
		}
		fmt.Printf("End of day %d:\n", day)
		for _, b := range balances {
			fmt.Printf("  %s  %-8s %s\n", b.AccountID, b.Kind, b.Amount.StringFixed(2))
		}
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.AddCommand(batchRunCmd, batchSnapshotCmd)

	batchRunCmd.Flags().IntVar(&batchDays, "days", 1, "Number of business days to run")
	batchRunCmd.Flags().DurationVar(&batchInterval, "interval", 0, "Keep running the batch on this interval (e.g. 10s)")

	batchSnapshotCmd.Flags().StringVar(&snapshotBank, "bank", "", "Bank ID or name (required)")
	batchSnapshotCmd.Flags().IntVar(&snapshotDay, "day", 0, "Business day (default latest)")
	_ = batchSnapshotCmd.MarkFlagRequired("bank")
}
