package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"multibank-ledger/domain"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the engine's transaction logs",
}

var logExecutedCmd = &cobra.Command{
	Use:   "executed",
	Short: "List executed transactions in execution order",
	Run: func(cmd *cobra.Command, args []string) {
		printLog("executed", ledgerService.ExecutedTransactions())
	},
}

var logCancelledCmd = &cobra.Command{
	Use:   "cancelled",
	Short: "List rejected and reversed transactions in order",
	Run: func(cmd *cobra.Command, args []string) {
		printLog("cancelled", ledgerService.CancelledTransactions())
	},
}

func printLog(name string, txs []*domain.Transaction) {
	if len(txs) == 0 {
		fmt.Printf("No %s transactions.\n", name)
		return
	}
	fmt.Printf("%d %s transactions:\n", len(txs), name)
	for _, tx := range txs {
		fmt.Printf("  %s  %-10s %12s  %s\n", tx.ID(), tx.Kind(), tx.Amount().StringFixed(2), tx.State())
	}
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logExecutedCmd, logCancelledCmd)
}
