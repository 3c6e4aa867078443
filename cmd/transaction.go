package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"multibank-ledger/app"
	"multibank-ledger/domain"
	"multibank-ledger/events"
)

// Variables to hold flag values for transaction commands
var (
	txBank      string
	txAccountID string
	txToBank    string
	txToID      string
	txAmountStr string
	txID        string
)

var transactionCmd = &cobra.Command{
	Use:     "transaction",
	Aliases: []string{"tx"},
	Short:   "Move money between accounts",
	Long: `Creates transactions and hands them to the engine. A rejected transaction
is not an error: it is reported as CANCELLED together with the reason.`,
}

var topUpCmd = &cobra.Command{
	Use:   "topup",
	Short: "Credit an account from its bank's clearing account",
	Run: func(cmd *cobra.Command, args []string) {
		amount, err := domain.ParseAmount(txAmountStr)
		if err != nil {
			exitWithError(err)
			return
		}
		tx, err := ledgerService.TopUp(app.TopUpCommand{Bank: txBank, AccountID: txAccountID, Amount: amount})
		if err != nil {
			exitWithError(fmt.Errorf("failed to top up: %w", err))
			return
		}
		printTransaction(tx)
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Withdraw from an account to its bank's clearing account",
	Run: func(cmd *cobra.Command, args []string) {
		amount, err := domain.ParseAmount(txAmountStr)
		if err != nil {
			exitWithError(err)
			return
		}
		tx, err := ledgerService.Withdraw(app.WithdrawCommand{Bank: txBank, AccountID: txAccountID, Amount: amount})
		if err != nil {
			exitWithError(fmt.Errorf("failed to withdraw: %w", err))
			return
		}
		printTransaction(tx)
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer between two accounts, possibly across banks",
	Run: func(cmd *cobra.Command, args []string) {
		amount, err := domain.ParseAmount(txAmountStr)
		if err != nil {
			exitWithError(err)
			return
		}
		toBank := txToBank
		if toBank == "" {
			toBank = txBank
		}
		tx, err := ledgerService.Transfer(app.TransferCommand{
			Bank:            txBank,
			AccountID:       txAccountID,
			TargetBank:      toBank,
			TargetAccountID: txToID,
			Amount:          amount,
		})
		if err != nil {
			exitWithError(fmt.Errorf("failed to transfer: %w", err))
			return
		}
		printTransaction(tx)
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Reverse an executed transaction",
	Run: func(cmd *cobra.Command, args []string) {
		tx, err := ledgerService.Cancel(app.CancelCommand{TransactionID: txID})
		if err != nil {
			exitWithError(err)
			return
		}
		printTransaction(tx)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the lifecycle events of a transaction",
	Run: func(cmd *cobra.Command, args []string) {
		history, err := ledgerService.GetTransactionHistory(app.GetHistoryQuery{TransactionID: txID})
		if err != nil {
			exitWithError(err)
			return
		}
		fmt.Printf("Transaction '%s' (%d events):\n", txID, len(history))
		for i, event := range history {
			base := event.GetBase()
			fmt.Printf("  %d: [%s] %s (v%d)\n", i+1, base.Timestamp.Format(time.RFC3339), base.Type, base.Version)
			switch e := event.(type) {
			case events.TransactionExecutedEvent:
				fmt.Printf("     %s of %s from %s/%s to %s/%s\n", e.Kind, e.Amount.StringFixed(2), e.FromBankID, e.FromAccountID, e.ToBankID, e.ToAccountID)
			case events.TransactionRejectedEvent:
				fmt.Printf("     %s of %s rejected: %s\n", e.Kind, e.Amount.StringFixed(2), e.Reason)
			case events.TransactionReversedEvent:
				fmt.Printf("     %s returned to %s/%s\n", e.Amount.StringFixed(2), e.FromBankID, e.FromAccountID)
			}
		}
	},
}

func printTransaction(tx *domain.Transaction) {
	fmt.Printf("Transaction '%s' (%s of %s): %s", tx.ID(), tx.Kind(), tx.Amount().StringFixed(2), tx.State())
	if reason := tx.Reason(); reason != nil {
		fmt.Printf(" - %v", reason)
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(transactionCmd)
	transactionCmd.AddCommand(topUpCmd, withdrawCmd, transferCmd, cancelCmd, historyCmd)

	for _, c := range []*cobra.Command{topUpCmd, withdrawCmd, transferCmd} {
		c.Flags().StringVar(&txBank, "bank", "", "Bank ID or name of the account (required)")
		c.Flags().StringVar(&txAccountID, "id", "", "Account ID (required)")
		c.Flags().StringVar(&txAmountStr, "amount", "", "Amount (required)")
		_ = c.MarkFlagRequired("bank")
		_ = c.MarkFlagRequired("id")
		_ = c.MarkFlagRequired("amount")
	}
	transferCmd.Flags().StringVar(&txToBank, "to-bank", "", "Target bank ID or name (defaults to --bank)")
	transferCmd.Flags().StringVar(&txToID, "to-id", "", "Target account ID (required)")
	_ = transferCmd.MarkFlagRequired("to-id")

	for _, c := range []*cobra.Command{cancelCmd, historyCmd} {
		c.Flags().StringVar(&txID, "tx", "", "Transaction ID (required)")
		_ = c.MarkFlagRequired("tx")
	}
}
