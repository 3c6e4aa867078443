package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"multibank-ledger/app"
	"multibank-ledger/domain"
	"multibank-ledger/shared"
)

var (
	accountBank    string
	accountID      string
	accountClient  string
	accountKind    string
	depositInitial string
	depositPeriod  int
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage client accounts",
}

var accountOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a Debit, Deposit or Credit account for a client",
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := domain.ParseAccountKind(accountKind)
		if err != nil {
			exitWithError(err)
			return
		}
		account, err := ledgerService.OpenAccount(app.OpenAccountCommand{
			Bank:     accountBank,
			ClientID: accountClient,
			Kind:     kind,
		})
		if err != nil {
			exitWithError(err)
			return
		}
		fmt.Printf("%s account '%s' opened.\n", account.Kind(), account.ID())
	},
}

var accountDepositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Fund a deposit account and start its lock-up period",
	Long: `Fixes the deposit's interest tier from --initial, restarts its lock-up
period of --period days and tops it up with the initial amount.`,
	Run: func(cmd *cobra.Command, args []string) {
		initial, err := domain.ParseAmount(depositInitial)
		if err != nil {
			exitWithError(err)
			return
		}
		tx, err := ledgerService.OpenDeposit(app.OpenDepositCommand{
			Bank:      accountBank,
			AccountID: accountID,
			Initial:   initial,
			Period:    depositPeriod,
		})
		if err != nil {
			exitWithError(err)
			return
		}
		printTransaction(tx)
	},
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the accounts of a bank, or of one client",
	Run: func(cmd *cobra.Command, args []string) {
		bank, err := ledgerService.Bank(accountBank)
		if err != nil {
			exitWithError(err)
			return
		}
		accounts := bank.Accounts()
		if accountClient != "" {
			accounts, err = bank.ClientAccounts(shared.ClientID(accountClient))
			if err != nil {
				exitWithError(err)
				return
			}
		}
		for _, a := range accounts {
			owner := "-"
			if c := a.Client(); c != nil {
				owner = c.String()
			}
			fmt.Printf("  %s  %-8s %-20s %s\n", a.ID(), a.Kind(), owner, domain.LockedBalance(a).StringFixed(2))
		}
	},
}

var accountBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show an account balance",
	Run: func(cmd *cobra.Command, args []string) {
		balance, err := ledgerService.GetBalance(app.GetBalanceQuery{Bank: accountBank, AccountID: accountID})
		if err != nil {
			exitWithError(err)
			return
		}
		fmt.Printf("Account '%s' balance: %s\n", accountID, balance.StringFixed(2))
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountOpenCmd, accountDepositCmd, accountListCmd, accountBalanceCmd)

	accountOpenCmd.Flags().StringVar(&accountBank, "bank", "", "Bank ID or name (required)")
	accountOpenCmd.Flags().StringVar(&accountClient, "client", "", "Client ID (required)")
	accountOpenCmd.Flags().StringVar(&accountKind, "kind", "", "Debit, Deposit or Credit (required)")
	_ = accountOpenCmd.MarkFlagRequired("bank")
	_ = accountOpenCmd.MarkFlagRequired("client")
	_ = accountOpenCmd.MarkFlagRequired("kind")

	accountDepositCmd.Flags().StringVar(&accountBank, "bank", "", "Bank ID or name (required)")
	accountDepositCmd.Flags().StringVar(&accountID, "id", "", "Deposit account ID (required)")
	accountDepositCmd.Flags().StringVar(&depositInitial, "initial", "", "Initial amount (required)")
	accountDepositCmd.Flags().IntVar(&depositPeriod, "period", domain.DefaultDepositPeriod, "Lock-up period in days")
	_ = accountDepositCmd.MarkFlagRequired("bank")
	_ = accountDepositCmd.MarkFlagRequired("id")
	_ = accountDepositCmd.MarkFlagRequired("initial")

	accountListCmd.Flags().StringVar(&accountBank, "bank", "", "Bank ID or name (required)")
	accountListCmd.Flags().StringVar(&accountClient, "client", "", "Only accounts of this client ID")
	_ = accountListCmd.MarkFlagRequired("bank")

	accountBalanceCmd.Flags().StringVar(&accountBank, "bank", "", "Bank ID or name (required)")
	accountBalanceCmd.Flags().StringVar(&accountID, "id", "", "Account ID (required)")
	_ = accountBalanceCmd.MarkFlagRequired("bank")
	_ = accountBalanceCmd.MarkFlagRequired("id")
}
