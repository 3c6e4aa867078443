package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"multibank-ledger/app"
	"multibank-ledger/domain"
)

var (
	bankName            string
	bankDebitRate       string
	bankCreditLimit     string
	bankCreditFee       string
	bankWithdrawalLimit string
	bankTransferLimit   string
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Manage banks",
}

var bankCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a bank with its clearing account",
	Long: `Creates a bank. Unset options take the defaults: 5% debit interest,
deposit tiers 3.0/3.5/4.0% above 0/50000/100000, credit limit 100000,
credit fee 200, suspicious-client limits 20000.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := domain.DefaultBankConfig(bankName)
		overrides := []struct {
			flag  string
			raw   string
			value *decimal.Decimal
		}{
			{"debit-rate", bankDebitRate, &cfg.DebitAnnualRate},
			{"credit-limit", bankCreditLimit, &cfg.CreditLimit},
			{"credit-fee", bankCreditFee, &cfg.CreditFee},
			{"withdrawal-limit", bankWithdrawalLimit, &cfg.SuspiciousWithdrawalLimit},
			{"transfer-limit", bankTransferLimit, &cfg.SuspiciousTransferLimit},
		}
		for _, o := range overrides {
			if o.raw == "" {
				continue
			}
			v, err := domain.ParseAmount(o.raw)
			if err != nil {
				exitWithError(fmt.Errorf("--%s: %w", o.flag, err))
				return
			}
			*o.value = v
		}

		bank, err := ledgerService.CreateBank(app.CreateBankCommand{Config: cfg})
		if err != nil {
			exitWithError(err)
			return
		}
		fmt.Printf("Bank '%s' created (ID: %s, clearing account: %s).\n", bank.Name, bank.ID, bank.ClearingAccount().ID())
	},
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List banks",
	Run: func(cmd *cobra.Command, args []string) {
		banks := ledgerService.Banks()
		if len(banks) == 0 {
			fmt.Println("No banks.")
			return
		}
		for _, b := range banks {
			fmt.Printf("  %s  %s  (accounts: %d, clients: %d)\n", b.ID, b.Name, len(b.Accounts()), len(b.Clients()))
		}
	},
}

func init() {
	rootCmd.AddCommand(bankCmd)
	bankCmd.AddCommand(bankCreateCmd, bankListCmd)

	bankCreateCmd.Flags().StringVar(&bankName, "name", "", "Bank name (required)")
	bankCreateCmd.Flags().StringVar(&bankDebitRate, "debit-rate", "", "Annual interest rate of debit accounts, in percent")
	bankCreateCmd.Flags().StringVar(&bankCreditLimit, "credit-limit", "", "Credit account limit")
	bankCreateCmd.Flags().StringVar(&bankCreditFee, "credit-fee", "", "Daily fee of a negative credit account")
	bankCreateCmd.Flags().StringVar(&bankWithdrawalLimit, "withdrawal-limit", "", "Suspicious client withdrawal limit")
	bankCreateCmd.Flags().StringVar(&bankTransferLimit, "transfer-limit", "", "Suspicious client transfer limit")
	_ = bankCreateCmd.MarkFlagRequired("name")
}
