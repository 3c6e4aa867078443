package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"multibank-ledger/app"
	"multibank-ledger/domain"
	"multibank-ledger/store"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the two-bank walkthrough on a fresh ledger",
	Long: `Creates banks First and Second, a Debit account at First and a Deposit
account at Second (60000 for 730 days), then tops up, transfers, attempts an
overdrawing withdrawal and runs one daily batch.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDemo(cmd.Context(), app.NewLedgerService(domain.NewBankManager(), store.NewInMemoryEventStore(), store.NewInMemorySnapshotStore(), logger)); err != nil {
			exitWithError(err)
		}
	},
}

func runDemo(ctx context.Context, svc *app.LedgerService) error {
	fmt.Println("\n--- Simulating Operations ---")

	fmt.Println("\n[Step 1] Creating banks, clients and accounts...")
	first, err := svc.CreateBank(app.CreateBankCommand{Config: domain.DefaultBankConfig("First")})
	if err != nil {
		return err
	}
	second, err := svc.CreateBank(app.CreateBankCommand{Config: domain.DefaultBankConfig("Second")})
	if err != nil {
		return err
	}
	john, err := svc.AddClient(app.AddClientCommand{Bank: first.Name, Name: "John", Surname: "James"})
	if err != nil {
		return err
	}
	mary, err := svc.AddClient(app.AddClientCommand{Bank: second.Name, Name: "Mary", Surname: "Jones"})
	if err != nil {
		return err
	}
	debit, err := svc.OpenAccount(app.OpenAccountCommand{Bank: first.Name, ClientID: string(john.ID), Kind: domain.DebitKind})
	if err != nil {
		return err
	}
	deposit, err := svc.OpenAccount(app.OpenAccountCommand{Bank: second.Name, ClientID: string(mary.ID), Kind: domain.DepositKind})
	if err != nil {
		return err
	}
	fmt.Printf(" -> %s: Debit account %s at %s\n", john, debit.ID(), first.Name)
	fmt.Printf(" -> %s: Deposit account %s at %s\n", mary, deposit.ID(), second.Name)

	fmt.Println("\n[Step 2] Opening the deposit with 60000 for 730 days...")
	tx, err := svc.OpenDeposit(app.OpenDepositCommand{Bank: second.Name, AccountID: string(deposit.ID()), Initial: decimal.NewFromInt(60000), Period: 730})
	if err != nil {
		return err
	}
	printTransaction(tx)

	fmt.Println("\n[Step 3] Topping up the debit account with 50000...")
	tx, err = svc.TopUp(app.TopUpCommand{Bank: first.Name, AccountID: string(debit.ID()), Amount: decimal.NewFromInt(50000)})
	if err != nil {
		return err
	}
	printTransaction(tx)

	fmt.Println("\n[Step 4] Transferring 10000 to the locked deposit (credits are never blocked)...")
	tx, err = svc.Transfer(app.TransferCommand{
		Bank: first.Name, AccountID: string(debit.ID()),
		TargetBank: second.Name, TargetAccountID: string(deposit.ID()),
		Amount: decimal.NewFromInt(10000),
	})
	if err != nil {
		return err
	}
	printTransaction(tx)

	fmt.Println("\n[Step 5] Withdrawing 50000 from the 40000 debit account (John is unverified, so it is cancelled)...")
	tx, err = svc.Withdraw(app.WithdrawCommand{Bank: first.Name, AccountID: string(debit.ID()), Amount: decimal.NewFromInt(50000)})
	if err != nil {
		return err
	}
	printTransaction(tx)

	fmt.Println("\n[Step 6] Running the daily batch...")
	results, err := svc.RunDailyBatch(ctx, 1)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Printf(" -> Day %d: %d postings, %d executed, %d cancelled\n", r.Day, r.Postings, r.Executed, r.Cancelled)
	}

	fmt.Println("\n[Step 7] Final balances...")
	for _, bank := range svc.Banks() {
		fmt.Printf("%s:\n", bank.Name)
		for _, b := range bank.Balances() {
			fmt.Printf("  %-8s %s  %s\n", b.Kind, b.AccountID, b.Amount.StringFixed(2))
		}
	}

	fmt.Println("\n--- Simulation Complete ---")
	return nil
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
