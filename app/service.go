package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"multibank-ledger/domain"
	"multibank-ledger/events"
	"multibank-ledger/shared"
	"multibank-ledger/store"
)

// LedgerService is the application layer used by the CLI. It turns commands
// into registry changes and engine transactions.
type LedgerService struct {
	banks  *domain.BankManager
	engine *Engine
	batch  *BatchDriver
	logger *zap.Logger
}

func NewLedgerService(banks *domain.BankManager, es store.EventStore, ss store.SnapshotStore, logger *zap.Logger) *LedgerService {
	if banks == nil || es == nil || ss == nil {
		panic("app: LedgerService needs a BankManager, an EventStore and a SnapshotStore")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := NewEngine(banks, es, logger.Named("engine"))
	return &LedgerService{
		banks:  banks,
		engine: engine,
		batch:  NewBatchDriver(engine, banks, ss, logger.Named("batch")),
		logger: logger,
	}
}

func (s *LedgerService) Engine() *Engine           { return s.engine }
func (s *LedgerService) BatchDriver() *BatchDriver { return s.batch }

// --- Registry Commands ---

func (s *LedgerService) CreateBank(cmd CreateBankCommand) (*domain.Bank, error) {
	if _, err := s.banks.BankByName(cmd.Config.Name); err == nil {
		return nil, fmt.Errorf("%w: bank %q already exists", domain.ErrInvalidConfig, cmd.Config.Name)
	}
	bank, err := s.banks.AddBank(cmd.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create bank %q: %w", cmd.Config.Name, err)
	}
	s.logger.Info("bank created", zap.String("bank", bank.Name), zap.String("id", string(bank.ID)))
	return bank, nil
}

func (s *LedgerService) Banks() []*domain.Bank {
	return s.banks.Banks()
}

// Bank resolves a bank by ID, falling back to its name.
func (s *LedgerService) Bank(ref string) (*domain.Bank, error) {
	bank, err := s.banks.Bank(shared.BankID(ref))
	if err == nil {
		return bank, nil
	}
	if !errors.Is(err, domain.ErrUnknownBank) {
		return nil, err
	}
	return s.banks.BankByName(ref)
}

func (s *LedgerService) AddClient(cmd AddClientCommand) (*domain.Client, error) {
	bank, err := s.Bank(cmd.Bank)
	if err != nil {
		return nil, fmt.Errorf("failed to add client: %w", err)
	}
	if cmd.Name == "" || cmd.Surname == "" {
		return nil, domain.NewDomainError("client name and surname are required")
	}

	var opts []domain.ClientOption
	if cmd.Address != "" {
		opts = append(opts, domain.WithAddress(cmd.Address))
	}
	if cmd.PassportNumber != "" {
		opts = append(opts, domain.WithPassportNumber(cmd.PassportNumber))
	}
	client := domain.NewClient(cmd.Name, cmd.Surname, opts...)
	bank.AddClient(client)

	s.logger.Info("client added",
		zap.String("bank", bank.Name),
		zap.String("client", string(client.ID)),
		zap.Bool("suspicious", client.IsSuspicious()))
	return client, nil
}

func (s *LedgerService) OpenAccount(cmd OpenAccountCommand) (domain.Account, error) {
	bank, err := s.Bank(cmd.Bank)
	if err != nil {
		return nil, fmt.Errorf("failed to open account: %w", err)
	}
	account, err := bank.OpenAccount(cmd.Kind, shared.ClientID(cmd.ClientID))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s account in bank %s: %w", cmd.Kind, bank.Name, err)
	}
	s.logger.Info("account opened",
		zap.String("bank", bank.Name),
		zap.String("account", string(account.ID())),
		zap.String("kind", string(account.Kind())))
	return account, nil
}

// OpenDeposit sets the deposit's tier rate and lock-up period and executes
// the funding top-up.
func (s *LedgerService) OpenDeposit(cmd OpenDepositCommand) (*domain.Transaction, error) {
	bank, account, err := s.account(cmd.Bank, cmd.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to open deposit: %w", err)
	}
	deposit, ok := account.(*domain.DepositAccount)
	if !ok {
		return nil, domain.NewDomainError("account %s is a %s account, not a deposit", account.ID(), account.Kind())
	}
	tx, err := bank.OpenDeposit(deposit, cmd.Initial, cmd.Period)
	if err != nil {
		return nil, fmt.Errorf("failed to open deposit %s: %w", deposit.ID(), err)
	}
	return tx, s.execute(tx)
}

// --- Transaction Commands ---

func (s *LedgerService) TopUp(cmd TopUpCommand) (*domain.Transaction, error) {
	_, account, err := s.account(cmd.Bank, cmd.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to top up: %w", err)
	}
	tx, err := account.TopUp(cmd.Amount)
	if err != nil {
		return nil, err
	}
	return tx, s.execute(tx)
}

func (s *LedgerService) Withdraw(cmd WithdrawCommand) (*domain.Transaction, error) {
	_, account, err := s.account(cmd.Bank, cmd.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to withdraw: %w", err)
	}
	tx, err := account.Withdraw(cmd.Amount)
	if err != nil {
		return nil, err
	}
	return tx, s.execute(tx)
}

func (s *LedgerService) Transfer(cmd TransferCommand) (*domain.Transaction, error) {
	_, account, err := s.account(cmd.Bank, cmd.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to transfer: %w", err)
	}
	targetBank, err := s.Bank(cmd.TargetBank)
	if err != nil {
		return nil, fmt.Errorf("failed to transfer: target: %w", err)
	}
	tx, err := account.Transfer(cmd.Amount, targetBank.ID, shared.AccountID(cmd.TargetAccountID))
	if err != nil {
		return nil, err
	}
	return tx, s.execute(tx)
}

func (s *LedgerService) Cancel(cmd CancelCommand) (*domain.Transaction, error) {
	tx, err := s.engine.Transaction(shared.TransactionID(cmd.TransactionID))
	if err != nil {
		return nil, fmt.Errorf("failed to cancel: %w", err)
	}
	if tx.State() != domain.StateExecuted {
		return tx, fmt.Errorf("%w: transaction %s is %s", domain.ErrInvalidState, tx.ID(), tx.State())
	}
	if err := s.engine.Cancel(tx); err != nil {
		return tx, fmt.Errorf("failed to cancel transaction %s: %w", tx.ID(), err)
	}
	return tx, nil
}

func (s *LedgerService) RunDailyBatch(ctx context.Context, days int) ([]*BatchResult, error) {
	results := make([]*BatchResult, 0, days)
	for i := 0; i < days; i++ {
		result, err := s.batch.RunOnce(ctx)
		if err != nil {
			return results, fmt.Errorf("daily batch %d of %d failed: %w", i+1, days, err)
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *LedgerService) execute(tx *domain.Transaction) error {
	if err := s.engine.Execute(tx); err != nil {
		return fmt.Errorf("transaction %s failed: %w", tx.ID(), err)
	}
	return nil
}

// --- Query Handlers ---

func (s *LedgerService) GetBalance(query GetBalanceQuery) (decimal.Decimal, error) {
	_, account, err := s.account(query.Bank, query.AccountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot get balance: %w", err)
	}
	return domain.LockedBalance(account), nil
}

func (s *LedgerService) GetTransactionHistory(query GetHistoryQuery) ([]events.Event, error) {
	return s.engine.History(shared.TransactionID(query.TransactionID))
}

// GetSnapshot returns a bank's balances at the end of the given day; day 0
// means the latest stored day.
func (s *LedgerService) GetSnapshot(bankRef string, day int) (int, []shared.Balance, error) {
	bank, err := s.Bank(bankRef)
	if err != nil {
		return 0, nil, err
	}
	var (
		snap  *domain.Snapshot
		found bool
	)
	if day == 0 {
		snap, found, err = s.batch.snapshots.GetLatestSnapshot(string(bank.ID))
	} else {
		snap, found, err = s.batch.snapshots.GetSnapshot(string(bank.ID), day)
	}
	if err != nil {
		return 0, nil, err
	}
	if !found {
		return 0, nil, fmt.Errorf("no end-of-day snapshot for bank %s (day %d)", bank.Name, day)
	}
	balances, err := domain.SnapshotBalances(snap)
	return snap.Version, balances, err
}

func (s *LedgerService) ExecutedTransactions() []*domain.Transaction {
	return s.engine.Executed()
}

func (s *LedgerService) CancelledTransactions() []*domain.Transaction {
	return s.engine.Cancelled()
}

func (s *LedgerService) account(bankRef, accountID string) (*domain.Bank, domain.Account, error) {
	bank, err := s.Bank(bankRef)
	if err != nil {
		return nil, nil, err
	}
	account, err := bank.Account(shared.AccountID(accountID))
	if err != nil {
		return nil, nil, err
	}
	return bank, account, nil
}
