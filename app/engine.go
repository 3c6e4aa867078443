package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"multibank-ledger/domain"
	"multibank-ledger/events"
	"multibank-ledger/shared"
	"multibank-ledger/store"
)

// Engine applies transactions to account balances. Each Execute or Cancel
// holds the locks of both endpoint accounts for its whole duration, so no
// two calls touch the same balance at once and nothing is half-applied.
//
// Business rejections (fraud limits, withdrawal policy) are not errors: the
// transaction is cancelled and carries the reason. Only structural failures,
// such as an endpoint that does not resolve, are returned.
type Engine struct {
	registry Registry
	events   store.EventStore
	logger   *zap.Logger

	mu        sync.Mutex
	executed  []*domain.Transaction
	cancelled []*domain.Transaction
	known     map[shared.TransactionID]*domain.Transaction
}

func NewEngine(registry Registry, es store.EventStore, logger *zap.Logger) *Engine {
	if registry == nil || es == nil {
		panic("app: Engine needs a Registry and an EventStore")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		registry: registry,
		events:   es,
		logger:   logger,
		known:    make(map[shared.TransactionID]*domain.Transaction),
	}
}

type endpoint struct {
	bank    *domain.Bank
	account domain.Account
}

func (e *Engine) resolve(bankID shared.BankID, accountID shared.AccountID) (endpoint, error) {
	bank, err := e.registry.Bank(bankID)
	if err != nil {
		return endpoint{}, fmt.Errorf("%w: %s/%s: %w", domain.ErrUnknownAccount, bankID, accountID, err)
	}
	account, err := bank.Account(accountID)
	if err != nil {
		return endpoint{}, err
	}
	return endpoint{bank: bank, account: account}, nil
}

func (e *Engine) resolvePair(tx *domain.Transaction) (endpoint, endpoint, error) {
	from, err := e.resolve(tx.FromBankID(), tx.FromAccountID())
	if err != nil {
		return endpoint{}, endpoint{}, fmt.Errorf("source of transaction %s: %w", tx.ID(), err)
	}
	to, err := e.resolve(tx.ToBankID(), tx.ToAccountID())
	if err != nil {
		return endpoint{}, endpoint{}, fmt.Errorf("destination of transaction %s: %w", tx.ID(), err)
	}
	return from, to, nil
}

func lockKey(a domain.Account) string {
	return string(a.BankID()) + "/" + string(a.ID())
}

// lockPair locks both accounts in a global order and returns the unlock func.
func lockPair(a, b domain.Account) func() {
	if a == b {
		a.Lock()
		return a.Unlock
	}
	first, second := a, b
	if lockKey(b) < lockKey(a) {
		first, second = b, a
	}
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}

// Execute applies tx once. Calling it on an executed or cancelled
// transaction does nothing.
func (e *Engine) Execute(tx *domain.Transaction) error {
	if tx.State().IsTerminal() {
		e.logger.Debug("transaction already settled, skipping", zap.String("transaction", string(tx.ID())), zap.Stringer("state", tx.State()))
		return nil
	}
	if err := tx.Validate(); err != nil {
		e.logger.Error("refusing malformed transaction", zap.String("transaction", string(tx.ID())), zap.Error(err))
		return fmt.Errorf("execute: %w", err)
	}

	from, to, err := e.resolvePair(tx)
	if err != nil {
		e.logger.Error("cannot resolve transaction endpoints", zap.String("transaction", string(tx.ID())), zap.Error(err))
		return fmt.Errorf("execute: %w", err)
	}

	unlock := lockPair(from.account, to.account)
	defer unlock()

	if tx.State().IsTerminal() {
		return nil
	}
	e.remember(tx)

	if !tx.IsTopUp() && !(screen(from, tx) && screen(to, tx)) {
		return e.reject(tx, from, to, fmt.Errorf("%w: amount %s", domain.ErrFraudBlocked, tx.Amount().String()))
	}

	debited, err := from.account.Debit(tx.Amount(), false)
	if err != nil {
		return e.reject(tx, from, to, err)
	}
	to.account.Credit(debited)

	if err := tx.Transition(domain.StateExecuted, nil); err != nil {
		e.logger.Error("transaction changed state during execution, rolling back", zap.String("transaction", string(tx.ID())), zap.Error(err))
		if rerr := e.rollback(tx, from, to, debited); rerr != nil {
			return fmt.Errorf("execute: %w", errors.Join(err, rerr))
		}
		return fmt.Errorf("execute: %w", err)
	}

	e.mu.Lock()
	e.executed = append(e.executed, tx)
	e.mu.Unlock()

	e.logger.Info("transaction executed",
		zap.String("transaction", string(tx.ID())),
		zap.String("kind", string(tx.Kind())),
		zap.Stringer("amount", debited),
		zap.String("from", lockKey(from.account)),
		zap.String("to", lockKey(to.account)))

	return e.record(tx, 0, events.TransactionExecutedEvent{
		BaseEvent: events.NewBaseEvent(string(tx.ID()), 1, events.TransactionExecutedType),
		Endpoints: endpointsOf(tx),
		Kind:      string(tx.Kind()),
		Amount:    debited,
		TopUp:     tx.IsTopUp(),
	})
}

// rollback returns amount from the destination to the source. The source is
// only credited once the forced debit succeeded, so a failure never creates
// money.
func (e *Engine) rollback(tx *domain.Transaction, from, to endpoint, amount decimal.Decimal) error {
	if _, err := to.account.Debit(amount, true); err != nil {
		e.logger.Error("rollback could not take funds back",
			zap.String("transaction", string(tx.ID())),
			zap.String("account", lockKey(to.account)),
			zap.Stringer("amount", amount),
			zap.Error(err))
		return fmt.Errorf("rollback of %s: %w", lockKey(to.account), err)
	}
	from.account.Credit(amount)
	return nil
}

func screen(ep endpoint, tx *domain.Transaction) bool {
	cfg := ep.bank.Config
	return domain.Approved(ep.account.Client(), tx.Amount(), cfg.SuspiciousWithdrawalLimit, cfg.SuspiciousTransferLimit)
}

func (e *Engine) reject(tx *domain.Transaction, from, to endpoint, reason error) error {
	if err := tx.Transition(domain.StateCancelled, reason); err != nil {
		return fmt.Errorf("reject: %w", err)
	}

	e.mu.Lock()
	e.cancelled = append(e.cancelled, tx)
	e.mu.Unlock()

	e.logger.Info("transaction rejected",
		zap.String("transaction", string(tx.ID())),
		zap.String("kind", string(tx.Kind())),
		zap.Stringer("amount", tx.Amount()),
		zap.String("from", lockKey(from.account)),
		zap.String("to", lockKey(to.account)),
		zap.NamedError("reason", reason))

	return e.record(tx, 0, events.TransactionRejectedEvent{
		BaseEvent: events.NewBaseEvent(string(tx.ID()), 1, events.TransactionRejectedType),
		Endpoints: endpointsOf(tx),
		Kind:      string(tx.Kind()),
		Amount:    tx.Amount(),
		Reason:    reason.Error(),
	})
}

// Cancel reverses an executed transaction, pulling the amount back from the
// destination regardless of its withdrawal policy. Anything not executed is
// left alone.
func (e *Engine) Cancel(tx *domain.Transaction) error {
	if tx.State() != domain.StateExecuted {
		e.logger.Debug("only executed transactions can be reversed", zap.String("transaction", string(tx.ID())), zap.Stringer("state", tx.State()))
		return nil
	}
	if err := tx.Validate(); err != nil {
		e.logger.Error("refusing malformed transaction", zap.String("transaction", string(tx.ID())), zap.Error(err))
		return fmt.Errorf("cancel: %w", err)
	}

	from, to, err := e.resolvePair(tx)
	if err != nil {
		e.logger.Error("cannot resolve transaction endpoints", zap.String("transaction", string(tx.ID())), zap.Error(err))
		return fmt.Errorf("cancel: %w", err)
	}

	unlock := lockPair(from.account, to.account)
	defer unlock()

	if tx.State() != domain.StateExecuted {
		return nil
	}

	if _, err := to.account.Debit(tx.Amount(), true); err != nil {
		return fmt.Errorf("cancel: forced debit of %s: %w", lockKey(to.account), err)
	}
	from.account.Credit(tx.Amount())

	if err := tx.Transition(domain.StateCancelled, nil); err != nil {
		return fmt.Errorf("cancel: %w", err)
	}

	e.mu.Lock()
	e.cancelled = append(e.cancelled, tx)
	e.mu.Unlock()

	e.logger.Info("transaction reversed",
		zap.String("transaction", string(tx.ID())),
		zap.Stringer("amount", tx.Amount()))

	return e.record(tx, 1, events.TransactionReversedEvent{
		BaseEvent: events.NewBaseEvent(string(tx.ID()), 2, events.TransactionReversedType),
		Endpoints: endpointsOf(tx),
		Amount:    tx.Amount(),
	})
}

// BatchResult summarises one daily run.
type BatchResult struct {
	Day       int
	Postings  int
	Executed  int
	Cancelled int
	// Settled lists the banks whose postings were all applied by this call.
	Settled []shared.BankID
}

// DailyRun is the progress of one business day. Each bank's postings are
// collected exactly once, so resuming a run after a failure never accrues a
// second day of interest or lock-up for the banks it already reached.
type DailyRun struct {
	collected map[shared.BankID][]*domain.Transaction
	settled   map[shared.BankID]bool
}

func NewDailyRun() *DailyRun {
	return &DailyRun{
		collected: make(map[shared.BankID][]*domain.Transaction),
		settled:   make(map[shared.BankID]bool),
	}
}

// RunDailyBatch collects every account's daily posting bank by bank and
// executes them in bank order, then account order.
func (e *Engine) RunDailyBatch(ctx context.Context, banks []*domain.Bank) (*BatchResult, error) {
	return e.ResumeDailyBatch(ctx, NewDailyRun(), banks)
}

// ResumeDailyBatch continues run over banks. Banks the run has settled are
// skipped, and a bank whose postings were collected before a failure has only
// its unsettled postings executed again.
func (e *Engine) ResumeDailyBatch(ctx context.Context, run *DailyRun, banks []*domain.Bank) (*BatchResult, error) {
	result := &BatchResult{}
	for _, bank := range banks {
		if run.settled[bank.ID] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		postings, ok := run.collected[bank.ID]
		if !ok {
			postings = bank.DailyTransactions()
			run.collected[bank.ID] = postings
		}
		for _, tx := range postings {
			if tx.State().IsTerminal() {
				continue
			}
			result.Postings++
			if err := e.Execute(tx); err != nil {
				return result, fmt.Errorf("daily batch for bank %s: %w", bank.Name, err)
			}
			switch tx.State() {
			case domain.StateExecuted:
				result.Executed++
			case domain.StateCancelled:
				result.Cancelled++
			}
		}
		run.settled[bank.ID] = true
		delete(run.collected, bank.ID)
		result.Settled = append(result.Settled, bank.ID)
	}

	e.logger.Info("daily batch finished",
		zap.Int("banks", len(result.Settled)),
		zap.Int("postings", result.Postings),
		zap.Int("executed", result.Executed),
		zap.Int("cancelled", result.Cancelled))
	return result, nil
}

func (e *Engine) Executed() []*domain.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*domain.Transaction, len(e.executed))
	copy(out, e.executed)
	return out
}

func (e *Engine) Cancelled() []*domain.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*domain.Transaction, len(e.cancelled))
	copy(out, e.cancelled)
	return out
}

// Transaction returns a transaction the engine has processed.
func (e *Engine) Transaction(id shared.TransactionID) (*domain.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	tx, ok := e.known[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTransaction, id)
	}
	return tx, nil
}

// History returns the lifecycle events recorded for a transaction.
func (e *Engine) History(id shared.TransactionID) ([]events.Event, error) {
	history, err := e.events.GetEvents(string(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnknownTransaction, err)
	}
	return history, nil
}

func (e *Engine) remember(tx *domain.Transaction) {
	e.mu.Lock()
	e.known[tx.ID()] = tx
	e.mu.Unlock()
}

func (e *Engine) record(tx *domain.Transaction, expectedVersion int, event events.Event) error {
	if err := e.events.SaveEvents(string(tx.ID()), expectedVersion, []events.Event{event}); err != nil {
		e.logger.Error("failed to record transaction event", zap.String("transaction", string(tx.ID())), zap.Error(err))
		return fmt.Errorf("record %s event for transaction %s: %w", event.GetBase().Type, tx.ID(), err)
	}
	return nil
}

func endpointsOf(tx *domain.Transaction) events.Endpoints {
	return events.Endpoints{
		FromBankID:    tx.FromBankID(),
		FromAccountID: tx.FromAccountID(),
		ToBankID:      tx.ToBankID(),
		ToAccountID:   tx.ToAccountID(),
	}
}
