// Package ledger provides the transaction engine: create, edit and delete
// transactions on a user's ledger and compute the running balance.
package ledger

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrack/fintrack/pkg/domain"
	dledger "github.com/fintrack/fintrack/pkg/domain/ledger"
	"github.com/fintrack/fintrack/pkg/domain/user"
	"github.com/fintrack/fintrack/pkg/notification"
	"github.com/google/uuid"
)

// ErrUserRequired is returned when an operation is called without a user handle.
var ErrUserRequired = fmt.Errorf("user not found: %w", domain.ErrValidation)

// Service is the ledger engine. Every successful mutation triggers the
// budget-notification hook exactly once.
type Service struct {
	notifier notification.Notifier
	logger   *slog.Logger
}

// New creates a ledger Service.
func New(notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{notifier: notifier, logger: logger}
}

// AddTransaction validates the input, appends a new transaction with a fresh
// id to the user's ledger and returns it.
func (s *Service) AddTransaction(
	u *user.User,
	amount float64,
	category, description string,
	income bool,
	date time.Time,
) (*dledger.Transaction, error) {
	log := s.logger.With("context", "AddTransaction")
	if u == nil {
		return nil, ErrUserRequired
	}
	t, err := dledger.NewTransaction(amount, category, description, income, date)
	if err != nil {
		log.Error("transaction rejected", "user", u.Email, "error", err)
		return nil, err
	}
	u.Record(t)
	s.notifier.BudgetChecked(u)
	log.Info("transaction added", "user", u.Email, "id", t.ID, "amount", amount)
	return t, nil
}

// EditTransaction updates amount, category and description of the
// transaction with the given id. Identifier, income flag and date never change.
func (s *Service) EditTransaction(
	u *user.User,
	id uuid.UUID,
	amount float64,
	category, description string,
) error {
	log := s.logger.With("context", "EditTransaction")
	if u == nil {
		return ErrUserRequired
	}
	if id == uuid.Nil {
		return dledger.ErrTransactionIDMissing
	}
	if err := dledger.ValidateTransactionFields(amount, category); err != nil {
		log.Error("edit rejected", "user", u.Email, "id", id, "error", err)
		return err
	}
	if err := u.EditTransaction(id, amount, category, description); err != nil {
		log.Error("edit failed", "user", u.Email, "id", id, "error", err)
		return err
	}
	s.notifier.BudgetChecked(u)
	log.Info("transaction edited", "user", u.Email, "id", id)
	return nil
}

// DeleteTransaction removes the transaction with the given id.
func (s *Service) DeleteTransaction(u *user.User, id uuid.UUID) error {
	log := s.logger.With("context", "DeleteTransaction")
	if u == nil {
		return ErrUserRequired
	}
	if id == uuid.Nil {
		return dledger.ErrTransactionIDMissing
	}
	if err := u.RemoveTransaction(id); err != nil {
		log.Error("delete failed", "user", u.Email, "id", id, "error", err)
		return err
	}
	s.notifier.BudgetChecked(u)
	log.Info("transaction deleted", "user", u.Email, "id", id)
	return nil
}

// Balance returns the signed sum over the user's transactions.
func (s *Service) Balance(u *user.User) (float64, error) {
	if u == nil {
		return 0, ErrUserRequired
	}
	return u.Balance(), nil
}

// Transactions returns a snapshot of the user's ledger in insertion order.
func (s *Service) Transactions(u *user.User) ([]*dledger.Transaction, error) {
	if u == nil {
		return nil, ErrUserRequired
	}
	return u.Transactions(), nil
}
