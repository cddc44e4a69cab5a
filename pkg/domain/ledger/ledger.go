// Package ledger defines the financial events owned by a user: transactions,
// the monthly budget and the savings goal.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/fintrack/fintrack/pkg/domain"
	"github.com/google/uuid"
)

var (
	// ErrAmountNotPositive is returned when a transaction amount is not positive.
	ErrAmountNotPositive = fmt.Errorf("amount must be greater than zero: %w", domain.ErrValidation)

	// ErrCategoryEmpty is returned when a transaction category is empty or blank.
	ErrCategoryEmpty = fmt.Errorf("category cannot be empty: %w", domain.ErrValidation)

	// ErrDateMissing is returned when a transaction date is not set.
	ErrDateMissing = fmt.Errorf("date cannot be empty: %w", domain.ErrValidation)

	// ErrTransactionIDMissing is returned when an operation is given the zero transaction id.
	ErrTransactionIDMissing = fmt.Errorf("transaction id cannot be empty: %w", domain.ErrValidation)

	// ErrTransactionNotFound is returned when no transaction matches the given id.
	ErrTransactionNotFound = fmt.Errorf("transaction not found: %w", domain.ErrNotFound)

	// ErrLimitNegative is returned when a budget monthly limit is negative.
	ErrLimitNegative = fmt.Errorf("budget limit cannot be negative: %w", domain.ErrValidation)

	// ErrTargetNotPositive is returned when a goal target amount is not positive.
	ErrTargetNotPositive = fmt.Errorf("target amount must be greater than zero: %w", domain.ErrValidation)

	// ErrSavingsNotPositive is returned when a savings deposit is not positive.
	ErrSavingsNotPositive = fmt.Errorf("savings amount must be greater than zero: %w", domain.ErrValidation)

	// ErrNoGoal is returned when an operation requires a goal and none is set.
	ErrNoGoal = fmt.Errorf("no goal set: %w", domain.ErrNotFound)
)

// Transaction represents a single financial event. The ID is assigned at
// creation and never changes; edits touch amount, category and description only.
type Transaction struct {
	ID          uuid.UUID
	Amount      float64
	Category    string
	Description string
	Income      bool
	Date        time.Time
}

// NewTransaction creates a Transaction with a fresh id.
func NewTransaction(
	amount float64,
	category, description string,
	income bool,
	date time.Time,
) (*Transaction, error) {
	if err := ValidateTransactionFields(amount, category); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, ErrDateMissing
	}
	return &Transaction{
		ID:          uuid.New(),
		Amount:      amount,
		Category:    category,
		Description: description,
		Income:      income,
		Date:        date,
	}, nil
}

// ApplyEdit updates the mutable fields of the transaction. The id, the
// income flag and the date are untouched.
func (t *Transaction) ApplyEdit(amount float64, category, description string) error {
	if err := ValidateTransactionFields(amount, category); err != nil {
		return err
	}
	t.Amount = amount
	t.Category = category
	t.Description = description
	return nil
}

// Signed returns the amount with its sign: positive for income, negative
// for expense.
func (t *Transaction) Signed() float64 {
	if t.Income {
		return t.Amount
	}
	return -t.Amount
}

// ValidateTransactionFields checks the rules shared by create and edit:
// amount strictly positive, category non-blank.
func ValidateTransactionFields(amount float64, category string) error {
	if amount <= 0 {
		return ErrAmountNotPositive
	}
	if strings.TrimSpace(category) == "" {
		return ErrCategoryEmpty
	}
	return nil
}

// Budget holds a monthly spending limit. A user has at most one; setting a
// new one replaces the old.
type Budget struct {
	MonthlyLimit float64
}

// NewBudget creates a Budget with the given monthly limit.
func NewBudget(monthlyLimit float64) (*Budget, error) {
	if monthlyLimit < 0 {
		return nil, ErrLimitNegative
	}
	return &Budget{MonthlyLimit: monthlyLimit}, nil
}

// Goal is a savings target with an accumulator. SavedAmount starts at zero
// and only grows through AddSavings.
type Goal struct {
	TargetAmount float64
	SavedAmount  float64
}

// NewGoal creates a Goal with the given target and zero savings.
func NewGoal(targetAmount float64) (*Goal, error) {
	if targetAmount <= 0 {
		return nil, ErrTargetNotPositive
	}
	return &Goal{TargetAmount: targetAmount}, nil
}

// AddSavings increases the saved amount. Overshooting the target is allowed.
func (g *Goal) AddSavings(amount float64) error {
	if amount <= 0 {
		return ErrSavingsNotPositive
	}
	g.SavedAmount += amount
	return nil
}

// Progress returns how much of the target has been saved, in percent.
// Can exceed 100 when savings overshoot the target.
func (g *Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return g.SavedAmount / g.TargetAmount * 100
}
