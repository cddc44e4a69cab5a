// Package user defines the User aggregate: identity, credentials and the
// financial data the user owns (transactions, budget, goal).
package user

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/fintrack/fintrack/pkg/domain"
	"github.com/fintrack/fintrack/pkg/domain/ledger"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
)

var (
	// ErrNameEmpty is returned when a user name is empty or blank.
	ErrNameEmpty = fmt.Errorf("name cannot be empty: %w", domain.ErrValidation)

	// ErrEmailFormat is returned when an email does not look like local@domain.tld.
	ErrEmailFormat = fmt.Errorf("invalid email format: %w", domain.ErrValidation)

	// ErrPasswordTooShort is returned when a password has fewer than 4 characters.
	ErrPasswordTooShort = fmt.Errorf("password must be at least 4 characters: %w", domain.ErrValidation)

	// ErrPasswordMismatch is returned when authentication is attempted with a wrong password.
	ErrPasswordMismatch = fmt.Errorf("invalid password: %w", domain.ErrValidation)
)

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	err := v.RegisterValidation("ledger_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
	return v
}

type profileInput struct {
	Name     string `validate:"notblank"`
	Email    string `validate:"required,ledger_email"`
	Password string `validate:"required,min=4"`
}

// ValidateProfile checks a name/email/password triple against the
// registration rules. The same rules apply on profile edit.
func ValidateProfile(name, email, password string) error {
	err := validate.Struct(profileInput{Name: name, Email: email, Password: password})
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}
	switch verrs[0].Field() {
	case "Name":
		return ErrNameEmpty
	case "Email":
		return ErrEmailFormat
	default:
		return ErrPasswordTooShort
	}
}

// User represents a registered account and owns its transactions, budget and
// goal exclusively. All mutable state is guarded by a per-user mutex so that
// operations appear atomic; the registry guards its own email index separately.
type User struct {
	Name     string
	Email    string
	Password string // stored as provided; hashing is out of scope
	Blocked  bool
	Admin    bool

	mu           sync.Mutex
	transactions []*ledger.Transaction
	budget       *ledger.Budget
	goal         *ledger.Goal
}

// New creates a User after validating the profile fields. The user starts
// unblocked, non-admin, with an empty ledger and no budget or goal.
func New(name, email, password string) (*User, error) {
	if err := ValidateProfile(name, email, password); err != nil {
		return nil, err
	}
	return &User{
		Name:     name,
		Email:    email,
		Password: password,
	}, nil
}

// UpdateProfile replaces name, email and password in place after validation.
func (u *User) UpdateProfile(name, email, password string) error {
	if err := ValidateProfile(name, email, password); err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Name = name
	u.Email = email
	u.Password = password
	return nil
}

// CheckPassword compares the stored password with the candidate.
func (u *User) CheckPassword(password string) error {
	if u.Password != password {
		return ErrPasswordMismatch
	}
	return nil
}

// SetBlocked toggles the blocked flag. A blocked user cannot authenticate.
func (u *User) SetBlocked(blocked bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Blocked = blocked
}

// IsBlocked reports whether the user is currently blocked.
func (u *User) IsBlocked() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.Blocked
}

// Record appends a transaction to the user's ledger, preserving insertion order.
func (u *User) Record(t *ledger.Transaction) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.transactions = append(u.transactions, t)
}

// EditTransaction updates amount, category and description of the transaction
// with the given id. The state is left untouched when validation fails.
func (u *User) EditTransaction(id uuid.UUID, amount float64, category, description string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, t := range u.transactions {
		if t.ID == id {
			return t.ApplyEdit(amount, category, description)
		}
	}
	return ledger.ErrTransactionNotFound
}

// RemoveTransaction deletes the transaction with the given id, keeping the
// order of the remaining ones.
func (u *User) RemoveTransaction(id uuid.UUID) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i, t := range u.transactions {
		if t.ID == id {
			u.transactions = append(u.transactions[:i], u.transactions[i+1:]...)
			return nil
		}
	}
	return ledger.ErrTransactionNotFound
}

// Balance returns the signed sum over all transactions. It is recomputed on
// every call; nothing is cached.
func (u *User) Balance() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	var balance float64
	for _, t := range u.transactions {
		balance += t.Signed()
	}
	return balance
}

// Transactions returns a snapshot of the ledger in insertion order.
func (u *User) Transactions() []*ledger.Transaction {
	u.mu.Lock()
	defer u.mu.Unlock()
	snapshot := make([]*ledger.Transaction, len(u.transactions))
	copy(snapshot, u.transactions)
	return snapshot
}

// SetBudget replaces the user's budget.
func (u *User) SetBudget(b *ledger.Budget) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.budget = b
}

// Budget returns the current budget, or nil when none is set.
func (u *User) Budget() *ledger.Budget {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.budget
}

// SetGoal replaces the user's goal. Savings accumulated on a previous goal
// do not carry over.
func (u *User) SetGoal(g *ledger.Goal) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.goal = g
}

// Goal returns the current goal, or nil when none is set.
func (u *User) Goal() *ledger.Goal {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.goal
}

// AddSavings increases the saved amount on the current goal.
func (u *User) AddSavings(amount float64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.goal == nil {
		return ledger.ErrNoGoal
	}
	return u.goal.AddSavings(amount)
}

// GoalProgress returns the goal completion percentage.
func (u *User) GoalProgress() (float64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.goal == nil {
		return 0, ledger.ErrNoGoal
	}
	return u.goal.Progress(), nil
}
