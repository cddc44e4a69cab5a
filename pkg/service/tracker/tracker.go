// Package tracker manages the monthly budget and the savings goal of a user.
package tracker

import (
	"log/slog"

	dledger "github.com/fintrack/fintrack/pkg/domain/ledger"
	"github.com/fintrack/fintrack/pkg/domain/user"
	"github.com/fintrack/fintrack/pkg/notification"
	"github.com/fintrack/fintrack/pkg/service/ledger"
)

// Service tracks budgets and goals.
type Service struct {
	notifier notification.Notifier
	logger   *slog.Logger
}

// New creates a tracker Service.
func New(notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{notifier: notifier, logger: logger}
}

// SetBudget replaces the user's monthly budget and triggers the
// budget-notification hook.
func (s *Service) SetBudget(u *user.User, monthlyLimit float64) error {
	log := s.logger.With("context", "SetBudget")
	if u == nil {
		return ledger.ErrUserRequired
	}
	b, err := dledger.NewBudget(monthlyLimit)
	if err != nil {
		log.Error("budget rejected", "user", u.Email, "limit", monthlyLimit, "error", err)
		return err
	}
	u.SetBudget(b)
	s.notifier.BudgetChecked(u)
	log.Info("budget set", "user", u.Email, "limit", monthlyLimit)
	return nil
}

// Budget returns the user's current budget, or nil when none is set.
func (s *Service) Budget(u *user.User) (*dledger.Budget, error) {
	if u == nil {
		return nil, ledger.ErrUserRequired
	}
	return u.Budget(), nil
}

// SetGoal replaces the user's savings goal. Savings on a previous goal are
// discarded; the new goal starts at zero.
func (s *Service) SetGoal(u *user.User, targetAmount float64) error {
	log := s.logger.With("context", "SetGoal")
	if u == nil {
		return ledger.ErrUserRequired
	}
	g, err := dledger.NewGoal(targetAmount)
	if err != nil {
		log.Error("goal rejected", "user", u.Email, "target", targetAmount, "error", err)
		return err
	}
	u.SetGoal(g)
	log.Info("goal set", "user", u.Email, "target", targetAmount)
	return nil
}

// Goal returns the user's current goal, or nil when none is set.
func (s *Service) Goal(u *user.User) (*dledger.Goal, error) {
	if u == nil {
		return nil, ledger.ErrUserRequired
	}
	return u.Goal(), nil
}

// AddSavings adds to the saved amount of the current goal. There is no clamp
// at the target; overshooting is allowed.
func (s *Service) AddSavings(u *user.User, amount float64) error {
	log := s.logger.With("context", "AddSavings")
	if u == nil {
		return ledger.ErrUserRequired
	}
	if err := u.AddSavings(amount); err != nil {
		log.Error("savings rejected", "user", u.Email, "amount", amount, "error", err)
		return err
	}
	log.Info("savings added", "user", u.Email, "amount", amount)
	return nil
}

// Progress returns goal completion in percent. Exceeds 100 on overshoot.
func (s *Service) Progress(u *user.User) (float64, error) {
	if u == nil {
		return 0, ledger.ErrUserRequired
	}
	return u.GoalProgress()
}
