// Package notification holds the budget-notification hook invoked after
// mutating ledger and budget operations.
package notification

import (
	"log/slog"

	"github.com/fintrack/fintrack/pkg/domain/user"
)

// Notifier receives a budget check after every successful transaction
// add/edit/delete and budget assignment. The check is observational only;
// no threshold comparison is performed.
type Notifier interface {
	BudgetChecked(u *user.User)
}

// LogNotifier reports budget checks through the application logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// BudgetChecked logs that the check occurred.
func (n *LogNotifier) BudgetChecked(u *user.User) {
	n.logger.Info("budget checked", "user", u.Name)
}
