package tracker_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/fintrack/fintrack/pkg/domain"
	dledger "github.com/fintrack/fintrack/pkg/domain/ledger"
	"github.com/fintrack/fintrack/pkg/domain/user"
	ledgersvc "github.com/fintrack/fintrack/pkg/service/ledger"
	"github.com/fintrack/fintrack/pkg/service/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingNotifier struct {
	checks int
}

func (n *countingNotifier) BudgetChecked(*user.User) { n.checks++ }

func setup(t *testing.T) (*tracker.Service, *user.User, *countingNotifier) {
	t.Helper()
	notifier := &countingNotifier{}
	svc := tracker.New(notifier, slog.New(slog.NewTextHandler(io.Discard, nil)))
	u, err := user.New("Alice", "a@x.com", "pass1")
	require.NoError(t, err)
	return svc, u, notifier
}

func TestSetBudget(t *testing.T) {
	t.Parallel()
	svc, u, notifier := setup(t)

	require.NoError(t, svc.SetBudget(u, 1500))
	b, err := svc.Budget(u)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, 1500.0, b.MonthlyLimit)
	assert.Equal(t, 1, notifier.checks, "budget assignment triggers the check")

	// re-assignment replaces, not merges
	require.NoError(t, svc.SetBudget(u, 200))
	b, err = svc.Budget(u)
	require.NoError(t, err)
	assert.Equal(t, 200.0, b.MonthlyLimit)
	assert.Equal(t, 2, notifier.checks)
}

func TestSetBudget_Invalid(t *testing.T) {
	t.Parallel()
	svc, u, notifier := setup(t)

	assert.ErrorIs(t, svc.SetBudget(nil, 100), ledgersvc.ErrUserRequired)
	assert.ErrorIs(t, svc.SetBudget(u, -1), dledger.ErrLimitNegative)
	assert.Equal(t, 0, notifier.checks)

	b, err := svc.Budget(u)
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestSetGoal(t *testing.T) {
	t.Parallel()
	svc, u, notifier := setup(t)

	require.NoError(t, svc.SetGoal(u, 1000))
	g, err := svc.Goal(u)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 1000.0, g.TargetAmount)
	assert.Equal(t, 0.0, g.SavedAmount)
	assert.Equal(t, 0, notifier.checks, "goal assignment does not trigger the budget check")

	assert.ErrorIs(t, svc.SetGoal(u, 0), dledger.ErrTargetNotPositive)
	assert.ErrorIs(t, svc.SetGoal(nil, 10), ledgersvc.ErrUserRequired)
}

func TestSetGoal_ReplaceResetsSavings(t *testing.T) {
	t.Parallel()
	svc, u, _ := setup(t)

	require.NoError(t, svc.SetGoal(u, 1000))
	require.NoError(t, svc.AddSavings(u, 400))

	require.NoError(t, svc.SetGoal(u, 500))
	progress, err := svc.Progress(u)
	require.NoError(t, err)
	assert.Equal(t, 0.0, progress)
}

func TestAddSavingsAndProgress(t *testing.T) {
	t.Parallel()
	svc, u, _ := setup(t)

	assert.ErrorIs(t, svc.AddSavings(u, 100), dledger.ErrNoGoal)
	_, err := svc.Progress(u)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.SetGoal(u, 1000))
	progress, err := svc.Progress(u)
	require.NoError(t, err)
	assert.Equal(t, 0.0, progress)

	require.NoError(t, svc.AddSavings(u, 500))
	progress, err = svc.Progress(u)
	require.NoError(t, err)
	assert.Equal(t, 50.0, progress)

	// no clamp at the target
	require.NoError(t, svc.AddSavings(u, 700))
	progress, err = svc.Progress(u)
	require.NoError(t, err)
	assert.InDelta(t, 120.0, progress, 1e-9)

	assert.ErrorIs(t, svc.AddSavings(u, -1), dledger.ErrSavingsNotPositive)
	assert.ErrorIs(t, svc.AddSavings(nil, 1), ledgersvc.ErrUserRequired)
}
