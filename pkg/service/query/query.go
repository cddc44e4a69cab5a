// Package query provides read-only filters over a user's ledger. Each filter
// works on a snapshot and returns a new slice in insertion order; the ledger
// itself is never touched.
package query

import (
	"strings"
	"time"

	"github.com/fintrack/fintrack/pkg/domain/ledger"
	"github.com/fintrack/fintrack/pkg/domain/user"
)

// ByDateRange returns the transactions dated within [start, end], inclusive
// on both ends.
func ByDateRange(u *user.User, start, end time.Time) []*ledger.Transaction {
	out := []*ledger.Transaction{}
	for _, t := range u.Transactions() {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ByCategory returns the transactions whose category matches, ignoring case.
func ByCategory(u *user.User, category string) []*ledger.Transaction {
	out := []*ledger.Transaction{}
	for _, t := range u.Transactions() {
		if strings.EqualFold(t.Category, category) {
			out = append(out, t)
		}
	}
	return out
}

// ByType returns income transactions when income is true, expenses otherwise.
func ByType(u *user.User, income bool) []*ledger.Transaction {
	out := []*ledger.Transaction{}
	for _, t := range u.Transactions() {
		if t.Income == income {
			out = append(out, t)
		}
	}
	return out
}
