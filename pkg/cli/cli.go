// Package cli implements the interactive text menu on top of the engine.
// All parsing of raw input into semantic types happens here; the engine only
// ever sees typed values.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fintrack/fintrack/internal/initializer"
	"github.com/fintrack/fintrack/pkg/domain/ledger"
	"github.com/fintrack/fintrack/pkg/domain/user"
	"github.com/fintrack/fintrack/pkg/service/query"
	"github.com/google/uuid"
	"golang.org/x/term"
)

const dateLayout = "2006-01-02"

var (
	heading = color.New(color.FgCyan, color.Bold)
	errText = color.New(color.FgRed)
	okText  = color.New(color.FgGreen)
)

// Menu drives the interactive session. Input and output are injected so the
// whole loop can be tested with scripted input.
type Menu struct {
	deps    *initializer.Deps
	in      *bufio.Scanner
	out     io.Writer
	current *user.User
	eof     bool

	// set when input is an interactive terminal; enables masked password entry
	stdinFd int
	isTerm  bool
}

// New creates a Menu reading from in and writing to out.
func New(deps *initializer.Deps, in io.Reader, out io.Writer) *Menu {
	m := &Menu{
		deps: deps,
		in:   bufio.NewScanner(in),
		out:  out,
	}
	if f, ok := in.(*os.File); ok {
		m.stdinFd = int(f.Fd())
		m.isTerm = term.IsTerminal(m.stdinFd)
	}
	return m
}

// Run enters the authentication loop and blocks until the operator exits
// or input runs out.
func (m *Menu) Run() {
	for !m.eof {
		heading.Fprintln(m.out, "\n--- Welcome to fintrack ---")
		fmt.Fprintln(m.out, "1. Register")
		fmt.Fprintln(m.out, "2. Login")
		fmt.Fprintln(m.out, "0. Exit")
		switch m.prompt("Choose an option: ") {
		case "1":
			m.register()
		case "2":
			if m.login() {
				m.mainLoop()
			}
		case "0":
			fmt.Fprintln(m.out, "Goodbye.")
			return
		default:
			errText.Fprintln(m.out, "Invalid choice, try again.")
		}
	}
}

func (m *Menu) mainLoop() {
	for m.current != nil && !m.eof {
		heading.Fprintln(m.out, "\n--- Main Menu ---")
		fmt.Fprintln(m.out, "1. Transactions")
		fmt.Fprintln(m.out, "2. Budget")
		fmt.Fprintln(m.out, "3. Goals")
		fmt.Fprintln(m.out, "4. Statistics")
		fmt.Fprintln(m.out, "5. Profile")
		if m.current.Admin {
			fmt.Fprintln(m.out, "6. Administration")
		}
		fmt.Fprintln(m.out, "0. Logout")
		switch m.prompt("Choose an option: ") {
		case "1":
			m.financeLoop()
		case "2":
			m.budgetLoop()
		case "3":
			m.goalLoop()
		case "4":
			m.statsLoop()
		case "5":
			m.profileLoop()
		case "6":
			if m.current.Admin {
				m.adminLoop()
			} else {
				errText.Fprintln(m.out, "Access denied.")
			}
		case "0":
			fmt.Fprintln(m.out, "Logged out.")
			m.current = nil
		default:
			errText.Fprintln(m.out, "Invalid choice, try again.")
		}
	}
}

func (m *Menu) register() {
	heading.Fprintln(m.out, "\n--- Registration ---")
	name := m.prompt("Name: ")
	email := m.prompt("Email: ")
	password := m.promptPassword("Password: ")
	if _, err := m.deps.Registry.Register(name, email, password); err != nil {
		errText.Fprintln(m.out, "Registration failed:", err)
		return
	}
	okText.Fprintln(m.out, "Registration successful.")
}

func (m *Menu) login() bool {
	heading.Fprintln(m.out, "\n--- Login ---")
	email := m.prompt("Email: ")
	password := m.promptPassword("Password: ")
	u, err := m.deps.Registry.Authenticate(email, password)
	if err != nil {
		errText.Fprintln(m.out, "Login failed:", err)
		return false
	}
	m.current = u
	okText.Fprintf(m.out, "Welcome, %s!\n", u.Name)
	return true
}

func (m *Menu) financeLoop() {
	for !m.eof {
		heading.Fprintln(m.out, "\n--- Transactions ---")
		fmt.Fprintln(m.out, "1. Add transaction")
		fmt.Fprintln(m.out, "2. Edit transaction")
		fmt.Fprintln(m.out, "3. Delete transaction")
		fmt.Fprintln(m.out, "4. View transactions")
		fmt.Fprintln(m.out, "0. Back")
		switch m.prompt("Choose an option: ") {
		case "1":
			m.addTransaction()
		case "2":
			m.editTransaction()
		case "3":
			m.deleteTransaction()
		case "4":
			m.viewTransactions(m.current)
		case "0":
			return
		default:
			errText.Fprintln(m.out, "Invalid choice, try again.")
		}
	}
}

func (m *Menu) addTransaction() {
	amount, ok := m.promptFloat("Amount: ")
	if !ok {
		return
	}
	category := m.prompt("Category: ")
	description := m.prompt("Description: ")
	income := strings.EqualFold(m.prompt("Income? (y/n): "), "y")
	date, ok := m.promptDate("Date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	t, err := m.deps.Ledger.AddTransaction(m.current, amount, category, description, income, date)
	if err != nil {
		errText.Fprintln(m.out, "Error:", err)
		return
	}
	okText.Fprintf(m.out, "Transaction added with id %s.\n", t.ID)
}

func (m *Menu) editTransaction() {
	m.viewTransactions(m.current)
	id, ok := m.promptID("Transaction id: ")
	if !ok {
		return
	}
	amount, ok := m.promptFloat("New amount: ")
	if !ok {
		return
	}
	category := m.prompt("New category: ")
	description := m.prompt("New description: ")
	if err := m.deps.Ledger.EditTransaction(m.current, id, amount, category, description); err != nil {
		errText.Fprintln(m.out, "Error:", err)
		return
	}
	okText.Fprintln(m.out, "Transaction updated.")
}

func (m *Menu) deleteTransaction() {
	m.viewTransactions(m.current)
	id, ok := m.promptID("Transaction id: ")
	if !ok {
		return
	}
	if err := m.deps.Ledger.DeleteTransaction(m.current, id); err != nil {
		errText.Fprintln(m.out, "Error:", err)
		return
	}
	okText.Fprintln(m.out, "Transaction deleted.")
}

func (m *Menu) viewTransactions(u *user.User) {
	ts, err := m.deps.Ledger.Transactions(u)
	if err != nil {
		errText.Fprintln(m.out, "Error:", err)
		return
	}
	if len(ts) == 0 {
		fmt.Fprintln(m.out, "No transactions.")
		return
	}
	for _, t := range ts {
		kind := "expense"
		if t.Income {
			kind = "income"
		}
		fmt.Fprintf(m.out, "%s  %s  %.2f  %s  %s  %s\n",
			t.ID, t.Date.Format(dateLayout), t.Amount, kind, t.Category, t.Description)
	}
}

func (m *Menu) budgetLoop() {
	for !m.eof {
		heading.Fprintln(m.out, "\n--- Budget ---")
		fmt.Fprintln(m.out, "1. Set monthly limit")
		fmt.Fprintln(m.out, "2. View budget")
		fmt.Fprintln(m.out, "0. Back")
		switch m.prompt("Choose an option: ") {
		case "1":
			limit, ok := m.promptFloat("Monthly limit: ")
			if !ok {
				continue
			}
			if err := m.deps.Tracker.SetBudget(m.current, limit); err != nil {
				errText.Fprintln(m.out, "Error:", err)
				continue
			}
			okText.Fprintln(m.out, "Budget set.")
		case "2":
			b, err := m.deps.Tracker.Budget(m.current)
			if err != nil || b == nil {
				fmt.Fprintln(m.out, "No budget set.")
				continue
			}
			fmt.Fprintf(m.out, "Monthly limit: %.2f\n", b.MonthlyLimit)
		case "0":
			return
		default:
			errText.Fprintln(m.out, "Invalid choice, try again.")
		}
	}
}

func (m *Menu) goalLoop() {
	for !m.eof {
		heading.Fprintln(m.out, "\n--- Goals ---")
		fmt.Fprintln(m.out, "1. Set goal")
		fmt.Fprintln(m.out, "2. Add savings")
		fmt.Fprintln(m.out, "3. View progress")
		fmt.Fprintln(m.out, "0. Back")
		switch m.prompt("Choose an option: ") {
		case "1":
			target, ok := m.promptFloat("Target amount: ")
			if !ok {
				continue
			}
			if err := m.deps.Tracker.SetGoal(m.current, target); err != nil {
				errText.Fprintln(m.out, "Error:", err)
				continue
			}
			okText.Fprintln(m.out, "Goal set.")
		case "2":
			amount, ok := m.promptFloat("Amount to save: ")
			if !ok {
				continue
			}
			if err := m.deps.Tracker.AddSavings(m.current, amount); err != nil {
				errText.Fprintln(m.out, "Error:", err)
				continue
			}
			okText.Fprintln(m.out, "Savings added.")
		case "3":
			progress, err := m.deps.Tracker.Progress(m.current)
			if err != nil {
				errText.Fprintln(m.out, "Error:", err)
				continue
			}
			fmt.Fprintf(m.out, "Goal progress: %.2f%%\n", progress)
		case "0":
			return
		default:
			errText.Fprintln(m.out, "Invalid choice, try again.")
		}
	}
}

func (m *Menu) statsLoop() {
	for !m.eof {
		heading.Fprintln(m.out, "\n--- Statistics ---")
		fmt.Fprintln(m.out, "1. Current balance")
		fmt.Fprintln(m.out, "2. Filter by date range")
		fmt.Fprintln(m.out, "3. Filter by category")
		fmt.Fprintln(m.out, "4. Filter by type")
		fmt.Fprintln(m.out, "0. Back")
		switch m.prompt("Choose an option: ") {
		case "1":
			balance, err := m.deps.Ledger.Balance(m.current)
			if err != nil {
				errText.Fprintln(m.out, "Error:", err)
				continue
			}
			fmt.Fprintf(m.out, "Balance: %.2f\n", balance)
		case "2":
			start, ok := m.promptDate("Start date (YYYY-MM-DD): ")
			if !ok {
				continue
			}
			end, ok := m.promptDate("End date (YYYY-MM-DD): ")
			if !ok {
				continue
			}
			m.printFiltered(query.ByDateRange(m.current, start, end))
		case "3":
			m.printFiltered(query.ByCategory(m.current, m.prompt("Category: ")))
		case "4":
			income := strings.EqualFold(m.prompt("Income? (y/n): "), "y")
			m.printFiltered(query.ByType(m.current, income))
		case "0":
			return
		default:
			errText.Fprintln(m.out, "Invalid choice, try again.")
		}
	}
}

func (m *Menu) printFiltered(ts []*ledger.Transaction) {
	if len(ts) == 0 {
		fmt.Fprintln(m.out, "No matching transactions.")
		return
	}
	for _, t := range ts {
		kind := "expense"
		if t.Income {
			kind = "income"
		}
		fmt.Fprintf(m.out, "%s  %.2f  %s  %s  %s\n",
			t.Date.Format(dateLayout), t.Amount, kind, t.Category, t.Description)
	}
}

func (m *Menu) profileLoop() {
	for !m.eof {
		heading.Fprintln(m.out, "\n--- Profile ---")
		fmt.Fprintln(m.out, "1. Edit profile")
		fmt.Fprintln(m.out, "2. Delete account")
		fmt.Fprintln(m.out, "0. Back")
		switch m.prompt("Choose an option: ") {
		case "1":
			name := m.prompt("New name: ")
			email := m.prompt("New email: ")
			password := m.promptPassword("New password: ")
			if err := m.deps.Registry.EditProfile(m.current.Email, name, email, password); err != nil {
				errText.Fprintln(m.out, "Error:", err)
				continue
			}
			okText.Fprintln(m.out, "Profile updated.")
		case "2":
			if !strings.EqualFold(m.prompt("Really delete your account? (y/n): "), "y") {
				continue
			}
			if err := m.deps.Registry.Delete(m.current.Email); err != nil {
				errText.Fprintln(m.out, "Error:", err)
				continue
			}
			fmt.Fprintln(m.out, "Account deleted.")
			m.current = nil
			return
		case "0":
			return
		default:
			errText.Fprintln(m.out, "Invalid choice, try again.")
		}
	}
}

func (m *Menu) adminLoop() {
	for !m.eof {
		heading.Fprintln(m.out, "\n--- Administration ---")
		fmt.Fprintln(m.out, "1. List users")
		fmt.Fprintln(m.out, "2. View a user's transactions")
		fmt.Fprintln(m.out, "3. Block user")
		fmt.Fprintln(m.out, "4. Unblock user")
		fmt.Fprintln(m.out, "5. Delete user")
		fmt.Fprintln(m.out, "0. Back")
		switch m.prompt("Choose an option: ") {
		case "1":
			for _, u := range m.deps.Registry.Users() {
				fmt.Fprintf(m.out, "%s <%s> blocked=%t admin=%t\n",
					u.Name, u.Email, u.IsBlocked(), u.Admin)
			}
		case "2":
			u, err := m.deps.Registry.Get(m.prompt("Email: "))
			if err != nil {
				errText.Fprintln(m.out, "Error:", err)
				continue
			}
			m.viewTransactions(u)
		case "3":
			m.setBlocked(true)
		case "4":
			m.setBlocked(false)
		case "5":
			if err := m.deps.Registry.Delete(m.prompt("Email: ")); err != nil {
				errText.Fprintln(m.out, "Error:", err)
				continue
			}
			okText.Fprintln(m.out, "User deleted.")
		case "0":
			return
		default:
			errText.Fprintln(m.out, "Invalid choice, try again.")
		}
	}
}

func (m *Menu) setBlocked(blocked bool) {
	if err := m.deps.Registry.SetBlocked(m.prompt("Email: "), blocked); err != nil {
		errText.Fprintln(m.out, "Error:", err)
		return
	}
	if blocked {
		okText.Fprintln(m.out, "User blocked.")
	} else {
		okText.Fprintln(m.out, "User unblocked.")
	}
}

func (m *Menu) prompt(label string) string {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		m.eof = true
		return ""
	}
	return strings.TrimSpace(m.in.Text())
}

func (m *Menu) promptPassword(label string) string {
	if !m.isTerm {
		return m.prompt(label)
	}
	fmt.Fprint(m.out, label)
	raw, err := term.ReadPassword(m.stdinFd)
	fmt.Fprintln(m.out)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func (m *Menu) promptFloat(label string) (float64, bool) {
	v, err := strconv.ParseFloat(m.prompt(label), 64)
	if err != nil {
		errText.Fprintln(m.out, "Invalid amount.")
		return 0, false
	}
	return v, true
}

func (m *Menu) promptDate(label string) (time.Time, bool) {
	d, err := time.Parse(dateLayout, m.prompt(label))
	if err != nil {
		errText.Fprintln(m.out, "Invalid date, expected YYYY-MM-DD.")
		return time.Time{}, false
	}
	return d, true
}

func (m *Menu) promptID(label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(m.prompt(label))
	if err != nil {
		errText.Fprintln(m.out, "Invalid transaction id.")
		return uuid.Nil, false
	}
	return id, true
}
