// Package registry owns the set of registered users, keyed by email. It is
// the only component that creates or destroys users; everything a user owns
// (transactions, budget, goal) lives on the User aggregate itself.
package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/fintrack/fintrack/pkg/config"
	"github.com/fintrack/fintrack/pkg/domain"
	"github.com/fintrack/fintrack/pkg/domain/user"
)

var (
	// ErrEmailTaken is returned when registering or renaming to an email
	// that already belongs to another user.
	ErrEmailTaken = fmt.Errorf("user with this email already exists: %w", domain.ErrAlreadyExists)

	// ErrUserNotFound is returned when no user is registered under the given email.
	ErrUserNotFound = fmt.Errorf("user not found: %w", domain.ErrNotFound)
)

// Registry is an in-memory, email-keyed user store. The mutex guards the
// index itself (insert, remove, rekey); per-user state is guarded by the
// user's own lock.
type Registry struct {
	mu     sync.RWMutex
	users  map[string]*user.User
	logger *slog.Logger
}

// New creates a Registry seeded with the bootstrap admin account from the
// configuration. The admin flag on that account is always set.
func New(admin config.Admin, logger *slog.Logger) (*Registry, error) {
	r := &Registry{
		users:  make(map[string]*user.User),
		logger: logger,
	}
	seeded, err := r.Register(admin.Name, admin.Email, admin.Password)
	if err != nil {
		return nil, fmt.Errorf("seeding admin account: %w", err)
	}
	seeded.Admin = true
	logger.Info("registry initialized", "admin_email", seeded.Email)
	return r, nil
}

// Register creates a new user. The email must not be taken and all profile
// fields must pass validation.
func (r *Registry) Register(name, email, password string) (*user.User, error) {
	u, err := user.New(name, email, password)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[email]; exists {
		return nil, ErrEmailTaken
	}
	r.users[email] = u
	return u, nil
}

// Authenticate returns the live user handle on success; mutations through it
// are visible to the registry. Password is checked before the blocked flag,
// so a blocked user with a wrong password still gets the password error.
func (r *Registry) Authenticate(email, password string) (*user.User, error) {
	r.mu.RLock()
	u, exists := r.users[email]
	r.mu.RUnlock()
	if !exists {
		return nil, ErrUserNotFound
	}
	if err := u.CheckPassword(password); err != nil {
		return nil, err
	}
	if u.IsBlocked() {
		return nil, domain.ErrUserBlocked
	}
	return u, nil
}

// Get returns the user registered under the given email.
func (r *Registry) Get(email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, exists := r.users[email]
	if !exists {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// EditProfile replaces name, email and password of the user registered under
// email. When the email changes the index is rekeyed; the User object itself
// is preserved. No state changes when any check fails.
func (r *Registry) EditProfile(email, newName, newEmail, newPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, exists := r.users[email]
	if !exists {
		return ErrUserNotFound
	}
	if err := user.ValidateProfile(newName, newEmail, newPassword); err != nil {
		return err
	}
	if email != newEmail {
		if _, taken := r.users[newEmail]; taken {
			return ErrEmailTaken
		}
	}
	if err := u.UpdateProfile(newName, newEmail, newPassword); err != nil {
		return err
	}
	if email != newEmail {
		delete(r.users, email)
		r.users[newEmail] = u
	}
	return nil
}

// Delete removes the user and everything they own.
func (r *Registry) Delete(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[email]; !exists {
		return ErrUserNotFound
	}
	delete(r.users, email)
	return nil
}

// SetBlocked toggles the blocked flag on the user registered under email.
func (r *Registry) SetBlocked(email string, blocked bool) error {
	r.mu.RLock()
	u, exists := r.users[email]
	r.mu.RUnlock()
	if !exists {
		return ErrUserNotFound
	}
	u.SetBlocked(blocked)
	return nil
}

// Users returns all registered users ordered by email.
func (r *Registry) Users() []*user.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*user.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

// Count returns the number of registered users.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
