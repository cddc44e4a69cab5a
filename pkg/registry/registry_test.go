package registry_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/fintrack/fintrack/pkg/config"
	"github.com/fintrack/fintrack/pkg/domain"
	"github.com/fintrack/fintrack/pkg/domain/user"
	"github.com/fintrack/fintrack/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adminCfg = config.Admin{
	Name:     "Admin",
	Email:    "admin@example.com",
	Password: "password",
}

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r, err := registry.New(adminCfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return r
}

func TestNew_SeedsAdmin(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)
	assert.Equal(t, 1, r.Count())

	admin, err := r.Authenticate("admin@example.com", "password")
	require.NoError(t, err)
	assert.True(t, admin.Admin)
	assert.Equal(t, "Admin", admin.Name)
}

func TestNew_RejectsBadAdminConfig(t *testing.T) {
	t.Parallel()
	_, err := registry.New(config.Admin{Name: "A", Email: "nope", Password: "password"},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)
	created, err := r.Register("Alice", "alice@example.com", "pass1")
	require.NoError(t, err)
	assert.False(t, created.Admin)

	u, err := r.Authenticate("alice@example.com", "pass1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.Same(t, created, u, "authenticate returns the live handle, not a copy")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)
	_, err := r.Register("Alice", "alice@example.com", "pass1")
	require.NoError(t, err)

	_, err = r.Register("Bob", "alice@example.com", "pass2")
	require.ErrorIs(t, err, registry.ErrEmailTaken)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Equal(t, 2, r.Count(), "failed registration must not change the registry")
}

func TestRegister_Invalid(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)
	_, err := r.Register("", "a@x.com", "pass")
	assert.ErrorIs(t, err, user.ErrNameEmpty)
	_, err = r.Register("A", "not-an-email", "pass")
	assert.ErrorIs(t, err, user.ErrEmailFormat)
	_, err = r.Register("A", "a@x.com", "abc")
	assert.ErrorIs(t, err, user.ErrPasswordTooShort)
	assert.Equal(t, 1, r.Count())
}

func TestAuthenticate_Failures(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)
	_, err := r.Register("Alice", "alice@example.com", "pass1")
	require.NoError(t, err)

	_, err = r.Authenticate("unknown@example.com", "pass1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.Authenticate("alice@example.com", "wrong")
	assert.ErrorIs(t, err, user.ErrPasswordMismatch)
}

func TestBlockUnblock(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)
	_, err := r.Register("Alice", "alice@example.com", "pass1")
	require.NoError(t, err)

	require.NoError(t, r.SetBlocked("alice@example.com", true))
	_, err = r.Authenticate("alice@example.com", "pass1")
	assert.ErrorIs(t, err, domain.ErrUserBlocked)

	require.NoError(t, r.SetBlocked("alice@example.com", false))
	u, err := r.Authenticate("alice@example.com", "pass1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)

	assert.ErrorIs(t, r.SetBlocked("ghost@example.com", true), registry.ErrUserNotFound)
}

func TestEditProfile(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)
	created, err := r.Register("Alice", "alice@example.com", "pass1")
	require.NoError(t, err)

	require.NoError(t, r.EditProfile("alice@example.com", "Alicia", "alicia@example.com", "pass2"))

	// old key is gone, new key resolves to the same object
	_, err = r.Authenticate("alice@example.com", "pass2")
	assert.ErrorIs(t, err, registry.ErrUserNotFound)
	u, err := r.Authenticate("alicia@example.com", "pass2")
	require.NoError(t, err)
	assert.Same(t, created, u)
	assert.Equal(t, "Alicia", u.Name)
	assert.Equal(t, 2, r.Count())
}

func TestEditProfile_SameEmail(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)
	_, err := r.Register("Alice", "alice@example.com", "pass1")
	require.NoError(t, err)

	require.NoError(t, r.EditProfile("alice@example.com", "Alicia", "alice@example.com", "pass2"))
	u, err := r.Authenticate("alice@example.com", "pass2")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", u.Name)
}

func TestEditProfile_Failures(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)
	_, err := r.Register("Alice", "alice@example.com", "pass1")
	require.NoError(t, err)
	_, err = r.Register("Bob", "bob@example.com", "pass1")
	require.NoError(t, err)

	assert.ErrorIs(t,
		r.EditProfile("ghost@example.com", "G", "g@x.com", "pass"),
		registry.ErrUserNotFound)
	assert.ErrorIs(t,
		r.EditProfile("alice@example.com", "", "alice@example.com", "pass1"),
		user.ErrNameEmpty)
	assert.ErrorIs(t,
		r.EditProfile("alice@example.com", "Alice", "bob@example.com", "pass1"),
		registry.ErrEmailTaken)

	// nothing changed
	u, err := r.Authenticate("alice@example.com", "pass1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)
	_, err := r.Register("Alice", "alice@example.com", "pass1")
	require.NoError(t, err)

	require.NoError(t, r.Delete("alice@example.com"))
	assert.Equal(t, 1, r.Count())
	assert.ErrorIs(t, r.Delete("alice@example.com"), registry.ErrUserNotFound)
}

func TestUsers_OrderedByEmail(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)
	_, err := r.Register("Zed", "zed@example.com", "pass1")
	require.NoError(t, err)
	_, err = r.Register("Bea", "bea@example.com", "pass1")
	require.NoError(t, err)

	users := r.Users()
	require.Len(t, users, 3)
	assert.Equal(t, "admin@example.com", users[0].Email)
	assert.Equal(t, "bea@example.com", users[1].Email)
	assert.Equal(t, "zed@example.com", users[2].Email)
}

func TestGet(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)
	u, err := r.Get("admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Admin", u.Name)
	_, err = r.Get("ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
