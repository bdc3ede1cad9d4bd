package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golfimprover/golfimprover/internal/db"
	"github.com/golfimprover/golfimprover/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) (*AuthService, *sqlx.DB) {
	t.Helper()

	conn, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))

	userRepo := repository.NewUserRepository(conn)
	profileRepo := repository.NewProfileRepository(conn)
	return NewAuthService(userRepo, profileRepo, "test-secret", false, 168*time.Hour), conn
}

func TestSignUpAndSignIn(t *testing.T) {
	svc, conn := newTestAuthService(t)

	user, err := svc.SignUp("Golfer@Example.com", "sup3r-secret")
	require.NoError(t, err)
	assert.Equal(t, "golfer@example.com", user.Email, "email is normalized")
	assert.True(t, user.HasPassword())

	// Profile is seeded at signup
	var count int
	require.NoError(t, conn.Get(&count, `SELECT COUNT(*) FROM profiles WHERE user_id = $1`, user.ID))
	assert.Equal(t, 1, count)

	signedIn, err := svc.SignIn("golfer@example.com", "sup3r-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.ID)
}

func TestSignIn_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.SignUp("golfer@example.com", "sup3r-secret")
	require.NoError(t, err)

	_, err = svc.SignIn("golfer@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// Unknown accounts get the same error as wrong passwords.
func TestSignIn_UnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.SignIn("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.SignUp("golfer@example.com", "sup3r-secret")
	require.NoError(t, err)

	_, err = svc.SignUp("golfer@example.com", "another-secret")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestSignUp_InvalidEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.SignUp("not-an-email", "sup3r-secret")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

// OAuth-only accounts cannot sign in with a password.
func TestSignIn_OAuthOnlyAccount(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.FindOrCreateOAuthUser("social@example.com", "Jordan")
	require.NoError(t, err)

	_, err = svc.SignIn("social@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignIn_DisabledAccount(t *testing.T) {
	svc, conn := newTestAuthService(t)

	user, err := svc.SignUp("golfer@example.com", "sup3r-secret")
	require.NoError(t, err)

	_, err = conn.Exec(`UPDATE users SET disabled_at = $1 WHERE id = $2`, time.Now(), user.ID)
	require.NoError(t, err)

	_, err = svc.SignIn("golfer@example.com", "sup3r-secret")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestFindOrCreateOAuthUser_Idempotent(t *testing.T) {
	svc, _ := newTestAuthService(t)

	first, err := svc.FindOrCreateOAuthUser("social@example.com", "Jordan")
	require.NoError(t, err)

	second, err := svc.FindOrCreateOAuthUser("social@example.com", "Jordan")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestJWTRoundTrip(t *testing.T) {
	svc, _ := newTestAuthService(t)

	user, err := svc.SignUp("golfer@example.com", "sup3r-secret")
	require.NoError(t, err)

	token, err := svc.GenerateJWT(user)
	require.NoError(t, err)

	claims, err := svc.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Email, claims["email"])
}

func TestVerifyJWT_BadToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.VerifyJWT("not.a.token")
	assert.Error(t, err)
}
