package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golfimprover/golfimprover/internal/ctxkeys"
	"github.com/golfimprover/golfimprover/internal/db"
	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/golfimprover/golfimprover/internal/repository"
	"github.com/golfimprover/golfimprover/internal/service"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestStack(t *testing.T) (*service.AuthService, repository.UserRepository, *service.ProfileService, *sqlx.DB) {
	t.Helper()

	conn, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))

	userRepo := repository.NewUserRepository(conn)
	profileRepo := repository.NewProfileRepository(conn)
	authService := service.NewAuthService(userRepo, profileRepo, "test-secret", false, time.Hour)
	return authService, userRepo, service.NewProfileService(profileRepo), conn
}

func signedInRequest(t *testing.T, authService *service.AuthService, user *model.User) *http.Request {
	t.Helper()

	token, err := authService.GenerateJWT(user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	return req
}

func TestAuthMiddleware_ResolvesUserAndProfile(t *testing.T) {
	authService, userRepo, profileService, _ := newAuthTestStack(t)

	user, err := authService.SignUp("golfer@example.com", "sup3r-secret")
	require.NoError(t, err)

	var gotUser *model.User
	var gotProfile *model.Profile
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = ctxkeys.User(r.Context())
		gotProfile = ctxkeys.Profile(r.Context())
	})

	rec := httptest.NewRecorder()
	AuthMiddleware(authService, userRepo, profileService)(next).ServeHTTP(rec, signedInRequest(t, authService, user))

	require.NotNil(t, gotUser)
	assert.Equal(t, user.ID, gotUser.ID)
	assert.Nil(t, gotUser.PasswordHash)
	require.NotNil(t, gotProfile)
	assert.Equal(t, user.ID, gotProfile.UserID)
}

// A missing profile row must not end the session: the user stays signed in
// and the next profile update recreates the row.
func TestAuthMiddleware_MissingProfileKeepsSession(t *testing.T) {
	authService, userRepo, profileService, conn := newAuthTestStack(t)

	user, err := authService.SignUp("golfer@example.com", "sup3r-secret")
	require.NoError(t, err)

	_, err = conn.Exec(`DELETE FROM profiles WHERE user_id = $1`, user.ID)
	require.NoError(t, err)

	var gotUser *model.User
	var gotProfile *model.Profile
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = ctxkeys.User(r.Context())
		gotProfile = ctxkeys.Profile(r.Context())
	})

	rec := httptest.NewRecorder()
	AuthMiddleware(authService, userRepo, profileService)(next).ServeHTTP(rec, signedInRequest(t, authService, user))

	require.NotNil(t, gotUser, "user must still be resolved from the session")
	assert.Nil(t, gotProfile)

	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth_token" {
			t.Fatalf("session cookie must not be cleared, got %q", c.Value)
		}
	}
}

func TestAuthMiddleware_InvalidTokenClearsCookie(t *testing.T) {
	authService, userRepo, profileService, _ := newAuthTestStack(t)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "not.a.token"})

	var gotUser *model.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = ctxkeys.User(r.Context())
	})

	rec := httptest.NewRecorder()
	AuthMiddleware(authService, userRepo, profileService)(next).ServeHTTP(rec, req)

	assert.Nil(t, gotUser)

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth_token" && c.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared, "invalid token should clear the cookie")
}
