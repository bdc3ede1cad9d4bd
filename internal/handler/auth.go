package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golfimprover/golfimprover/internal/config"
	"github.com/golfimprover/golfimprover/internal/ctxkeys"
	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/golfimprover/golfimprover/internal/repository"
	"github.com/golfimprover/golfimprover/internal/service"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const appleBaseURL = "https://appleid.apple.com"

type authHandler struct {
	authService       *service.AuthService
	profileService    *service.ProfileService
	emailService      *service.EmailService
	googleOAuthConfig *oauth2.Config
	appleOAuthConfig  *oauth2.Config
	cfg               *config.Config
}

func NewAuthHandler(authService *service.AuthService, profileService *service.ProfileService, emailService *service.EmailService, cfg *config.Config) *authHandler {
	return &authHandler{
		authService:    authService,
		profileService: profileService,
		emailService:   emailService,
		cfg:            cfg,
		googleOAuthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.AppURL + "/auth/google/callback",
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		appleOAuthConfig: &oauth2.Config{
			ClientID:    cfg.AppleClientID,
			RedirectURL: cfg.AppURL + "/auth/apple/callback",
			Scopes:      []string{"email", "name"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  appleBaseURL + "/auth/authorize",
				TokenURL: appleBaseURL + "/auth/token",
			},
		},
	}
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *authHandler) userResponse(user *model.User) userResponse {
	resp := userResponse{ID: user.ID, Email: user.Email}
	profile, err := h.profileService.ByUserID(user.ID)
	if err == nil {
		resp.Name = profile.Name
	}
	return resp
}

func (h *authHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.authService.SignUp(strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists):
			respondError(w, http.StatusConflict, "An account with this email already exists")
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(w, http.StatusBadRequest, "Please provide a valid email address")
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		err = h.profileService.Update(user.ID, repository.ProfilePatch{Name: &name})
		if err != nil {
			slog.Warn("failed to set name on signup", "error", err, "user_id", user.ID)
		}
	}

	err = h.setSession(w, user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "An error occurred. Please try again.")
		return
	}

	err = h.emailService.SendWelcomeEmail(user.Email, strings.TrimSpace(req.Name))
	if err != nil {
		slog.Warn("welcome email failed", "error", err, "user_id", user.ID)
	}

	slog.Info("user signed up", "user_id", user.ID, "email", user.Email)
	respondJSON(w, http.StatusCreated, h.userResponse(user))
}

func (h *authHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.authService.SignIn(strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAccountDisabled) {
			respondError(w, http.StatusForbidden, "This account has been disabled")
			return
		}
		slog.Warn("sign in failed", "error", err, "email", req.Email)
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	err = h.setSession(w, user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "An error occurred. Please try again.")
		return
	}

	slog.Info("user signed in", "user_id", user.ID, "email", user.Email)
	respondJSON(w, http.StatusOK, h.userResponse(user))
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Me returns the authenticated user, or 401 when the session is missing.
func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	respondJSON(w, http.StatusOK, h.userResponse(user))
}

func (h *authHandler) setSession(w http.ResponseWriter, user *model.User) error {
	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate JWT", "error", err, "user_id", user.ID)
		return err
	}
	h.authService.SetJWTCookie(w, token, time.Now().Add(h.authService.JWTExpiry()))
	return nil
}

// GoogleAuth redirects user to Google OAuth consent screen
func (h *authHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	state := generateOAuthState()
	h.setStateCookie(w, state)

	url := h.googleOAuthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GoogleCallback handles the OAuth callback from Google
func (h *authHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code, ok := h.validateCallback(w, r, r.URL.Query().Get("state"), r.URL.Query().Get("code"), "google")
	if !ok {
		return
	}

	token, err := h.googleOAuthConfig.Exchange(context.Background(), code)
	if err != nil {
		slog.Error("google oauth token exchange failed", "error", err)
		h.oauthFailed(w, r)
		return
	}

	client := h.googleOAuthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		slog.Error("failed to get google user info", "error", err)
		h.oauthFailed(w, r)
		return
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close response body", "error", closeErr)
		}
	}()

	var userInfo struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	err = json.NewDecoder(resp.Body).Decode(&userInfo)
	if err != nil {
		slog.Error("failed to decode google user info", "error", err)
		h.oauthFailed(w, r)
		return
	}

	h.completeOAuth(w, r, userInfo.Email, userInfo.Name, "google")
}

// AppleAuth redirects user to the Sign in with Apple consent screen
func (h *authHandler) AppleAuth(w http.ResponseWriter, r *http.Request) {
	state := generateOAuthState()
	h.setStateCookie(w, state)

	// Apple requires response_mode=form_post when name/email scopes are requested
	url := h.appleOAuthConfig.AuthCodeURL(state, oauth2.SetAuthURLParam("response_mode", "form_post"))
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// AppleCallback handles the form_post callback from Apple. Apple delivers the
// user's email inside the id_token rather than via a userinfo endpoint, and
// the name only on the very first authorization as a JSON `user` form field.
func (h *authHandler) AppleCallback(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		h.oauthFailed(w, r)
		return
	}

	code, ok := h.validateCallback(w, r, r.FormValue("state"), r.FormValue("code"), "apple")
	if !ok {
		return
	}

	clientSecret, err := h.appleClientSecret()
	if err != nil {
		slog.Error("failed to build apple client secret", "error", err)
		h.oauthFailed(w, r)
		return
	}

	conf := *h.appleOAuthConfig
	conf.ClientSecret = clientSecret

	token, err := conf.Exchange(context.Background(), code)
	if err != nil {
		slog.Error("apple oauth token exchange failed", "error", err)
		h.oauthFailed(w, r)
		return
	}

	idToken, _ := token.Extra("id_token").(string)
	if idToken == "" {
		slog.Error("apple oauth response missing id_token")
		h.oauthFailed(w, r)
		return
	}

	// The id_token arrived over the direct token exchange with Apple, so its
	// claims are trusted without a second signature check.
	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(idToken, claims)
	if err != nil {
		slog.Error("failed to parse apple id_token", "error", err)
		h.oauthFailed(w, r)
		return
	}

	email, _ := claims["email"].(string)
	if email == "" {
		slog.Error("apple id_token missing email")
		h.oauthFailed(w, r)
		return
	}

	// First authorization only: {"name":{"firstName":"...","lastName":"..."}}
	name := ""
	if userJSON := r.FormValue("user"); userJSON != "" {
		var appleUser struct {
			Name struct {
				FirstName string `json:"firstName"`
				LastName  string `json:"lastName"`
			} `json:"name"`
		}
		if json.Unmarshal([]byte(userJSON), &appleUser) == nil {
			name = strings.TrimSpace(appleUser.Name.FirstName + " " + appleUser.Name.LastName)
		}
	}

	h.completeOAuth(w, r, email, name, "apple")
}

// appleClientSecret builds the short-lived ES256 JWT Apple uses in place of a
// static client secret.
func (h *authHandler) appleClientSecret() (string, error) {
	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(h.cfg.ApplePrivateKey))
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iss": h.cfg.AppleTeamID,
		"iat": now.Unix(),
		"exp": now.Add(5 * time.Minute).Unix(),
		"aud": appleBaseURL,
		"sub": h.cfg.AppleClientID,
	})
	token.Header["kid"] = h.cfg.AppleKeyID

	return token.SignedString(key)
}

func (h *authHandler) completeOAuth(w http.ResponseWriter, r *http.Request, email, name, provider string) {
	user, err := h.authService.FindOrCreateOAuthUser(email, name)
	if err != nil {
		if errors.Is(err, service.ErrAccountDisabled) {
			respondError(w, http.StatusForbidden, "This account has been disabled")
			return
		}
		slog.Error("oauth authentication failed", "error", err, "email", email, "provider", provider)
		h.oauthFailed(w, r)
		return
	}

	err = h.setSession(w, user)
	if err != nil {
		h.oauthFailed(w, r)
		return
	}

	slog.Info("user logged in with oauth", "user_id", user.ID, "email", user.Email, "provider", provider)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// validateCallback checks the CSRF state cookie and returns the auth code.
func (h *authHandler) validateCallback(w http.ResponseWriter, r *http.Request, state, code, provider string) (string, bool) {
	cookie, err := r.Cookie("oauth_state")
	if err != nil || cookie.Value != state || state == "" {
		slog.Warn("oauth state validation failed", "error", err, "provider", provider)
		h.oauthFailed(w, r)
		return "", false
	}

	// Clear state cookie
	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	if code == "" {
		slog.Warn("oauth callback missing code", "provider", provider)
		h.oauthFailed(w, r)
		return "", false
	}

	return code, true
}

func (h *authHandler) setStateCookie(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(), // Secure flag based on APP_ENV (safer than r.TLS behind load balancers)
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600, // 10 minutes
	})
}

func (h *authHandler) oauthFailed(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/auth?error=oauth", http.StatusSeeOther)
}

// generateOAuthState creates a random state token for CSRF protection
func generateOAuthState() string {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		// rand.Read never fails on supported platforms
		panic(err)
	}
	return base64.URLEncoding.EncodeToString(b)
}
