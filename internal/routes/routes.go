package routes

import (
	"net/http"

	"github.com/golfimprover/golfimprover/internal/app"
	"github.com/golfimprover/golfimprover/internal/handler"
	"github.com/golfimprover/golfimprover/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.ProfileService, app.EmailService, app.Cfg)
	profile := handler.NewProfileHandler(app.ProfileService)
	goal := handler.NewGoalHandler(app.GoalService)
	plan := handler.NewPracticePlanHandler(app.PlanService, app.AIService)
	practiceLog := handler.NewPracticeLogHandler(app.LogService, app.AIService)
	recap := handler.NewRecapHandler(app.RecapService, app.RecapJobService, app.AIService)
	dashboard := handler.NewDashboardHandler(app.StatsService)
	notification := handler.NewNotificationHandler(app.NotificationService)
	feedback := handler.NewFeedbackHandler(app.FeedbackService)
	admin := handler.NewAdminHandler(app.RecapJobService, app.FeedbackService, app.Cfg.AdminAPIKey)
	ai := handler.NewAIHandler(app.AIService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /api/auth/signup", rateLimiter(auth.SignUp))
	mux.HandleFunc("POST /api/auth/signin", rateLimiter(auth.SignIn))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)
	mux.HandleFunc("GET /api/auth/me", auth.Me)

	// OAuth
	mux.HandleFunc("GET /auth/google", rateLimiter(auth.GoogleAuth))
	mux.HandleFunc("GET /auth/google/callback", rateLimiter(auth.GoogleCallback))
	mux.HandleFunc("GET /auth/apple", rateLimiter(auth.AppleAuth))
	mux.HandleFunc("POST /auth/apple/callback", rateLimiter(auth.AppleCallback))

	// Feedback works with or without a session
	mux.HandleFunc("POST /api/feedback", feedback.Create)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	// Profile
	mux.HandleFunc("GET /api/profile", middleware.RequireAuth(profile.Get))
	mux.HandleFunc("PATCH /api/profile", middleware.RequireAuth(profile.Update))
	mux.HandleFunc("POST /api/profile/tutorial-complete", middleware.RequireAuth(profile.CompleteTutorial))

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))

	// Practice plans
	mux.HandleFunc("GET /api/plans", middleware.RequireAuth(plan.List))
	mux.HandleFunc("GET /api/plans/{id}", middleware.RequireAuth(plan.Get))
	mux.HandleFunc("POST /api/plans", middleware.RequireAuth(plan.Create))
	mux.HandleFunc("POST /api/plans/generate", middleware.RequireAuth(plan.Generate))

	// Practice logs
	mux.HandleFunc("GET /api/logs", middleware.RequireAuth(practiceLog.List))
	mux.HandleFunc("POST /api/logs", middleware.RequireAuth(practiceLog.Create))
	mux.HandleFunc("POST /api/logs/suggest", middleware.RequireAuth(practiceLog.Suggest))

	// Monthly recaps
	mux.HandleFunc("GET /api/recaps", middleware.RequireAuth(recap.List))
	mux.HandleFunc("GET /api/recaps/{month}", middleware.RequireAuth(recap.Get))
	mux.HandleFunc("POST /api/recaps", middleware.RequireAuth(recap.Save))
	mux.HandleFunc("POST /api/recaps/generate", middleware.RequireAuth(recap.Generate))
	mux.HandleFunc("POST /api/recaps/{month}/narrative", middleware.RequireAuth(recap.Narrative))

	// Dashboard
	mux.HandleFunc("GET /api/dashboard", middleware.RequireAuth(dashboard.Stats))

	// Notifications
	mux.HandleFunc("GET /api/notifications", middleware.RequireAuth(notification.List))
	mux.HandleFunc("POST /api/notifications/{id}/read", middleware.RequireAuth(notification.MarkRead))
	mux.HandleFunc("GET /api/notifications/stream", middleware.RequireAuth(notification.Stream))

	// ============================================================================
	// ADMIN (Bearer ADMIN_API_KEY, method checked in handler)
	// ============================================================================

	mux.HandleFunc("/api/admin/generate-recaps", admin.GenerateRecaps)
	mux.HandleFunc("GET /api/admin/feedback", admin.Feedback)

	// Raw completion proxy (method checked in handler)
	mux.HandleFunc("/api/openai", ai.Proxy)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.UserRepository, app.ProfileService),
	)
}
