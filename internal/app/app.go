package app

import (
	"fmt"

	"github.com/golfimprover/golfimprover/internal/config"
	"github.com/golfimprover/golfimprover/internal/db"
	"github.com/golfimprover/golfimprover/internal/notify"
	"github.com/golfimprover/golfimprover/internal/repository"
	"github.com/golfimprover/golfimprover/internal/service"
	"github.com/golfimprover/golfimprover/internal/storage"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	UserRepository      repository.UserRepository
	AuthService         *service.AuthService
	ProfileService      *service.ProfileService
	EmailService        *service.EmailService
	GoalService         *service.GoalService
	PlanService         *service.PracticePlanService
	LogService          *service.PracticeLogService
	StatsService        *service.StatsService
	RecapService        *service.RecapService
	RecapJobService     *service.RecapJobService
	NotificationService *service.NotificationService
	FeedbackService     *service.FeedbackService
	AIService           *service.AIService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	planRepository := repository.NewPracticePlanRepository(database)
	logRepository := repository.NewPracticeLogRepository(database)
	recapRepository := repository.NewRecapRepository(database)
	notificationRepository := repository.NewNotificationRepository(database)
	feedbackRepository := repository.NewFeedbackRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(
		userRepository,
		profileRepository,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
	)
	profileService := service.NewProfileService(profileRepository)
	goalService := service.NewGoalService(goalRepository)
	planService := service.NewPracticePlanService(planRepository)
	logService := service.NewPracticeLogService(logRepository)
	statsService := service.NewStatsService(logRepository, goalRepository, profileRepository)
	recapService := service.NewRecapService(recapRepository, logRepository, service.NewKeywordClassifier())
	notificationService := service.NewNotificationService(notificationRepository, notify.NewHub())
	feedbackService := service.NewFeedbackService(feedbackRepository, fileStorage)
	aiService := service.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	recapJobService := service.NewRecapJobService(
		userRepository,
		profileRepository,
		recapService,
		notificationService,
		emailService,
		cfg.RecapWorkerLimit,
	)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		UserRepository:      userRepository,
		AuthService:         authService,
		ProfileService:      profileService,
		EmailService:        emailService,
		GoalService:         goalService,
		PlanService:         planService,
		LogService:          logService,
		StatsService:        statsService,
		RecapService:        recapService,
		RecapJobService:     recapJobService,
		NotificationService: notificationService,
		FeedbackService:     feedbackService,
		AIService:           aiService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
