package main

import (
	"log/slog"
	"net/http"

	"github.com/golfimprover/golfimprover/internal/app"
	"github.com/golfimprover/golfimprover/internal/config"
	"github.com/golfimprover/golfimprover/internal/logger"
	"github.com/golfimprover/golfimprover/internal/routes"
	"github.com/golfimprover/golfimprover/internal/scheduler"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	if cfg.RecapScheduleEnabled {
		sched, err := scheduler.New(app.RecapJobService, cfg.RecapScheduleTZ)
		if err != nil {
			slog.Error("failed to initialize scheduler", "error", err, "tz", cfg.RecapScheduleTZ)
			panic(err)
		}
		sched.Start()
		defer sched.Stop()
	}

	handler := routes.SetupRoutes(app)
	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "url", "http://localhost:"+cfg.Port)

	err = http.ListenAndServe(":"+cfg.Port, handler)
	if err != nil {
		slog.Error("server failed", "error", err)
		panic(err)
	}
}
