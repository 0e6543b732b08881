package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mbodji/macrolog/internal/config"
	"github.com/mbodji/macrolog/internal/repository/mongodb"
	"github.com/mbodji/macrolog/internal/repository/sheets"
	"github.com/mbodji/macrolog/internal/scheduler"
	"github.com/mbodji/macrolog/internal/server/handlers"
	"github.com/mbodji/macrolog/internal/server/router"
	authsvc "github.com/mbodji/macrolog/internal/service/auth"
	dashboardsvc "github.com/mbodji/macrolog/internal/service/dashboard"
	diarysvc "github.com/mbodji/macrolog/internal/service/diary"
	productssvc "github.com/mbodji/macrolog/internal/service/products"
	userssvc "github.com/mbodji/macrolog/internal/service/users"
	workoutssvc "github.com/mbodji/macrolog/internal/service/workouts"
	"github.com/mbodji/macrolog/pkg/clients/openfoodfacts"
	"github.com/mbodji/macrolog/pkg/logger"
	"github.com/mbodji/macrolog/pkg/token"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx := context.Background()

	mongoClient, err := mongodb.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb client", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	userRepo, err := mongodb.NewUserRepository(ctx, mongoClient)
	if err != nil {
		baseLogger.Fatal("failed to init users repository", zap.Error(err))
	}
	logRepo, err := mongodb.NewDailyLogRepository(ctx, mongoClient)
	if err != nil {
		baseLogger.Fatal("failed to init daily logs repository", zap.Error(err))
	}
	workoutRepo, err := mongodb.NewWorkoutRepository(ctx, mongoClient)
	if err != nil {
		baseLogger.Fatal("failed to init workouts repository", zap.Error(err))
	}
	productRepo := mongodb.NewProductRepository(mongoClient)

	offClient := openfoodfacts.NewClient(cfg.OpenFoodFacts)
	tokenSvc := token.New(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authSvc := authsvc.NewService(userRepo, baseLogger.Named("svc.auth"))
	userSvc := userssvc.NewService(userRepo, baseLogger.Named("svc.users"))
	productSvc := productssvc.NewService(productRepo, offClient, baseLogger.Named("svc.products"))
	diarySvc := diarysvc.NewService(productRepo, logRepo, baseLogger.Named("svc.diary"))
	workoutSvc := workoutssvc.NewService(workoutRepo, baseLogger.Named("svc.workouts"))
	dashboardSvc := dashboardsvc.NewService(diarySvc, userRepo, workoutRepo, baseLogger.Named("svc.dashboard"))

	// Summary export is optional; the app runs fine without credentials.
	var exporter sheets.Exporter
	if cfg.Sheets.CredentialsPath != "" {
		exporter, err = sheets.NewGoogleSheetExporter(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("sheets summary export enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, summary export disabled")
	}

	engine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(authSvc, tokenSvc, baseLogger.Named("handlers.auth")),
		Diary:     handlers.NewDiaryHandler(diarySvc, baseLogger.Named("handlers.diary")),
		Products:  handlers.NewProductHandler(productSvc, baseLogger.Named("handlers.products")),
		Users:     handlers.NewUserHandler(userSvc, baseLogger.Named("handlers.users")),
		Workouts:  handlers.NewWorkoutHandler(workoutSvc, baseLogger.Named("handlers.workouts")),
		Dashboard: handlers.NewDashboardHandler(dashboardSvc, baseLogger.Named("handlers.dashboard")),
	}, tokenSvc, userRepo, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, logRepo, exporter, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-runCtx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
