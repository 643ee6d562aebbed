package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AndresMate/amateur-league-system/config"
	"github.com/AndresMate/amateur-league-system/db"
	"github.com/AndresMate/amateur-league-system/fixture"
	"github.com/AndresMate/amateur-league-system/handlers"
	"github.com/AndresMate/amateur-league-system/repositories"
	api "github.com/AndresMate/amateur-league-system/routes"
	"github.com/AndresMate/amateur-league-system/services"
	"github.com/AndresMate/amateur-league-system/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Crest upload is optional: without R2 credentials the endpoint reports
	// the feature as unavailable instead of failing startup.
	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("crest storage disabled: R2 credentials not configured")
	}

	wsHub := fixture.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	availabilityRepo := repositories.NewPostgresAvailabilityRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	resultRepo := repositories.NewPostgresResultRepository(dbConn)
	standingRepo := repositories.NewPostgresStandingRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo)
	teamService := services.NewTeamService(teamRepo, availabilityRepo, tournamentRepo, uploader)
	standingService := services.NewStandingService(dbConn, tournamentRepo, matchRepo, resultRepo, standingRepo, logger)
	fixtureService := services.NewFixtureService(
		dbConn,
		tournamentRepo,
		teamRepo,
		availabilityRepo,
		matchRepo,
		resultRepo,
		standingRepo,
		services.FixtureServiceConfig{
			SlotHorizonDays:  cfg.SlotHorizonDays,
			RoundSpacingDays: cfg.RoundSpacingDays,
		},
		logger,
	)
	resultService := services.NewResultService(dbConn, matchRepo, resultRepo, standingRepo, standingService, wsHub, logger)
	logger.Info("services initialized")

	jwtSecret := []byte(cfg.JWTSecretKey)
	authHandler := handlers.NewAuthHandler(authService, jwtSecret)
	teamHandler := handlers.NewTeamHandler(teamService)
	fixtureHandler := handlers.NewFixtureHandler(fixtureService)
	matchHandler := handlers.NewMatchHandler(fixtureService, resultService)
	standingHandler := handlers.NewStandingHandler(standingService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		jwtSecret,
		authHandler,
		teamHandler,
		fixtureHandler,
		matchHandler,
		standingHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
