package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"fleet-service/internal/auth"
	"fleet-service/internal/config"
	"fleet-service/internal/db"
	httphandler "fleet-service/internal/http"
	"fleet-service/internal/http/middleware"
	"fleet-service/internal/logger"
	"fleet-service/internal/repository"
	"fleet-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	accountRepo := repository.NewAccountRepository(database)
	tripRepo := repository.NewTripRepository(database)
	refRepo := repository.NewRefRepository(database)

	tokenIssuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	authService := service.NewAuthService(accountRepo, tokenIssuer, cfg.Demo.Password)
	tripService := service.NewTripService(tripRepo)
	analyticsService := service.NewAnalyticsService(tripRepo)
	importService := service.NewImportService(tripService)
	refService := service.NewRefService(refRepo)

	handler := httphandler.NewHandler(authService, tripService, analyticsService, importService, refService, log)

	healthCheck := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return db.HealthCheck(ctx, database)
	}

	router := httphandler.NewRouter(handler, middleware.Auth(tokenParser), cfg.Environment, healthCheck)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting fleet service")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
