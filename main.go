package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AkshayGangurde12/farm-management-system/internal/config"
	"github.com/AkshayGangurde12/farm-management-system/internal/db"
	"github.com/AkshayGangurde12/farm-management-system/internal/logger"
	"github.com/AkshayGangurde12/farm-management-system/internal/router"
	"github.com/AkshayGangurde12/farm-management-system/internal/services"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger(cfg.LogLevel, cfg.LogFormat)
	log.Info().Msg("Starting farm marketplace")

	database := db.InitDB()
	db.RunMigrations(database, log)

	market := services.NewMarketplace(database, services.MarketplaceOptions{
		SessionTTL: cfg.SessionTTL,
		JWTSecret:  cfg.JWTSecret,
		JWTTTL:     cfg.JWTTTL,
	}, log)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	market.Sessions.StartCleanup(ctx, cfg.SessionCleanupInterval)

	handler, err := router.SetupRouter(cfg, market, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up router")
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Msgf("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutdown signal received")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
