package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/medrec/records-api/internal/config"
	"github.com/medrec/records-api/internal/handler"
	authHandler "github.com/medrec/records-api/internal/handler/auth"
	prescriptionHandler "github.com/medrec/records-api/internal/handler/prescription"
	userHandler "github.com/medrec/records-api/internal/handler/user"
	"github.com/medrec/records-api/internal/middleware"
	"github.com/medrec/records-api/internal/repository/mongodb"
	"github.com/medrec/records-api/internal/router"
	authService "github.com/medrec/records-api/internal/service/auth"
	prescriptionService "github.com/medrec/records-api/internal/service/prescription"
	"github.com/medrec/records-api/pkg/auth"
	"github.com/medrec/records-api/pkg/logger"
	"github.com/medrec/records-api/pkg/metrics"
	"github.com/medrec/records-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	// The Mongo client is constructed here and injected into the
	// repositories; its lifecycle is tied to the process.
	db, client, err := mongodb.NewDB(cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	m := metrics.NewMetrics("records_api")

	// Initialize repositories
	userRepo := mongodb.NewUserRepository(db, m)
	prescriptionRepo := mongodb.NewPrescriptionRepository(db, m)

	// Initialize services
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret)
	authSvc := authService.NewService(userRepo, hasher, jwtSvc)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo)

	// Initialize middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	h := handler.NewHandler(func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	})
	authH := authHandler.NewHandler(authSvc)
	userH := userHandler.NewHandler(authSvc)
	prescriptionH := prescriptionHandler.NewHandler(prescriptionSvc)

	// Setup router
	r := router.NewRouter(authMiddleware, authH, userH, prescriptionH, h, m, router.Config{
		RateLimit:  rate.Limit(cfg.Server.RateLimitRPS),
		RateBurst:  cfg.Server.RateLimitBurst,
		Timeout:    time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		CORSConfig: corsConfig(cfg),
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := client.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("failed to disconnect from database")
	}

	log.Info().Msg("server exited properly")
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	}
	return corsCfg
}
