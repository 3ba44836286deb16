package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/shieldsupport/backend/internal/config"
	"github.com/shieldsupport/backend/internal/database"
	"github.com/shieldsupport/backend/internal/handler"
	"github.com/shieldsupport/backend/internal/logger"
	"github.com/shieldsupport/backend/internal/middleware"
	"github.com/shieldsupport/backend/internal/repository"
	"github.com/shieldsupport/backend/internal/router"
	"github.com/shieldsupport/backend/internal/server"
	"github.com/shieldsupport/backend/internal/service"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, loggerService, err := logger.New(cfg)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer loggerService.Shutdown(10 * time.Second)

	if err := database.Migrate(context.Background(), log, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to run database migrations")
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}

	if err := srv.StartJobServer(); err != nil {
		log.Fatal().Err(err).Msg("failed to start job server")
	}

	reconciler, err := service.NewReconciler(services.Booking, cfg.Calendar.ReconcileInterval, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize reconciler")
	}
	reconciler.Start()

	middlewares := middleware.NewMiddlewares(srv)
	handlers := handler.NewHandlers(srv, services, repos)

	e := router.New(handlers, middlewares)
	srv.SetupHTTPServer(e)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	reconciler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}

	log.Info().Msg("goodbye")
}
