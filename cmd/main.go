package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expense_tracker/internal/config"
	"expense_tracker/internal/handlers"
	"expense_tracker/internal/logger"
	"expense_tracker/internal/repository"
	"expense_tracker/internal/repository/db"
	"expense_tracker/internal/server"
	"expense_tracker/internal/service"
)

// @title                       Expense Tracker API
// @version                     1.0
// @description                 Personal expense tracking with JWT access/refresh sessions.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// .env, then configs/config.yml + env
	if err := config.LoadDotEnv(""); err != nil {
		logger.Get(logger.Options{Level: logger.InfoLevel}).Fatalw("error reading .env", "err", err)
	}
	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		logger.Get(logger.Options{Level: logger.InfoLevel}).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(logger.Options{
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
		App:   cfg.App.Name,
		Env:   cfg.App.Env,
	})
	defer func() { _ = log.Sync() }()

	for _, w := range cfg.Warnings() {
		log.Warnw("insecure configuration", "detail", w)
	}

	// open DB
	conn, dialect, err := db.Open(cfg.DB)
	if err != nil {
		log.Fatalw("failed to init database", "driver", cfg.DB.Driver, "err", err)
	}
	defer closeDB(conn, log)
	log.Infow("database ready", "driver", dialect)

	// wire dependencies
	repos := repository.NewRepository(conn, dialect)
	tokens := service.NewTokenService(service.TokenConfig{
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		AccessTTL:     cfg.Auth.AccessTTL,
		RefreshTTL:    cfg.Auth.RefreshTTL,
		Issuer:        cfg.Auth.Issuer,
	})
	services := service.NewService(repos, tokens)
	apiHandler := handlers.NewHandler(services, log,
		handlers.WithInternalErrors(!cfg.IsProduction()),
		handlers.WithAllowedOrigins(cfg.Server.AllowedOrigins),
	)

	// start HTTP server
	srv := server.New(server.Options{
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Server.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, cfg.Server.ShutdownTimeout, log)
}

func closeDB(conn *sql.DB, log *logger.Logger) {
	if err := conn.Close(); err != nil {
		log.Errorw("failed to close database", "err", err)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, timeout time.Duration, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
