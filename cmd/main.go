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

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/valubaby/valu-store/internal/auth"
	"github.com/valubaby/valu-store/internal/logging"
	"github.com/valubaby/valu-store/internal/middleware"
	"github.com/valubaby/valu-store/service"
	"github.com/valubaby/valu-store/storage"
)

func main() {
	logging.Setup()

	// Load configuration
	config, err := service.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize database
	db, err := storage.New(config.DBPath)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit("1M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{config.FrontendURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept, auth.HeaderName},
	}))
	e.Use(middleware.SecurityHeaders())

	// Initialize service and register routes
	svc := service.New(db, config)
	svc.RegisterRoutes(e)
	svc.Start(ctx)

	addr := fmt.Sprintf(":%s", config.Port)
	go func() {
		slog.Info("VALÚ Baby API starting",
			"url", fmt.Sprintf("http://localhost:%s/api", config.Port),
			"environment", config.Environment,
			"database", config.DBPath,
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down", "timeout", config.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}

	// In-flight requests are done; flush queued notifications.
	svc.Shutdown()
	slog.Info("server stopped")
}
