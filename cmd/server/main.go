package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/SheetImport/internal/config"
	"github.com/JonMunkholm/SheetImport/internal/core"
	"github.com/JonMunkholm/SheetImport/internal/logging"
	_ "github.com/JonMunkholm/SheetImport/internal/schema" // Register schema templates
	"github.com/JonMunkholm/SheetImport/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"auto_map_distance", cfg.Import.AutoMapDistance,
		"session_ttl", cfg.Session.TTL,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Log registered schema templates
	templates := core.Templates()
	slog.Info("templates registered", "count", len(templates))
	for _, tpl := range templates {
		slog.Debug("template", "key", tpl.Key, "group", tpl.Group, "fields", len(tpl.Fields))
	}

	manager := core.NewManager(cfg.Session.TTL, cfg.Session.MaxActive)
	server := web.NewServer(cfg, manager)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if active := manager.Active(); active > 0 {
			slog.Info("discarding active sessions", "active", active)
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
