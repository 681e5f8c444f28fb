package commands

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

	"github.com/spf13/cobra"

	"github.com/focustache/focustache/internal/api"
	"github.com/focustache/focustache/internal/config"
	"github.com/focustache/focustache/internal/db"
	"github.com/focustache/focustache/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the FocusTâche API server",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		cfg := config.Get()
		logger := newLogger(cfg.Logging.Level)

		engine := session.NewEngine(db.DB, nil, logger)
		server := api.NewServer(db.DB, engine, logger, cfg.Auth.AllowedEmailDomains)

		httpServer := &http.Server{
			Addr:    cfg.Server.ListenAddr,
			Handler: server.Handler(),
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			logger.Info("listening", "addr", cfg.Server.ListenAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server failed", "error", err)
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
		fmt.Println("👋 Server stopped")
	}),
}

// newLogger builds the server's slog logger at the configured level
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
