// README: Entry point; loads config, wires collaborators and services, serves HTTP until SIGINT/SIGTERM.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"atlas/internal/config"
	httptransport "atlas/internal/http"
	"atlas/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs before exit.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		logger.NewStructured("info", "console").Error("config load failed", map[string]interface{}{"error": err.Error()})
		return 1
	}

	zapLog := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = zapLog.Sync() }()
	log := logger.NewZapAdapter(zapLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := buildApp(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("startup failed", nil)
		return 1
	}
	defer app.Close()

	gin.SetMode(cfg.HTTP.Mode)
	server := httptransport.NewServer(cfg.HTTP.Addr, httptransport.NewRouter(app.deps), log)
	return serve(ctx, server, log)
}

type lifecycle interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// serve runs server until it fails or ctx is cancelled.
func serve(ctx context.Context, server lifecycle, log logger.Logger) int {
	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("http server failed", nil)
			return 1
		}
		return 0
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed", nil)
			return 1
		}
		return 0
	}
}
