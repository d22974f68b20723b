package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/godutch/internal/config"
	"github.com/mmynk/godutch/internal/ocr"
	"github.com/mmynk/godutch/internal/server"
	"github.com/mmynk/godutch/internal/service"
	"github.com/mmynk/godutch/internal/storage/sqlite"
	"github.com/mmynk/godutch/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	engine := ocr.NewHTTPEngine(cfg.OCRURL, time.Duration(cfg.OCRTimeoutMS)*time.Millisecond)
	svc := service.NewReceiptService(store, engine, cfg.MatchCutoff)

	// h2c allows HTTP/2 without TLS behind a terminating proxy.
	handler := h2c.NewHandler(server.New(svc).Handler(), &http2.Server{})
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server starting", "address", cfg.Addr, "ocr_url", cfg.OCRURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
