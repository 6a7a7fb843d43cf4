// Package main is the entry point for the Filebridge server.
// Filebridge is a small multi-tenant file exchange service with
// verified accounts, role-based access and opaque download links.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stratovia/filebridge/internal/config"
	"github.com/stratovia/filebridge/internal/handler"
	"github.com/stratovia/filebridge/internal/notifier"
	"github.com/stratovia/filebridge/internal/repository/memory"
	"github.com/stratovia/filebridge/internal/service"
	"github.com/stratovia/filebridge/internal/storage"
	"github.com/stratovia/filebridge/internal/storage/filesystem"
	"github.com/stratovia/filebridge/internal/storage/s3"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	logger := newLogger(cfg.Logging)
	log.Logger = logger

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("Starting Filebridge Server")

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blobs, err := newBlobStore(ctx, cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("initializing blob store: %w", err)
	}

	accountRepo := memory.NewAccountStore()
	tokenRepo := memory.NewVerificationTokenStore()
	sessionRepo := memory.NewSessionStore()

	accounts := service.NewAccountService(accountRepo, logger)
	verification := service.NewVerificationService(accountRepo, tokenRepo, newNotifier(cfg.Mail, logger), logger)
	sessions := service.NewSessionService(accounts, sessionRepo, logger)
	files := service.NewFileService(blobs, logger)

	exchange := handler.NewExchangeHandler(handler.ExchangeConfig{
		Accounts:      accounts,
		Verification:  verification,
		Sessions:      sessions,
		Files:         files,
		MaxUploadSize: cfg.Server.MaxUploadSize,
		Logger:        logger,
	})

	router := handler.NewRouter(handler.RouterConfig{
		Handler:  exchange,
		Sessions: sessions,
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Metrics.Port),
			Handler: mux,
		}
		go func() {
			logger.Info().Str("addr", metricsSrv.Addr).Str("path", cfg.Metrics.Path).Msg("Metrics server listening")
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Metrics server shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
	return nil
}

// newLogger builds the root logger from configuration.
func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// newBlobStore selects the blob storage backend from configuration.
func newBlobStore(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (storage.BlobStore, error) {
	switch cfg.Backend {
	case "s3":
		return s3.NewStore(ctx, s3.Config{
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UsePathStyle:    cfg.S3.UsePathStyle,
		}, logger)
	default:
		return filesystem.NewStore(cfg.DataDir, logger)
	}
}

// newNotifier selects the verification mail delivery driver.
func newNotifier(cfg config.MailConfig, logger zerolog.Logger) notifier.Notifier {
	if cfg.Driver == "smtp" {
		return notifier.NewSMTPNotifier(notifier.SMTPConfig{
			Host:       cfg.Host,
			Port:       cfg.Port,
			Username:   cfg.Username,
			Password:   cfg.Password,
			SenderName: cfg.SenderName,
			Timeout:    cfg.Timeout,
		}, logger)
	}
	return notifier.NewLogNotifier(logger)
}
