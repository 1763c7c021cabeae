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
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"dialoguebuilder/internal/audio"
	"dialoguebuilder/internal/catalog"
	"dialoguebuilder/internal/config"
	"dialoguebuilder/internal/dialogue"
	apphttp "dialoguebuilder/internal/http"
	"dialoguebuilder/internal/storage"
	"dialoguebuilder/internal/tts"
	"dialoguebuilder/internal/ui"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if err := run(logger); err != nil {
		logger.Error("startup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	synth, lister, err := buildProvider(ctx, logger, cfg)
	if err != nil {
		return err
	}

	// The app is unusable without a voice list, so a failed fetch is fatal.
	cat, err := catalog.Load(ctx, logger, lister)
	if err != nil {
		return err
	}

	var (
		concat audio.Concatenator
		format dialogue.Format
	)
	switch cfg.AudioStrategy {
	case "wav":
		concat = audio.NewWAVConcatenator()
		format = dialogue.FormatPCM
	default:
		concat = audio.NewMP3Appender(cfg.MP3BitrateKbps)
		format = dialogue.FormatMP3
	}

	assembler := dialogue.NewAssembler(logger, synth, concat, format)
	sessions := storage.NewSessionStore()

	tmpl, err := ui.ParseTemplates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	handler := apphttp.NewServer(logger, cat, sessions, assembler, tmpl, ui.StaticFiles())

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("shutdown server: %w", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}

func buildProvider(ctx context.Context, logger *slog.Logger, cfg config.Config) (dialogue.Synthesizer, catalog.VoiceLister, error) {
	if cfg.TTSProvider == "stub" {
		logger.Warn("using stub synthesis provider")
		stub := tts.NewStubClient()
		return stub, stub, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("load aws config: %w", err)
	}

	client := tts.NewPollyClient(logger, awsCfg)
	return client, client, nil
}
