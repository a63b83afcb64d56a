package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AuroraBackcountry/aurora-tts-service/internal/config"
	"github.com/AuroraBackcountry/aurora-tts-service/internal/elevenlabs"
	"github.com/AuroraBackcountry/aurora-tts-service/internal/env"
	"github.com/AuroraBackcountry/aurora-tts-service/internal/envvar"
	"github.com/AuroraBackcountry/aurora-tts-service/internal/logger"
	httpserver "github.com/AuroraBackcountry/aurora-tts-service/internal/server/http"
	"github.com/AuroraBackcountry/aurora-tts-service/internal/service"
)

var version = "0.1.0-dev"

func main() {
	var (
		flagAddr    = flag.String("addr", "", "HTTP listen address (overrides config)")
		flagConfig  = flag.String("config", "", "Path to config file (optional)")
		flagVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *flagVersion {
		fmt.Println(version)
		return
	}

	environment := env.FromEnv()

	logOpts := []logger.Option{}
	if logFile := os.Getenv(envvar.LogFile); logFile != "" {
		logOpts = append(logOpts, logger.WithLogToFile(true), logger.WithLogFile(logFile))
	}
	slog.SetDefault(logger.New(environment, logOpts...))

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}

	if cfg.Upstream.APIKey == "" {
		slog.Warn("Upstream API key is not set; synthesis calls will be rejected upstream", "envvar", envvar.APIKey)
	}
	if cfg.Upstream.VoiceID == "" {
		slog.Warn("No default voice configured; requests without an explicit voice will fail", "envvar", envvar.VoiceID)
	}

	client := elevenlabs.NewClient(elevenlabs.Config{
		APIKey:         cfg.Upstream.APIKey,
		BaseURL:        cfg.Upstream.BaseURL,
		MaxConns:       cfg.Upstream.MaxConns,
		KeepAlive:      cfg.Upstream.KeepAlive(),
		RequestTimeout: cfg.Upstream.RequestTimeout(),
	})
	defer client.Close()

	svc := service.NewTTS(client, cfg.Upstream.VoiceID, cfg.Upstream.ModelID)
	srv := httpserver.New(cfg, svc, version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	slog.Info("Server started",
		"addr", cfg.Server.Addr,
		"environment", string(environment),
		"upstream", cfg.Upstream.BaseURL,
		"auth", cfg.Auth.SharedToken != "",
	)

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		stop()
		slog.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}

	slog.Info("Shutdown complete")
}
