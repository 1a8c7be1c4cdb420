package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/campuspulse/console/internal/config"
	"github.com/campuspulse/console/internal/feedback"
	httpapi "github.com/campuspulse/console/internal/http"
	"github.com/campuspulse/console/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "feedback-console").Logger()

	var client feedback.Client
	if cfg.FeedbackAPIURL == "" {
		client = feedback.NewMockClient(cfg.MockSeedCount)
		logger.Info().Msg("using mock feedback service")
	} else {
		client = &feedback.HTTPClient{
			BaseURL: cfg.FeedbackAPIURL,
			Client:  &http.Client{Timeout: cfg.RequestTimeout},
		}
	}

	session := service.NewSession()
	board := service.NewBoard()
	poller := &service.Poller{
		API:      client,
		Session:  session,
		Interval: cfg.PollInterval,
		Logger:   logger,
	}
	gateway := &service.Gateway{
		API:       client,
		Poller:    poller,
		Validator: validator.New(),
		Logger:    logger,
	}

	ctx := context.Background()
	poller.Start(ctx)

	router := httpapi.Router(cfg, session, board, poller, gateway, logger)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("console started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	poller.Stop()
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("console stopped")
}
