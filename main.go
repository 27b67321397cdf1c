package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"toyblox/internal/app"
	"toyblox/internal/config"
	"toyblox/internal/database"
	"toyblox/internal/notifications"
	"toyblox/internal/outbox"
	"toyblox/internal/services"
	"toyblox/pkg/cache"
	"toyblox/pkg/logger"
	"toyblox/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()
	log := logger.New("toyblox", cfg.LogLevel)

	// --- Database ---
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stats cache (optional) ---
	var statsCache services.StatsCache
	if cfg.RedisAddr != "" {
		rc := cache.New(cfg.RedisAddr)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rc.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, stats cache disabled")
			_ = rc.Close()
		} else {
			statsCache = rc
			defer rc.Close()
			log.Info().Str("addr", cfg.RedisAddr).Msg("stats cache enabled")
		}
	}

	// --- Mail transport ---
	var mailer notifications.Mailer = notifications.LogMailer{Log: log}
	if cfg.SMTPHost != "" {
		mailer = notifications.NewSMTPMailer(notifications.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.MailFrom,
		})
	}

	application := app.New(app.Options{
		Config: cfg,
		DB:     db,
		Log:    log,
		Cache:  statsCache,
		Mailer: mailer,
	})

	// --- Notification relay ---
	var publisher outbox.Publisher = outbox.InlinePublisher{Handler: application.Dispatcher}
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		publisher = outbox.BrokerPublisher{Client: mqClient}
		if err := mqClient.Consume(outbox.DeliveryHandler(ctx, application.Dispatcher)); err != nil {
			log.Fatal().Err(err).Msg("failed to start notification consumer")
		}
	}

	runner := &outbox.Runner{
		Log:          log.With().Str("component", "outbox").Logger(),
		Store:        application.Outbox,
		Publisher:    publisher,
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxAttempts:  cfg.OutboxMaxAttempts,
		BackoffMax:   cfg.OutboxBackoffMax,
	}
	runnerDone := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(runnerDone)
	}()

	// --- Start HTTP Server ---
	go func() {
		log.Info().Str("port", cfg.AppPort).Msg("starting server")
		if err := application.HTTP.Listen(cfg.AppPort); err != nil {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	if err := application.HTTP.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("error during fiber shutdown")
	}
	<-runnerDone
	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			log.Error().Err(err).Msg("error closing RabbitMQ client")
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server gracefully stopped")
}
