package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"dummy-ticket/internal/adaptor"
	"dummy-ticket/internal/data/repository"
	"dummy-ticket/internal/document"
	"dummy-ticket/internal/notify"
	"dummy-ticket/internal/payment"
	"dummy-ticket/internal/usecase"
	"dummy-ticket/internal/wire"
	"dummy-ticket/pkg/cache"
	"dummy-ticket/pkg/database"
	"dummy-ticket/pkg/queue"
	"dummy-ticket/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	config, logger, err := bootstrap("api")
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()
	logger.Info("Database connected successfully")

	redisClient := cache.NewRedisClient(config.Redis)
	defer redisClient.Close()
	events := cache.NewEventStore(redisClient, config.Redis.EventTTL)
	if err := events.Ping(ctx); err != nil {
		logger.Warn("Redis unavailable, webhook deduplication degraded", zap.Error(err))
	}

	deps := usecase.Dependencies{
		Gateway:  payment.NewStripeGateway(config.Stripe, nil, logger),
		Deduper:  events,
		Renderer: document.NewRenderer(config.App.Name),
	}

	switch {
	case config.Kafka.Enabled():
		producer := queue.NewProducer(config.Kafka.Brokers, config.Kafka.BookingTopic, logger)
		defer producer.Close()
		deps.Notifier = notify.NewQueueNotifier(producer, logger)
		logger.Info("Booking notifications go through Kafka", zap.String("topic", config.Kafka.BookingTopic))
	default:
		whatsapp := notify.NewWhatsAppClient(config.WhatsApp)
		if whatsapp.Configured() {
			deps.Notifier = notify.NewDirectNotifier(whatsapp, logger)
			logger.Info("Booking notifications sent inline")
		} else {
			logger.Warn("WhatsApp not configured, booking notifications disabled")
		}
	}

	repos := repository.NewRepository(db, logger)
	checks := map[string]adaptor.Pinger{
		"postgres": db,
		"redis":    events,
	}
	app := wire.Wiring(repos, deps, checks, config, logger)

	return APIServer(ctx, app.Router, config.App, logger)
}

// APIServer serves handler until ctx is cancelled, then drains in-flight requests.
func APIServer(ctx context.Context, handler http.Handler, config utils.AppConfig, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      config.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
