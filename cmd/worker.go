package cmd

import (
	"errors"
	"os/signal"
	"syscall"

	"dummy-ticket/internal/notify"
	"dummy-ticket/pkg/queue"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func workerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Deliver queued booking notifications over WhatsApp",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			config, logger, err := bootstrap("worker")
			if err != nil {
				return err
			}
			defer logger.Sync()

			if !config.Kafka.Enabled() {
				return errors.New("worker needs KAFKA_BROKERS and KAFKA_BOOKING_TOPIC")
			}

			whatsapp := notify.NewWhatsAppClient(config.WhatsApp)
			if !whatsapp.Configured() {
				return errors.New("worker needs WHATSAPP_PHONE_NUMBER_ID and WHATSAPP_ACCESS_TOKEN")
			}

			consumer := queue.NewConsumer(config.Kafka.Brokers, config.Kafka.GroupID, config.Kafka.BookingTopic, logger)
			defer consumer.Close()

			logger.Info("Notification worker started",
				zap.Strings("brokers", config.Kafka.Brokers),
				zap.String("topic", config.Kafka.BookingTopic),
				zap.String("group_id", config.Kafka.GroupID),
			)

			if err := consumer.Consume(ctx, notify.Handler(whatsapp, logger)); err != nil {
				return err
			}

			logger.Info("Notification worker stopped")
			return nil
		},
	}
}
