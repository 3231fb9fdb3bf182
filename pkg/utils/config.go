package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Stripe   StripeConfig
	WhatsApp WhatsAppConfig
	Payment  PaymentConfig
	Session  SessionConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	AllowedOrigins []string
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	EventTTL time.Duration
}

type KafkaConfig struct {
	Brokers      []string
	BookingTopic string
	GroupID      string
}

// Enabled reports whether notifications go through Kafka instead of being sent inline.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.BookingTopic != ""
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

type WhatsAppConfig struct {
	BaseURL       string
	PhoneNumberID string
	AccessToken   string
}

type PaymentConfig struct {
	Currency         string
	ReconcileTimeout time.Duration
}

type SessionConfig struct {
	ExpiryHours int
}

// LoadConfig reads the given .env file (if present) and overlays environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("APP_NAME", "dummy-ticket")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("WEBHOOK_EVENT_TTL", "72h")
	v.SetDefault("KAFKA_BOOKING_TOPIC", "booking-events")
	v.SetDefault("KAFKA_GROUP_ID", "dummy-ticket-notifier")
	v.SetDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com/v19.0")
	v.SetDefault("PAYMENT_CURRENCY", "USD")
	v.SetDefault("PAYMENT_RECONCILE_TIMEOUT", "10s")
	v.SetDefault("SESSION_EXPIRY_HOURS", 24)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Name:           v.GetString("APP_NAME"),
			Port:           v.GetString("PORT"),
			Debug:          v.GetBool("DEBUG"),
			LogPath:        v.GetString("LOG_PATH"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
			RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			EventTTL: v.GetDuration("WEBHOOK_EVENT_TTL"),
		},
		Kafka: KafkaConfig{
			Brokers:      splitList(v.GetString("KAFKA_BROKERS")),
			BookingTopic: v.GetString("KAFKA_BOOKING_TOPIC"),
			GroupID:      v.GetString("KAFKA_GROUP_ID"),
		},
		Stripe: StripeConfig{
			SecretKey:     v.GetString("STRIPE_SECRET_KEY"),
			WebhookSecret: v.GetString("STRIPE_WEBHOOK_SECRET"),
			SuccessURL:    v.GetString("STRIPE_SUCCESS_URL"),
			CancelURL:     v.GetString("STRIPE_CANCEL_URL"),
		},
		WhatsApp: WhatsAppConfig{
			BaseURL:       v.GetString("WHATSAPP_BASE_URL"),
			PhoneNumberID: v.GetString("WHATSAPP_PHONE_NUMBER_ID"),
			AccessToken:   v.GetString("WHATSAPP_ACCESS_TOKEN"),
		},
		Payment: PaymentConfig{
			Currency:         strings.ToUpper(v.GetString("PAYMENT_CURRENCY")),
			ReconcileTimeout: v.GetDuration("PAYMENT_RECONCILE_TIMEOUT"),
		},
		Session: SessionConfig{
			ExpiryHours: v.GetInt("SESSION_EXPIRY_HOURS"),
		},
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
