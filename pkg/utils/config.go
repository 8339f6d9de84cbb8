package utils

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Booking  BookingConfig
	Admin    AdminConfig
	Email    EmailConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr          string
	Password      string
	DB            int
	TrackingLimit int64
	TrackingTTL   time.Duration
}

type SessionConfig struct {
	ExpiryHours int
	CleanupCron string
}

// BookingConfig holds pricing and reference policy.
type BookingConfig struct {
	SecurityRate      int64
	ReferenceAttempts int
}

// AdminConfig seeds the first back-office account.
type AdminConfig struct {
	Email    string
	Name     string
	Password string
}

type EmailConfig struct {
	SendGridAPIKey string
	From           string
	FromName       string
	NotifyTo       string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "paramount-autos")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*") // space separated
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("TRACKING_RATE_LIMIT", 30)
	viper.SetDefault("TRACKING_RATE_WINDOW", "1m")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("SESSION_CLEANUP_CRON", "0 0 3 * * *")
	viper.SetDefault("SECURITY_RATE_PER_DAY", 15000)
	viper.SetDefault("REFERENCE_ATTEMPTS", 3)
	viper.SetDefault("ADMIN_EMAIL", "admin@paramountautos.com")
	viper.SetDefault("ADMIN_NAME", "System Administrator")
	viper.SetDefault("EMAIL_FROM_NAME", "Paramount Autos")

	if err := viper.ReadInConfig(); err != nil {
		// env-only deployments have no .env file
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Port:           viper.GetString("PORT"),
			Debug:          viper.GetBool("DEBUG"),
			LogPath:        viper.GetString("LOG_PATH"),
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:          viper.GetString("REDIS_ADDR"),
			Password:      viper.GetString("REDIS_PASSWORD"),
			DB:            viper.GetInt("REDIS_DB"),
			TrackingLimit: viper.GetInt64("TRACKING_RATE_LIMIT"),
			TrackingTTL:   viper.GetDuration("TRACKING_RATE_WINDOW"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
			CleanupCron: viper.GetString("SESSION_CLEANUP_CRON"),
		},
		Booking: BookingConfig{
			SecurityRate:      viper.GetInt64("SECURITY_RATE_PER_DAY"),
			ReferenceAttempts: viper.GetInt("REFERENCE_ATTEMPTS"),
		},
		Admin: AdminConfig{
			Email:    viper.GetString("ADMIN_EMAIL"),
			Name:     viper.GetString("ADMIN_NAME"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
		Email: EmailConfig{
			SendGridAPIKey: viper.GetString("SENDGRID_API_KEY"),
			From:           viper.GetString("EMAIL_FROM"),
			FromName:       viper.GetString("EMAIL_FROM_NAME"),
			NotifyTo:       viper.GetString("ADMIN_NOTIFY_EMAIL"),
		},
	}

	return config, nil
}
