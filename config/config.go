package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`

	// PortalBaseURL is the externally visible base URL of this gateway; the
	// OAuth provider redirects the popup back to it.
	PortalBaseURL string `mapstructure:"PORTAL_BASE_URL"`

	// Upstream backends the portal delegates to.
	AuthAPIURL       string `mapstructure:"AUTH_API_URL"`
	SchedulingAPIURL string `mapstructure:"SCHEDULING_API_URL"`
	PaymentAPIURL    string `mapstructure:"PAYMENT_API_URL"`
	DashboardAPIURL  string `mapstructure:"DASHBOARD_API_URL"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisAuthDB    int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Google auth handshake tuning.
	HandshakeTimeoutSec   int `mapstructure:"HANDSHAKE_TIMEOUT_SEC"`
	HandshakePollMs       int `mapstructure:"HANDSHAKE_POLL_MS"`
	HandshakeFreshnessSec int `mapstructure:"HANDSHAKE_FRESHNESS_SEC"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("PORTAL_BASE_URL", "http://localhost:8080")
	viper.SetDefault("AUTH_API_URL", "http://localhost:5000")
	viper.SetDefault("SCHEDULING_API_URL", "http://localhost:5000")
	viper.SetDefault("PAYMENT_API_URL", "http://localhost:5000")
	viper.SetDefault("DASHBOARD_API_URL", "http://localhost:5000")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("HANDSHAKE_TIMEOUT_SEC", 300)
	viper.SetDefault("HANDSHAKE_POLL_MS", 1000)
	viper.SetDefault("HANDSHAKE_FRESHNESS_SEC", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// HandshakeTimeout returns the overall deadline for a Google auth handshake.
func HandshakeTimeout() time.Duration {
	return time.Duration(AppConfig.HandshakeTimeoutSec) * time.Second
}

// HandshakePollInterval returns the cadence of the auth-result store poll.
func HandshakePollInterval() time.Duration {
	return time.Duration(AppConfig.HandshakePollMs) * time.Millisecond
}

// HandshakeFreshness returns the window within which a stored auth result is honored.
func HandshakeFreshness() time.Duration {
	return time.Duration(AppConfig.HandshakeFreshnessSec) * time.Second
}
