package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	Timezone       string   `mapstructure:"timezone"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}

// GatewayConfig holds the payment gateway client settings. The gateway
// authenticates with a client-credentials OAuth flow against TokenURL.
type GatewayConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TokenURL       string `mapstructure:"token_url"`
	ClientID       string `mapstructure:"client_id"`
	ClientSecret   string `mapstructure:"client_secret"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (g *GatewayConfig) Timeout() time.Duration {
	if g.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// DirectoryConfig points at the subscriber directory service that owns the
// user and tenant records.
type DirectoryConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (d *DirectoryConfig) Timeout() time.Duration {
	if d.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// BillingConfig controls the charge dispatch job and the charge worker.
type BillingConfig struct {
	ChargeIntervalMinutes int    `mapstructure:"charge_interval_minutes"`
	PageSize              int    `mapstructure:"page_size"`
	QueueKey              string `mapstructure:"queue_key"`
	MaxDeliveryAttempts   int    `mapstructure:"max_delivery_attempts"`
	LeaseTTLSeconds       int    `mapstructure:"lease_ttl_seconds"`
}

func (b *BillingConfig) ChargeInterval() time.Duration {
	if b.ChargeIntervalMinutes <= 0 {
		return 60 * time.Minute
	}
	return time.Duration(b.ChargeIntervalMinutes) * time.Minute
}

func (b *BillingConfig) LeaseTTL() time.Duration {
	if b.LeaseTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(b.LeaseTTLSeconds) * time.Second
}
