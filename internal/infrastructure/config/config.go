package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/faturo-inc/faturo/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	Email     sharedConfig.EmailConfig     `mapstructure:"email"`
	Gateway   sharedConfig.GatewayConfig   `mapstructure:"gateway"`
	Directory sharedConfig.DirectoryConfig `mapstructure:"directory"`
	Billing   sharedConfig.BillingConfig   `mapstructure:"billing"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("FATURO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.timezone", "America/Sao_Paulo")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "faturo_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Email defaults
	viper.SetDefault("email.smtp_host", "localhost")
	viper.SetDefault("email.smtp_port", 587)
	viper.SetDefault("email.from_address", "cobranca@faturo.com.br")
	viper.SetDefault("email.from_name", "Faturo")

	// Gateway defaults
	viper.SetDefault("gateway.base_url", "")
	viper.SetDefault("gateway.token_url", "")
	viper.SetDefault("gateway.client_id", "")
	viper.SetDefault("gateway.client_secret", "")
	viper.SetDefault("gateway.timeout_seconds", 15)

	// Directory defaults
	viper.SetDefault("directory.base_url", "")
	viper.SetDefault("directory.api_key", "")
	viper.SetDefault("directory.timeout_seconds", 10)

	// Billing defaults
	viper.SetDefault("billing.charge_interval_minutes", 60)
	viper.SetDefault("billing.page_size", 50)
	viper.SetDefault("billing.queue_key", "faturo:billing:charges")
	viper.SetDefault("billing.max_delivery_attempts", 3)
	viper.SetDefault("billing.lease_ttl_seconds", 300)
}
