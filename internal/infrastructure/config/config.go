package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "stepsign/internal/shared/config"
)

type Config struct {
	Server   sharedConfig.ServerConfig   `mapstructure:"server"`
	Database sharedConfig.DatabaseConfig `mapstructure:"database"`
	Logger   sharedConfig.LoggerConfig   `mapstructure:"logger"`
	Reward   sharedConfig.RewardConfig   `mapstructure:"reward"`
	Ledger   sharedConfig.LedgerConfig   `mapstructure:"ledger"`
	Redis    sharedConfig.RedisConfig    `mapstructure:"redis"`
	Alerts   sharedConfig.AlertsConfig   `mapstructure:"alerts"`
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

	viper.SetEnvPrefix("STEPSIGN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine, defaults plus env vars carry a dev setup.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
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

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.timezone", "Local")

	// Database defaults
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "./stepsign.db")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "stepsign_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Reward defaults
	viper.SetDefault("reward.min_steps", 10)
	viper.SetDefault("reward.max_claims_per_day", 3)
	viper.SetDefault("reward.per_step", 1000000)

	// Ledger defaults
	viper.SetDefault("ledger.network", "testnet")
	viper.SetDefault("ledger.rpc_url", "")
	viper.SetDefault("ledger.package_id", "")
	viper.SetDefault("ledger.treasury_cap_id", "")
	viper.SetDefault("ledger.admin_private_key", "")
	viper.SetDefault("ledger.request_timeout_seconds", 15)

	// Redis defaults (disabled unless configured)
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.claims_per_minute", 10)

	// Alert defaults (disabled unless configured)
	viper.SetDefault("alerts.enabled", false)
	viper.SetDefault("alerts.smtp_port", 587)
}
