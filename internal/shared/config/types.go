package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Mode     string `mapstructure:"mode"`
	Timezone string `mapstructure:"timezone"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// RewardConfig holds the claim issuance rules. Loaded once at startup and
// injected; business logic never reads the environment directly.
type RewardConfig struct {
	MinSteps        int   `mapstructure:"min_steps"`
	MaxClaimsPerDay int   `mapstructure:"max_claims_per_day"`
	PerStep         int64 `mapstructure:"per_step"`
}

type LedgerConfig struct {
	Network               string `mapstructure:"network"`
	RPCURL                string `mapstructure:"rpc_url"`
	PackageID             string `mapstructure:"package_id"`
	TreasuryCapID         string `mapstructure:"treasury_cap_id"`
	AdminPrivateKey       string `mapstructure:"admin_private_key"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds"`
}

func (l *LedgerConfig) RequestTimeout() time.Duration {
	if l.RequestTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(l.RequestTimeoutSeconds) * time.Second
}

type RedisConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Password        string `mapstructure:"password"`
	DB              int    `mapstructure:"db"`
	ClaimsPerMinute int    `mapstructure:"claims_per_minute"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type AlertsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	AdminAddress string `mapstructure:"admin_address"`
}
