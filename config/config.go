package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Vault      VaultConfig      `mapstructure:"vault"`
	Sponsor    SponsorConfig    `mapstructure:"sponsor"`
	EVM        EVMConfig        `mapstructure:"evm"`
	Tron       TronConfig       `mapstructure:"tron"`
	Service    ServiceConfig    `mapstructure:"service"`
	Settlement SettlementConfig `mapstructure:"settlement"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// VaultConfig configures the private-key vault. MasterSecret is the
// process-wide secret the AES key is derived from; in production it is
// supplied through the environment, never a config file.
type VaultConfig struct {
	MasterSecret string `mapstructure:"master_secret"`
}

// SponsorConfig configures the external gas sponsorship and transaction
// composition service used on the EVM path.
type SponsorConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type EVMConfig struct {
	RPCEndpoint string        `mapstructure:"rpc_endpoint"`
	ChainID     string        `mapstructure:"chain_id"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type TronConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	FeeLimit int64         `mapstructure:"fee_limit"` // SUN; 0 = adapter default
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ServiceConfig holds the shared secret for internal service tokens.
type ServiceConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// SettlementConfig identifies the platform treasury account whose hot
// wallets fund deposit approvals.
type SettlementConfig struct {
	TreasuryUserID string `mapstructure:"treasury_user_id"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: CUSTODY.
// Nested keys use underscore: CUSTODY_DATABASE_HOST, CUSTODY_VAULT_MASTER_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "custody_core")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("vault.master_secret", "")
	v.SetDefault("sponsor.base_url", "")
	v.SetDefault("sponsor.client_id", "")
	v.SetDefault("sponsor.client_secret", "")
	v.SetDefault("sponsor.timeout", "15s")
	v.SetDefault("evm.rpc_endpoint", "")
	v.SetDefault("evm.chain_id", "8217")
	v.SetDefault("evm.timeout", "15s")
	v.SetDefault("tron.endpoint", "")
	v.SetDefault("tron.fee_limit", 0)
	v.SetDefault("tron.timeout", "15s")
	v.SetDefault("service.jwt_secret", "")
	v.SetDefault("settlement.treasury_user_id", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: CUSTODY_DATABASE_HOST -> database.host
	v.SetEnvPrefix("CUSTODY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
