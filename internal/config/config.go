package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Backend    BackendConfig
	TokenStore TokenStoreConfig `mapstructure:"token_store"`
	Audio      AudioConfig
	Tracing    TracingConfig   `mapstructure:"tracing"`
	CORS       CORSConfig      `mapstructure:"cors"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

// BackendConfig 远程 SautiCare 后端的连接配置
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout_seconds"`
}

// TokenStoreConfig 本地令牌存储（客户端唯一的持久化状态）
type TokenStoreConfig struct {
	Path       string `mapstructure:"path"`
	Passphrase string `mapstructure:"passphrase"`
}

type AudioConfig struct {
	ProbeEnabled   bool    `mapstructure:"probe_enabled"`
	MaxDurationSec float64 `mapstructure:"max_duration_seconds"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("SAUTICARE")
	viper.AutomaticEnv()

	// Backend
	viper.BindEnv("backend.base_url", "SAUTICARE_BACKEND_BASE_URL")
	viper.BindEnv("backend.timeout_seconds", "SAUTICARE_BACKEND_TIMEOUT_SECONDS")

	// Token store
	viper.BindEnv("token_store.path", "SAUTICARE_TOKEN_STORE_PATH")
	viper.BindEnv("token_store.passphrase", "SAUTICARE_TOKEN_STORE_PASSPHRASE")

	// Server
	viper.BindEnv("server.port", "SAUTICARE_SERVER_PORT")
	viper.BindEnv("server.mode", "SAUTICARE_SERVER_MODE")

	// Audio
	viper.BindEnv("audio.probe_enabled", "SAUTICARE_AUDIO_PROBE_ENABLED")

	// Tracing
	viper.BindEnv("tracing.enabled", "SAUTICARE_TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "SAUTICARE_TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Backend.Timeout = cfg.Backend.Timeout * time.Second

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend.base_url is required")
	}

	// 生产环境必须配置令牌加密口令
	if cfg.Server.Mode == "release" && len(cfg.TokenStore.Passphrase) < 16 {
		return nil, fmt.Errorf("token store passphrase is too short (%d chars), must be at least 16 characters in release mode", len(cfg.TokenStore.Passphrase))
	}

	if cfg.TokenStore.Path == "" {
		cfg.TokenStore.Path = filepath.Join("data", "token")
	}

	return &cfg, nil
}
