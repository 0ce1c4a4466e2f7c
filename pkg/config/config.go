package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Session  SessionConfig  `mapstructure:"session"`
	Security SecurityConfig `mapstructure:"security"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type SessionConfig struct {
	TTL    time.Duration `mapstructure:"ttl"`
	Secure bool          `mapstructure:"secure"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SecurityConfig tunes the threat detection layer. Defaults mirror the
// thresholds the detectors were calibrated with; every window is adjustable
// without touching detection code.
type SecurityConfig struct {
	LoginPath             string        `mapstructure:"login_path"`
	BruteForceWindow      time.Duration `mapstructure:"brute_force_window"`
	BruteForceMaxAttempts int           `mapstructure:"brute_force_max_attempts"`
	HighSeverityWindow    time.Duration `mapstructure:"high_severity_window"`
	HighSeverityThreshold int           `mapstructure:"high_severity_threshold"`
	MaxEventsPerDevice    int           `mapstructure:"max_events_per_device"`
	ActiveIPWindow        time.Duration `mapstructure:"active_ip_window"`
	SweepInterval         time.Duration `mapstructure:"sweep_interval"`
	LoginRateLimitWindow  time.Duration `mapstructure:"login_rate_limit_window"`
	LoginRateLimitMax     int           `mapstructure:"login_rate_limit_max"`
	EventQueueSize        int           `mapstructure:"event_queue_size"`
	ContentSecurityPolicy string        `mapstructure:"content_security_policy"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}
	setDefaultValues()
	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	if globalConfig.Server.Port == 0 {
		globalConfig.Server.Port = 8080
	}
	if globalConfig.Database.SSLMode == "" {
		globalConfig.Database.SSLMode = "disable"
	}
	if globalConfig.Session.TTL == 0 {
		globalConfig.Session.TTL = 24 * time.Hour
	}
	applySecurityDefaults(&globalConfig.Security)
}

func applySecurityDefaults(cfg *SecurityConfig) {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/api/v1/auth/login"
	}
	if cfg.BruteForceWindow == 0 {
		cfg.BruteForceWindow = 30 * time.Minute
	}
	if cfg.BruteForceMaxAttempts == 0 {
		cfg.BruteForceMaxAttempts = 10
	}
	if cfg.HighSeverityWindow == 0 {
		cfg.HighSeverityWindow = 5 * time.Minute
	}
	if cfg.HighSeverityThreshold == 0 {
		cfg.HighSeverityThreshold = 5
	}
	if cfg.MaxEventsPerDevice == 0 {
		cfg.MaxEventsPerDevice = 20
	}
	if cfg.ActiveIPWindow == 0 {
		cfg.ActiveIPWindow = 5 * time.Minute
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.LoginRateLimitWindow == 0 {
		cfg.LoginRateLimitWindow = 15 * time.Minute
	}
	if cfg.LoginRateLimitMax == 0 {
		cfg.LoginRateLimitMax = 5
	}
	if cfg.EventQueueSize == 0 {
		cfg.EventQueueSize = 256
	}
}

// DefaultSecurityConfig returns a SecurityConfig with every knob at its
// calibrated default, independent of the loaded file.
func DefaultSecurityConfig() SecurityConfig {
	var cfg SecurityConfig
	applySecurityDefaults(&cfg)
	return cfg
}

func GetConfig() *Config {
	return &globalConfig
}
