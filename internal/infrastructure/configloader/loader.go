package configloader

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// NetworkConfig selects the gateway. BaseURL wins over Name.
type NetworkConfig struct {
	Name             string `yaml:"name"`
	BaseURL          string `yaml:"baseURL" validate:"omitempty,url"`
	FeederGatewayURL string `yaml:"feederGatewayURL" validate:"omitempty,url"`
	GatewayURL       string `yaml:"gatewayURL" validate:"omitempty,url"`
	ChainID          string `yaml:"chainID" validate:"omitempty,startswith=0x,hexadecimal"`
}

// HTTPClientConfig tunes the gateway transport.
type HTTPClientConfig struct {
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis" validate:"gte=0"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond" validate:"gte=0"`
	RateBurst            int     `yaml:"rateBurst" validate:"gte=0"`
	MaxConnsPerHost      int     `yaml:"maxConnsPerHost" validate:"gte=0"`
}

// WaiterConfig tunes transaction status polling.
type WaiterConfig struct {
	PollIntervalMillis int64 `yaml:"pollIntervalMillis" validate:"gt=0"`
	MaxConcurrentWaits int   `yaml:"maxConcurrentWaits" validate:"gt=0"`
	// MaxWaitSeconds bounds a wait started through the HTTP facade.
	MaxWaitSeconds int `yaml:"maxWaitSeconds" validate:"gt=0"`
}

// ServerConfig holds the HTTP facade settings. Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `yaml:"port" validate:"required,numeric"`
	ReadTimeout        int      `yaml:"readTimeout" validate:"gte=0"`
	WriteTimeout       int      `yaml:"writeTimeout" validate:"gte=0"`
	IdleTimeout        int      `yaml:"idleTimeout" validate:"gte=0"`
	CORSAllowedOrigins []string `yaml:"corsAllowedOrigins" validate:"dive,required"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"omitempty,startswith=/"`
}

// Config is the top-level configuration structure.
type Config struct {
	Network    NetworkConfig    `yaml:"network"`
	HTTPClient HTTPClientConfig `yaml:"httpClient"`
	Waiter     WaiterConfig     `yaml:"waiter"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// RequestTimeout returns the per-request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.HTTPClient.RequestTimeoutMillis) * time.Millisecond
}

// PollInterval returns the delay between status checks.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Waiter.PollIntervalMillis) * time.Millisecond
}

// MaxWait returns the upper bound of a single facade wait.
func (c *Config) MaxWait() time.Duration {
	return time.Duration(c.Waiter.MaxWaitSeconds) * time.Second
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the YAML file at path, expands ${VAR} references from the environment,
// applies defaults and validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		logrus.Infof("Loading configuration from path: %s", path)
		data, err := os.ReadFile(path)
		if err != nil {
			logrus.Errorf("Failed to read config file %s: %v", path, err)
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
			logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

// Validate checks the struct tags of a loaded configuration.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Network.Name == "" && cfg.Network.BaseURL == "" {
		cfg.Network.Name = "goerli-alpha"
		logrus.Infof("Network not set, defaulting to %s", cfg.Network.Name)
	}

	if cfg.HTTPClient.RequestTimeoutMillis == 0 {
		cfg.HTTPClient.RequestTimeoutMillis = 30000
		logrus.Infof("HTTPClient.RequestTimeoutMillis not set, defaulting to %d ms", cfg.HTTPClient.RequestTimeoutMillis)
	}
	if cfg.HTTPClient.RateLimitPerSecond > 0 && cfg.HTTPClient.RateBurst == 0 {
		cfg.HTTPClient.RateBurst = 1
		logrus.Infof("HTTPClient.RateBurst not set, defaulting to %d", cfg.HTTPClient.RateBurst)
	}

	if cfg.Waiter.PollIntervalMillis == 0 {
		cfg.Waiter.PollIntervalMillis = 8000
		logrus.Infof("Waiter.PollIntervalMillis not set, defaulting to %d ms", cfg.Waiter.PollIntervalMillis)
	}
	if cfg.Waiter.MaxConcurrentWaits == 0 {
		cfg.Waiter.MaxConcurrentWaits = 16
		logrus.Infof("Waiter.MaxConcurrentWaits not set, defaulting to %d", cfg.Waiter.MaxConcurrentWaits)
	}
	if cfg.Waiter.MaxWaitSeconds == 0 {
		cfg.Waiter.MaxWaitSeconds = 300
		logrus.Infof("Waiter.MaxWaitSeconds not set, defaulting to %d s", cfg.Waiter.MaxWaitSeconds)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
		logrus.Infof("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		// waits are long-polled, so the write timeout has to outlive them
		cfg.Server.WriteTimeout = cfg.Waiter.MaxWaitSeconds + 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
