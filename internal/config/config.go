// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rovshanmuradov/launch-economics/internal/fees"
	"github.com/rovshanmuradov/launch-economics/internal/logger"
	"github.com/rovshanmuradov/launch-economics/internal/pricing"
)

type Config struct {
	PlatformAddress   string  `mapstructure:"platform_address"`
	PlatformAdmin     string  `mapstructure:"platform_admin"`
	PlatformShareBps  int     `mapstructure:"platform_share_bps"`
	ProtocolFeeBps    int     `mapstructure:"protocol_fee_bps"`
	MaxFeeBps         int     `mapstructure:"max_fee_bps"`
	MinFeeBps         int     `mapstructure:"min_fee_bps"`
	MaxUserRecipients int     `mapstructure:"max_user_recipients"`
	TotalSupply       float64 `mapstructure:"total_supply"`
	SlippagePercent   float64 `mapstructure:"slippage_percent"`
	Workers           int     `mapstructure:"workers"`
	DeployRetries     int     `mapstructure:"deploy_retries"`
	RetryDelayMS      int     `mapstructure:"retry_delay_ms"`
	DebugLogging      bool    `mapstructure:"debug_logging"`
	LogFile           string  `mapstructure:"log_file"`
}

const (
	EnvPrefix = "LAUNCH"

	DefaultSlippagePercent = 5.0
	DefaultWorkers         = 4
	DefaultDeployRetries   = 3
	DefaultRetryDelayMS    = 500
	DefaultLogFile         = "launch.log"
)

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"platform_share_bps":  fees.DefaultPlatformShareBps,
		"protocol_fee_bps":    fees.DefaultProtocolFeeBps,
		"max_fee_bps":         fees.DefaultMaxFeeBps,
		"min_fee_bps":         fees.DefaultMinFeeBps,
		"max_user_recipients": fees.DefaultMaxUserRecipients,
		"total_supply":        pricing.DefaultTotalSupply,
		"slippage_percent":    DefaultSlippagePercent,
		"workers":             DefaultWorkers,
		"deploy_retries":      DefaultDeployRetries,
		"retry_delay_ms":      DefaultRetryDelayMS,
		"debug_logging":       false,
		"log_file":            DefaultLogFile,
	}
}

// newViper returns a viper instance with defaults applied and every config
// key bound to its LAUNCH_* environment variable.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults() {
		v.SetDefault(key, value)
	}
	// no defaults for these, so AutomaticEnv alone would not surface them in Unmarshal
	for _, key := range []string{"platform_address", "platform_admin"} {
		_ = v.BindEnv(key)
	}
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}
	cfg.PlatformAddress = strings.TrimSpace(cfg.PlatformAddress)
	cfg.PlatformAdmin = strings.TrimSpace(cfg.PlatformAdmin)
	return &cfg, nil
}

// Load reads the config file at path and applies defaults and LAUNCH_*
// environment overrides. The result is not validated, so callers can apply
// their own overrides before calling Validate.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config error: %w", err)
	}
	return unmarshal(v)
}

// LoadConfig is Load followed by validation.
func LoadConfig(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a config with every default and environment override
// applied. A non-empty platformAddress takes precedence over the environment.
// Used when no config file is supplied.
func Default(platformAddress string) (*Config, error) {
	cfg, err := unmarshal(newViper())
	if err != nil {
		return nil, err
	}
	if platformAddress != "" {
		cfg.PlatformAddress = platformAddress
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.PlatformAddress == "" {
		return errors.New("missing platform_address in configuration")
	}
	if err := cfg.FeeConfig().Validate(); err != nil {
		return fmt.Errorf("invalid fee settings: %w", err)
	}
	if cfg.TotalSupply <= 0 {
		return errors.New("invalid total_supply")
	}
	if cfg.SlippagePercent < 0 || cfg.SlippagePercent > 100 {
		return errors.New("invalid slippage_percent")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.DeployRetries < 0 {
		return errors.New("invalid deploy_retries")
	}
	if cfg.RetryDelayMS <= 0 {
		return errors.New("invalid retry_delay_ms")
	}
	return nil
}

// FeeConfig projects the config onto the allocator settings.
func (c *Config) FeeConfig() fees.Config {
	admin := c.PlatformAdmin
	if admin == "" {
		admin = c.PlatformAddress
	}
	return fees.Config{
		PlatformAddress:   c.PlatformAddress,
		PlatformAdmin:     admin,
		PlatformShareBps:  c.PlatformShareBps,
		ProtocolFeeBps:    c.ProtocolFeeBps,
		MaxFeeBps:         c.MaxFeeBps,
		MinFeeBps:         c.MinFeeBps,
		MaxUserRecipients: c.MaxUserRecipients,
	}
}

// LoggerConfig projects the config onto the logger settings.
func (c *Config) LoggerConfig() *logger.Config {
	lc := logger.DefaultConfig()
	lc.LogFile = c.LogFile
	lc.Development = c.DebugLogging
	return lc
}

// Slippage returns the default initial-buy slippage policy.
func (c *Config) Slippage() pricing.SlippageConfig {
	return pricing.SlippageConfig{Type: pricing.SlippagePercent, Value: c.SlippagePercent}
}

// RetryDelay returns the initial deployment retry interval.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMS) * time.Millisecond
}

// Validate checks a config built with Load or Default, once overrides are applied.
func (c *Config) Validate() error {
	return validateConfig(c)
}
