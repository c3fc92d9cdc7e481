package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"backend/internal/domain/models"
	"backend/internal/engagement"
)

// CRMConfig points at the agency CRM lead intake.
type CRMConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ContentConfig points at the external content API.
type ContentConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Config is the full service configuration, loaded from an optional
// config file with environment overrides.
type Config struct {
	AppAddr     string   `mapstructure:"app_addr"`
	GinMode     string   `mapstructure:"gin_mode"`
	DomainName  string   `mapstructure:"domain_name"`
	CORSOrigins []string `mapstructure:"cors_origins"`

	CRM     CRMConfig     `mapstructure:"crm"`
	Content ContentConfig `mapstructure:"content"`

	Engagement engagement.TriggerConfig `mapstructure:"engagement"`
	Ticker     engagement.TickerConfig  `mapstructure:"ticker"`

	TickerItems []models.NotificationItem `mapstructure:"ticker_items"`

	SessionTTL        time.Duration `mapstructure:"session_ttl"`
	ChallengeTTL      time.Duration `mapstructure:"challenge_ttl"`
	SuccessCloseDelay time.Duration `mapstructure:"success_close_delay"`
}

// Load reads configuration. path may be empty; environment variables
// always win, with dots mapped to underscores (crm.api_key → CRM_API_KEY).
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app_addr", ":8080")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("domain_name", "")
	v.SetDefault("cors_origins", []string{})

	v.SetDefault("crm.base_url", "")
	v.SetDefault("crm.api_key", "")
	v.SetDefault("crm.timeout", "15s")

	v.SetDefault("content.base_url", "")
	v.SetDefault("content.timeout", "10s")

	v.SetDefault("engagement.enabled", true)
	v.SetDefault("engagement.entry_enabled", true)
	v.SetDefault("engagement.entry_delay", "4s")
	v.SetDefault("engagement.idle_enabled", true)
	v.SetDefault("engagement.idle_threshold", 0.5)
	v.SetDefault("engagement.exit_enabled", true)
	v.SetDefault("engagement.exit_scroll_threshold", 0.95)

	v.SetDefault("ticker.enabled", true)
	v.SetDefault("ticker.display_duration", "5s")
	v.SetDefault("ticker.interval_between", "12s")
	v.SetDefault("ticker.position", "bottom-left")
	v.SetDefault("ticker.show_on_mobile", false)
	v.SetDefault("ticker.mobile_breakpoint", 768)

	v.SetDefault("session_ttl", "2m")
	v.SetDefault("challenge_ttl", "10m")
	v.SetDefault("success_close_delay", "3s")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DomainName == "" {
		return fmt.Errorf("domain_name is required")
	}
	if c.CRM.BaseURL == "" {
		return fmt.Errorf("crm.base_url is required")
	}
	if c.CRM.APIKey == "" {
		return fmt.Errorf("crm.api_key is required")
	}
	if c.Content.BaseURL == "" {
		return fmt.Errorf("content.base_url is required")
	}
	return nil
}
