package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Targets  []Target       `mapstructure:"targets"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

type SyncConfig struct {
	// Schedule is a 6-field cron spec (with seconds) for the periodic
	// reconciliation of all enabled targets.
	Schedule string `mapstructure:"schedule"`
}

// Target pairs one local folder with one bucket prefix. Credentials are
// per target, so different targets can point at different AWS accounts.
type Target struct {
	Name      string `mapstructure:"name"`
	Folder    string `mapstructure:"folder"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Enabled   bool   `mapstructure:"enabled"`
}

type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("app.name", "bucketsync")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("sync.schedule", "0 0 2 * * *")

	v.SetEnvPrefix("BUCKETSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// normalize trims whitespace off every prefix and fills in a display name
// for targets that did not set one.
func (c *Config) normalize() {
	for i := range c.Targets {
		t := &c.Targets[i]
		t.Prefix = strings.TrimSpace(t.Prefix)
		if t.Name == "" {
			t.Name = fmt.Sprintf("%s/%s", t.Bucket, t.Prefix)
		}
	}
}

func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return fmt.Errorf("at least one target configuration is required")
	}

	for i, t := range c.Targets {
		if t.Folder == "" {
			return fmt.Errorf("targets[%d]: folder is required", i)
		}
		if t.Bucket == "" {
			return fmt.Errorf("targets[%d]: bucket is required", i)
		}
		if t.Prefix == "" {
			return fmt.Errorf("targets[%d]: prefix is required", i)
		}
		if t.Region == "" {
			return fmt.Errorf("targets[%d]: region is required", i)
		}
		if t.AccessKey == "" || t.SecretKey == "" {
			return fmt.Errorf("targets[%d]: access_key and secret_key are required", i)
		}
	}

	if c.Telegram.Enabled && (c.Telegram.BotToken == "" || c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram: bot_token and chat_id are required when enabled")
	}

	return nil
}

func (c *Config) EnabledTargets() []Target {
	var enabled []Target
	for _, target := range c.Targets {
		if target.Enabled {
			enabled = append(enabled, target)
		}
	}
	return enabled
}
