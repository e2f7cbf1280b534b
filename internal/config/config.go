// Package config loads runtime settings. Secrets stay in secrets.json; this
// covers everything safe to commit: ports, file paths, tuning knobs.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Env  string `mapstructure:"env"`
	Port int    `mapstructure:"port"`

	// full or incremental
	Strategy string `mapstructure:"strategy"`
	// reject or allow
	CyclePolicy string `mapstructure:"cycle_policy"`

	DefinitionsFile string `mapstructure:"definitions_file"`
	PricesFile      string `mapstructure:"prices_file"`

	Feed      FeedConfig      `mapstructure:"feed"`
	Reconcile ReconcileConfig `mapstructure:"reconcile"`
}

type FeedConfig struct {
	// sim, alpaca or yahoo
	Source     string `mapstructure:"source"`
	IntervalMs int    `mapstructure:"interval_ms"`
}

type ReconcileConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// standard five field cron expression
	Schedule string `mapstructure:"schedule"`
}

// Load reads config.yaml from the working directory, letting
// ASSETGRAPH_* env vars override individual keys. A missing file is fine;
// defaults cover everything.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("env", "dev")
	v.SetDefault("port", 3010)
	v.SetDefault("strategy", "incremental")
	v.SetDefault("cycle_policy", "reject")
	v.SetDefault("definitions_file", "portfolios.csv")
	v.SetDefault("prices_file", "prices.csv")
	v.SetDefault("feed.source", "sim")
	v.SetDefault("feed.interval_ms", 2000)
	v.SetDefault("reconcile.enabled", true)
	v.SetDefault("reconcile.schedule", "*/5 * * * *")

	v.SetEnvPrefix("ASSETGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
