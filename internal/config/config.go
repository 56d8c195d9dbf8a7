// Package config loads the agent configuration from defaults, an optional
// config file, AGENT_* environment variables and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	agentlog "github.com/petasbytes/go-chat-agent/internal/log"
	"github.com/petasbytes/go-chat-agent/internal/provider"
)

// EnvPrefix prefixes every environment override, e.g. AGENT_MODEL.
const EnvPrefix = "AGENT"

// Config is the effective agent configuration. It is built once at startup
// and treated as read-only afterwards.
type Config struct {
	Provider          string          `mapstructure:"provider" toml:"provider"`
	Model             string          `mapstructure:"model" toml:"model"`
	MaxTokens         int             `mapstructure:"max_tokens" toml:"max_tokens"`
	BaseURL           string          `mapstructure:"base_url" toml:"base_url"`
	Workspace         string          `mapstructure:"workspace" toml:"workspace"`
	Sandbox           bool            `mapstructure:"sandbox" toml:"sandbox"`
	NoColor           bool            `mapstructure:"no_color" toml:"no_color"`
	RequestsPerMinute float64         `mapstructure:"requests_per_minute" toml:"requests_per_minute"`
	Log               agentlog.Config `mapstructure:"log" toml:"log"`
	Telemetry         TelemetryConfig `mapstructure:"telemetry" toml:"telemetry"`

	// APIKey comes only from the provider's credential variable.
	APIKey string `mapstructure:"-" toml:"api_key"`
}

// TelemetryConfig controls the JSONL event log.
type TelemetryConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Dir     string `mapstructure:"dir" toml:"dir"`
}

// SetDefaults registers every key so environment overrides reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("provider", provider.NameOpenRouter)
	v.SetDefault("model", "")
	v.SetDefault("max_tokens", provider.DefaultMaxTokens)
	v.SetDefault("base_url", "")
	v.SetDefault("workspace", ".")
	v.SetDefault("sandbox", false)
	v.SetDefault("no_color", false)
	v.SetDefault("requests_per_minute", 0)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.dir", ".agent")
}

// Load reads configuration into a Config. configFile is optional; flags must
// already be bound to v by the caller.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Model == "" {
		cfg.Model = provider.DefaultModel(cfg.Provider)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = provider.DefaultBaseURL(cfg.Provider)
	}

	// The credential is looked up by its conventional name, unprefixed.
	credEnv := provider.CredentialEnv(cfg.Provider)
	if err := v.BindEnv("credential", credEnv); err != nil {
		return nil, fmt.Errorf("bind %s: %w", credEnv, err)
	}
	cfg.APIKey = strings.TrimSpace(v.GetString("credential"))
	return &cfg, nil
}
