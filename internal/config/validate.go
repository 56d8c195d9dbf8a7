package config

import (
	"fmt"

	agentlog "github.com/petasbytes/go-chat-agent/internal/log"
	"github.com/petasbytes/go-chat-agent/internal/provider"
)

// MissingCredentialError reports an unset API key variable.
type MissingCredentialError struct {
	Env string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s environment variable is not set", e.Env)
}

// Remediation tells the user how to fix the error.
func (e *MissingCredentialError) Remediation() string {
	return fmt.Sprintf("Please set your API key with: export %s=your_key_here", e.Env)
}

// Validate checks that the config can start a conversation.
func (c *Config) Validate() error {
	if !provider.Supported(c.Provider) {
		return fmt.Errorf("provider must be one of: %s, %s (got %q)", provider.NameOpenRouter, provider.NameAnthropic, c.Provider)
	}
	if c.APIKey == "" {
		return &MissingCredentialError{Env: provider.CredentialEnv(c.Provider)}
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive (got %d)", c.MaxTokens)
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("requests_per_minute must not be negative")
	}
	if !agentlog.ValidLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}
	if c.Log.Format != "" && c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json")
	}
	return nil
}

// Redact returns a copy of the config with the API key masked for display.
func (c *Config) Redact() *Config {
	out := *c
	out.APIKey = redactKey(c.APIKey)
	return &out
}

func redactKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
