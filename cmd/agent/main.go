package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petasbytes/go-chat-agent/internal/config"
	"github.com/petasbytes/go-chat-agent/internal/fsops"
	agentlog "github.com/petasbytes/go-chat-agent/internal/log"
	"github.com/petasbytes/go-chat-agent/internal/provider"
	"github.com/petasbytes/go-chat-agent/internal/runner"
	"github.com/petasbytes/go-chat-agent/internal/telemetry"
	"github.com/petasbytes/go-chat-agent/memory"
	"github.com/petasbytes/go-chat-agent/tools"
)

// Set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var missing *config.MissingCredentialError
		if errors.As(err, &missing) {
			fmt.Fprintln(os.Stderr, missing.Remediation())
		}
		os.Exit(1)
	}
}

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"provider":            "provider",
	"model":               "model",
	"max-tokens":          "max_tokens",
	"base-url":            "base_url",
	"workspace":           "workspace",
	"sandbox":             "sandbox",
	"no-color":            "no_color",
	"requests-per-minute": "requests_per_minute",
	"log-level":           "log.level",
	"log-format":          "log.format",
	"telemetry":           "telemetry.enabled",
	"telemetry-dir":       "telemetry.dir",
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	root := &cobra.Command{
		Use:           "agent",
		Short:         "Chat with a model that can read, list and edit local files",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, v, configFile)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (toml, yaml or json)")
	pf.String("provider", provider.NameOpenRouter, "model provider: openrouter or anthropic")
	pf.String("model", "", "model id (defaults per provider)")
	pf.Int("max-tokens", provider.DefaultMaxTokens, "maximum tokens per reply")
	pf.String("base-url", "", "API base URL (defaults per provider)")
	pf.String("workspace", ".", "directory file tools operate in")
	pf.Bool("sandbox", false, "confine file tools to the workspace")
	pf.Bool("no-color", false, "disable ANSI colours")
	pf.Float64("requests-per-minute", 0, "limit model requests per minute (0 = unlimited)")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	pf.Bool("telemetry", false, "write JSONL events under the telemetry directory")
	pf.String("telemetry-dir", ".agent", "telemetry directory, relative to the workspace")
	for flag, key := range flagKeys {
		_ = v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		toolsCmd(v, &configFile),
		configCmd(v, &configFile),
		versionCmd(),
	)
	return root
}

// ── chat ──

func runChat(cmd *cobra.Command, v *viper.Viper, configFile string) error {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := agentlog.NewLogger(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	fs, err := newWorkspace(cfg)
	if err != nil {
		return err
	}
	p, err := provider.New(cfg.Provider, cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return err
	}
	p = provider.NewRateLimited(p, cfg.RequestsPerMinute)

	palette := runner.DefaultPalette()
	if cfg.NoColor {
		palette = runner.PlainPalette()
	}
	console := runner.NewConsole(cmd.OutOrStdout(), palette)
	rec := telemetry.NewRecorder(cfg.Telemetry.Enabled, telemetryDir(cfg, fs.Root()))

	r := runner.New(p, tools.Default(fs), cfg.Model,
		runner.WithConsole(console),
		runner.WithLogger(logger),
		runner.WithRecorder(rec),
		runner.WithMaxTokens(cfg.MaxTokens),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting chat",
		"provider", p.Name(),
		"model", cfg.Model,
		"workspace", fs.String(),
		"telemetry", rec.Enabled(),
	)
	console.Banner(p.Name())

	err = r.Run(ctx, memory.NewTranscript(), runner.LineReader(cmd.InOrStdin()))
	if ctx.Err() != nil {
		console.Exiting()
	}
	return err
}

// newWorkspace builds the filesystem the tools operate on. The sandbox also
// hides .git and a workspace-relative telemetry directory.
func newWorkspace(cfg *config.Config) (*fsops.FS, error) {
	if !cfg.Sandbox {
		return fsops.New(cfg.Workspace)
	}
	deny := []string{".git"}
	if cfg.Telemetry.Dir != "" && !filepath.IsAbs(cfg.Telemetry.Dir) {
		deny = append(deny, cfg.Telemetry.Dir)
	}
	return fsops.NewSandboxed(cfg.Workspace, deny...)
}

func telemetryDir(cfg *config.Config, root string) string {
	if cfg.Telemetry.Dir == "" || filepath.IsAbs(cfg.Telemetry.Dir) {
		return cfg.Telemetry.Dir
	}
	return filepath.Join(root, cfg.Telemetry.Dir)
}

// ── tools command ──

func toolsCmd(v *viper.Viper, configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool descriptors sent to the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, *configFile)
			if err != nil {
				return err
			}
			fs, err := newWorkspace(cfg)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(tools.Default(fs).Descriptors())
		},
	}
}

// ── config command ──

func configCmd(v *viper.Viper, configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective config (API key redacted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, *configFile)
			if err != nil {
				return err
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg.Redact())
		},
	}
}

// ── version command ──

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "agent %s (commit: %s)\n", version, commit)
		},
	}
}
