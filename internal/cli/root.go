// Package cli implements the seqstorm command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/seqstorm/internal/config"
	"github.com/dshills/seqstorm/internal/session"
)

// Version information (set via ldflags during build).
var (
	Version = "dev"
	Commit  = "unknown"
)

var (
	configPath string
	backendURL string
	logLevel   string
	circular   bool
	readOnly   bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "seqstorm",
	Short: "Terminal DNA sequence editor",
	Long: `Seqstorm edits DNA sequences with multi-region selections and
annotations whose coordinates survive every edit. Sequences load from
FASTA, edits can be scripted in Lua, and an optional backend mirrors
each operation over a websocket.`,
	Version:       fmt.Sprintf("%s (%s)", Version, Commit),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "path to settings file")
	pf.StringVar(&backendURL, "backend-url", "", "websocket endpoint mirroring edits")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&circular, "circular", false, "treat opened sequences as circular")
	pf.BoolVar(&readOnly, "readonly", false, "open documents without write access")
}

// loadConfig reads settings honoring the --config flag, then applies any
// explicitly set global flags on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	pf := rootCmd.PersistentFlags()
	if pf.Changed("backend-url") {
		cfg.Backend.URL = backendURL
	}
	if pf.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if pf.Changed("circular") {
		cfg.Editor.Circular = circular
	}
	if pf.Changed("readonly") {
		cfg.Editor.ReadOnly = readOnly
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger builds the session logger from settings.
func newLogger(cfg config.Config) (*session.Logger, error) {
	logCfg := session.LoggerConfig{
		Level: session.ParseLogLevel(cfg.Log.Level),
	}
	if cfg.Log.Path != "" {
		f, err := os.OpenFile(cfg.Log.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		logCfg.Output = f
	}
	logCfg.Prefix = "seqstorm"
	return session.NewLogger(logCfg), nil
}
