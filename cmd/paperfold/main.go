// Package main implements the paperfold CLI: frame export, a live terminal
// preview and a dump of the fold geometry.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"paperfold-renderer/internal/config"
	"paperfold-renderer/internal/logging"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	contentArg string
	grainArg   string

	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "paperfold",
	Short: "Render and preview the folding letter and flipping page",
	Long: `paperfold animates a letter that folds in three and a page that flips
open and swaps its text after a long hover.

Settings come from a YAML file (--config), PAPERFOLD_* environment
variables and flags, in increasing priority.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Path to YAML config file")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: info)")
	pf.StringVar(&logFormat, "log-format", "", "Log format: console or json (default: console)")
	pf.StringVar(&contentArg, "content", "", "TOML file with face and title text")
	pf.StringVar(&grainArg, "grain", "", "Paper grain image (TGA, PNG or JPEG)")
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(flags config.Flags) (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, err
	}
	flags.Content = contentArg
	flags.Grain = grainArg
	flags.LogLevel = logLevel
	flags.LogFormat = logFormat
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config, w io.Writer) (*zap.Logger, error) {
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, w)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return log, nil
}
