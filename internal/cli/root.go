// Package cli implements the anchoredit command line: anchored file listings,
// batch edit application, anchored search, and raw hashing.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var configPath string

// RootCmd is the base command; subcommands register themselves in init().
var RootCmd = &cobra.Command{
	Use:           "anchoredit",
	Short:         "Anchor-based text file editing",
	Long:          "anchoredit lists, searches, and edits text files using LINE:HASH anchors that survive unrelated file changes.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
}

// Execute runs the root command, printing any error to stderr.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// logger builds the CLI logger from config: a file logger when log_file is
// set, otherwise a no-op.
func logger(cfg Config) zerolog.Logger {
	if cfg.LogFile == "" {
		return zerolog.Nop()
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(f).With().Timestamp().Logger()
}
