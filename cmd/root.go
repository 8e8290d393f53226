package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/samsaffron/mdreveal/internal/config"
	"github.com/samsaffron/mdreveal/internal/signal"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

var (
	configFile string
	debug      bool
	debugFile  string

	logFile *os.File
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/mdreveal/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Log debug information to stderr")
	rootCmd.PersistentFlags().StringVar(&debugFile, "debug-file", "", "Write debug logs to this file instead of stderr")
}

var rootCmd = &cobra.Command{
	Use:   "mdreveal",
	Short: "Reveal streamed Markdown block by block",
	Long: `mdreveal splits streaming Markdown into stable top-level blocks and
reveals text at a smooth, bounded pace.

Examples:
  mdreveal segment README.md              # print the blocks of a document
  mdreveal segment --format json - < a.md # blocks as JSON
  mdreveal segment --records a.md         # message-block records
  mdreveal replay README.md               # watch a document stream in
  mdreveal replay --plain README.md       # same, without a TUI

  mdreveal config init                    # write a default config file`,
	Version:           Version,
	SilenceUsage:      true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background())
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// setupLogging installs the default slog handler: warnings only unless
// --debug or --debug-file is given.
func setupLogging(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	var w io.Writer = cmd.ErrOrStderr()
	if debugFile != "" {
		f, err := os.OpenFile(debugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("open debug file: %w", err)
		}
		logFile = f
		w = f
		level = slog.LevelDebug
	}
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
