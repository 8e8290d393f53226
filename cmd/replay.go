package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samsaffron/mdreveal/internal/config"
	"github.com/samsaffron/mdreveal/internal/tui/replay"
	"github.com/samsaffron/mdreveal/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	replayPlain    bool
	replaySeed     int64
	replayStyle    string
	replayTheme    string
	replayWidth    int
	replayDelay    time.Duration
	replayMinChunk int
	replayMaxChunk int
)

var replayCmd = &cobra.Command{
	Use:   "replay [file|-]",
	Short: "Replay a Markdown document as a simulated token stream",
	Long: `Feed a document through the reveal pipeline in small random chunks, the
way a language model streams its answer, and show the blocks as they settle.

The interactive view needs a terminal; with --plain (or when stdout is not a
terminal) each block is printed once it is complete.

Keys: r restart, f finish, q quit.

Examples:
  mdreveal replay README.md
  mdreveal replay --style notty --plain README.md
  mdreveal replay --delay 5ms --max-chunk 20 notes.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayPlain, "plain", false, "Print blocks instead of running the interactive view")
	replayCmd.Flags().Int64Var(&replaySeed, "seed", 0, "Seed for chunk sizes (default: random)")
	AddRenderFlags(replayCmd, &replayStyle, &replayTheme, &replayWidth)
	replayCmd.Flags().DurationVar(&replayDelay, "delay", 0, "Pause between simulated chunks (overrides replay.delay)")
	replayCmd.Flags().IntVar(&replayMinChunk, "min-chunk", 0, "Smallest chunk in bytes (overrides replay.min_chunk)")
	replayCmd.Flags().IntVar(&replayMaxChunk, "max-chunk", 0, "Largest chunk in bytes (overrides replay.max_chunk)")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyReplayFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !ui.ValidStyle(cfg.Render.Style) {
		return fmt.Errorf("unknown render style %q (available: %s)", cfg.Render.Style, strings.Join(ui.StyleNames(), ", "))
	}
	theme, err := ui.ResolveTheme(cfg.Render.Theme, ui.ThemeConfig(cfg.Theme))
	if err != nil {
		return err
	}

	src, title, err := readSource(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	opts := replay.Options{
		Source:        src,
		Title:         title,
		MinChunk:      cfg.Replay.MinChunk,
		MaxChunk:      cfg.Replay.MaxChunk,
		Delay:         cfg.Replay.Delay,
		MinInterval:   cfg.Reveal.MinInterval,
		FrameInterval: cfg.Reveal.FrameInterval,
		Style:         cfg.Render.Style,
		WordWrap:      cfg.Render.WordWrap,
		Renderers:     ui.NewRendererCache(theme),
		Seed:          replaySeed,
	}

	stdoutFd := int(os.Stdout.Fd())
	if replayPlain || cmd.OutOrStdout() != os.Stdout || !term.IsTerminal(stdoutFd) {
		if opts.WordWrap == 0 {
			opts.WordWrap = terminalWidth(stdoutFd)
		}
		return replay.Plain(cmd.Context(), cmd.OutOrStdout(), opts)
	}

	opts.Styles = ui.NewStyles(os.Stdout, theme)
	p := tea.NewProgram(replay.New(opts), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	return nil
}

// applyReplayFlags lets explicitly set flags override the config file.
func applyReplayFlags(cmd *cobra.Command, cfg *config.Config) {
	applyRenderFlags(cmd, cfg, replayStyle, replayTheme, replayWidth)
	flags := cmd.Flags()
	if flags.Changed("delay") {
		cfg.Replay.Delay = replayDelay
	}
	if flags.Changed("min-chunk") {
		cfg.Replay.MinChunk = replayMinChunk
	}
	if flags.Changed("max-chunk") {
		cfg.Replay.MaxChunk = replayMaxChunk
	}
}

func terminalWidth(fd int) int {
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
