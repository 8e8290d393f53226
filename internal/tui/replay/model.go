// Package replay plays a Markdown document back as a simulated token stream,
// either in an interactive bubbletea view or as plain output.
package replay

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samsaffron/mdreveal/internal/reveal"
	"github.com/samsaffron/mdreveal/internal/ui"
)

const defaultWidth = 80

// Options configures a replay.
type Options struct {
	Source string
	Title  string

	MinChunk int
	MaxChunk int
	Delay    time.Duration

	MinInterval   time.Duration
	FrameInterval time.Duration

	Style     string
	WordWrap  int
	Renderers *ui.RendererCache
	Styles    *ui.Styles

	// Seed fixes chunk sizes; zero picks one from the clock.
	Seed int64
}

// deltaMsg releases the next simulated chunk. gen ties it to a replay run so
// chunks from before a restart are dropped.
type deltaMsg struct {
	gen int
}

// Model is the interactive replay model
type Model struct {
	// Dimensions
	width  int
	height int

	// Source
	opts   Options
	rng    *rand.Rand
	chunks []string
	next   int
	gen    int

	// Pipeline
	ticker *reveal.TeaTicker
	stream *ui.BlockStream
	blocks *ui.BlockView
	last   ui.BlockUpdate
	done   bool

	// Components
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	styles   *ui.Styles
	keyMap   KeyMap
}

// New creates a replay model
func New(opts Options) *Model {
	if opts.Renderers == nil {
		opts.Renderers = ui.NewRendererCache(nil)
	}
	if opts.Styles == nil {
		opts.Styles = ui.DefaultStyles(opts.Renderers.Theme())
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Styles.Spinner

	keyMap := DefaultKeyMap()
	vp := viewport.New(defaultWidth, 20)
	vp.KeyMap = viewport.KeyMap{
		Up:       keyMap.Up,
		Down:     keyMap.Down,
		PageUp:   keyMap.PageUp,
		PageDown: keyMap.PageDown,
	}

	m := &Model{
		width:    defaultWidth,
		opts:     opts,
		rng:      rand.New(rand.NewSource(seed)),
		ticker:   reveal.NewTeaTicker(opts.FrameInterval),
		viewport: vp,
		spinner:  sp,
		help:     help.New(),
		styles:   opts.Styles,
		keyMap:   keyMap,
	}
	m.blocks = ui.NewBlockView(opts.Renderers.For(opts.Style, m.renderWidth()))
	m.stream = ui.NewBlockStream(ui.BlockStreamOptions{
		Ticker:      m.ticker,
		MinInterval: opts.MinInterval,
		OnBlocks:    m.onBlocks,
		OnComplete:  func() { m.done = true },
	})
	m.chunks = Chunks(opts.Source, opts.MinChunk, opts.MaxChunk, m.rng)
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.nextDelta())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-3)
		m.help.Width = msg.Width
		m.blocks.SetRenderer(m.opts.Renderers.For(m.opts.Style, m.renderWidth()))
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			m.stream.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.Restart):
			return m, m.restart()
		case key.Matches(msg, m.keyMap.Finish):
			return m, m.finish()
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case deltaMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if m.next < len(m.chunks) {
			m.stream.Append(m.chunks[m.next])
			m.next++
		}
		if m.next < len(m.chunks) {
			cmds = append(cmds, m.nextDelta())
		} else {
			m.stream.Finish()
		}
		cmds = append(cmds, m.ticker.Cmd())
		return m, tea.Batch(cmds...)

	case reveal.TickMsg:
		return m, m.ticker.Update(msg)

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.styles.StatusBar.Width(m.width).Render(ui.Truncate(m.statusLine(), m.width)))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keyMap))
	return b.String()
}

// Done reports whether the replay has fully revealed its source.
func (m *Model) Done() bool { return m.done }

// Text returns the revealed text.
func (m *Model) Text() string { return m.stream.Text() }

// Blocks returns the current block list.
func (m *Model) Blocks() []string { return m.last.Blocks }

func (m *Model) statusLine() string {
	icon := m.spinner.View()
	if m.done {
		icon = m.styles.Success.Render(ui.DoneIcon)
	}
	parts := []string{icon}
	if m.opts.Title != "" {
		parts = append(parts, m.styles.Title.Render(m.opts.Title))
	}
	parts = append(parts,
		fmt.Sprintf("%d blocks", len(m.last.Blocks)),
		fmt.Sprintf("%d stable", m.last.Change.Stable),
		fmt.Sprintf("%d queued", m.stream.Pending()),
		fmt.Sprintf("%d/%d chunks", m.next, len(m.chunks)),
	)
	return strings.Join(parts, m.styles.Muted.Render(" · "))
}

func (m *Model) onBlocks(u ui.BlockUpdate) {
	m.last = u
	m.blocks.Update(u.Blocks)
	m.refresh()
}

func (m *Model) refresh() {
	follow := m.viewport.AtBottom()
	m.viewport.SetContent(m.blocks.View())
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m *Model) restart() tea.Cmd {
	m.gen++
	m.next = 0
	m.done = false
	m.chunks = Chunks(m.opts.Source, m.opts.MinChunk, m.opts.MaxChunk, m.rng)
	m.stream.Restart("")
	m.viewport.GotoTop()
	return tea.Batch(m.spinner.Tick, m.nextDelta())
}

// finish feeds the rest of the source at once; the queue flushes on the
// next frame.
func (m *Model) finish() tea.Cmd {
	if m.done {
		return nil
	}
	m.gen++
	m.next = len(m.chunks)
	m.stream.Update(m.opts.Source)
	m.stream.Finish()
	return m.ticker.Cmd()
}

func (m *Model) nextDelta() tea.Cmd {
	if len(m.chunks) == 0 {
		m.stream.Finish()
		return nil
	}
	gen := m.gen
	return tea.Tick(m.opts.Delay, func(time.Time) tea.Msg {
		return deltaMsg{gen: gen}
	})
}

func (m *Model) renderWidth() int {
	w := m.width
	if m.opts.WordWrap > 0 && m.opts.WordWrap < w {
		w = m.opts.WordWrap
	}
	return max(10, w)
}
