package reveal

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var teaTickerIDs atomic.Uint64

// TickMsg is sent to a bubbletea program to run the next frame of a
// TeaTicker.
type TickMsg struct {
	Time time.Time
	id   uint64
}

// TeaTicker is a TickScheduler that runs frames through a bubbletea program's
// update loop. ScheduleTick only records callbacks; the model must call Cmd
// after touching the Scheduler and route TickMsg values to Update.
type TeaTicker struct {
	id       uint64
	interval time.Duration
	q        tickQueue
	armed    bool
}

// NewTeaTicker creates a TeaTicker firing every interval. A non-positive
// interval means DefaultFrameInterval.
func NewTeaTicker(interval time.Duration) *TeaTicker {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TeaTicker{id: teaTickerIDs.Add(1), interval: interval}
}

func (t *TeaTicker) ScheduleTick(fn func(now time.Time)) TickHandle {
	return t.q.add(fn)
}

func (t *TeaTicker) CancelTick(h TickHandle) {
	t.q.cancel(h)
}

// Cmd returns the command for the next frame, or nil when no callbacks are
// pending or a frame is already in flight.
func (t *TeaTicker) Cmd() tea.Cmd {
	if t.armed || t.q.len() == 0 {
		return nil
	}
	t.armed = true
	id := t.id
	return tea.Tick(t.interval, func(now time.Time) tea.Msg {
		return TickMsg{Time: now, id: id}
	})
}

// Update runs a frame if msg is this ticker's TickMsg and returns the command
// for the following one. Other messages are ignored.
func (t *TeaTicker) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(TickMsg)
	if !ok || tick.id != t.id {
		return nil
	}
	t.armed = false
	t.q.fire(tick.Time)
	return t.Cmd()
}
