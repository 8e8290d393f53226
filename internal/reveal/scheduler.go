// Package reveal paces streamed text for display. Deltas are queued as
// grapheme clusters and released to a sink on cooperative ticks, in batches
// that grow with the backlog so a bursty producer neither floods the display
// nor stalls it.
package reveal

import "time"

const (
	// DefaultMinInterval is the minimum time between two reveals.
	DefaultMinInterval = 10 * time.Millisecond

	// backlogDivisor sets the batch size: a tick releases 1/backlogDivisor of
	// the queue, at least one unit.
	backlogDivisor = 5
)

// Options configures a Scheduler.
type Options struct {
	// OnUpdate receives the cumulative revealed text after every change.
	// Required.
	OnUpdate func(text string)
	// OnComplete fires at most once per reset epoch, when the source is
	// finished and the queue has drained.
	OnComplete func()
	// Ticker drives drain steps. Required.
	Ticker TickScheduler
	// MinInterval throttles reveals; zero means DefaultMinInterval.
	MinInterval time.Duration
	// InitialText seeds the revealed text and is delivered to OnUpdate
	// immediately when non-empty.
	InitialText string
	// SourceFinished is the initial value of the finished flag.
	SourceFinished bool
}

// Scheduler releases queued text at a bounded rate.
//
// A Scheduler is not safe for concurrent use. Every method must be called on
// the goroutine that runs its ticker's callbacks (see Loop and TeaTicker).
type Scheduler struct {
	onUpdate    func(string)
	onComplete  func()
	ticker      TickScheduler
	minInterval time.Duration

	queue    []string
	revealed string
	lastTick time.Time

	pending   TickHandle
	epoch     uint64
	finished  bool
	completed bool
	closed    bool
}

// New creates a Scheduler. It panics if OnUpdate or Ticker is nil.
func New(opts Options) *Scheduler {
	if opts.OnUpdate == nil {
		panic("reveal: Options.OnUpdate is required")
	}
	if opts.Ticker == nil {
		panic("reveal: Options.Ticker is required")
	}
	if opts.MinInterval <= 0 {
		opts.MinInterval = DefaultMinInterval
	}
	s := &Scheduler{
		onUpdate:    opts.OnUpdate,
		onComplete:  opts.OnComplete,
		ticker:      opts.Ticker,
		minInterval: opts.MinInterval,
		revealed:    opts.InitialText,
		finished:    opts.SourceFinished,
	}
	if opts.InitialText != "" {
		s.onUpdate(opts.InitialText)
	}
	return s
}

// Push queues delta for reveal. Empty deltas are ignored.
func (s *Scheduler) Push(delta string) {
	if delta == "" || s.closed {
		return
	}
	if n := len(s.queue); n > 0 && joinsAcross(s.queue[n-1], delta) {
		tail := s.queue[n-1]
		s.queue = append(s.queue[:n-1], Graphemes(tail+delta)...)
	} else {
		s.queue = append(s.queue, Graphemes(delta)...)
	}
	s.schedule()
}

// Reset discards queued text and replaces the revealed text with text,
// delivering it to OnUpdate synchronously. Completion is re-armed. Use it
// when new source text does not extend what was already seen.
func (s *Scheduler) Reset(text string) {
	if s.closed {
		return
	}
	s.cancel()
	s.epoch++
	s.queue = nil
	s.revealed = text
	s.completed = false
	s.onUpdate(text)
}

// SetSourceFinished records whether the producer is done. When finished and
// nothing is queued, completion fires immediately; otherwise the remaining
// queue is flushed on the next tick.
func (s *Scheduler) SetSourceFinished(finished bool) {
	if s.closed {
		return
	}
	s.finished = finished
	if !finished {
		return
	}
	if len(s.queue) == 0 {
		s.complete()
		return
	}
	s.schedule()
}

// Close cancels any pending tick. No callbacks run after Close.
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	s.cancel()
	s.closed = true
	s.queue = nil
}

// Text returns the text revealed so far.
func (s *Scheduler) Text() string { return s.revealed }

// Pending returns the number of queued grapheme clusters.
func (s *Scheduler) Pending() int { return len(s.queue) }

// Completed reports whether completion fired in the current epoch.
func (s *Scheduler) Completed() bool { return s.completed }

// SourceFinished reports the finished flag.
func (s *Scheduler) SourceFinished() bool { return s.finished }

// Epoch counts resets.
func (s *Scheduler) Epoch() uint64 { return s.epoch }

// Scheduled reports whether a drain tick is pending.
func (s *Scheduler) Scheduled() bool { return s.pending != 0 }

func (s *Scheduler) schedule() {
	if s.pending != 0 || s.closed {
		return
	}
	epoch := s.epoch
	s.pending = s.ticker.ScheduleTick(func(now time.Time) {
		s.drain(epoch, now)
	})
}

func (s *Scheduler) cancel() {
	if s.pending != 0 {
		s.ticker.CancelTick(s.pending)
		s.pending = 0
	}
}

func (s *Scheduler) complete() {
	if s.completed {
		return
	}
	s.completed = true
	if s.onComplete != nil {
		s.onComplete()
	}
}

// drain is one tick of the reveal loop.
func (s *Scheduler) drain(epoch uint64, now time.Time) {
	// A tick that survived a reset or Close belongs to an old epoch.
	if s.closed || epoch != s.epoch {
		return
	}
	s.pending = 0

	if len(s.queue) == 0 {
		if s.finished {
			s.complete()
		}
		return
	}

	if !s.lastTick.IsZero() && now.Sub(s.lastTick) < s.minInterval {
		s.schedule()
		return
	}
	s.lastTick = now

	n := len(s.queue)
	if !s.finished {
		n = max(1, len(s.queue)/backlogDivisor)
	}
	released := s.queue[:n]
	size := 0
	for _, u := range released {
		size += len(u)
	}
	buf := make([]byte, 0, len(s.revealed)+size)
	buf = append(buf, s.revealed...)
	for _, u := range released {
		buf = append(buf, u...)
	}
	s.revealed = string(buf)
	s.queue = s.queue[n:]

	s.onUpdate(s.revealed)
	s.schedule()
}
