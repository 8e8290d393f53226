package reveal

import (
	"context"
	"errors"
	"time"
)

// DefaultFrameInterval is the frame period of a Loop, matching a 60Hz redraw.
const DefaultFrameInterval = 16 * time.Millisecond

// ErrLoopStopped is returned when work is submitted to a Loop that is no
// longer running.
var ErrLoopStopped = errors.New("reveal: loop stopped")

// Loop is a TickScheduler backed by a timer and confined to the goroutine
// that calls Run. Work from other goroutines enters through Do or Sync, so a
// Scheduler driven by a Loop never needs a lock.
//
// ScheduleTick and CancelTick must only be called on the loop goroutine,
// that is from tick callbacks or functions passed to Do and Sync.
type Loop struct {
	interval time.Duration
	work     chan func()
	done     chan struct{}

	q      tickQueue
	timer  *time.Timer
	timerC <-chan time.Time
}

// NewLoop creates a Loop that fires frames every interval. A non-positive
// interval means DefaultFrameInterval.
func NewLoop(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Loop{
		interval: interval,
		work:     make(chan func()),
		done:     make(chan struct{}),
	}
}

// Run processes work and frames until ctx is done. It returns ctx.Err().
// Run must be called at most once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	defer l.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.work:
			fn()
		case now := <-l.timerC:
			l.timer, l.timerC = nil, nil
			l.q.fire(now)
			if l.q.len() > 0 {
				l.arm()
			}
		}
	}
}

// Do queues fn to run on the loop goroutine. It blocks until the loop
// accepts fn and returns ErrLoopStopped if the loop has exited.
func (l *Loop) Do(fn func()) error {
	select {
	case l.work <- fn:
		return nil
	case <-l.done:
		return ErrLoopStopped
	}
}

// Sync runs fn on the loop goroutine and waits for it to return.
func (l *Loop) Sync(fn func()) error {
	ran := make(chan struct{})
	if err := l.Do(func() {
		defer close(ran)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-ran:
		return nil
	case <-l.done:
		return ErrLoopStopped
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

func (l *Loop) ScheduleTick(fn func(now time.Time)) TickHandle {
	h := l.q.add(fn)
	if l.timerC == nil {
		l.arm()
	}
	return h
}

func (l *Loop) CancelTick(h TickHandle) {
	l.q.cancel(h)
	if l.q.len() == 0 {
		l.stopTimer()
	}
}

func (l *Loop) arm() {
	l.timer = time.NewTimer(l.interval)
	l.timerC = l.timer.C
}

func (l *Loop) stopTimer() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer, l.timerC = nil, nil
	}
}
