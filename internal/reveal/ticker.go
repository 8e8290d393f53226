package reveal

import "time"

// TickHandle identifies a scheduled tick. The zero handle is never issued.
type TickHandle uint64

// TickScheduler runs callbacks on a cooperative "next frame" basis. A
// callback scheduled while ticks are running waits for the following frame.
// Implementations run every callback on a single goroutine.
type TickScheduler interface {
	ScheduleTick(fn func(now time.Time)) TickHandle
	CancelTick(h TickHandle)
}

// tickQueue is the pending-callback bookkeeping shared by the schedulers in
// this package. It is not safe for concurrent use.
type tickQueue struct {
	next    TickHandle
	order   []TickHandle
	pending map[TickHandle]func(time.Time)
}

func (q *tickQueue) add(fn func(time.Time)) TickHandle {
	if q.pending == nil {
		q.pending = make(map[TickHandle]func(time.Time))
	}
	q.next++
	q.pending[q.next] = fn
	q.order = append(q.order, q.next)
	return q.next
}

func (q *tickQueue) cancel(h TickHandle) {
	delete(q.pending, h)
}

func (q *tickQueue) len() int {
	return len(q.pending)
}

// fire runs the callbacks pending when it is called and returns how many ran.
func (q *tickQueue) fire(now time.Time) int {
	frame := q.order
	q.order = nil
	ran := 0
	for _, h := range frame {
		fn, ok := q.pending[h]
		if !ok {
			continue
		}
		delete(q.pending, h)
		fn(now)
		ran++
	}
	return ran
}

// ManualTicker is a TickScheduler driven explicitly by Step. Tests use it to
// run a Scheduler frame by frame with chosen timestamps.
type ManualTicker struct {
	q tickQueue
}

func NewManualTicker() *ManualTicker {
	return &ManualTicker{}
}

func (m *ManualTicker) ScheduleTick(fn func(now time.Time)) TickHandle {
	return m.q.add(fn)
}

func (m *ManualTicker) CancelTick(h TickHandle) {
	m.q.cancel(h)
}

// Pending returns the number of callbacks waiting for the next Step.
func (m *ManualTicker) Pending() int {
	return m.q.len()
}

// Step runs one frame at time now and reports how many callbacks ran.
func (m *ManualTicker) Step(now time.Time) int {
	return m.q.fire(now)
}
