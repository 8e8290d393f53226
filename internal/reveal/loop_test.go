package reveal

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoop_DrivesScheduler(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewLoop(time.Millisecond)
	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	done := make(chan string, 1)
	var s *Scheduler
	err := l.Sync(func() {
		s = New(Options{
			Ticker:      l,
			MinInterval: time.Millisecond,
			OnUpdate:    func(string) {},
			OnComplete:  func() { done <- s.Text() },
		})
		s.Push("hello ")
		s.Push("world")
		s.SetSourceFinished(true)
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	select {
	case got := <-done:
		if got != "hello world" {
			t.Fatalf("completed with %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler never completed")
	}

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
	if err := l.Do(func() {}); !errors.Is(err, ErrLoopStopped) {
		t.Fatalf("Do after stop returned %v", err)
	}
}

func TestLoop_CancelTickDisarms(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewLoop(time.Millisecond)
	go l.Run(ctx)

	fired := make(chan struct{}, 1)
	if err := l.Sync(func() {
		h := l.ScheduleTick(func(time.Time) { fired <- struct{}{} })
		l.CancelTick(h)
	}); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	select {
	case <-fired:
		t.Fatal("cancelled tick fired")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestLoop_TickScheduledDuringFrameWaitsForNext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewLoop(time.Millisecond)
	go l.Run(ctx)

	frames := make(chan time.Time, 2)
	if err := l.Sync(func() {
		l.ScheduleTick(func(now time.Time) {
			frames <- now
			l.ScheduleTick(func(now time.Time) { frames <- now })
		})
	}); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	var got []time.Time
	for len(got) < 2 {
		select {
		case now := <-frames:
			got = append(got, now)
		case <-time.After(5 * time.Second):
			t.Fatalf("saw %d frames, want 2", len(got))
		}
	}
	if !got[1].After(got[0]) {
		t.Fatalf("nested tick ran in the same frame: %v, %v", got[0], got[1])
	}
}

func TestManualTicker_FrameBoundary(t *testing.T) {
	m := NewManualTicker()
	var order []string
	m.ScheduleTick(func(time.Time) {
		order = append(order, "a")
		m.ScheduleTick(func(time.Time) { order = append(order, "c") })
	})
	m.ScheduleTick(func(time.Time) { order = append(order, "b") })

	if ran := m.Step(t0); ran != 2 {
		t.Fatalf("first Step ran %d callbacks, want 2", ran)
	}
	if m.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", m.Pending())
	}
	m.Step(t0)
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("order = %v", order)
	}
}
