package ui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/samsaffron/mdreveal/internal/reveal"
	"github.com/samsaffron/mdreveal/internal/segment"
)

// BlockUpdate is delivered to the rendering layer each time revealed text
// changes.
type BlockUpdate struct {
	// Blocks is the segmentation of Text.
	Blocks []string
	// Change compares Blocks with the previous update.
	Change segment.Change
	// Text is the cumulative revealed text.
	Text string
}

// BlockStreamOptions configures a BlockStream.
type BlockStreamOptions struct {
	Ticker      reveal.TickScheduler
	MinInterval time.Duration
	InitialText string
	OnBlocks    func(BlockUpdate)
	OnComplete  func()
}

// BlockStream joins a reveal.Scheduler to the block segmenter: source text
// goes in, paced block lists come out. It shares the scheduler's threading
// rules and must be used on the ticker's goroutine.
type BlockStream struct {
	sched      *reveal.Scheduler
	seen       string
	blocks     []string
	onBlocks   func(BlockUpdate)
	onComplete func()
}

func NewBlockStream(opts BlockStreamOptions) *BlockStream {
	bs := &BlockStream{
		seen:       opts.InitialText,
		onBlocks:   opts.OnBlocks,
		onComplete: opts.OnComplete,
	}
	bs.sched = reveal.New(reveal.Options{
		Ticker:      opts.Ticker,
		MinInterval: opts.MinInterval,
		InitialText: opts.InitialText,
		OnUpdate:    bs.revealed,
		OnComplete:  bs.completed,
	})
	return bs
}

// Update takes the full source text seen so far. An extension of the
// previous text is queued for reveal; anything else resets the stream to
// full at once.
func (bs *BlockStream) Update(full string) {
	if full == bs.seen {
		return
	}
	if strings.HasPrefix(full, bs.seen) {
		delta := full[len(bs.seen):]
		bs.seen = full
		bs.sched.Push(delta)
		return
	}
	slog.Debug("source text diverged, resetting stream", "prev_len", len(bs.seen), "new_len", len(full))
	bs.seen = full
	bs.sched.Reset(full)
}

// Append queues delta for reveal.
func (bs *BlockStream) Append(delta string) {
	bs.seen += delta
	bs.sched.Push(delta)
}

// Reset discards everything and shows text immediately.
func (bs *BlockStream) Reset(text string) {
	bs.seen = text
	bs.sched.Reset(text)
}

// Finish marks the source done; the rest of the queue is flushed on the next
// tick and OnComplete follows.
func (bs *BlockStream) Finish() {
	bs.sched.SetSourceFinished(true)
}

// Restart resets to text and clears the finished flag, for replaying a
// source from the beginning.
func (bs *BlockStream) Restart(text string) {
	bs.sched.SetSourceFinished(false)
	bs.Reset(text)
}

func (bs *BlockStream) Close() {
	bs.sched.Close()
}

// Blocks returns the last delivered block list.
func (bs *BlockStream) Blocks() []string { return bs.blocks }

// Text returns the revealed text.
func (bs *BlockStream) Text() string { return bs.sched.Text() }

// Source returns all text seen so far, revealed or not.
func (bs *BlockStream) Source() string { return bs.seen }

// Pending returns the number of queued grapheme clusters.
func (bs *BlockStream) Pending() int { return bs.sched.Pending() }

// Done reports whether the stream completed.
func (bs *BlockStream) Done() bool { return bs.sched.Completed() }

func (bs *BlockStream) revealed(text string) {
	blocks := segment.Segment(text)
	change := segment.Diff(bs.blocks, blocks)
	bs.blocks = blocks
	if bs.onBlocks != nil {
		bs.onBlocks(BlockUpdate{Blocks: blocks, Change: change, Text: text})
	}
}

func (bs *BlockStream) completed() {
	if bs.onComplete != nil {
		bs.onComplete()
	}
}
