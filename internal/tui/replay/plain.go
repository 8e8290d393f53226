package replay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/samsaffron/mdreveal/internal/reveal"
	"github.com/samsaffron/mdreveal/internal/ui"
)

// Plain replays opts.Source without a terminal UI. The reveal pipeline runs
// on a reveal.Loop and each block is rendered to w once the block after it
// has started, so nothing is printed twice.
func Plain(ctx context.Context, w io.Writer, opts Options) error {
	if opts.Renderers == nil {
		opts.Renderers = ui.NewRendererCache(nil)
	}
	width := opts.WordWrap
	if width <= 0 {
		width = defaultWidth
	}
	renderer := opts.Renderers.For(opts.Style, width)
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	chunks := Chunks(opts.Source, opts.MinChunk, opts.MaxChunk, rand.New(rand.NewSource(seed)))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	loop := reveal.NewLoop(opts.FrameInterval)
	errc := make(chan error, 1)
	go func() { errc <- loop.Run(runCtx) }()

	// Owned by the loop goroutine until Run returns.
	var (
		printed   int
		completed bool
		writeErr  error
		stream    *ui.BlockStream
	)
	emit := func(blocks []string, upto int) {
		for ; printed < upto && writeErr == nil; printed++ {
			out, err := renderer.RenderBlock(blocks[printed])
			if err != nil {
				slog.Debug("block render failed, printing source", "index", printed, "error", err)
				out = strings.TrimRight(blocks[printed], "\n")
			}
			_, writeErr = fmt.Fprintf(w, "%s\n\n", out)
		}
		if writeErr != nil {
			cancel()
		}
	}

	err := loop.Sync(func() {
		stream = ui.NewBlockStream(ui.BlockStreamOptions{
			Ticker:      loop,
			MinInterval: opts.MinInterval,
			OnBlocks: func(u ui.BlockUpdate) {
				if u.Change.Stable < printed {
					slog.Debug("printed block changed", "index", u.Change.Stable, "printed", printed)
				}
				emit(u.Blocks, len(u.Blocks)-1)
			},
			OnComplete: func() {
				blocks := stream.Blocks()
				emit(blocks, len(blocks))
				completed = true
				cancel()
			},
		})
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

feed:
	for _, chunk := range chunks {
		if err := loop.Do(func() { stream.Append(chunk) }); err != nil {
			break
		}
		select {
		case <-runCtx.Done():
			break feed
		case <-time.After(opts.Delay):
		}
	}
	// The loop is already gone after a write error or cancellation.
	_ = loop.Do(func() { stream.Finish() })

	runErr := <-errc
	switch {
	case writeErr != nil:
		return fmt.Errorf("write output: %w", writeErr)
	case completed:
		return nil
	default:
		return runErr
	}
}
