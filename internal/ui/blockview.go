package ui

import (
	"log/slog"
	"strings"
)

// BlockRenderer turns one Markdown block into terminal output.
type BlockRenderer interface {
	RenderBlock(markdown string) (string, error)
}

// BlockView keeps the rendered form of a block list keyed by index. A block
// is re-rendered only when its source differs from the source last rendered
// at the same index.
type BlockView struct {
	renderer BlockRenderer
	sources  []string
	rendered []string
	renders  int
}

func NewBlockView(r BlockRenderer) *BlockView {
	return &BlockView{renderer: r}
}

// SetRenderer swaps the renderer, e.g. after a resize, and invalidates every
// cached block.
func (v *BlockView) SetRenderer(r BlockRenderer) {
	v.renderer = r
	for i, src := range v.sources {
		v.rendered[i] = v.render(i, src)
	}
}

// Update brings the view in line with blocks and returns the indices that
// were re-rendered. Entries past the end of blocks are dropped.
func (v *BlockView) Update(blocks []string) []int {
	var changed []int
	for i, src := range blocks {
		if i < len(v.sources) {
			if v.sources[i] == src {
				continue
			}
			v.sources[i] = src
			v.rendered[i] = v.render(i, src)
		} else {
			v.sources = append(v.sources, src)
			v.rendered = append(v.rendered, v.render(i, src))
		}
		changed = append(changed, i)
	}
	if len(blocks) < len(v.sources) {
		v.sources = v.sources[:len(blocks)]
		v.rendered = v.rendered[:len(blocks)]
	}
	return changed
}

// Len returns the number of blocks in the view.
func (v *BlockView) Len() int { return len(v.sources) }

// Block returns the rendered block at i.
func (v *BlockView) Block(i int) string { return v.rendered[i] }

// Renders counts RenderBlock calls over the life of the view.
func (v *BlockView) Renders() int { return v.renders }

// View joins the rendered blocks.
func (v *BlockView) View() string {
	return strings.Join(v.rendered, "\n\n")
}

func (v *BlockView) render(i int, src string) string {
	v.renders++
	out, err := v.renderer.RenderBlock(src)
	if err != nil {
		slog.Debug("block render failed, showing source", "index", i, "error", err)
		return strings.TrimRight(src, "\n")
	}
	return out
}
