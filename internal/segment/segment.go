// Package segment splits a growing markdown document into independently
// renderable blocks.
//
// Segment is a pure function of the whole document and is meant to be called
// again after every update. Blocks ahead of the last, still-growing one are
// reproduced byte for byte when the document is extended, so a consumer can
// key rendered output by block and skip unchanged blocks.
package segment

import "strings"

// Segment returns the blocks of markdown in source order. Joining them gives
// markdown back exactly. Empty or whitespace-only input yields no blocks.
//
// Tokens from the markdown oracle become blocks one to one, except:
//   - a document with footnote references or definitions is one block;
//   - everything after a block-level html token that opens a tag without
//     closing it is merged into that block until a later html token closes
//     the tag on top of the stack;
//   - a "$" token, or a token that closes a "$$" span, is merged into a
//     previous block that is an unterminated display math block.
func Segment(markdown string) []string {
	if strings.TrimSpace(markdown) == "" {
		return nil
	}
	if hasFootnotes(markdown) {
		return []string{markdown}
	}

	tokens := Tokenize(markdown)
	blocks := make([]string, 0, len(tokens))
	var open []string // html tags awaiting their closing tag

	for _, tok := range tokens {
		if len(open) > 0 {
			blocks[len(blocks)-1] += tok.Raw
			if tok.Kind == KindHTML {
				if name, ok := closedTag(tok.Raw); ok && name == open[len(open)-1] {
					open = open[:len(open)-1]
				}
			}
			continue
		}

		if tok.Kind == KindHTML && tok.Block {
			if name, ok := unclosedTag(tok.Raw); ok {
				open = append(open, name)
			}
		}

		if n := len(blocks); n > 0 && closesMath(blocks[n-1], tok.Raw) {
			blocks[n-1] += tok.Raw
			continue
		}
		blocks = append(blocks, tok.Raw)
	}
	return blocks
}

// Change describes how a block list differs from the previous one.
type Change struct {
	// Stable is the number of leading blocks identical to the previous list.
	Stable int
	// Changed lists indices of blocks that are new or differ in content.
	Changed []int
	// Removed is the number of trailing blocks the previous list had beyond
	// the new one.
	Removed int
}

// Diff compares two block lists by position.
func Diff(prev, next []string) Change {
	var c Change
	for c.Stable < len(prev) && c.Stable < len(next) && prev[c.Stable] == next[c.Stable] {
		c.Stable++
	}
	for i := c.Stable; i < len(next); i++ {
		if i >= len(prev) || prev[i] != next[i] {
			c.Changed = append(c.Changed, i)
		}
	}
	if len(prev) > len(next) {
		c.Removed = len(prev) - len(next)
	}
	return c
}
