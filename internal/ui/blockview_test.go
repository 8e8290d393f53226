package ui

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

type countingRenderer struct {
	calls map[string]int
	fail  string
}

func (c *countingRenderer) RenderBlock(markdown string) (string, error) {
	if c.calls == nil {
		c.calls = make(map[string]int)
	}
	c.calls[markdown]++
	if c.fail != "" && strings.Contains(markdown, c.fail) {
		return "", errors.New("boom")
	}
	return "<" + strings.TrimSpace(markdown) + ">", nil
}

func TestBlockView_RendersOnlyChangedBlocks(t *testing.T) {
	r := &countingRenderer{}
	v := NewBlockView(r)

	if got := v.Update([]string{"# Title\n\n", "Para"}); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Fatalf("first update changed %v", got)
	}
	if got := v.Update([]string{"# Title\n\n", "Paragraph\n\n", "Next"}); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("second update changed %v", got)
	}
	if r.calls["# Title\n\n"] != 1 {
		t.Fatalf("stable block rendered %d times", r.calls["# Title\n\n"])
	}
	if v.Renders() != 4 {
		t.Fatalf("Renders() = %d, want 4", v.Renders())
	}
	if got := v.View(); got != "<# Title>\n\n<Paragraph>\n\n<Next>" {
		t.Fatalf("View() = %q", got)
	}
}

func TestBlockView_ShrinkDropsSurplus(t *testing.T) {
	v := NewBlockView(&countingRenderer{})
	v.Update([]string{"a\n\n", "b\n\n", "c"})
	if got := v.Update([]string{"x"}); !reflect.DeepEqual(got, []int{0}) {
		t.Fatalf("changed %v", got)
	}
	if v.Len() != 1 || v.Block(0) != "<x>" {
		t.Fatalf("Len() = %d, Block(0) = %q", v.Len(), v.Block(0))
	}
	if got := v.Update(nil); got != nil || v.Len() != 0 || v.View() != "" {
		t.Fatalf("empty update left %d blocks", v.Len())
	}
}

func TestBlockView_FallsBackToSource(t *testing.T) {
	v := NewBlockView(&countingRenderer{fail: "bad"})
	v.Update([]string{"good\n\n", "bad block\n\n"})
	if v.Block(0) != "<good>" {
		t.Fatalf("Block(0) = %q", v.Block(0))
	}
	if v.Block(1) != "bad block" {
		t.Fatalf("Block(1) = %q, want raw source", v.Block(1))
	}
}

func TestBlockView_SetRendererRerendersAll(t *testing.T) {
	first := &countingRenderer{}
	v := NewBlockView(first)
	v.Update([]string{"a\n\n", "b"})

	second := &countingRenderer{}
	v.SetRenderer(second)
	if len(second.calls) != 2 {
		t.Fatalf("new renderer saw %d blocks, want 2", len(second.calls))
	}
	v.Update([]string{"a\n\n", "b"})
	if second.calls["a\n\n"] != 1 {
		t.Fatal("unchanged block re-rendered after SetRenderer")
	}
}
