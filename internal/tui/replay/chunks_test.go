package replay

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunks_RebuildSource(t *testing.T) {
	text := "# Título\n\nCafé ☕ and 👩‍💻 pairing.\n\n```go\nfmt.Println(\"hi\")\n```\n"
	for seed := int64(1); seed <= 20; seed++ {
		chunks := Chunks(text, 1, 6, rand.New(rand.NewSource(seed)))
		if got := strings.Join(chunks, ""); got != text {
			t.Fatalf("seed %d: chunks rebuild %q", seed, got)
		}
		for _, c := range chunks {
			if c == "" {
				t.Fatalf("seed %d: empty chunk", seed)
			}
			if !utf8.ValidString(c) {
				t.Fatalf("seed %d: chunk %q splits a rune", seed, c)
			}
			if len(c) > 6+utf8.UTFMax-1 {
				t.Fatalf("seed %d: chunk %q too long", seed, c)
			}
		}
	}
}

func TestChunks_FixedSize(t *testing.T) {
	chunks := Chunks("abcdefg", 3, 3, rand.New(rand.NewSource(1)))
	want := []string{"abc", "def", "g"}
	if strings.Join(chunks, "|") != strings.Join(want, "|") {
		t.Fatalf("Chunks = %q, want %q", chunks, want)
	}
}

func TestChunks_ClampsSizes(t *testing.T) {
	if got := Chunks("", 1, 4, rand.New(rand.NewSource(1))); got != nil {
		t.Fatalf("empty text gave %q", got)
	}
	chunks := Chunks("abc", 0, -5, rand.New(rand.NewSource(1)))
	if len(chunks) != 3 {
		t.Fatalf("Chunks with clamped sizes = %q, want single bytes", chunks)
	}
}
