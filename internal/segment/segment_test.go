package segment

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func assertRoundTrip(t *testing.T, input string, blocks []string) {
	t.Helper()
	if got := strings.Join(blocks, ""); got != input {
		t.Fatalf("blocks do not rebuild input\ninput: %q\njoined: %q\nblocks: %q", input, got, blocks)
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	for _, input := range []string{"", " ", "\n\n", " \t\n  \n"} {
		if blocks := Segment(input); len(blocks) != 0 {
			t.Errorf("Segment(%q) = %q, want no blocks", input, blocks)
		}
	}
}

func TestSegment_RoundTrip(t *testing.T) {
	inputs := []string{
		"Single paragraph",
		"# Title\n\nParagraph 1\n\nParagraph 2",
		"\n\nLeading blank lines\n",
		"Trailing blank lines\n\n\n",
		"Heading\n=======\n\nSetext body\n",
		"```go\nfunc main() {}\n```\n\nafter fence",
		"```\nunterminated fence\n\nstill code",
		"    indented code\n\nparagraph",
		"- one\n- two\n  - nested\n\n1. first\n2. second\n",
		"> quote\n> more\n\n***\n\ntext",
		"| a | b |\n|---|---|\n| 1 | 2 |\n\nafter table",
		"Intro\n| a | b |\n|---|---|\n",
		"<div>\n\nInner\n\n</div>\n\nAfter",
		"<details>\n<summary>x</summary>\n\nbody\n",
		"<!-- comment\n\nstill comment -->\n\ntext",
		"[ref]: https://example.com\n\nUse [ref].",
		"Para\n\n[a]: /a\n[b]: /b\n\nMore",
		"$$\na\n\nb\n$$\n\nAfter",
		"Costs $5 and $$ things\n\n$\n\n$",
		"中文段落。\n\n日本語のテキスト\n\n👨‍👩‍👧‍👦 family",
		"windows\r\nline\r\n\r\nendings\r\n",
		"Text[^1]\n\n[^1]: Note",
		"trailing [^ broken",
		"<",
		"$",
		"|",
	}
	for _, input := range inputs {
		assertRoundTrip(t, input, Segment(input))
	}
}

func TestSegment_SplitsTopLevelBlocks(t *testing.T) {
	got := Segment("# Title\n\nParagraph 1\n\nParagraph 2")
	want := []string{"# Title\n\n", "Paragraph 1\n\n", "Paragraph 2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSegment_FootnotesKeepDocumentWhole(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"reference and definition", "Text[^1]\n\n[^1]: Note"},
		{"reference only", "See this[^note]\n\nAnother paragraph"},
		{"definition only", "Some text\n\n[^note]: This is a note"},
		{"several", "Text[^1] more[^2]\n\n[^1]: One\n[^2]: Two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.input)
			if len(got) != 1 || got[0] != tt.input {
				t.Fatalf("got %q, want single block %q", got, tt.input)
			}
		})
	}
}

func TestSegment_HTMLContainment(t *testing.T) {
	input := "<div>\n\nInner\n\n</div>\n\nAfter"
	got := Segment(input)
	want := []string{"<div>\n\nInner\n\n</div>\n\n", "After"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSegment_HTMLNestedTags(t *testing.T) {
	input := "<div class=\"outer\">\n\n<p>Text</p>\n\n</div>"
	got := Segment(input)
	if len(got) != 1 {
		t.Fatalf("got %d blocks %q, want 1", len(got), got)
	}
	assertRoundTrip(t, input, got)
}

func TestSegment_HTMLClosedInSameToken(t *testing.T) {
	got := Segment("<div>hi</div>\n\nAfter")
	want := []string{"<div>hi</div>\n\n", "After"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSegment_HTMLUnclosedAtEnd(t *testing.T) {
	input := "Before\n\n<section>\n\nstreaming body\n\nmore"
	got := Segment(input)
	want := []string{"Before\n\n", "<section>\n\nstreaming body\n\nmore"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSegment_MathPairing(t *testing.T) {
	input := "$\n\\begin{matrix}\na & b\n\\end{matrix}\n$\n\nAfter"
	got := Segment(input)
	if len(got) != 2 {
		t.Fatalf("got %d blocks %q, want 2", len(got), got)
	}
	first := got[0]
	if !strings.HasPrefix(first, "$") || !strings.Contains(first, "\\begin{matrix}") || !strings.Contains(first, "\\end{matrix}\n$") {
		t.Errorf("first block %q should hold the whole math span", first)
	}
	if got[1] != "After" {
		t.Errorf("second block = %q, want %q", got[1], "After")
	}
}

func TestSegment_MathGuardMerges(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "closing token with one pair",
			input: "$$\na\n\nb\n$$\n\nAfter",
			want:  []string{"$$\na\n\nb\n$$\n\n", "After"},
		},
		{
			name:  "lone dollar token",
			input: "$$ x\n\n$\n\nAfter",
			want:  []string{"$$ x\n\n$\n\n", "After"},
		},
		{
			name:  "prose with dollars",
			input: "Costs $5.\n\nAnd $6",
			want:  []string{"Costs $5.\n\n", "And $6"},
		},
		{
			name:  "balanced pairs stay apart",
			input: "$$x$$\n\n$",
			want:  []string{"$$x$$\n\n", "$"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSegment_DefinitionsKeepTheirOwnBlock(t *testing.T) {
	got := Segment("Para\n\n[x]: https://example.com\n\nMore [x]")
	want := []string{"Para\n\n", "[x]: https://example.com\n\n", "More [x]"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// Growing a document must never rewrite a block ahead of the last one.
func TestSegment_StableUnderAppend(t *testing.T) {
	docs := []string{
		"# Title\n\nFirst paragraph with **bold** text.\n\nSecond one\nspans lines.\n\n## Next\n\nDone.",
		"Intro\n\n```go\nfunc main() {\n\n\tfmt.Println(1)\n}\n```\n\nAfter the fence.",
		"- one\n- two\n\n1. first\n2. second\n\n> quote\n> more\n\n***\n\nend",
		"Heading\n=======\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\nAfter table\n",
		"Before\n\n<div>\n\nInner\n\n</div>\n\nAfter div\n\nTail",
		"段落一。\n\n第二段 👨‍👩‍👧 emoji\n\n最后",
	}
	for _, doc := range docs {
		full := Segment(doc)
		for i := 1; i <= len(doc); i++ {
			if !utf8.ValidString(doc[:i]) {
				continue
			}
			prefix := Segment(doc[:i])
			for j := 0; j+1 < len(prefix); j++ {
				if j >= len(full) || prefix[j] != full[j] {
					t.Fatalf("block %d of prefix %q changed when extended\nprefix blocks: %q\nfull blocks: %q",
						j, doc[:i], prefix, full)
				}
			}
		}
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name       string
		prev, next []string
		want       Change
	}{
		{"identical", []string{"a", "b"}, []string{"a", "b"}, Change{Stable: 2}},
		{"tail grows", []string{"a", "b"}, []string{"a", "bc"}, Change{Stable: 1, Changed: []int{1}}},
		{"new block", []string{"a", "b\n\n"}, []string{"a", "b\n\n", "c"}, Change{Stable: 2, Changed: []int{2}}},
		{"shrinks", []string{"a", "b", "c"}, []string{"x"}, Change{Changed: []int{0}, Removed: 2}},
		{"from empty", nil, []string{"a"}, Change{Changed: []int{0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Diff(tt.prev, tt.next); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Diff() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
