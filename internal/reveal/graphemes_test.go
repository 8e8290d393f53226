package reveal

import (
	"strings"
	"testing"
)

func TestGraphemes(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"abc", []string{"a", "b", "c"}},
		{"e\u0301x", []string{"e\u0301", "x"}},
		{"\U0001F1EF\U0001F1F5!", []string{"\U0001F1EF\U0001F1F5", "!"}},
		{"\r\n", []string{"\r\n"}},
		{"\U0001F469\u200d\U0001F4BB ok", []string{"\U0001F469\u200d\U0001F4BB", " ", "o", "k"}},
	}
	for _, tt := range tests {
		got := Graphemes(tt.input)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Errorf("Graphemes(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestJoinsAcross(t *testing.T) {
	tests := []struct {
		tail, head string
		want       bool
	}{
		{"e", "\u0301", true},
		{"\r", "\n", true},
		{"\U0001F1EF", "\U0001F1F5", true},
		{"\U0001F468\u200d", "\U0001F469", true},
		{"a", "b", false},
		{"", "a", false},
		{"a", "", false},
	}
	for _, tt := range tests {
		if got := joinsAcross(tt.tail, tt.head); got != tt.want {
			t.Errorf("joinsAcross(%q, %q) = %v, want %v", tt.tail, tt.head, got, tt.want)
		}
	}
}
