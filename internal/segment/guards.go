package segment

import (
	"regexp"
	"strings"
)

// Boundary guards. These are heuristics over token text, not grammars; the
// exact match rules are part of the segmenter's contract.

var (
	// footnoteLabel matches "[^id]" where id is 1-200 characters containing
	// neither "]" nor whitespace.
	footnoteLabel = regexp.MustCompile(`\[\^[^\]\s]{1,200}\]`)

	// footnoteDefinition is a footnote label directly followed by ":".
	footnoteDefinition = regexp.MustCompile(`\[\^[^\]\s]{1,200}\]:`)

	// openingTag captures the first tag name opened in a token: "<name"
	// followed by whitespace or ">". Closing tags never match ("</" is not
	// a word character).
	openingTag = regexp.MustCompile(`<(\w+)[\s>]`)

	// closingTag captures the first "</name>" in a token.
	closingTag = regexp.MustCompile(`</(\w+)>`)
)

// hasFootnoteReference reports a footnote label that is not immediately
// followed by ":".
func hasFootnoteReference(s string) bool {
	for _, loc := range footnoteLabel.FindAllStringIndex(s, -1) {
		if loc[1] == len(s) || s[loc[1]] != ':' {
			return true
		}
	}
	return false
}

func hasFootnoteDefinition(s string) bool {
	return footnoteDefinition.MatchString(s)
}

// hasFootnotes is the whole-document guard: references and definitions may be
// arbitrarily far apart, so a document containing either is never split.
func hasFootnotes(s string) bool {
	return hasFootnoteReference(s) || hasFootnoteDefinition(s)
}

// unclosedTag returns the tag name a block-level html token opens without
// closing it in the same token.
func unclosedTag(raw string) (string, bool) {
	m := openingTag.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	if strings.Contains(raw, "</"+m[1]+">") {
		return "", false
	}
	return m[1], true
}

// closedTag returns the name of the first closing tag in raw.
func closedTag(raw string) (string, bool) {
	m := closingTag.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// insideMath reports whether prev looks like an unterminated display math
// block: it starts with "$" once leading whitespace is trimmed and holds an
// odd number of non-overlapping "$$" occurrences.
func insideMath(prev string) bool {
	if !strings.HasPrefix(strings.TrimSpace(prev), "$") {
		return false
	}
	return strings.Count(prev, "$$")%2 == 1
}

// closesMath reports whether the token cur belongs to the math block left
// open by prev. Two shapes qualify: a token that is exactly "$" once trimmed,
// and a token that ends with "$", does not start with "$" and holds exactly
// one "$$".
func closesMath(prev, cur string) bool {
	if !insideMath(prev) {
		return false
	}
	trimmed := strings.TrimSpace(cur)
	if trimmed == "$" {
		return true
	}
	return strings.HasSuffix(trimmed, "$") &&
		!strings.HasPrefix(trimmed, "$") &&
		strings.Count(cur, "$$") == 1
}
