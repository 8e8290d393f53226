package reveal

import "github.com/rivo/uniseg"

// Graphemes splits s into extended grapheme clusters, the smallest units the
// scheduler reveals. Emoji sequences and combining marks stay whole.
func Graphemes(s string) []string {
	if s == "" {
		return nil
	}
	units := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		units = append(units, cluster)
	}
	return units
}

// joinsAcross reports whether tail and the start of head form a single
// cluster, as when a delta boundary falls inside a ZWJ sequence or before a
// combining mark.
func joinsAcross(tail, head string) bool {
	if tail == "" || head == "" {
		return false
	}
	first, _, _, _ := uniseg.FirstGraphemeClusterInString(tail+head, -1)
	return len(first) > len(tail)
}
