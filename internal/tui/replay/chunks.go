package replay

import (
	"math/rand"
	"unicode/utf8"
)

// Chunks cuts text into deltas of minSize to maxSize bytes, the way a model
// streams tokens. Cuts never fall inside a UTF-8 sequence, so a chunk may run
// a few bytes past maxSize; grapheme clusters, on the other hand, are split
// freely.
func Chunks(text string, minSize, maxSize int, rng *rand.Rand) []string {
	if text == "" {
		return nil
	}
	if minSize < 1 {
		minSize = 1
	}
	if maxSize < minSize {
		maxSize = minSize
	}

	var chunks []string
	for len(text) > 0 {
		n := minSize
		if maxSize > minSize {
			n += rng.Intn(maxSize - minSize + 1)
		}
		if n >= len(text) {
			chunks = append(chunks, text)
			break
		}
		for n < len(text) && !utf8.RuneStart(text[n]) {
			n++
		}
		chunks = append(chunks, text[:n])
		text = text[n:]
	}
	return chunks
}
