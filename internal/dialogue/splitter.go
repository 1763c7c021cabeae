package dialogue

import (
	"iter"
	"strings"
)

// Utterances yields the non-empty trimmed lines of a raw text block, in
// order. The sequence is lazy and restartable; any input, including the
// empty string, yields a (possibly empty) sequence.
func Utterances(raw string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range strings.Lines(raw) {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if !yield(trimmed) {
				return
			}
		}
	}
}
