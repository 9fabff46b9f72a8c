package filelists

import (
	"iter"
	"strings"
)

// Lines yields the fields of each non-empty line of a file list.
// Lines holding only a comment yield nothing. A malformed line yields
// its error and ends the sequence.
func Lines(content string) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for _, line := range strings.Split(content, "\n") {
			fields, err := SplitFields(strings.TrimRight(line, "\r"))
			if err != nil {
				yield(nil, err)
				return
			}
			if len(fields) == 0 {
				continue
			}
			if !yield(fields, nil) {
				return
			}
		}
	}
}
