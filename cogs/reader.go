package cogs

import (
	"bufio"
	"io"
	"strings"
)

// numberedReader reads one line at a time, counting lines as it goes so
// errors can cite 1-based positions. Line endings are normalized to LF.
type numberedReader struct {
	r *bufio.Reader
	n int
}

func newNumberedReader(r io.Reader) *numberedReader {
	return &numberedReader{
		r: bufio.NewReader(r),
	}
}

// readLine returns the next line including its trailing newline, or "" at
// end of input.
func (r *numberedReader) readLine() string {
	line, err := r.r.ReadString('\n')
	if line == "" {
		_ = err
		return ""
	}
	r.n++
	if strings.HasSuffix(line, "\n") {
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		line += "\n"
	}
	return line
}

func (r *numberedReader) lineNumber() int {
	return r.n
}
