package snippets

import (
	"fmt"
	"io"
	"strings"

	"github.com/reusee/starcog/whites"
)

// Channel is the side channel handed to an executing snippet. It collects
// the snippet's output and carries the per-region state the snippet may
// inspect. One Channel serves exactly one evaluation.
type Channel struct {
	Messages        io.Writer
	PreviousOutput  string
	FirstLineNumber int
	InFile          string
	OutFile         string

	buf strings.Builder
}

func (c *Channel) Emit(text string, dedent bool, trimBlankLines bool) {
	if trimBlankLines && strings.Contains(text, "\n") {
		lines := strings.Split(text, "\n")
		if strings.TrimSpace(lines[0]) == "" {
			lines = lines[1:]
		}
		if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
			lines = lines[:len(lines)-1]
		}
		text = strings.Join(lines, "\n") + "\n"
	}
	if dedent {
		text = whites.Reindent(text, "")
	}
	c.buf.WriteString(text)
}

func (c *Channel) EmitLine(text string, dedent bool, trimBlankLines bool) {
	c.Emit(text, dedent, trimBlankLines)
	c.buf.WriteByte('\n')
}

func (c *Channel) Message(text string) {
	if c.Messages == nil {
		return
	}
	fmt.Fprintf(c.Messages, "Message: %s\n", text)
}

func (c *Channel) Output() string {
	return c.buf.String()
}

// SetOutput replaces the accumulated output. Print-capture mode uses it to
// substitute the captured print stream for the emit buffer.
func (c *Channel) SetOutput(text string) {
	c.buf.Reset()
	c.buf.WriteString(text)
}
