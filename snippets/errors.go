package snippets

import (
	"fmt"
	"strings"
)

// GeneratedError is raised by an explicit error() call in snippet code. It
// is shown to the user without a traceback.
type GeneratedError struct {
	Msg string
}

func (e *GeneratedError) Error() string {
	return e.Msg
}

// Frame is one entry of a snippet traceback, already mapped to a meaningful
// source location.
type Frame struct {
	File   string
	Line   int
	Func   string
	Source string
}

// SnippetError is any other failure escaping snippet execution, carrying a
// traceback remapped across the prologue boundary.
type SnippetError struct {
	Frames  []Frame
	Message string
}

func (e *SnippetError) Error() string {
	return e.Message
}

func (e *SnippetError) Traceback() string {
	var b strings.Builder
	for _, f := range e.Frames {
		fmt.Fprintf(&b, "  File %q, line %d, in %s\n", f.File, f.Line, f.Func)
		if f.Source != "" {
			fmt.Fprintf(&b, "    %s\n", f.Source)
		}
	}
	b.WriteString(e.Message)
	b.WriteString("\n")
	return b.String()
}
