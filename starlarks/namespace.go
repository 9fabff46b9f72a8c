package starlarks

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/reusee/starcog/snippets"
	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Namespace holds one file's Starlark globals. Values assigned by one
// region are predeclared for the next, which gives regions of the same file
// a shared scope without any process-wide registry.
type Namespace struct {
	ev      *Evaluator
	globals starlark.StringDict
	modules map[string]*loadEntry
}

var _ snippets.Namespace = new(Namespace)

func (n *Namespace) Run(ctx context.Context, unit snippets.Unit, ch *snippets.Channel) error {
	predeclared := make(starlark.StringDict, len(n.globals)+8)
	maps.Copy(predeclared, n.globals)
	declareChannel(predeclared, ch)

	source := unit.Code
	if unit.Prologue != "" {
		source = unit.Prologue + "\n" + unit.Code
	}

	var printBuf strings.Builder
	thread := &starlark.Thread{
		Name: unit.Name,
		Load: n.load,
	}
	if n.ev.config.PrintCapture {
		thread.Print = func(_ *starlark.Thread, msg string) {
			printBuf.WriteString(msg)
			printBuf.WriteByte('\n')
		}
	} else {
		thread.Print = func(_ *starlark.Thread, msg string) {
			if ch.Messages != nil {
				fmt.Fprintln(ch.Messages, msg)
			}
		}
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	globals, err := starlark.ExecFileOptions(n.ev.opts, thread, unit.Name, source, predeclared)
	if err != nil {
		return runError(err, unit)
	}
	maps.Copy(n.globals, globals)

	if n.ev.config.PrintCapture {
		ch.SetOutput(printBuf.String())
	}
	return nil
}

func runError(err error, unit snippets.Unit) error {
	// an explicit error() call passes through undecorated
	var genErr *snippets.GeneratedError
	if errors.As(err, &genErr) {
		return genErr
	}

	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		frames := make([]snippets.Frame, 0, len(evalErr.CallStack))
		for _, fr := range evalErr.CallStack {
			frames = append(frames, snippets.Frame{
				File: fr.Pos.Filename(),
				Line: int(fr.Pos.Line),
				Func: fr.Name,
			})
		}
		return &snippets.SnippetError{
			Frames:  snippets.RemapFrames(frames, unit),
			Message: evalErr.Msg,
		}
	}

	// resolve and syntax errors carry structured positions against the
	// synthetic source name, remap them the same way as tracebacks
	var resolveErrs resolve.ErrorList
	if errors.As(err, &resolveErrs) && len(resolveErrs) > 0 {
		frames := make([]snippets.Frame, 0, len(resolveErrs))
		for _, e := range resolveErrs {
			frames = append(frames, snippets.Frame{
				File: e.Pos.Filename(),
				Line: int(e.Pos.Line),
				Func: "<toplevel>",
			})
		}
		return &snippets.SnippetError{
			Frames:  snippets.RemapFrames(frames, unit),
			Message: resolveErrs[0].Msg,
		}
	}
	var syntaxErr syntax.Error
	if errors.As(err, &syntaxErr) {
		frames := []snippets.Frame{{
			File: syntaxErr.Pos.Filename(),
			Line: int(syntaxErr.Pos.Line),
			Func: "<toplevel>",
		}}
		return &snippets.SnippetError{
			Frames:  snippets.RemapFrames(frames, unit),
			Message: syntaxErr.Msg,
		}
	}

	return &snippets.SnippetError{
		Message: err.Error(),
	}
}
