package starlarks

import (
	"os"

	"github.com/reusee/starcog/logs"
	"github.com/reusee/starcog/snippets"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
)

type RunREPL func(defines map[string]any)

// RunREPL starts an interactive session with the same language options as
// file processing. The cog value is present; emitted text goes to stdout.
func (Module) RunREPL(
	logger logs.Logger,
) RunREPL {
	return func(defines map[string]any) {
		ch := &snippets.Channel{
			Messages: os.Stderr,
		}

		predeclared := make(starlark.StringDict, len(defines)+8)
		for name, value := range defines {
			predeclared[name] = toStarlarkValue(value)
		}
		declareChannel(predeclared, ch)

		flush := func() {
			if out := ch.Output(); out != "" {
				os.Stdout.WriteString(out)
				ch.SetOutput("")
			}
		}

		thread := &starlark.Thread{
			Name: "repl",
			Print: func(_ *starlark.Thread, msg string) {
				flush()
				os.Stdout.WriteString(msg + "\n")
			},
		}
		defer flush()

		logger.Info("repl", "globals", len(predeclared))
		repl.REPLOptions(fileOptions(), thread, predeclared)
		flush()
	}
}
