package starlarks

import (
	"github.com/reusee/starcog/snippets"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// declareChannel exposes the side channel to snippet code: a "cog" module
// plus flat cog_* aliases of the same builtins, so one-line regions stay
// terse.
func declareChannel(predeclared starlark.StringDict, ch *snippets.Channel) {
	emit := emitBuiltin("emit", ch, false)
	emitLine := emitBuiltin("emit_line", ch, true)
	message := messageBuiltin(ch)
	errorFn := errorBuiltin()

	predeclared["cog"] = &starlarkstruct.Module{
		Name: "cog",
		Members: starlark.StringDict{
			"emit":              emit,
			"emit_line":         emitLine,
			"message":           message,
			"error":             errorFn,
			"previous_output":   starlark.String(ch.PreviousOutput),
			"first_line_number": starlark.MakeInt(ch.FirstLineNumber),
			"in_file":           starlark.String(ch.InFile),
			"out_file":          starlark.String(ch.OutFile),
		},
	}
	predeclared["cog_emit"] = emit
	predeclared["cog_emit_line"] = emitLine
	predeclared["cog_message"] = message
	predeclared["cog_error"] = errorFn
}

func emitBuiltin(name string, ch *snippets.Channel, line bool) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(
		thread *starlark.Thread,
		b *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		var text string
		var dedent, trimBlankLines bool
		if err := starlark.UnpackArgs(b.Name(), args, kwargs,
			"text?", &text,
			"dedent?", &dedent,
			"trim_blank_lines?", &trimBlankLines,
		); err != nil {
			return nil, err
		}
		if line {
			ch.EmitLine(text, dedent, trimBlankLines)
		} else {
			ch.Emit(text, dedent, trimBlankLines)
		}
		return starlark.None, nil
	})
}

func messageBuiltin(ch *snippets.Channel) *starlark.Builtin {
	return starlark.NewBuiltin("message", func(
		thread *starlark.Thread,
		b *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		var text string
		if err := starlark.UnpackArgs(b.Name(), args, kwargs,
			"text", &text,
		); err != nil {
			return nil, err
		}
		ch.Message(text)
		return starlark.None, nil
	})
}

func errorBuiltin() *starlark.Builtin {
	return starlark.NewBuiltin("error", func(
		thread *starlark.Thread,
		b *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		msg := "error raised by generator"
		if err := starlark.UnpackArgs(b.Name(), args, kwargs,
			"message?", &msg,
		); err != nil {
			return nil, err
		}
		return nil, &snippets.GeneratedError{
			Msg: msg,
		}
	})
}
