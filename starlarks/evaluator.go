package starlarks

import (
	"github.com/reusee/dscope"
	"github.com/reusee/starcog/snippets"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

type Module struct {
	dscope.Module
}

// Evaluator runs snippets as Starlark programs.
type Evaluator struct {
	config snippets.Config
	opts   *syntax.FileOptions
}

var _ snippets.Evaluator = new(Evaluator)

func New(config snippets.Config) *Evaluator {
	return &Evaluator{
		config: config,
		opts:   fileOptions(),
	}
}

func (Module) NewEvaluator() snippets.NewEvaluator {
	return func(config snippets.Config) snippets.Evaluator {
		return New(config)
	}
}

// fileOptions makes snippets as Python-like as Starlark allows.
func fileOptions() *syntax.FileOptions {
	return &syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
		Recursion:       true,
	}
}

func (e *Evaluator) NewNamespace(defines map[string]any) snippets.Namespace {
	ns := &Namespace{
		ev:      e,
		globals: make(starlark.StringDict, len(defines)),
		modules: make(map[string]*loadEntry),
	}
	for name, value := range defines {
		ns.globals[name] = toStarlarkValue(value)
	}
	return ns
}
