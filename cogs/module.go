package cogs

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"

	"github.com/reusee/dscope"
	"github.com/reusee/starcog/logs"
	"github.com/reusee/starcog/snippets"
)

type Module struct {
	dscope.Module
}

// Cog processes files. One Cog owns its sinks for the duration of one file;
// concurrent file processing goes through per-file copies.
type Cog struct {
	Options *Options
	Stdout  io.Writer
	Stderr  io.Writer

	logger       logs.Logger
	newSpan      logs.NewSpan
	newEvaluator snippets.NewEvaluator
	checkFailed  *atomic.Int64
}

type New func(options *Options) *Cog

func (Module) New(
	logger logs.Logger,
	newSpan logs.NewSpan,
	newEvaluator snippets.NewEvaluator,
) New {
	return func(options *Options) *Cog {
		return &Cog{
			Options:      options,
			Stdout:       os.Stdout,
			Stderr:       os.Stderr,
			logger:       logger,
			newSpan:      newSpan,
			newEvaluator: newEvaluator,
			checkFailed:  new(atomic.Int64),
		}
	}
}

// forFile returns a copy safe for one concurrent file: its own options so
// file-list refinement cannot race, sharing only the check-failure counter.
func (c *Cog) forFile() *Cog {
	clone := *c
	clone.Options = c.Options.Clone()
	return &clone
}

// newNamespace builds an isolated execution namespace for one file, with
// the global defines injected first and the file's own directory on the
// include path.
func (c *Cog) newNamespace(file string) snippets.Namespace {
	includePath := slices.Clone(c.Options.IncludePath)
	includePath = append(includePath, filepath.Dir(file))
	evaluator := c.newEvaluator(snippets.Config{
		IncludePath:  includePath,
		PrintCapture: c.Options.PrintCapture,
	})
	return evaluator.NewNamespace(c.Options.Defines)
}
