package snippets

import "context"

// Unit is one compiled-and-run source unit: the caller-supplied prologue
// followed by the code extracted from a region.
type Unit struct {
	// Name is the synthetic source name, "<cog file:line>".
	Name      string
	Prologue  string
	Code      string
	File      string
	FirstLine int
}

// Namespace is a mutable variable scope. It is shared across all regions of
// one file and never across files.
type Namespace interface {
	Run(ctx context.Context, unit Unit, ch *Channel) error
}

// Evaluator is the embedded-language backend. It is the one deliberate
// swap point between the file-rewriting machinery and the interpreter.
type Evaluator interface {
	NewNamespace(defines map[string]any) Namespace
}

type Config struct {
	IncludePath  []string
	PrintCapture bool
}

// NewEvaluator constructs a backend for one file's processing.
type NewEvaluator func(config Config) Evaluator
