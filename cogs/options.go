package cogs

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Markers are the three tokens bounding a code region. Lines are classified
// by substring containment; the end token is suppressed on lines that also
// carry the end-output token.
type Markers struct {
	Begin     string
	End       string
	EndOutput string
}

func (m Markers) Validate() error {
	if m.Begin == "" || m.End == "" || m.EndOutput == "" {
		return &UsageError{Msg: "marker tokens must be non-empty"}
	}
	if m.Begin == m.End || m.Begin == m.EndOutput || m.End == m.EndOutput {
		return &UsageError{Msg: "marker tokens must be distinct"}
	}
	return nil
}

// ParseMarkers parses a "BEGIN END END-OUTPUT" spec string.
func ParseMarkers(spec string) (Markers, error) {
	parts := strings.Split(spec, " ")
	if len(parts) != 3 {
		return Markers{}, &UsageError{
			Msg: fmt.Sprintf("-markers requires 3 values separated by spaces, could not parse %q", spec),
		}
	}
	markers := Markers{
		Begin:     parts[0],
		End:       parts[1],
		EndOutput: parts[2],
	}
	if err := markers.Validate(); err != nil {
		return Markers{}, err
	}
	return markers, nil
}

// Options is the flat configuration record for one run. Sub-runs (file-list
// lines) refine clones; a baseline Options is never mutated by them.
type Options struct {
	DeleteCode      bool
	HashOutput      bool
	Suffix          string
	NoGenerate      bool
	EofCanBeEnd     bool
	Prologue        string
	PrintCapture    bool
	Encoding        string
	UnixNewlines    bool
	Defines         map[string]any
	Markers         Markers
	Verbosity       int
	WarnEmpty       bool
	OutputName      string
	Replace         bool
	Check           bool
	MakeWritableCmd string
	IncludePath     []string
	Jobs            int
	Safe            bool
}

func NewOptions() *Options {
	return &Options{
		Encoding:  "utf-8",
		Defines:   make(map[string]any),
		Verbosity: 2,
		Jobs:      1,
		Markers: Markers{
			Begin:     "[[[cog",
			End:       "]]]",
			EndOutput: "[[[end]]]",
		},
	}
}

func (o *Options) Clone() *Options {
	clone := *o
	clone.Defines = maps.Clone(o.Defines)
	clone.IncludePath = slices.Clone(o.IncludePath)
	return &clone
}

func (o *Options) Validate() error {
	if o.Replace && o.DeleteCode {
		return &UsageError{Msg: "can't use -delete with -replace (or you would delete all your source)"}
	}
	if o.Replace && o.OutputName != "" {
		return &UsageError{Msg: "can't use -out with -replace (they are opposites)"}
	}
	return o.Markers.Validate()
}
