package snippets

import (
	"context"
	"fmt"
	"strings"

	"github.com/reusee/starcog/whites"
)

// Generator accumulates the marker and code lines of one code region,
// extracts runnable source from them, and evaluates it. One Generator
// serves exactly one region.
type Generator struct {
	begin   string
	end     string
	markers []string
	lines   []string
}

func NewGenerator(begin, end string) *Generator {
	return &Generator{
		begin: begin,
		end:   end,
	}
}

func (g *Generator) RecordMarker(line string) {
	g.markers = append(g.markers, line)
}

func (g *Generator) RecordCodeLine(line string) {
	g.lines = append(g.lines, strings.Trim(line, "\n"))
}

// ExtractCode returns the region's code, stripped of any comment prefix the
// markers and code lines share, reindented to column zero. The marker
// tokens themselves are removed from the marker lines first so surrounding
// text like "#if 0 //[[[cog" cannot poison prefix detection.
func (g *Generator) ExtractCode() string {
	markers := make([]string, len(g.markers))
	for i, m := range g.markers {
		m = strings.Replace(m, g.begin, "", 1)
		m = strings.Replace(m, g.end, "", 1)
		markers[i] = strings.Trim(m, "\n")
	}

	lines := g.lines
	prefix := whites.CommonPrefix(append(append([]string{}, markers...), lines...))
	if prefix != "" {
		stripped := make([]string, len(lines))
		for i, l := range lines {
			stripped[i] = strings.Replace(l, prefix, "", 1)
		}
		lines = stripped
	}

	if len(lines) == 0 {
		return ""
	}
	return whites.ReindentLines(lines, "")
}

// Evaluate runs the region's code against ns, capturing output through ch.
// The result is re-indented to the markers' own whitespace prefix and is
// guaranteed to end in a newline so it never merges with the end-output
// line. An empty region is a legal no-op.
func (g *Generator) Evaluate(ctx context.Context, ns Namespace, ch *Channel, prologue string) (string, error) {
	prefOut := whites.WhitePrefix(g.markers)

	code := g.ExtractCode()
	if code == "" {
		return "", nil
	}

	unit := Unit{
		Name:      fmt.Sprintf("<cog %s:%d>", ch.InFile, ch.FirstLineNumber),
		Prologue:  prologue,
		Code:      code,
		File:      ch.InFile,
		FirstLine: ch.FirstLineNumber,
	}
	if err := ns.Run(ctx, unit, ch); err != nil {
		return "", err
	}

	out := ch.Output()
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return whites.Reindent(out, prefOut), nil
}
