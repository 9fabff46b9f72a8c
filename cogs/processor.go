package cogs

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/reusee/starcog/snippets"
	"github.com/reusee/starcog/sums"
)

// processFile drives the line-by-line scan of one input: copy lines until a
// begin marker, collect the code block, eat the previous output while
// hashing it, regenerate, then rewrite the end-output line.
func (c *Cog) processFile(
	ctx context.Context,
	in io.Reader,
	out io.Writer,
	fileNameIn string,
	fileNameOut string,
	ns snippets.Namespace,
) error {

	o := c.Options
	markers := o.Markers
	handler := sums.NewHandler(markers.EndOutput)

	isBegin := func(line string) bool {
		return strings.Contains(line, markers.Begin)
	}
	isEndOutput := func(line string) bool {
		return strings.Contains(line, markers.EndOutput)
	}
	isEndSpec := func(line string) bool {
		return strings.Contains(line, markers.End) && !isEndOutput(line)
	}

	write := func(text string) error {
		_, err := io.WriteString(out, text)
		return err
	}

	reader := newNumberedReader(in)
	sawRegion := false

	line := reader.readLine()
	for line != "" {

		// copy lines until the next begin marker
		for line != "" && !isBegin(line) {
			if isEndSpec(line) {
				return &StructureError{
					File: fileNameIn,
					Line: reader.lineNumber(),
					Msg:  fmt.Sprintf("unexpected %q", markers.End),
				}
			}
			if isEndOutput(line) {
				return &StructureError{
					File: fileNameIn,
					Line: reader.lineNumber(),
					Msg:  fmt.Sprintf("unexpected %q", markers.EndOutput),
				}
			}
			if err := write(line); err != nil {
				return err
			}
			line = reader.readLine()
		}
		if line == "" {
			break
		}
		if !o.DeleteCode {
			if err := write(line); err != nil {
				return err
			}
		}

		gen := snippets.NewGenerator(markers.Begin, markers.End)
		gen.RecordMarker(line)
		firstLine := reader.lineNumber()

		if isEndSpec(line) {
			// single-line form: code between the two tokens on one line
			beg := strings.Index(line, markers.Begin)
			end := strings.Index(line, markers.End)
			if beg > end {
				return &StructureError{
					File: fileNameIn,
					Line: firstLine,
					Msg:  "code markers inverted",
				}
			}
			gen.RecordCodeLine(strings.TrimSpace(line[beg+len(markers.Begin) : end]))

		} else {
			// block form: collect code lines until the end marker
			line = reader.readLine()
			for line != "" && !isEndSpec(line) {
				if isBegin(line) {
					return &StructureError{
						File: fileNameIn,
						Line: reader.lineNumber(),
						Msg:  fmt.Sprintf("unexpected %q", markers.Begin),
					}
				}
				if isEndOutput(line) {
					return &StructureError{
						File: fileNameIn,
						Line: reader.lineNumber(),
						Msg:  fmt.Sprintf("unexpected %q", markers.EndOutput),
					}
				}
				if !o.DeleteCode {
					if err := write(line); err != nil {
						return err
					}
				}
				gen.RecordCodeLine(line)
				line = reader.readLine()
			}
			if line == "" {
				return &StructureError{
					File: fileNameIn,
					Line: firstLine,
					Msg:  "code block begun but never ended",
				}
			}
			if !o.DeleteCode {
				if err := write(line); err != nil {
					return err
				}
			}
			gen.RecordMarker(line)
		}

		line = reader.readLine()

		// eat the previous output, hashing it as we go
		var previous []string
		for line != "" && !isEndOutput(line) {
			if isBegin(line) {
				return &StructureError{
					File: fileNameIn,
					Line: reader.lineNumber(),
					Msg:  fmt.Sprintf("unexpected %q", markers.Begin),
				}
			}
			if isEndSpec(line) {
				return &StructureError{
					File: fileNameIn,
					Line: reader.lineNumber(),
					Msg:  fmt.Sprintf("unexpected %q", markers.End),
				}
			}
			previous = append(previous, line)
			line = reader.readLine()
		}
		oldDigest := sums.SumLines(previous)

		if line == "" && !o.EofCanBeEnd {
			return &StructureError{
				File: fileNameIn,
				Line: reader.lineNumber(),
				Msg:  fmt.Sprintf("missing %q before end of file", markers.EndOutput),
			}
		}

		// skipping generation leaves an empty output region, so the
		// recorded digest must be the digest of no bytes
		newDigest := sums.Sum(nil)
		if !o.NoGenerate {
			ch := &snippets.Channel{
				Messages:        c.Stdout,
				PreviousOutput:  strings.Join(previous, ""),
				FirstLineNumber: firstLine,
				InFile:          fileNameIn,
				OutFile:         fileNameOut,
			}
			generated, err := gen.Evaluate(ctx, ns, ch, o.Prologue)
			if err != nil {
				return err
			}
			generated = suffixLines(generated, o.Suffix)
			newDigest = sums.Sum([]byte(generated))
			if err := write(generated); err != nil {
				return err
			}
		}

		sawRegion = true

		if line != "" {
			if o.HashOutput {
				if err := handler.Validate(line, oldDigest); err != nil {
					return &TamperError{
						File: fileNameIn,
						Line: reader.lineNumber(),
					}
				}
				// check mode preserves an existing annotation format so a
				// dry run never reports a format-only change
				line = handler.FormatEndLine(line, newDigest, true, o.Check)
			} else {
				line = handler.FormatEndLine(line, newDigest, false, false)
			}
			if !o.DeleteCode {
				if err := write(line); err != nil {
					return err
				}
			}
			line = reader.readLine()
		}
	}

	if !sawRegion && o.WarnEmpty {
		fmt.Fprintf(c.Stdout, "Warning: no generator code found in %s\n", fileNameIn)
	}
	return nil
}

// ProcessString runs the state machine over input and returns the blended
// output, with a fresh namespace for the pseudo-file name.
func (c *Cog) ProcessString(ctx context.Context, input string, name string) (string, error) {
	ns := c.newNamespace(name)
	return c.processString(ctx, input, name, ns)
}

func (c *Cog) processString(ctx context.Context, input string, name string, ns snippets.Namespace) (string, error) {
	var buf strings.Builder
	err := c.processFile(ctx, strings.NewReader(input), &buf, name, name, ns)
	return buf.String(), err
}
