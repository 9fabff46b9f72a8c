package sums

import (
	"errors"
	"regexp"
	"strings"
)

// Kind is the format of an end-line annotation.
type Kind int

const (
	KindNone Kind = iota
	KindHex       // legacy: (checksum: <32 hex>)
	KindShort     // current: (sum: <10 base64>)
)

// ErrEdited reports that a protected output section no longer matches its
// recorded annotation.
var ErrEdited = errors.New("output has been edited")

// Handler recognizes and rewrites the checksum annotation on end-output
// lines. Both the legacy hex format and the current short base64 format are
// read; new annotations are written in the current format unless an existing
// one is being preserved.
type Handler struct {
	endOutput string
	pattern   *regexp.Regexp
}

func NewHandler(endOutput string) *Handler {
	pattern := regexp.MustCompile(
		regexp.QuoteMeta(endOutput) +
			`( *\((?:checksum: ([a-f0-9]{32})|sum: ([A-Za-z0-9+/]{10}))\))`,
	)
	return &Handler{
		endOutput: endOutput,
		pattern:   pattern,
	}
}

// Extract parses an existing annotation, reporting which format it is in.
func (h *Handler) Extract(line string) (Kind, string) {
	m := h.pattern.FindStringSubmatch(line)
	if m == nil {
		return KindNone, ""
	}
	if m[2] != "" {
		return KindHex, m[2]
	}
	return KindShort, m[3]
}

// Validate checks the annotation on line, if any, against expected. The
// comparison happens in the annotation's own format, so legacy files keep
// validating after the write format changed. A line with no annotation
// always validates.
func (h *Handler) Validate(line string, expected Digest) error {
	kind, value := h.Extract(line)
	switch kind {
	case KindHex:
		if value != expected.Hex() {
			return ErrEdited
		}
	case KindShort:
		if value != expected.Short() {
			return ErrEdited
		}
	}
	return nil
}

// FormatEndLine rewrites the end-output line. With add false, any existing
// annotation is stripped. With add true a new annotation carrying digest is
// written, replacing an existing one exactly once or inserted right after
// the end-output token; preserve keeps the format of an existing annotation
// instead of upgrading it.
func (h *Handler) FormatEndLine(line string, digest Digest, add bool, preserve bool) string {
	m := h.pattern.FindStringSubmatchIndex(line)

	if !add {
		if m == nil {
			return line
		}
		// strip the annotation section, keep the token
		return line[:m[2]] + line[m[3]:]
	}

	var annotated string
	if preserve && m != nil {
		kind, _ := h.Extract(line)
		if kind == KindHex {
			annotated = h.endOutput + " (checksum: " + digest.Hex() + ")"
		} else {
			annotated = h.endOutput + " (sum: " + digest.Short() + ")"
		}
	} else {
		annotated = h.endOutput + " (sum: " + digest.Short() + ")"
	}

	if m != nil {
		return line[:m[0]] + annotated + line[m[1]:]
	}
	return strings.Replace(line, h.endOutput, annotated, 1)
}
