package cogs

import "fmt"

// UsageError is a malformed configuration, reported before any file is
// touched.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// StructureError is a malformed marker arrangement inside a file:
// unexpected, missing, or inverted markers, or an unterminated block.
type StructureError struct {
	File string
	Line int
	Msg  string
}

func (e *StructureError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s(%d): %s", e.File, e.Line, e.Msg)
	}
	return e.Msg
}

// TamperError reports a checksum mismatch on a protected output section.
type TamperError struct {
	File string
	Line int
}

func (e *TamperError) Error() string {
	return fmt.Sprintf("%s(%d): output has been edited! delete old checksum to unprotect", e.File, e.Line)
}

// CheckFailedError aggregates files that would change under check mode. It
// is raised once, at the end of a run.
type CheckFailedError struct {
	Count int
}

func (e *CheckFailedError) Error() string {
	return fmt.Sprintf("Check failed. %d file(s) would change.", e.Count)
}
