package cogs

import "regexp"

var nonBlankLines = regexp.MustCompile(`(?m)^\s*\S+.*$`)

// suffixLines appends suffix to every line of text that has non-whitespace
// content. Blank lines stay untouched.
func suffixLines(text, suffix string) string {
	if suffix == "" {
		return text
	}
	return nonBlankLines.ReplaceAllStringFunc(text, func(line string) string {
		return line + suffix
	})
}
