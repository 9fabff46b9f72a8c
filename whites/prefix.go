package whites

// WhitePrefix returns the whitespace prefix common to all non-blank lines.
// Blank lines are ignored. Returns the zero value if there are no non-blank
// lines.
func WhitePrefix[T Text](lines []T) T {
	var nonBlank []T
	for _, line := range lines {
		if !isBlank(line) {
			nonBlank = append(nonBlank, line)
		}
	}

	var zero T
	if len(nonBlank) == 0 {
		return zero
	}

	// the leading whitespace run of the first line is the best we can hope for
	first := nonBlank[0]
	n := 0
	for n < len(first) && isSpace(first[n]) {
		n++
	}
	prefix := first[:n]

	for _, line := range nonBlank {
		for i := range len(prefix) {
			if i >= len(line) || prefix[i] != line[i] {
				prefix = prefix[:i]
				break
			}
		}
	}
	return prefix
}

// CommonPrefix returns the longest prefix shared by all strings. Any empty
// string in the input forces an empty result, so a bare blank line inside an
// otherwise-prefixed block disables prefix stripping entirely.
func CommonPrefix[T Text](strs []T) T {
	var zero T
	if len(strs) == 0 {
		return zero
	}
	prefix := strs[0]
	for _, s := range strs {
		if len(s) < len(prefix) {
			prefix = prefix[:len(s)]
		}
		if len(prefix) == 0 {
			return zero
		}
		for i := range len(prefix) {
			if prefix[i] != s[i] {
				prefix = prefix[:i]
				break
			}
		}
	}
	return prefix
}
