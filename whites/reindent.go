package whites

// Reindent strips the common whitespace prefix from every line of text and
// prepends newIndent to every non-empty line. Blank lines stay blank.
func Reindent[T Text](text T, newIndent T) T {
	return ReindentLines(splitLines(text), newIndent)
}

// ReindentLines is Reindent over a pre-split block of lines.
func ReindentLines[T Text](lines []T, newIndent T) T {
	oldIndent := WhitePrefix(lines)
	out := make([]T, 0, len(lines))
	for _, line := range lines {
		if len(oldIndent) > 0 {
			line = removeFirst(line, oldIndent)
		}
		if len(line) > 0 && len(newIndent) > 0 {
			buf := make([]byte, 0, len(newIndent)+len(line))
			buf = append(buf, []byte(newIndent)...)
			buf = append(buf, []byte(line)...)
			line = T(buf)
		}
		out = append(out, line)
	}
	return joinLines(out)
}

// removeFirst deletes the first occurrence of sub from s, wherever it is.
func removeFirst[T Text](s, sub T) T {
	i := index(s, sub)
	if i < 0 {
		return s
	}
	buf := make([]byte, 0, len(s)-len(sub))
	buf = append(buf, []byte(s[:i])...)
	buf = append(buf, []byte(s[i+len(sub):])...)
	return T(buf)
}
