package filelists

import (
	"fmt"
	"strings"
)

// SplitFields splits one line of a file list into fields. Single and
// double quotes group characters, including whitespace, into one field.
// Quotes carry no escape sequences. A # starts a comment only when it
// begins a field, so foo#bar stays a single field.
func SplitFields(line string) ([]string, error) {
	var fields []string
	var field strings.Builder
	inField := false
	i := 0
	for i < len(line) {
		ch := line[i]
		switch {

		case ch == ' ' || ch == '\t':
			if inField {
				fields = append(fields, field.String())
				field.Reset()
				inField = false
			}
			i++

		case ch == '#' && !inField:
			return fields, nil

		case ch == '\'' || ch == '"':
			end := strings.IndexByte(line[i+1:], ch)
			if end < 0 {
				return nil, fmt.Errorf("unterminated quote: %s", line)
			}
			field.WriteString(line[i+1 : i+1+end])
			inField = true
			i += end + 2

		default:
			field.WriteByte(ch)
			inField = true
			i++
		}
	}
	if inField {
		fields = append(fields, field.String())
	}
	return fields, nil
}
