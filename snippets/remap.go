package snippets

import "strings"

// RemapFrames maps traceback frames reported against a unit's synthetic
// source name back to real locations, by line arithmetic over the prologue
// boundary. Prologue lines are attributed to "<prologue>", snippet lines to
// the unit's real file starting after its begin-marker line. Frames from
// other files pass through untouched.
func RemapFrames(frames []Frame, unit Unit) []Frame {
	var proLines []string
	if unit.Prologue != "" {
		proLines = strings.Split(unit.Prologue, "\n")
	}
	codeLines := strings.Split(unit.Code, "\n")

	out := make([]Frame, 0, len(frames))
	for _, f := range frames {
		if f.File == unit.Name {
			if f.Line >= 1 && f.Line <= len(proLines) {
				f.File = "<prologue>"
				f.Source = strings.TrimSpace(proLines[f.Line-1])
			} else {
				codeLine := f.Line - len(proLines)
				if codeLine >= 1 && codeLine <= len(codeLines) {
					f.Source = strings.TrimSpace(codeLines[codeLine-1])
				}
				f.File = unit.File
				f.Line = f.Line + unit.FirstLine - len(proLines)
			}
		}
		out = append(out, f)
	}
	return out
}
