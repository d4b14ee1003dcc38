package diag

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"
)

// SourceInfo locates a diagnostic in a source file: the file name, the
// full source text (for caret rendering), and the offending position.
// Kept separate from any error type since messages and warnings carry
// one too.
type SourceInfo struct {
	File   string
	Source string
	Line   int
	Column int
}

// Header renders the location line of the diagnostic format:
// "  --> file:line:col".
func (s SourceInfo) Header() string {
	return fmt.Sprintf("  --> %s:%d:%d", s.File, s.Line, s.Column)
}

// Caret renders the source line at s.Line with a caret under s.Column,
// sizing the caret's leading padding in terminal columns rather than
// bytes or runes: a fullwidth source rune (CJK, emoji, ...) occupies
// two terminal columns, so byte/rune counting would misalign the caret
// on any line containing one.
func (s SourceInfo) Caret() string {
	line := s.sourceLine()
	if line == "" {
		return ""
	}
	gutter := fmt.Sprintf("%4d | ", s.Line)
	pad := strings.Repeat(" ", len(gutter)+terminalColumnsBefore(line, s.Column))
	return gutter + line + "\n" + pad + "^"
}

func (s SourceInfo) sourceLine() string {
	if s.Source == "" {
		return ""
	}
	lines := strings.Split(s.Source, "\n")
	if s.Line < 1 || s.Line > len(lines) {
		return ""
	}
	return lines[s.Line-1]
}

// terminalColumnsBefore returns how many terminal columns the runes of
// line before the 1-indexed column col occupy, counting a fullwidth or
// wide rune as two columns and everything else as one.
func terminalColumnsBefore(line string, col int) int {
	cols := 0
	i := 0
	for _, r := range line {
		i++
		if i >= col {
			break
		}
		cols += runeColumns(r)
	}
	return cols
}

func runeColumns(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
