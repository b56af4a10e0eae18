package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/amida/internal/ladder"
)

// RenderLadder draws l as ASCII art, one row per level:
//
//	0   1   2
//	|---|   |
//	|   |---|
//
// Columns are four characters apart; labels are listed below the board.
func RenderLadder(w io.Writer, l ladder.Ladder) {
	joined := make(map[ladder.Rung]bool, len(l.Rungs))
	for _, r := range l.Rungs {
		joined[r] = true
	}

	var header strings.Builder
	for c := 0; c < l.Columns; c++ {
		fmt.Fprintf(&header, "%-4d", c)
	}
	fmt.Fprintln(w, strings.TrimRight(header.String(), " "))

	for level := 0; level < l.Levels; level++ {
		var row strings.Builder
		for c := 0; c < l.Columns; c++ {
			row.WriteByte('|')
			if c == l.Columns-1 {
				break
			}
			if joined[ladder.Rung{Level: level, LeftColumn: c}] {
				row.WriteString("---")
			} else {
				row.WriteString("   ")
			}
		}
		fmt.Fprintln(w, row.String())
	}

	if hasLabels(l.Top) {
		fmt.Fprintf(w, "top:    %s\n", formatLabels(l.Top))
	}
	if hasLabels(l.Bottom) {
		fmt.Fprintf(w, "bottom: %s\n", formatLabels(l.Bottom))
	}
}

func hasLabels(labels []string) bool {
	for _, s := range labels {
		if s != "" {
			return true
		}
	}
	return false
}

func formatLabels(labels []string) string {
	parts := make([]string, len(labels))
	for i, s := range labels {
		if s == "" {
			s = "-"
		}
		parts[i] = fmt.Sprintf("%d:%s", i, s)
	}
	return strings.Join(parts, " ")
}

// formatPath renders a path as "(x,y) (x,y) ...".
func formatPath(p ladder.Path) string {
	parts := make([]string, len(p))
	for i, w := range p {
		parts[i] = fmt.Sprintf("(%d,%d)", w.X, w.Y)
	}
	return strings.Join(parts, " ")
}
