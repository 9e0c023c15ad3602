package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// fitWidth pads or cuts s (ANSI-aware) to exactly width cells.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := xansi.StringWidth(s)
	if w > width {
		if width == 1 {
			s = xansi.Cut(s, 0, 1)
		} else {
			s = xansi.Cut(s, 0, width-1) + "…"
		}
		w = xansi.StringWidth(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// normalizePane forces s to be exactly width columns wide and height lines
// tall, so lipgloss.JoinHorizontal lines columns up.
func normalizePane(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i := range lines {
		lines[i] = fitWidth(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// labelWidth is the widest label in cells, tabs counted as one space.
func labelWidth(labels []string) int {
	w := 0
	for _, l := range labels {
		if lw := xansi.StringWidth(displayLabel(l)); lw > w {
			w = lw
		}
	}
	return w
}

func displayLabel(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}
