package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wheelpicker/internal/wheel"
)

const (
	DefaultVisibleRows = 7
	DefaultDebounce    = 120 * time.Millisecond
)

// settleMsg fires when a column has been still for its debounce window.
// Only the newest sequence number of a column is honored.
type settleMsg struct {
	col *Column
	seq int
}

// Column is a terminal wheel. It implements wheel.Column: SetData and
// SetSelectedIndex move it silently, while key movement settles after
// Debounce and then reports through OnSettle.
type Column struct {
	strip  *wheel.Strip
	cursor int
	seq    int

	Rows     int
	Debounce time.Duration
	MinWidth int
}

var _ wheel.Column = (*Column)(nil)

func NewColumn() *Column {
	return &Column{strip: wheel.NewStrip(), Rows: DefaultVisibleRows, Debounce: DefaultDebounce, MinWidth: 4}
}

// SetData replaces the labels. Any settle still in flight is dropped since
// it points into the old list.
func (c *Column) SetData(labels []string) {
	c.strip.SetData(labels)
	c.cursor = c.strip.SelectedIndex()
	c.seq++
}

func (c *Column) SetSelectedIndex(i int) {
	c.strip.SetSelectedIndex(i)
	c.cursor = c.strip.SelectedIndex()
	c.seq++
}

func (c *Column) SelectedIndex() int { return c.strip.SelectedIndex() }

func (c *Column) OnSettle(fn func(index int)) { c.strip.OnSettle(fn) }

func (c *Column) Len() int { return c.strip.Len() }

// Cursor is the row under the highlight, which may be ahead of
// SelectedIndex while the wheel is still moving.
func (c *Column) Cursor() int { return c.cursor }

func (c *Column) Moving() bool { return c.cursor != c.strip.SelectedIndex() }

// PendingIndex implements wheel.Pending.
func (c *Column) PendingIndex() int { return c.cursor }

// Move shifts the cursor by delta rows, clamped to the list.
func (c *Column) Move(delta int) tea.Cmd { return c.MoveTo(c.cursor + delta) }

func (c *Column) MoveTo(i int) tea.Cmd {
	n := c.strip.Len()
	if n == 0 {
		return nil
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	if i == c.cursor {
		return nil
	}
	c.cursor = i
	c.seq++
	if c.Debounce <= 0 {
		c.Flush()
		return nil
	}
	msg := settleMsg{col: c, seq: c.seq}
	return tea.Tick(c.Debounce, func(time.Time) tea.Msg { return msg })
}

// Flush settles a moving column immediately.
func (c *Column) Flush() {
	if !c.Moving() {
		return
	}
	c.seq++
	c.strip.Settle(c.cursor)
}

func (c *Column) handleSettle(msg settleMsg) {
	if msg.col != c || msg.seq != c.seq {
		return
	}
	c.Flush()
}

func (c *Column) Width() int {
	w := labelWidth(c.strip.Data()) + 2
	if w < c.MinWidth {
		w = c.MinWidth
	}
	return w
}

// View renders Rows rows with the cursor row in the middle.
func (c *Column) View(focused bool) string {
	rows := c.Rows
	if rows <= 0 {
		rows = DefaultVisibleRows
	}
	width := c.Width()
	half := rows / 2

	base := lipgloss.NewStyle().Foreground(colorSurfaceFg)
	dim := styleMuted()
	sel := lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	if focused {
		sel = sel.Foreground(colorAccentFg).Background(colorAccent)
	}

	lines := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		i := c.cursor - half + r
		if i < 0 || i >= c.strip.Len() {
			lines = append(lines, strings.Repeat(" ", width))
			continue
		}
		text := fitWidth(" "+displayLabel(c.strip.Label(i)), width)
		switch {
		case i == c.cursor:
			lines = append(lines, sel.Render(fitWidth(glyphCursor()+displayLabel(c.strip.Label(i)), width)))
		case r == 0 || r == rows-1:
			lines = append(lines, dim.Render(text))
		default:
			lines = append(lines, base.Render(text))
		}
	}
	return strings.Join(lines, "\n")
}
