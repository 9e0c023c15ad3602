package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wheelpicker/internal/picker"
)

// Sheet is a bottom sheet holding one or more wheels bound to a controller.
// Enter confirms, esc cancels; both end the program.
type Sheet struct {
	Title string
	// Summary renders the live selection under the wheels.
	Summary func() string

	cols   []*Column
	binder picker.Binder
	focus  int
	keys   KeyMap
	help   help.Model

	width, height int
	done          bool
	confirmed     bool
}

func NewSheet(title string, binder picker.Binder, cols ...*Column) Sheet {
	h := help.New()
	h.Styles.ShortKey = styleMuted().Bold(true)
	h.Styles.ShortDesc = styleMuted()
	h.Styles.ShortSeparator = styleMuted()
	return Sheet{Title: title, cols: cols, binder: binder, keys: DefaultKeyMap(), help: h}
}

func (s Sheet) Init() tea.Cmd { return nil }

func (s Sheet) Confirmed() bool { return s.done && s.confirmed }

func (s Sheet) Done() bool { return s.done }

func (s Sheet) Focus() int { return s.focus }

func (s Sheet) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		s.help.Width = msg.Width
		return s, nil

	case settleMsg:
		// A wheel that stopped after the sheet closed reports nothing.
		if s.done || !s.binder.Alive() {
			return s, nil
		}
		for _, c := range s.cols {
			c.handleSettle(msg)
		}
		return s, nil

	case tea.KeyMsg:
		if s.done {
			return s, nil
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s Sheet) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	col := s.focused()
	switch {
	case key.Matches(msg, s.keys.Cancel):
		s.done = true
		return s, tea.Quit
	case key.Matches(msg, s.keys.Confirm):
		// Settle whatever is still moving so the result matches the screen.
		// Downstream wheels go first: an upstream settle rebuilds them.
		for i := len(s.cols) - 1; i >= 0; i-- {
			s.cols[i].Flush()
		}
		s.done, s.confirmed = true, true
		return s, tea.Quit
	case key.Matches(msg, s.keys.Next):
		if len(s.cols) > 0 {
			s.focus = (s.focus + 1) % len(s.cols)
		}
		return s, nil
	case key.Matches(msg, s.keys.Prev):
		if len(s.cols) > 0 {
			s.focus = (s.focus - 1 + len(s.cols)) % len(s.cols)
		}
		return s, nil
	}
	if col == nil {
		return s, nil
	}
	switch {
	case key.Matches(msg, s.keys.Up):
		return s, col.Move(-1)
	case key.Matches(msg, s.keys.Down):
		return s, col.Move(1)
	case key.Matches(msg, s.keys.PageUp):
		return s, col.Move(-col.Rows)
	case key.Matches(msg, s.keys.PageDown):
		return s, col.Move(col.Rows)
	case key.Matches(msg, s.keys.Home):
		return s, col.MoveTo(0)
	case key.Matches(msg, s.keys.End):
		return s, col.MoveTo(col.Len() - 1)
	}
	return s, nil
}

func (s Sheet) focused() *Column {
	if s.focus < 0 || s.focus >= len(s.cols) {
		return nil
	}
	return s.cols[s.focus]
}

func (s Sheet) View() string {
	if s.done {
		return ""
	}
	// The first rendered frame is the controller's first display.
	s.binder.InitialDisplay()

	box := s.render()
	if s.width <= 0 || s.height <= 0 {
		return box
	}
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Bottom, box)
}

func (s Sheet) render() string {
	sep := lipgloss.NewStyle().Foreground(colorDivider).Render
	parts := make([]string, 0, 2*len(s.cols))
	rows := DefaultVisibleRows
	for i, c := range s.cols {
		if i > 0 {
			parts = append(parts, sep(strings.TrimRight(strings.Repeat(glyphSeparator()+"\n", c.Rows), "\n")))
		}
		parts = append(parts, normalizePane(c.View(i == s.focus), c.Width(), c.Rows))
		rows = c.Rows
	}
	wheels := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if len(s.cols) == 0 {
		wheels = normalizePane(styleMuted().Render("(empty)"), 12, rows)
	}

	bodyW := lipgloss.Width(wheels)
	if w := lipgloss.Width(s.Title) + 4; w > bodyW {
		bodyW = w
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Width(bodyW).
		Render(s.Title)

	btn := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
	btnActive := btn.Foreground(colorAccentFg).Background(colorAccent).Bold(true)
	controls := lipgloss.JoinHorizontal(lipgloss.Top, btn.Render("取消 esc"), " ", btnActive.Render("确定 enter"))

	lines := []string{header, "", wheels, ""}
	if s.Summary != nil {
		if sum := s.Summary(); sum != "" {
			lines = append(lines, styleMuted().Render(fitWidth(sum, bodyW)), "")
		}
	}
	lines = append(lines, controls, "", s.help.View(s.keys))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Background(colorSurfaceBg).
		Render(strings.Join(lines, "\n"))
}
