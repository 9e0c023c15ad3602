package tui

import (
	"testing"
	"time"
)

func TestColumn_ImmediateSettle(t *testing.T) {
	t.Parallel()

	c := NewColumn()
	c.Debounce = 0
	c.SetData([]string{"a", "b", "c"})
	var got []int
	c.OnSettle(func(i int) { got = append(got, i) })

	if cmd := c.Move(1); cmd != nil {
		t.Fatalf("expected no cmd without debounce")
	}
	if c.SelectedIndex() != 1 || len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected settle at 1; got selected=%d settles=%v", c.SelectedIndex(), got)
	}
	c.MoveTo(99)
	if c.SelectedIndex() != 2 {
		t.Fatalf("expected clamp to 2; got %d", c.SelectedIndex())
	}
	if cmd := c.Move(1); cmd != nil || len(got) != 2 {
		t.Fatalf("expected no-op move at the end; got %d settles", len(got))
	}

	c.SetSelectedIndex(0)
	if len(got) != 2 {
		t.Fatalf("expected programmatic move to stay silent")
	}
	if cmd := NewColumn().Move(1); cmd != nil {
		t.Fatalf("expected nil cmd on empty column")
	}
}

func TestColumn_DebounceKeepsNewestSettle(t *testing.T) {
	t.Parallel()

	c := NewColumn()
	c.Debounce = time.Millisecond
	c.SetData([]string{"a", "b", "c", "d"})
	var got []int
	c.OnSettle(func(i int) { got = append(got, i) })

	first := c.Move(1)
	second := c.Move(1)
	if first == nil || second == nil {
		t.Fatalf("expected debounce cmds")
	}
	if !c.Moving() || c.SelectedIndex() != 0 || c.Cursor() != 2 {
		t.Fatalf("expected cursor ahead of selection; cursor=%d selected=%d", c.Cursor(), c.SelectedIndex())
	}

	c.handleSettle(first().(settleMsg))
	if len(got) != 0 {
		t.Fatalf("expected stale settle to be dropped; got %v", got)
	}
	c.handleSettle(second().(settleMsg))
	if len(got) != 1 || got[0] != 2 || c.Moving() {
		t.Fatalf("expected one settle at 2; got %v", got)
	}
}

func TestColumn_SetDataDropsPendingSettle(t *testing.T) {
	t.Parallel()

	c := NewColumn()
	c.Debounce = time.Millisecond
	c.SetData([]string{"a", "b"})
	var got []int
	c.OnSettle(func(i int) { got = append(got, i) })

	cmd := c.Move(1)
	c.SetData([]string{"x", "y", "z"})
	c.handleSettle(cmd().(settleMsg))
	if len(got) != 0 {
		t.Fatalf("expected settle into the old list to be dropped; got %v", got)
	}
	if c.Cursor() != c.SelectedIndex() {
		t.Fatalf("expected cursor to follow the selection after SetData")
	}
}

func TestColumn_ViewHighlightsCursorRow(t *testing.T) {
	t.Parallel()

	c := NewColumn()
	c.Rows = 3
	c.SetData([]string{"01日\t周一", "02日\t周二", "03日\t周三"})
	c.SetSelectedIndex(1)
	view := c.View(true)
	lines := splitLines(view)
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows; got %d", len(lines))
	}
	for i, want := range []string{"01日 周一", "02日 周二", "03日 周三"} {
		if !containsPlain(lines[i], want) {
			t.Fatalf("row %d: expected %q in %q", i, want, lines[i])
		}
	}
}
