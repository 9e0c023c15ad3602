package picker

import (
	"errors"
	"testing"

	"wheelpicker/internal/wheel"
)

func items(ids ...string) []wheel.Item {
	out := make([]wheel.Item, len(ids))
	for i, id := range ids {
		out[i] = wheel.StringItem(id)
	}
	return out
}

func TestSingle_SelectByID(t *testing.T) {
	t.Parallel()

	col := wheel.NewStrip()
	c, err := NewSingleController(col, items("apple", "pear", "plum"))
	if err != nil {
		t.Fatalf("NewSingleController: %v", err)
	}
	var events []SingleSnapshot
	c.OnSelectionChanged(func(s SingleSnapshot) { events = append(events, s) })

	if err := c.SelectByID("plum"); err != nil {
		t.Fatalf("SelectByID: %v", err)
	}
	if col.SelectedIndex() != 2 {
		t.Fatalf("expected index 2; got %d", col.SelectedIndex())
	}

	err = c.SelectByID("kiwi")
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != "kiwi" {
		t.Fatalf("expected NotFoundError; got %v", err)
	}
	it, err := c.Selected()
	if err != nil || it.ID() != "plum" {
		t.Fatalf("expected selection kept on plum; got %v, %v", it, err)
	}
	if len(events) != 1 || events[0].Label != "plum" {
		t.Fatalf("expected one notification; got %#v", events)
	}
}

func TestSingle_UpdateDataResetsAndHonoursDefault(t *testing.T) {
	t.Parallel()

	col := wheel.NewStrip()
	c, err := NewSingleController(col, nil)
	if err != nil {
		t.Fatalf("NewSingleController: %v", err)
	}
	if _, err := c.Selected(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady; got %v", err)
	}

	c.SetDefaultID("b")
	c.UpdateData(items("a", "b", "c"))
	if col.SelectedIndex() != 1 {
		t.Fatalf("expected pending default applied; got %d", col.SelectedIndex())
	}
	col.Settle(2)
	c.UpdateData(items("x", "y"))
	if col.SelectedIndex() != 0 {
		t.Fatalf("expected reset to 0; got %d", col.SelectedIndex())
	}
	if got := col.Data(); len(got) != 2 || got[1] != "y" {
		t.Fatalf("unexpected labels %v", got)
	}
}

func TestSingle_LabeledItems(t *testing.T) {
	t.Parallel()

	col := wheel.NewStrip()
	c, _ := NewSingleController(col, []wheel.Item{
		wheel.LabeledItem{Key: "sh", Text: "上海"},
		wheel.LabeledItem{Key: "bj", Text: "北京"},
	})
	var got SingleSnapshot
	c.OnSelectionChanged(func(s SingleSnapshot) { got = s })
	col.Settle(1)
	if got.ID != "bj" || got.Label != "北京" || got.Index != 1 {
		t.Fatalf("unexpected snapshot %#v", got)
	}
	c.Close()
	col.Settle(0)
	if got.ID != "bj" {
		t.Fatalf("expected closed controller to stay silent")
	}
}
