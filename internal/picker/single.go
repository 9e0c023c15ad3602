package picker

import (
	"errors"

	"wheelpicker/internal/wheel"
)

type SingleSnapshot struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SingleController binds one wheel to a list of items.
type SingleController struct {
	col       wheel.Column
	items     []wheel.Item
	pendingID string

	changed listeners[SingleSnapshot]
	initial listeners[SingleSnapshot]
	g       gate
}

func NewSingleController(col wheel.Column, items []wheel.Item) (*SingleController, error) {
	if col == nil {
		return nil, errors.New("single picker needs a column")
	}
	c := &SingleController{col: col}
	col.OnSettle(func(i int) {
		if c.g.accept() {
			c.OnSettled(i)
		}
	})
	c.UpdateData(items)
	return c, nil
}

func (c *SingleController) OnSelectionChanged(fn func(SingleSnapshot)) { c.changed.add(fn) }

func (c *SingleController) OnInitialDisplay(fn func(SingleSnapshot)) { c.initial.add(fn) }

func (c *SingleController) InitialDisplay() {
	if len(c.items) == 0 || !c.g.firstDisplay() {
		return
	}
	c.initial.emit(c.Snapshot())
}

// UpdateData replaces the list and selects the first item, or the item named
// by a pending SetDefaultID when the new list contains it.
func (c *SingleController) UpdateData(items []wheel.Item) {
	if c.g.closed {
		return
	}
	c.g.enter()
	defer c.g.leave()

	c.items = append([]wheel.Item(nil), items...)
	c.col.SetData(wheel.Labels(c.items))
	c.col.SetSelectedIndex(0)
	if c.pendingID == "" {
		return
	}
	if i := c.indexOf(c.pendingID); i >= 0 {
		c.col.SetSelectedIndex(i)
		c.pendingID = ""
	}
}

// SetDefaultID selects id now if present, otherwise remembers it for the
// next UpdateData.
func (c *SingleController) SetDefaultID(id string) {
	if i := c.indexOf(id); i >= 0 {
		c.g.enter()
		c.col.SetSelectedIndex(i)
		c.g.leave()
		c.pendingID = ""
		return
	}
	c.pendingID = id
}

// SelectByID selects the item with the given id. A missing id returns
// *NotFoundError and keeps the previous selection.
func (c *SingleController) SelectByID(id string) error {
	if c.g.closed {
		return nil
	}
	i := c.indexOf(id)
	if i < 0 {
		return &NotFoundError{Kind: "item", ID: id}
	}
	c.g.enter()
	c.col.SetSelectedIndex(i)
	c.g.leave()
	c.notify()
	return nil
}

func (c *SingleController) OnSettled(index int) {
	if c.g.closed || index < 0 || index >= len(c.items) {
		return
	}
	c.notify()
}

func (c *SingleController) Selected() (wheel.Item, error) {
	if len(c.items) == 0 {
		return nil, ErrNotReady
	}
	return c.items[clampIndex(c.col.SelectedIndex(), len(c.items))], nil
}

func (c *SingleController) Items() []wheel.Item { return append([]wheel.Item(nil), c.items...) }

func (c *SingleController) Snapshot() SingleSnapshot {
	it, err := c.Selected()
	if err != nil {
		return SingleSnapshot{}
	}
	return SingleSnapshot{Index: c.col.SelectedIndex(), ID: it.ID(), Label: it.Label()}
}

func (c *SingleController) Close() { c.g.closed = true }

func (c *SingleController) Alive() bool { return !c.g.closed }

func (c *SingleController) indexOf(id string) int {
	for i, it := range c.items {
		if it.ID() == id {
			return i
		}
	}
	return -1
}

func (c *SingleController) notify() {
	if c.g.closed || len(c.items) == 0 {
		return
	}
	c.changed.emit(c.Snapshot())
}
