package picker

import (
	"errors"
	"fmt"
	"time"

	"wheelpicker/internal/calendar"
	"wheelpicker/internal/wheel"
)

type TimeColumns struct {
	Hour   wheel.Column
	Minute wheel.Column
}

type TimeConfig struct {
	// MinuteStep spaces the minute wheel; 0 or 1 lists every minute.
	MinuteStep int
	Locale     calendar.Locale
	Now        func() time.Time
}

type TimeSnapshot struct {
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Time   string `json:"time"`
}

// TimeController binds an hour and a minute wheel. Neither wheel depends on
// the other, so a settle only reports.
type TimeController struct {
	cols    TimeColumns
	step    int
	minutes []int

	changed listeners[TimeSnapshot]
	initial listeners[TimeSnapshot]
	g       gate
}

func NewTimeController(cols TimeColumns, cfg TimeConfig) (*TimeController, error) {
	if cols.Hour == nil || cols.Minute == nil {
		return nil, errors.New("time picker needs hour and minute columns")
	}
	step := cfg.MinuteStep
	if step <= 0 {
		step = 1
	}
	if 60%step != 0 {
		return nil, fmt.Errorf("minute step %d does not divide 60", step)
	}
	loc := cfg.Locale
	if loc.Tag == "" {
		loc = calendar.ZhCN
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	c := &TimeController{cols: cols, step: step}
	hours := make([]string, 24)
	for h := range hours {
		hours[h] = loc.HourLabel(h)
	}
	var mins []string
	for m := 0; m < 60; m += step {
		c.minutes = append(c.minutes, m)
		mins = append(mins, loc.MinuteLabel(m))
	}

	c.g.enter()
	cols.Hour.SetData(hours)
	cols.Minute.SetData(mins)
	t := now()
	cols.Hour.SetSelectedIndex(t.Hour())
	cols.Minute.SetSelectedIndex(t.Minute() / step)
	c.g.leave()

	settled := func(int) {
		if c.g.accept() {
			c.notify()
		}
	}
	cols.Hour.OnSettle(settled)
	cols.Minute.OnSettle(settled)
	return c, nil
}

func (c *TimeController) OnSelectionChanged(fn func(TimeSnapshot)) { c.changed.add(fn) }

func (c *TimeController) OnInitialDisplay(fn func(TimeSnapshot)) { c.initial.add(fn) }

func (c *TimeController) InitialDisplay() {
	if !c.g.firstDisplay() {
		return
	}
	c.initial.emit(c.Snapshot())
}

// SelectTime moves the wheels to h:m, rounding m down to the minute step.
func (c *TimeController) SelectTime(h, m int) error {
	if h < 0 || h > 23 {
		return &OutOfRangeError{Field: "hour", Value: h, Min: 0, Max: 23}
	}
	if m < 0 || m > 59 {
		return &OutOfRangeError{Field: "minute", Value: m, Min: 0, Max: 59}
	}
	if c.g.closed {
		return nil
	}
	c.g.enter()
	c.cols.Hour.SetSelectedIndex(h)
	c.cols.Minute.SetSelectedIndex(m / c.step)
	c.g.leave()
	c.notify()
	return nil
}

func (c *TimeController) Hour() int { return clampIndex(c.cols.Hour.SelectedIndex(), 24) }

func (c *TimeController) Minute() int {
	return c.minutes[clampIndex(c.cols.Minute.SelectedIndex(), len(c.minutes))]
}

func (c *TimeController) Snapshot() TimeSnapshot {
	h, m := c.Hour(), c.Minute()
	return TimeSnapshot{Hour: h, Minute: m, Time: fmt.Sprintf("%02d:%02d", h, m)}
}

func (c *TimeController) Close() { c.g.closed = true }

func (c *TimeController) Alive() bool { return !c.g.closed }

func (c *TimeController) notify() {
	if c.g.closed {
		return
	}
	c.changed.emit(c.Snapshot())
}
