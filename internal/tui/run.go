package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wheelpicker/internal/logging"
	"wheelpicker/internal/picker"
	"wheelpicker/internal/region"
	"wheelpicker/internal/wheel"
)

// ErrCancelled is returned when the sheet is closed without confirming.
var ErrCancelled = errors.New("picker cancelled")

// NewRegionSheet builds a province/city/area sheet. A non-empty code is
// selected before the first frame.
func NewRegionSheet(ctx context.Context, src region.Source, code string, opts ...picker.RegionOption) (Sheet, *picker.RegionController, error) {
	p, c, a := NewColumn(), NewColumn(), NewColumn()
	ctl, err := picker.NewRegionController(ctx, src, picker.RegionColumns{Province: p, City: c, Area: a}, opts...)
	if err != nil {
		return Sheet{}, nil, err
	}
	if code != "" {
		if err := ctl.SelectByCode(code); err != nil {
			return Sheet{}, nil, err
		}
	}
	sheet := NewSheet("选择地区", ctl, p, c, a)
	sheet.Summary = func() string {
		s := ctl.Snapshot()
		return strings.Join(nonEmpty(s.Province, s.City, s.Area), " ") + "  " + s.Code
	}
	return sheet, ctl, nil
}

// NewDateSheet builds a year/month/day sheet. A non-zero initial date is
// selected before the first frame; pattern formats the live summary.
func NewDateSheet(cfg picker.DateConfig, initial time.Time, pattern string) (Sheet, *picker.DateController, error) {
	y, m := NewColumn(), NewColumn()
	cols := picker.DateColumns{Year: y, Month: m}
	wheels := []*Column{y, m}
	if !cfg.HideDay {
		d := NewColumn()
		cols.Day = d
		wheels = append(wheels, d)
	}
	ctl, err := picker.NewDateController(cols, cfg)
	if err != nil {
		return Sheet{}, nil, err
	}
	if !initial.IsZero() {
		if err := ctl.SelectByDate(initial); err != nil {
			return Sheet{}, nil, err
		}
	}
	sheet := NewSheet("选择日期", ctl, wheels...)
	sheet.Summary = func() string { return ctl.FormattedDate(pattern) }
	return sheet, ctl, nil
}

// NewTimeSheet builds an hour/minute sheet. A non-zero initial time is
// selected before the first frame.
func NewTimeSheet(cfg picker.TimeConfig, initial time.Time) (Sheet, *picker.TimeController, error) {
	h, m := NewColumn(), NewColumn()
	ctl, err := picker.NewTimeController(picker.TimeColumns{Hour: h, Minute: m}, cfg)
	if err != nil {
		return Sheet{}, nil, err
	}
	if !initial.IsZero() {
		if err := ctl.SelectTime(initial.Hour(), initial.Minute()); err != nil {
			return Sheet{}, nil, err
		}
	}
	sheet := NewSheet("选择时间", ctl, h, m)
	sheet.Summary = func() string { return ctl.Snapshot().Time }
	return sheet, ctl, nil
}

// NewSingleSheet builds a one-wheel sheet over items, starting on defaultID
// when present.
func NewSingleSheet(title string, items []wheel.Item, defaultID string) (Sheet, *picker.SingleController, error) {
	col := NewColumn()
	col.MinWidth = 12
	ctl, err := picker.NewSingleController(col, items)
	if err != nil {
		return Sheet{}, nil, err
	}
	if defaultID != "" {
		ctl.SetDefaultID(defaultID)
	}
	if title == "" {
		title = "请选择"
	}
	return NewSheet(title, ctl, col), ctl, nil
}

func RunRegion(ctx context.Context, src region.Source, code string, opts ...tea.ProgramOption) (picker.RegionSnapshot, error) {
	sheet, ctl, err := NewRegionSheet(ctx, src, code)
	if err != nil {
		return picker.RegionSnapshot{}, err
	}
	defer ctl.Close()
	if err := run(sheet, opts); err != nil {
		return picker.RegionSnapshot{}, err
	}
	return ctl.Snapshot(), nil
}

func RunDate(cfg picker.DateConfig, initial time.Time, pattern string, opts ...tea.ProgramOption) (picker.DateSnapshot, error) {
	sheet, ctl, err := NewDateSheet(cfg, initial, pattern)
	if err != nil {
		return picker.DateSnapshot{}, err
	}
	defer ctl.Close()
	if err := run(sheet, opts); err != nil {
		return picker.DateSnapshot{}, err
	}
	return ctl.Snapshot(), nil
}

func RunTime(cfg picker.TimeConfig, initial time.Time, opts ...tea.ProgramOption) (picker.TimeSnapshot, error) {
	sheet, ctl, err := NewTimeSheet(cfg, initial)
	if err != nil {
		return picker.TimeSnapshot{}, err
	}
	defer ctl.Close()
	if err := run(sheet, opts); err != nil {
		return picker.TimeSnapshot{}, err
	}
	return ctl.Snapshot(), nil
}

func RunSingle(title string, items []wheel.Item, defaultID string, opts ...tea.ProgramOption) (picker.SingleSnapshot, error) {
	sheet, ctl, err := NewSingleSheet(title, items, defaultID)
	if err != nil {
		return picker.SingleSnapshot{}, err
	}
	defer ctl.Close()
	if err := run(sheet, opts); err != nil {
		return picker.SingleSnapshot{}, err
	}
	return ctl.Snapshot(), nil
}

func run(sheet Sheet, opts []tea.ProgramOption) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()

	all := append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	m, err := tea.NewProgram(sheet, all...).Run()
	if err != nil {
		return err
	}
	final, ok := m.(Sheet)
	if !ok {
		return fmt.Errorf("unexpected model %T", m)
	}
	if !final.Confirmed() {
		logging.L().Debug("sheet_cancelled", "title", sheet.Title)
		return ErrCancelled
	}
	logging.L().Debug("sheet_confirmed", "title", sheet.Title)
	return nil
}

func nonEmpty(ss ...string) []string {
	out := ss[:0:0]
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
