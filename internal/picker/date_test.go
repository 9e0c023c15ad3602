package picker

import (
	"errors"
	"testing"
	"time"

	"wheelpicker/internal/calendar"
	"wheelpicker/internal/wheel"
)

type dateFixture struct {
	c                *DateController
	year, month, day *wheel.Strip
	events           []DateSnapshot
}

func fixedNow(y, m, d int) func() time.Time {
	return func() time.Time { return time.Date(y, time.Month(m), d, 9, 30, 0, 0, time.UTC) }
}

func newDateFixture(t *testing.T, cfg DateConfig) *dateFixture {
	t.Helper()
	f := &dateFixture{year: wheel.NewStrip(), month: wheel.NewStrip(), day: wheel.NewStrip()}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = fixedNow(2024, 3, 31)
	}
	c, err := NewDateController(DateColumns{Year: f.year, Month: f.month, Day: f.day}, cfg)
	if err != nil {
		t.Fatalf("NewDateController: %v", err)
	}
	c.OnSelectionChanged(func(s DateSnapshot) { f.events = append(f.events, s) })
	f.c = c
	return f
}

func TestDate_InitialSelectionIsToday(t *testing.T) {
	t.Parallel()

	f := newDateFixture(t, DateConfig{})
	years := f.c.Years()
	if len(years) != 2*DefaultYearSpan+1 || years[0] != 1974 || years[len(years)-1] != 2074 {
		t.Fatalf("expected years 1974..2074; got %d..%d (%d)", years[0], years[len(years)-1], len(years))
	}
	if got := f.c.Date().Format("2006-01-02"); got != "2024-03-31" {
		t.Fatalf("expected 2024-03-31; got %s", got)
	}
	if f.year.Label(f.year.SelectedIndex()) != "2024年" || f.month.Label(f.month.SelectedIndex()) != "03月" {
		t.Fatalf("unexpected labels %q %q", f.year.Label(f.year.SelectedIndex()), f.month.Label(f.month.SelectedIndex()))
	}
	if got := f.day.Label(f.day.SelectedIndex()); got != "31日\t周日" {
		t.Fatalf("expected day label 31日\\t周日; got %q", got)
	}
	if len(f.events) != 0 {
		t.Fatalf("expected no notification from construction")
	}
}

func TestDate_DayListMatchesMonthLength(t *testing.T) {
	t.Parallel()

	f := newDateFixture(t, DateConfig{MinYear: 1900, MaxYear: 2100})
	cases := []struct{ y, m, want int }{
		{2024, 2, 29}, {2023, 2, 28}, {2000, 2, 29}, {1900, 2, 28},
		{2023, 1, 31}, {2023, 4, 30}, {2023, 9, 30}, {2023, 12, 31},
	}
	for _, tc := range cases {
		if err := f.c.SelectByDate(time.Date(tc.y, time.Month(tc.m), 1, 0, 0, 0, 0, time.UTC)); err != nil {
			t.Fatalf("SelectByDate(%d-%d): %v", tc.y, tc.m, err)
		}
		if got := len(f.c.Days()); got != tc.want || f.day.Len() != tc.want {
			t.Fatalf("%d-%02d: expected %d days; got %d (wheel %d)", tc.y, tc.m, tc.want, got, f.day.Len())
		}
	}
}

func TestDate_MonthSettleClampsDay(t *testing.T) {
	t.Parallel()

	f := newDateFixture(t, DateConfig{})
	f.month.Settle(3) // April
	if f.c.Month() != 4 || f.c.Day() != 30 {
		t.Fatalf("expected 2024-04-30; got %s", f.c.Date().Format("2006-01-02"))
	}
	if f.day.Len() != 30 {
		t.Fatalf("expected 30 day labels; got %d", f.day.Len())
	}
	if len(f.events) != 1 || f.events[0].Date != "2024-04-30" {
		t.Fatalf("expected one notification for 2024-04-30; got %#v", f.events)
	}
}

func TestDate_YearSettleClampsLeapDay(t *testing.T) {
	t.Parallel()

	f := newDateFixture(t, DateConfig{Now: fixedNow(2024, 2, 29)})
	f.year.Settle(f.year.SelectedIndex() - 1)
	if got := f.c.Date().Format("2006-01-02"); got != "2023-02-28" {
		t.Fatalf("expected 2023-02-28; got %s", got)
	}
	f.year.Settle(f.year.SelectedIndex() + 1)
	if got := f.c.Date().Format("2006-01-02"); got != "2024-02-28" {
		t.Fatalf("expected day to stay on 28; got %s", got)
	}
	if len(f.events) != 2 {
		t.Fatalf("expected 2 notifications; got %d", len(f.events))
	}
}

func TestDate_SetYearRangeClampsToday(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		now      func() time.Time
		wantYear int
	}{
		{name: "today after range", now: fixedNow(2024, 5, 1), wantYear: 2022},
		{name: "today inside range", now: fixedNow(2015, 5, 1), wantYear: 2015},
		{name: "today before range", now: fixedNow(2005, 5, 1), wantYear: 2012},
	}
	for _, tt := range tests {
		f := newDateFixture(t, DateConfig{Now: tt.now})
		if err := f.c.SetYearRange(2012, 2022); err != nil {
			t.Fatalf("%s: SetYearRange: %v", tt.name, err)
		}
		years := f.c.Years()
		if len(years) != 11 || years[0] != 2012 || years[10] != 2022 {
			t.Fatalf("%s: expected 2012..2022; got %v", tt.name, years)
		}
		if f.c.Year() != tt.wantYear {
			t.Fatalf("%s: expected year %d; got %d", tt.name, tt.wantYear, f.c.Year())
		}
		if len(f.events) != 1 {
			t.Fatalf("%s: expected one notification; got %d", tt.name, len(f.events))
		}
	}

	f := newDateFixture(t, DateConfig{})
	if err := f.c.SetYearRange(2030, 2020); err == nil {
		t.Fatalf("expected error for inverted range")
	}
}

func TestDate_SelectByDateRoundTrip(t *testing.T) {
	t.Parallel()

	f := newDateFixture(t, DateConfig{MinYear: 1990, MaxYear: 2030})
	for _, s := range []string{"1990-01-01", "2000-02-29", "2019-11-30", "2024-12-31", "2030-06-15"} {
		d, _ := time.Parse("2006-01-02", s)
		if err := f.c.SelectByDate(d); err != nil {
			t.Fatalf("SelectByDate(%s): %v", s, err)
		}
		if got := f.c.Date().Format("2006-01-02"); got != s {
			t.Fatalf("expected %s; got %s", s, got)
		}
	}
	if len(f.events) != 5 {
		t.Fatalf("expected one notification per call; got %d", len(f.events))
	}

	err := f.c.SelectByDate(time.Date(1989, 12, 31, 0, 0, 0, 0, time.UTC))
	var oor *OutOfRangeError
	if !errors.As(err, &oor) || oor.Field != "year" || oor.Min != 1990 || oor.Max != 2030 {
		t.Fatalf("expected OutOfRangeError; got %v", err)
	}
	if got := f.c.Date().Format("2006-01-02"); got != "2030-06-15" {
		t.Fatalf("expected selection untouched; got %s", got)
	}
}

func TestDate_HiddenDayReportsFirst(t *testing.T) {
	t.Parallel()

	year, month := wheel.NewStrip(), wheel.NewStrip()
	c, err := NewDateController(DateColumns{Year: year, Month: month}, DateConfig{HideDay: true, Now: fixedNow(2024, 3, 31), Location: time.UTC})
	if err != nil {
		t.Fatalf("NewDateController: %v", err)
	}
	if c.Day() != 1 || c.ShowDay() {
		t.Fatalf("expected day 1 with day hidden; got %d", c.Day())
	}
	if got := c.Snapshot().Date; got != "2024-03-01" {
		t.Fatalf("expected 2024-03-01; got %s", got)
	}
	if err := c.SetShowDay(true); err == nil {
		t.Fatalf("expected error enabling day without a column")
	}

	f := newDateFixture(t, DateConfig{})
	if err := f.c.SetShowDay(false); err != nil {
		t.Fatalf("SetShowDay: %v", err)
	}
	if f.c.Day() != 1 || f.day.Len() != 0 || len(f.c.Days()) != 0 {
		t.Fatalf("expected day wheel cleared")
	}
	if err := f.c.SetShowDay(true); err != nil {
		t.Fatalf("SetShowDay: %v", err)
	}
	if f.c.Day() != 31 || f.day.Len() != 31 {
		t.Fatalf("expected day wheel restored on today; got %d/%d", f.c.Day(), f.day.Len())
	}
}

func TestDate_FormattedDate(t *testing.T) {
	t.Parallel()

	f := newDateFixture(t, DateConfig{Now: fixedNow(2024, 2, 29)})
	if got := f.c.FormattedDate(calendar.DefaultPattern); got != "2024-02-29" {
		t.Fatalf("expected 2024-02-29; got %s", got)
	}
	if got := f.c.FormattedDate("%Y年%m月%d日 %A"); got != "2024年02月29日 周四" {
		t.Fatalf("unexpected formatted date %q", got)
	}

	en := newDateFixture(t, DateConfig{Now: fixedNow(2024, 2, 29), Locale: calendar.En})
	if got := en.c.FormattedDate("%a %d"); got != "Thu 29" {
		t.Fatalf("unexpected english format %q", got)
	}
}

func TestDate_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	cols := DateColumns{Year: wheel.NewStrip(), Month: wheel.NewStrip(), Day: wheel.NewStrip()}
	if _, err := NewDateController(cols, DateConfig{MinYear: 2020, MaxYear: 2010}); err == nil {
		t.Fatalf("expected error for inverted range")
	}
	if _, err := NewDateController(DateColumns{Year: wheel.NewStrip(), Month: wheel.NewStrip()}, DateConfig{}); err == nil {
		t.Fatalf("expected error for missing day column")
	}
}

func TestDate_CloseSilencesSettles(t *testing.T) {
	t.Parallel()

	f := newDateFixture(t, DateConfig{})
	var initial int
	f.c.OnInitialDisplay(func(DateSnapshot) { initial++ })
	f.c.InitialDisplay()
	f.c.InitialDisplay()
	f.c.Close()
	f.month.Settle(0)
	f.c.InitialDisplay()
	if initial != 1 || len(f.events) != 0 {
		t.Fatalf("expected one initial display and no changes; got %d/%d", initial, len(f.events))
	}
}
