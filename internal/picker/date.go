package picker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"wheelpicker/internal/calendar"
	"wheelpicker/internal/logging"
	"wheelpicker/internal/wheel"
)

// DefaultYearSpan is how many years either side of today the default range covers.
const DefaultYearSpan = 50

// DateColumns are the wheels driven by a DateController. Day may be nil when
// the day wheel is hidden for the controller's whole life.
type DateColumns struct {
	Year  wheel.Column
	Month wheel.Column
	Day   wheel.Column
}

// DateConfig configures a DateController. A zero MinYear and MaxYear means
// today ± DefaultYearSpan.
type DateConfig struct {
	MinYear  int
	MaxYear  int
	HideDay  bool
	Locale   calendar.Locale
	Location *time.Location
	Now      func() time.Time
	Logger   *slog.Logger
}

type DateSnapshot struct {
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Day        int    `json:"day"`
	Date       string `json:"date"`
	YearIndex  int    `json:"yearIndex"`
	MonthIndex int    `json:"monthIndex"`
	DayIndex   int    `json:"dayIndex"`
	ShowDay    bool   `json:"showDay"`
}

// DateController keeps the day wheel sized to the selected year and month.
type DateController struct {
	cols    DateColumns
	loc     calendar.Locale
	tz      *time.Location
	now     func() time.Time
	log     *slog.Logger
	showDay bool

	years  []int
	months []int
	days   []int

	changed listeners[DateSnapshot]
	initial listeners[DateSnapshot]
	g       gate
}

func NewDateController(cols DateColumns, cfg DateConfig) (*DateController, error) {
	if cols.Year == nil || cols.Month == nil {
		return nil, errors.New("date picker needs year and month columns")
	}
	if !cfg.HideDay && cols.Day == nil {
		return nil, errors.New("date picker shows days but has no day column")
	}
	c := &DateController{
		cols:    cols,
		loc:     cfg.Locale,
		tz:      cfg.Location,
		now:     cfg.Now,
		log:     cfg.Logger,
		showDay: !cfg.HideDay,
	}
	if c.loc.Tag == "" {
		c.loc = calendar.ZhCN
	}
	if c.tz == nil {
		c.tz = time.Local
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.log == nil {
		c.log = logging.L()
	}

	minY, maxY := cfg.MinYear, cfg.MaxYear
	if minY == 0 && maxY == 0 {
		y := c.today().Year()
		minY, maxY = y-DefaultYearSpan, y+DefaultYearSpan
	}
	if minY > maxY {
		return nil, fmt.Errorf("invalid year range: min %d > max %d", minY, maxY)
	}

	cols.Year.OnSettle(func(i int) {
		if c.g.accept() {
			c.OnYearSettled(i)
		}
	})
	cols.Month.OnSettle(func(i int) {
		if c.g.accept() {
			c.OnMonthSettled(i)
		}
	})
	if cols.Day != nil {
		cols.Day.OnSettle(func(i int) {
			if c.g.accept() {
				c.OnDaySettled(i)
			}
		})
	}

	c.initialize(minY, maxY)
	return c, nil
}

// initialize builds all lists and selects today, clamped into the year range.
func (c *DateController) initialize(minY, maxY int) {
	c.g.enter()
	defer c.g.leave()

	today := c.today()
	c.setYears(minY, maxY)
	c.cols.Year.SetSelectedIndex(c.yearIndexNear(today.Year()))

	c.months = make([]int, 12)
	labels := make([]string, 12)
	for i := range c.months {
		c.months[i] = i + 1
		labels[i] = c.loc.MonthLabel(i + 1)
	}
	c.cols.Month.SetData(labels)
	c.cols.Month.SetSelectedIndex(int(today.Month()) - 1)

	if c.showDay {
		c.computeDays(today.Day() - 1)
	}
}

func (c *DateController) OnSelectionChanged(fn func(DateSnapshot)) { c.changed.add(fn) }

func (c *DateController) OnInitialDisplay(fn func(DateSnapshot)) { c.initial.add(fn) }

func (c *DateController) InitialDisplay() {
	if !c.g.firstDisplay() {
		return
	}
	c.initial.emit(c.Snapshot())
}

func (c *DateController) OnYearSettled(index int) {
	if c.g.closed || index < 0 || index >= len(c.years) {
		return
	}
	c.g.enter()
	c.cols.Year.SetSelectedIndex(index)
	c.refreshDays()
	c.g.leave()
	c.notify()
}

func (c *DateController) OnMonthSettled(index int) {
	if c.g.closed || index < 0 || index >= len(c.months) {
		return
	}
	c.g.enter()
	c.cols.Month.SetSelectedIndex(index)
	c.refreshDays()
	c.g.leave()
	c.notify()
}

func (c *DateController) OnDaySettled(index int) {
	if c.g.closed || !c.showDay {
		return
	}
	c.notify()
}

// SetYearRange rebuilds the year wheel over [minYear, maxYear] and selects
// today's year, clamped to the nearer bound when today is outside the range.
func (c *DateController) SetYearRange(minYear, maxYear int) error {
	if minYear > maxYear {
		return fmt.Errorf("invalid year range: min %d > max %d", minYear, maxYear)
	}
	if c.g.closed {
		return nil
	}
	c.g.enter()
	c.setYears(minYear, maxYear)
	c.cols.Year.SetSelectedIndex(c.yearIndexNear(c.today().Year()))
	c.refreshDays()
	c.g.leave()
	c.notify()
	return nil
}

// SetShowDay toggles the day wheel. Turning it on needs a day column.
func (c *DateController) SetShowDay(enabled bool) error {
	if enabled && c.cols.Day == nil {
		return errors.New("date picker has no day column")
	}
	if c.g.closed || enabled == c.showDay {
		return nil
	}
	c.g.enter()
	c.showDay = enabled
	if enabled {
		c.computeDays(c.today().Day() - 1)
	} else {
		c.days = nil
		if c.cols.Day != nil {
			c.cols.Day.SetData(nil)
		}
	}
	c.g.leave()
	c.notify()
	return nil
}

// SelectByDate moves the wheels onto d. The year must be inside the configured
// range; otherwise *OutOfRangeError is returned and nothing moves.
func (c *DateController) SelectByDate(d time.Time) error {
	if c.g.closed {
		return nil
	}
	idx := d.Year() - c.years[0]
	if idx < 0 || idx >= len(c.years) {
		return &OutOfRangeError{Field: "year", Value: d.Year(), Min: c.years[0], Max: c.years[len(c.years)-1]}
	}
	c.g.enter()
	c.cols.Year.SetSelectedIndex(idx)
	c.cols.Month.SetSelectedIndex(int(d.Month()) - 1)
	if c.showDay {
		c.computeDays(d.Day() - 1)
	}
	c.g.leave()
	c.notify()
	return nil
}

func (c *DateController) Year() int { return c.years[clampIndex(c.cols.Year.SelectedIndex(), len(c.years))] }

func (c *DateController) Month() int {
	return c.months[clampIndex(c.cols.Month.SelectedIndex(), len(c.months))]
}

// Day is the selected day, or 1 when the day wheel is hidden.
func (c *DateController) Day() int {
	if !c.showDay || len(c.days) == 0 {
		return 1
	}
	return c.days[clampIndex(c.cols.Day.SelectedIndex(), len(c.days))]
}

// Date composes the selection at midnight in the controller's location.
func (c *DateController) Date() time.Time {
	return calendar.Date(c.Year(), c.Month(), c.Day(), c.tz)
}

// FormattedDate renders Date with a strftime pattern (see calendar.Format).
func (c *DateController) FormattedDate(pattern string) string {
	return calendar.Format(pattern, c.Date(), c.loc)
}

func (c *DateController) ShowDay() bool { return c.showDay }

func (c *DateController) Years() []int { return append([]int(nil), c.years...) }

func (c *DateController) Days() []int { return append([]int(nil), c.days...) }

func (c *DateController) Snapshot() DateSnapshot {
	s := DateSnapshot{
		Year:       c.Year(),
		Month:      c.Month(),
		Day:        c.Day(),
		YearIndex:  c.cols.Year.SelectedIndex(),
		MonthIndex: c.cols.Month.SelectedIndex(),
		ShowDay:    c.showDay,
	}
	if c.showDay {
		s.DayIndex = c.cols.Day.SelectedIndex()
	}
	s.Date = c.Date().Format("2006-01-02")
	return s
}

func (c *DateController) Close() { c.g.closed = true }

func (c *DateController) Alive() bool { return !c.g.closed }

func (c *DateController) setYears(minY, maxY int) {
	c.years = make([]int, 0, maxY-minY+1)
	labels := make([]string, 0, maxY-minY+1)
	for y := minY; y <= maxY; y++ {
		c.years = append(c.years, y)
		labels = append(labels, c.loc.YearLabel(y))
	}
	c.cols.Year.SetData(labels)
}

func (c *DateController) yearIndexNear(y int) int {
	return clampIndex(y-c.years[0], len(c.years))
}

func (c *DateController) refreshDays() {
	if !c.showDay {
		return
	}
	// Keep a day the user is still scrolling to; its settle is dropped by
	// the rebuild.
	c.computeDays(wheel.PendingIndex(c.cols.Day))
}

// computeDays rebuilds the day wheel for the selected year/month and selects
// want, clamped to the last valid day.
func (c *DateController) computeDays(want int) {
	y, m := c.Year(), c.Month()
	n := calendar.DaysInMonth(y, m)
	c.days = make([]int, n)
	labels := make([]string, n)
	for i := range c.days {
		c.days[i] = i + 1
		labels[i] = c.loc.DayLabel(y, m, i+1)
	}
	c.cols.Day.SetData(labels)
	c.cols.Day.SetSelectedIndex(clampIndex(want, n))
	c.log.Debug("date_days", "year", y, "month", m, "days", n)
}

func (c *DateController) today() time.Time {
	return c.now().In(c.tz)
}

func (c *DateController) notify() {
	if c.g.closed {
		return
	}
	c.changed.emit(c.Snapshot())
}
