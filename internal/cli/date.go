package cli

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"wheelpicker/internal/calendar"
	"wheelpicker/internal/logging"
	"wheelpicker/internal/picker"
	"wheelpicker/internal/tui"
)

const (
	kindDate   = "date"
	dateLayout = "2006-01-02"
)

type datePick struct {
	picker.DateSnapshot
	Formatted string `json:"formatted"`
}

func newDateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "date",
		Short: "Year / month / day picker",
	}
	cmd.AddCommand(newDatePickCmd(app))
	cmd.AddCommand(newDateDaysCmd(app))
	cmd.AddCommand(newDateFormatCmd(app))
	return cmd
}

func newDatePickCmd(app *App) *cobra.Command {
	var (
		at      string
		minYear int
		maxYear int
		noDay   bool
		pattern string
	)
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a date interactively and print the confirmed selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dc := app.cfg.Date
			if cmd.Flags().Changed("min-year") {
				dc.MinYear = minYear
			}
			if cmd.Flags().Changed("max-year") {
				dc.MaxYear = maxYear
			}
			if cmd.Flags().Changed("pattern") {
				dc.Pattern = pattern
			}
			loc := app.cfg.CalendarLocale()
			cfg := picker.DateConfig{
				HideDay: noDay || !dc.ShowDay,
				Locale:  loc,
			}
			cfg.MinYear, cfg.MaxYear = yearRange(dc.MinYear, dc.MaxYear, time.Now().Year())

			st := app.store()
			state, _ := st.LoadPickerState()
			remembered := false
			if at == "" {
				at = state.LastValue(kindDate)
				remembered = at != ""
			}
			var initial time.Time
			if at != "" {
				d, err := parseDate(at)
				if err != nil {
					return writeErr(cmd, err)
				}
				initial = d
			}

			snap, err := tui.RunDate(cfg, initial, dc.Pattern, programOptions(cmd)...)
			var oor *picker.OutOfRangeError
			if remembered && errors.As(err, &oor) {
				logging.L().Warn("remembered_date_ignored", "date", at)
				snap, err = tui.RunDate(cfg, time.Time{}, dc.Pattern, programOptions(cmd)...)
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			out := datePick{
				DateSnapshot: snap,
				Formatted:    calendar.Format(dc.Pattern, calendar.Date(snap.Year, snap.Month, snap.Day, nil), loc),
			}
			app.remember(cmd, kindDate, snap.Date, out.Formatted)
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().StringVar(&at, "date", "", "Initial date YYYY-MM-DD (default: last confirmed date, then today)")
	cmd.Flags().IntVar(&minYear, "min-year", 0, "First selectable year")
	cmd.Flags().IntVar(&maxYear, "max-year", 0, "Last selectable year")
	cmd.Flags().BoolVar(&noDay, "no-day", false, "Hide the day wheel (the day is reported as 1)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "strftime pattern for the formatted output")
	return cmd
}

func newDateDaysCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "days <year> <month>",
		Short: "List the day wheel for a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			y, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, errInvalidArg("year", args[0], "an integer"))
			}
			m, err := strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil {
				return writeErr(cmd, errInvalidArg("month", args[1], "an integer"))
			}
			if m < 1 || m > 12 {
				return writeErr(cmd, &picker.OutOfRangeError{Field: "month", Value: m, Min: 1, Max: 12})
			}
			loc := app.cfg.CalendarLocale()
			n := calendar.DaysInMonth(y, m)
			labels := make([]string, 0, n)
			for d := 1; d <= n; d++ {
				labels = append(labels, loc.DayLabel(y, m, d))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"year":   y,
				"month":  m,
				"days":   n,
				"leap":   calendar.IsLeapYear(y),
				"labels": labels,
			}})
		},
	}
	return cmd
}

func newDateFormatCmd(app *App) *cobra.Command {
	var pattern string
	cmd := &cobra.Command{
		Use:   "format <date>",
		Short: "Format a YYYY-MM-DD date with a strftime pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !cmd.Flags().Changed("pattern") {
				pattern = app.cfg.Date.Pattern
			}
			loc := app.cfg.CalendarLocale()
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"date":      d.Format(dateLayout),
				"pattern":   pattern,
				"weekday":   loc.WeekDay(d),
				"formatted": calendar.Format(pattern, d, loc),
			}})
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "", "strftime pattern (default: date.pattern from config)")
	return cmd
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	d, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, errInvalidArg("date", s, "YYYY-MM-DD")
	}
	return d, nil
}

// yearRange fills an unset bound from the default span around thisYear.
func yearRange(minYear, maxYear, thisYear int) (int, int) {
	switch {
	case minYear == 0 && maxYear == 0:
		return 0, 0
	case minYear == 0:
		minYear = min(maxYear, thisYear) - picker.DefaultYearSpan
	case maxYear == 0:
		maxYear = max(minYear, thisYear) + picker.DefaultYearSpan
	}
	return minYear, maxYear
}
