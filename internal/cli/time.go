package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"wheelpicker/internal/logging"
	"wheelpicker/internal/picker"
	"wheelpicker/internal/tui"
)

const kindTime = "time"

func newTimeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Hour / minute picker",
	}
	cmd.AddCommand(newTimePickCmd(app))
	return cmd
}

func newTimePickCmd(app *App) *cobra.Command {
	var at string
	var step int
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a time of day interactively and print the confirmed selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("step") {
				step = app.cfg.Time.MinuteStep
			}
			cfg := picker.TimeConfig{MinuteStep: step, Locale: app.cfg.CalendarLocale()}

			st := app.store()
			state, _ := st.LoadPickerState()
			remembered := false
			if at == "" {
				at = state.LastValue(kindTime)
				remembered = at != ""
			}
			var initial time.Time
			if at != "" {
				t, err := parseClock(at)
				if err != nil {
					return writeErr(cmd, err)
				}
				initial = t
			}

			snap, err := tui.RunTime(cfg, initial, programOptions(cmd)...)
			var oor *picker.OutOfRangeError
			if remembered && errors.As(err, &oor) {
				logging.L().Warn("remembered_time_ignored", "time", at)
				snap, err = tui.RunTime(cfg, time.Time{}, programOptions(cmd)...)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			app.remember(cmd, kindTime, snap.Time, snap.Time)
			return writeOut(cmd, app, map[string]any{"data": snap})
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Initial time HH:MM (default: last confirmed time, then now)")
	cmd.Flags().IntVar(&step, "step", 1, "Minute wheel step; must divide 60")
	return cmd
}

// parseClock reads HH:MM onto a fixed day; only the clock part is used.
func parseClock(s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, errInvalidArg("time", s, "HH:MM")
	}
	return time.Date(2000, 1, 1, t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
