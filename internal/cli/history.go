package cli

import (
	"github.com/spf13/cobra"

	"wheelpicker/internal/logging"
)

func newHistoryCmd(app *App) *cobra.Command {
	var kind string
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently confirmed picks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch kind {
			case "", kindRegion, kindDate, kindTime, kindSingle:
			default:
				return writeErr(cmd, errInvalidArg("kind", kind, "region|date|time|single"))
			}
			picks, err := app.store().RecentPicks(cmd.Context(), kind, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": picks})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Only picks of this kind (region|date|time|single)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of picks")
	return cmd
}

// remember records a confirmed pick in the history table and as the next
// session's initial value. Both are best effort once the pick is made.
func (app *App) remember(cmd *cobra.Command, kind, value, label string) {
	if app.StateDir == "" {
		return
	}
	st := app.store()
	if _, err := st.RecordPick(cmd.Context(), kind, value, label); err != nil {
		logging.L().Warn("record_pick_failed", "kind", kind, "err", err)
	}
	state, err := st.LoadPickerState()
	if err != nil || state == nil {
		logging.L().Warn("picker_state_unreadable", "err", err)
		return
	}
	state.Remember(kind, value)
	if err := st.SavePickerState(state); err != nil {
		logging.L().Warn("picker_state_save_failed", "err", err)
	}
}
