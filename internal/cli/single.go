package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"wheelpicker/internal/tui"
	"wheelpicker/internal/wheel"
)

const kindSingle = "single"

func newSingleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "single",
		Short: "Single-column list picker",
	}
	cmd.AddCommand(newSinglePickCmd(app))
	return cmd
}

func newSinglePickCmd(app *App) *cobra.Command {
	var defaultID string
	var title string
	cmd := &cobra.Command{
		Use:   "pick <item>...",
		Short: "Pick one item interactively; items are \"id\" or \"id=label\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items := parseItems(args)
			if defaultID == "" {
				state, _ := app.store().LoadPickerState()
				defaultID = state.LastValue(kindSingle)
			}

			snap, err := tui.RunSingle(title, items, defaultID, programOptions(cmd)...)
			if err != nil {
				return writeErr(cmd, err)
			}
			app.remember(cmd, kindSingle, snap.ID, snap.Label)
			return writeOut(cmd, app, map[string]any{"data": snap})
		},
	}
	cmd.Flags().StringVar(&defaultID, "default", "", "Item id selected initially (default: last confirmed item)")
	cmd.Flags().StringVar(&title, "title", "", "Sheet title")
	return cmd
}

func parseItems(args []string) []wheel.Item {
	items := make([]wheel.Item, 0, len(args))
	for _, a := range args {
		id, label, ok := strings.Cut(a, "=")
		if !ok {
			items = append(items, wheel.StringItem(a))
			continue
		}
		items = append(items, wheel.LabeledItem{Key: id, Text: label})
	}
	return items
}
