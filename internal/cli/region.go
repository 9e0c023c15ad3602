package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"wheelpicker/internal/logging"
	"wheelpicker/internal/picker"
	"wheelpicker/internal/region"
	"wheelpicker/internal/tui"
	"wheelpicker/internal/wheel"
)

const kindRegion = "region"

type regionEntry struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Children int    `json:"children"`
}

func newRegionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "region",
		Short: "Province / city / area picker",
	}
	cmd.AddCommand(newRegionPickCmd(app))
	cmd.AddCommand(newRegionLookupCmd(app))
	cmd.AddCommand(newRegionListCmd(app))
	cmd.AddCommand(newRegionImportCmd(app))
	cmd.AddCommand(newRegionInfoCmd(app))
	return cmd
}

func newRegionPickCmd(app *App) *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a region interactively and print the confirmed selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegionPick(cmd, app, code)
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "Initial six-digit code (default: last confirmed region)")
	return cmd
}

func runRegionPick(cmd *cobra.Command, app *App, code string) error {
	st := app.store()
	state, _ := st.LoadPickerState()
	remembered := false
	if code == "" {
		code = state.LastValue(kindRegion)
		remembered = code != ""
	}

	src := app.regionSource()
	snap, err := tui.RunRegion(cmd.Context(), src, code, programOptions(cmd)...)
	var bad *picker.InvalidCodeError
	if remembered && errors.As(err, &bad) {
		logging.L().Warn("remembered_region_ignored", "code", code)
		snap, err = tui.RunRegion(cmd.Context(), src, "", programOptions(cmd)...)
	}
	if err != nil {
		return writeErr(cmd, err)
	}

	label := strings.Join([]string{snap.Province, snap.City, snap.Area}, " ")
	app.remember(cmd, kindRegion, snap.Code, strings.TrimSpace(label))
	return writeOut(cmd, app, map[string]any{"data": snap})
}

func newRegionLookupCmd(app *App) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "lookup <code>",
		Short: "Resolve a six-digit code the way the picker would select it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.TrimSpace(args[0])
			var opts []picker.RegionOption
			if strict {
				opts = append(opts, picker.WithStrictLookup())
			}
			src := app.regionSource()
			ctl, err := picker.NewRegionController(cmd.Context(), src, headlessRegionColumns(), opts...)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ctl.Close()
			if err := ctl.SelectByCode(code); err != nil {
				return writeErr(cmd, err)
			}
			snap := ctl.Snapshot()
			return writeOut(cmd, app, map[string]any{
				"data": snap,
				"meta": map[string]any{
					"requested": code,
					"exact":     snap.Code == code,
					"source":    src.Name(),
				},
			})
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the code is not in the dataset instead of falling back")
	return cmd
}

func newRegionListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [code]",
		Short: "List provinces, or the children of a province/city code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := app.regionSource().Load(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(args) == 0 {
				out := make([]regionEntry, 0, ds.Len())
				for _, p := range ds.Provinces() {
					out = append(out, regionEntry{Code: p.Code, Name: p.Name, Children: len(p.Cities)})
				}
				return writeOut(cmd, app, map[string]any{"data": out})
			}

			code := strings.TrimSpace(args[0])
			if !region.ValidCode(code) {
				return writeErr(cmd, &picker.InvalidCodeError{Code: code})
			}
			p, c, _, ok := ds.Find(code)
			if !ok {
				return writeErr(cmd, errNotFound(region.CodeLevel(code).String(), code))
			}
			out := []regionEntry{}
			switch region.CodeLevel(code) {
			case region.LevelProvince:
				for _, ci := range p.Cities {
					out = append(out, regionEntry{Code: ci.Code, Name: ci.Name, Children: len(ci.Areas)})
				}
			case region.LevelCity:
				for _, a := range c.Areas {
					out = append(out, regionEntry{Code: a.Code, Name: a.Name})
				}
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	return cmd
}

func newRegionImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Validate a region dataset and cache it in the state directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := region.FileSource{Path: args[0]}
			ds, err := src.Load(cmd.Context())
			if err != nil {
				return writeErr(cmd, &picker.DatasetLoadError{Source: src.Name(), Err: err})
			}
			info, err := app.store().ImportRegions(cmd.Context(), ds, src.Name())
			if err != nil {
				return writeErr(cmd, err)
			}
			logging.L().Info("regions_imported", "origin", info.Origin, "provinces", info.Stats.Provinces, "areas", info.Stats.Areas)
			return writeOut(cmd, app, map[string]any{"data": info})
		},
	}
	return cmd
}

func newRegionInfoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show which region dataset the pickers use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := app.regionSource()
			ds, err := src.Load(cmd.Context())
			if err != nil {
				return writeErr(cmd, &picker.DatasetLoadError{Source: src.Name(), Err: err})
			}
			data := map[string]any{
				"source": src.Name(),
				"stats":  ds.Stats(),
			}
			if app.StateDir != "" {
				imp, ok, err := app.store().RegionInfo(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				if ok {
					data["imported"] = imp
				}
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}
	return cmd
}

func headlessRegionColumns() picker.RegionColumns {
	return picker.RegionColumns{Province: wheel.NewStrip(), City: wheel.NewStrip(), Area: wheel.NewStrip()}
}
