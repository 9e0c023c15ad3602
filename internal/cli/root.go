package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"wheelpicker/internal/config"
	"wheelpicker/internal/format"
	"wheelpicker/internal/logging"
	"wheelpicker/internal/region"
	"wheelpicker/internal/store"
)

type App struct {
	ConfigFile string
	StateDir   string
	Dataset    string
	Locale     string
	LogLevel   string
	LogFile    string
	PrettyJSON bool
	Format     string

	cfg      config.Config
	logClose io.Closer
}

// Execute runs the command line in os.Args and closes the log file on
// every exit path, including a failing command.
func Execute() error {
	return execute(newRootCmd())
}

func execute(cmd *cobra.Command, app *App) (err error) {
	// PersistentPostRunE only runs after a successful RunE.
	defer func() {
		if cerr := app.teardown(); err == nil {
			err = cerr
		}
	}()
	return cmd.Execute()
}

func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *App) {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "wheelpicker",
		Short:        "Wheel pickers for regions, dates, times and lists",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Pick a province/city/area interactively
  wheelpicker region pick

  # Resolve a code without a terminal (shortcut for: wheelpicker region lookup 310115)
  wheelpicker 310115

  # Pick a month (no day wheel) between 2000 and 2030
  wheelpicker date pick --no-day --min-year 2000 --max-year 2030

  # Pick one of a few items
  wheelpicker single pick small medium large --default medium
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive region picker.
			if len(args) == 0 {
				return runRegionPick(cmd, app, "")
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.teardown()
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigFile, "config", envOr("WHEELPICKER_CONFIG", ""), "Config file (default: ./wheelpicker.toml, then <state-dir>/wheelpicker.toml)")
	pf.StringVar(&app.StateDir, "state-dir", "", "State directory holding the sqlite cache and picker state")
	pf.StringVar(&app.Dataset, "dataset", "", "Region dataset JSON file (overrides the imported/bundled data)")
	pf.StringVar(&app.Locale, "locale", "", "Label locale (zh-CN|zh-TW|en)")
	pf.StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	pf.StringVar(&app.LogFile, "log-file", "", "Log file (default: <state-dir>/wheelpicker.log)")
	pf.BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	pf.StringVar(&app.Format, "format", "", "Output format (json|yaml|text)")

	cmd.AddCommand(newRegionCmd(app))
	cmd.AddCommand(newDateCmd(app))
	cmd.AddCommand(newTimeCmd(app))
	cmd.AddCommand(newSingleCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd, app
}

// flagKeys maps persistent flags onto config keys; a flag wins over env and
// file values only when it was set.
var flagKeys = map[string]string{
	"state-dir": "state_dir",
	"dataset":   "dataset",
	"locale":    "locale",
	"log-level": "log_level",
	"log-file":  "log_file",
	"pretty":    "pretty",
	"format":    "output",
}

func (app *App) setup(cmd *cobra.Command) error {
	v, err := config.New(config.Options{ConfigFile: app.ConfigFile})
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := bindFlags(v, cmd.Root()); err != nil {
		return writeErr(cmd, err)
	}
	cfg, err := config.Decode(v)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.cfg = cfg
	app.StateDir = cfg.StateDir
	app.Format = cfg.Output
	app.PrettyJSON = cfg.Pretty

	logFile := cfg.LogFile
	if logFile == "" && cfg.StateDir != "" {
		logFile = filepath.Join(cfg.StateDir, "wheelpicker.log")
	}
	l, closer, err := logging.Setup(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: logFile})
	if err != nil {
		return writeErr(cmd, err)
	}
	app.logClose = closer
	l.Debug("command_start", "cmd", cmd.CommandPath(), "config", cfg.File, "state_dir", cfg.StateDir)
	return nil
}

func (app *App) teardown() error {
	if app.logClose == nil {
		return nil
	}
	err := app.logClose.Close()
	app.logClose = nil
	return err
}

func bindFlags(v *viper.Viper, root *cobra.Command) error {
	for flag, key := range flagKeys {
		f := root.PersistentFlags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", flag, err)
		}
	}
	return nil
}

func (app *App) store() store.Store {
	return store.Store{Dir: app.StateDir}
}

// regionSource prefers an explicit dataset file, then the imported sqlite
// cache, then the bundled data.
func (app *App) regionSource() region.Source {
	if app.cfg.Dataset != "" {
		return region.FileSource{Path: app.cfg.Dataset}
	}
	if app.StateDir == "" {
		return region.EmbeddedSource{}
	}
	return store.SQLiteSource{Store: app.store(), Fallback: region.EmbeddedSource{}}
}

// programOptions routes the picker through the command's streams. The sheet
// draws on stderr so stdout carries only the result.
func programOptions(cmd *cobra.Command) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithOutput(cmd.ErrOrStderr())}
	if in := cmd.InOrStdin(); in != os.Stdin {
		opts = append(opts, tea.WithInput(in), tea.WithoutSignalHandler())
	}
	return opts
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
