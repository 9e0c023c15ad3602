package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"wheelpicker/internal/calendar"
	"wheelpicker/internal/store"
)

const (
	// FileName is the config file base name looked up in the working directory
	// and the state directory.
	FileName  = "wheelpicker"
	EnvPrefix = "WHEELPICKER"
)

type DateConfig struct {
	MinYear int    `mapstructure:"min_year"`
	MaxYear int    `mapstructure:"max_year"`
	ShowDay bool   `mapstructure:"show_day"`
	Pattern string `mapstructure:"pattern"`
}

type TimeConfig struct {
	MinuteStep int `mapstructure:"minute_step"`
}

// Config holds runtime configuration. Values come from wheelpicker.toml,
// WHEELPICKER_* env vars (optionally from .env) and CLI flags.
type Config struct {
	StateDir  string     `mapstructure:"state_dir"`
	Dataset   string     `mapstructure:"dataset"`
	Locale    string     `mapstructure:"locale"`
	Date      DateConfig `mapstructure:"date"`
	Time      TimeConfig `mapstructure:"time"`
	LogLevel  string     `mapstructure:"log_level"`
	LogFormat string     `mapstructure:"log_format"`
	LogFile   string     `mapstructure:"log_file"`
	Output    string     `mapstructure:"output"`
	Pretty    bool       `mapstructure:"pretty"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile, when set, must exist and is read instead of searching.
	ConfigFile string
	// SearchPaths defaults to the working directory and the state directory.
	SearchPaths []string
	// EnvFiles are loaded with godotenv before reading the environment.
	// Missing files are ignored; nil means ".env".
	EnvFiles []string
}

// New returns a viper instance with defaults, env binding and the config
// file (if found) applied. Flags can be bound on top with BindPFlag.
func New(opts Options) (*viper.Viper, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	v := viper.New()
	stateDir, err := store.DefaultDir()
	if err != nil {
		stateDir = ".wheelpicker"
	}
	setDefaults(v, stateDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
		return v, nil
	}

	v.SetConfigName(FileName)
	v.SetConfigType("toml")
	paths := opts.SearchPaths
	if paths == nil {
		paths = []string{".", stateDir}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper, stateDir string) {
	v.SetDefault("state_dir", stateDir)
	v.SetDefault("dataset", "")
	v.SetDefault("locale", calendar.ZhCN.Tag)
	v.SetDefault("date.min_year", 0)
	v.SetDefault("date.max_year", 0)
	v.SetDefault("date.show_day", true)
	v.SetDefault("date.pattern", calendar.DefaultPattern)
	v.SetDefault("time.minute_step", 1)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_file", "")
	v.SetDefault("output", "json")
	v.SetDefault("pretty", false)
}

// Decode unmarshals v and validates the result.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.StateDir = expandHome(cfg.StateDir)
	cfg.Dataset = expandHome(cfg.Dataset)
	cfg.LogFile = expandHome(cfg.LogFile)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load is New followed by Decode.
func Load(opts Options) (Config, error) {
	v, err := New(opts)
	if err != nil {
		return Config{}, err
	}
	return Decode(v)
}

func (c Config) Validate() error {
	if _, err := calendar.LookupLocale(c.Locale); err != nil {
		return err
	}
	if (c.Date.MinYear != 0 || c.Date.MaxYear != 0) && c.Date.MinYear > c.Date.MaxYear {
		return fmt.Errorf("date.min_year %d > date.max_year %d", c.Date.MinYear, c.Date.MaxYear)
	}
	if s := c.Time.MinuteStep; s < 0 || (s > 0 && 60%s != 0) {
		return fmt.Errorf("time.minute_step %d does not divide 60", s)
	}
	switch c.Output {
	case "", "json", "yaml", "yml", "text":
	default:
		return fmt.Errorf("unknown output %q (expected json|yaml|text)", c.Output)
	}
	return nil
}

// CalendarLocale resolves the configured locale.
func (c Config) CalendarLocale() calendar.Locale {
	loc, err := calendar.LookupLocale(c.Locale)
	if err != nil {
		return calendar.ZhCN
	}
	return loc
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
