package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dshills/ned/internal/config/loader"
	"github.com/dshills/ned/internal/input/key"
)

// Setting paths.
const (
	PathLogLevel = "logging.level"
	PathLogFile  = "logging.file"
	PathMaxRows  = "editor.maxRows"
	PathQuitKey  = "editor.quitKey"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "NED_"

// DefaultQuitKey is the quit chord used when none is configured.
const DefaultQuitKey = "Ctrl+Q"

// Config is the resolved editor configuration.
type Config struct {
	Logging LoggingConfig
	Editor  EditorConfig

	// Source is the config file that contributed to this Config, if any.
	Source string
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string
	// File is the log file path. Empty disables logging.
	File string
}

// EditorConfig holds editor behavior settings.
type EditorConfig struct {
	// MaxRows caps the number of document rows loaded. Zero means unbounded.
	MaxRows int
	// QuitKey is the key spec of the quit chord, e.g. "Ctrl+Q".
	QuitKey string

	quit key.Event
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
			File:  "ned.log",
		},
		Editor: EditorConfig{
			MaxRows: 0,
			QuitKey: DefaultQuitKey,
			quit:    key.MustParse(DefaultQuitKey),
		},
	}
}

// defaultMap returns the defaults layer as a nested map.
func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"logging": map[string]any{
			"level": d.Logging.Level,
			"file":  d.Logging.File,
		},
		"editor": map[string]any{
			"maxRows": d.Editor.MaxRows,
			"quitKey": d.Editor.QuitKey,
		},
	}
}

// Options configures Load.
type Options struct {
	// Path is an explicit config file. When empty, DefaultPath is tried
	// and a missing file there is not an error.
	Path string

	// FS is the file system used to read the config file.
	// Defaults to the OS file system.
	FS loader.FileSystem

	// Env supplies the environment layer.
	// Defaults to an EnvLoader with EnvPrefix.
	Env loader.Loader

	// Overrides is the command line layer, keyed by setting path.
	Overrides map[string]any
}

// DefaultPath returns the default config file location, or "" when the
// user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ned", "config.toml")
}

// Load resolves the configuration from defaults, the config file, the
// environment and the overrides, in increasing priority, and validates it.
func Load(opts Options) (*Config, error) {
	if opts.FS == nil {
		opts.FS = loader.DefaultFS()
	}
	if opts.Env == nil {
		opts.Env = loader.NewEnvLoader(EnvPrefix)
	}

	merged := defaultMap()

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		path = DefaultPath()
	}

	var source string
	if path != "" {
		fileLayer, err := loadFile(opts.FS, path)
		if err != nil {
			return nil, err
		}
		if fileLayer == nil && explicit {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if fileLayer != nil {
			source = path
			merged = loader.DeepMerge(merged, fileLayer)
		}
	}

	envLayer, err := opts.Env.Load()
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	merged = loader.DeepMerge(merged, envLayer)

	flagLayer := make(map[string]any, len(opts.Overrides))
	for p, v := range opts.Overrides {
		loader.SetByPath(flagLayer, p, v)
	}
	merged = loader.DeepMerge(merged, flagLayer)

	cfg, err := FromMap(merged)
	if err != nil {
		return nil, err
	}
	cfg.Source = source
	return cfg, nil
}

// loadFile returns nil, nil when path does not exist.
func loadFile(fsys loader.FileSystem, path string) (map[string]any, error) {
	l, err := loader.ForPath(fsys, path)
	if err != nil {
		return nil, err
	}
	return l.Load()
}

// FromMap decodes and validates a merged configuration map.
// Missing settings keep their defaults; unknown settings are ignored.
func FromMap(m map[string]any) (*Config, error) {
	cfg := Default()

	var err error
	if cfg.Logging.Level, err = getString(m, PathLogLevel, cfg.Logging.Level); err != nil {
		return nil, err
	}
	if cfg.Logging.File, err = getString(m, PathLogFile, cfg.Logging.File); err != nil {
		return nil, err
	}
	if cfg.Editor.MaxRows, err = getInt(m, PathMaxRows, cfg.Editor.MaxRows); err != nil {
		return nil, err
	}
	if cfg.Editor.QuitKey, err = getString(m, PathQuitKey, cfg.Editor.QuitKey); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting and resolves the quit key.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: PathLogLevel, Message: "unknown log level", Value: c.Logging.Level}
	}

	if c.Editor.MaxRows < 0 {
		return &ValidationError{Path: PathMaxRows, Message: "must not be negative", Value: c.Editor.MaxRows}
	}

	ev, err := key.Parse(c.Editor.QuitKey)
	if err != nil {
		return &ValidationError{Path: PathQuitKey, Message: err.Error(), Value: c.Editor.QuitKey}
	}
	c.Editor.quit = ev
	return nil
}

// QuitEvent returns the key event that ends the session.
func (c *Config) QuitEvent() key.Event {
	return c.Editor.quit
}

func getString(m map[string]any, path, def string) (string, error) {
	v, ok := loader.GetByPath(m, path)
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: fmt.Sprintf("%T", v)}
	}
	return s, nil
}

func getInt(m map[string]any, path string, def int) (int, error) {
	v, ok := loader.GetByPath(m, path)
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, &ValidationError{Path: path, Message: "out of range", Value: n}
		}
		return int(n), nil
	case uint64:
		if n > math.MaxInt32 {
			return 0, &ValidationError{Path: path, Message: "out of range", Value: n}
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
			return 0, &ValidationError{Path: path, Message: "not an integer", Value: n}
		}
		return int(n), nil
	case string:
		// Environment values arrive as text.
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 32)
		if err != nil {
			return 0, &TypeError{Path: path, Expected: "integer", Actual: fmt.Sprintf("string %q", n)}
		}
		return int(i), nil
	}
	return 0, &TypeError{Path: path, Expected: "integer", Actual: fmt.Sprintf("%T", v)}
}
