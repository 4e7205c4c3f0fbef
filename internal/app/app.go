package app

import (
	"errors"
	"io"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/ned/internal/config"
	"github.com/dshills/ned/internal/config/loader"
	"github.com/dshills/ned/internal/engine/buffer"
	"github.com/dshills/ned/internal/input/key"
	"github.com/dshills/ned/internal/renderer"
	"github.com/dshills/ned/internal/renderer/backend"
	"github.com/dshills/ned/internal/renderer/viewport"
)

// Application is the central coordinator for the editor session.
// It owns the document, the terminal backend and the view state and
// drives them from a single-threaded event loop.
type Application struct {
	config  *config.Config
	logger  *Logger
	logFile io.Closer
	metrics *Metrics

	doc      *buffer.Buffer
	renderer *renderer.Renderer
	backend  backend.Backend
	decoder  *key.Decoder
	view     viewport.View
	quit     key.Event

	running      atomic.Bool
	shutdownOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is an explicit configuration file.
	ConfigPath string

	// File is the document to open on startup. Empty starts with an
	// empty document.
	File string

	// Version is shown in the welcome banner.
	Version string

	// Overrides holds command line settings keyed by setting path.
	Overrides map[string]any

	// ConfigFS and Env replace the OS file system and process environment
	// when loading configuration.
	ConfigFS loader.FileSystem
	Env      loader.Loader

	// LogOutput, when set, receives log records instead of the configured
	// log file.
	LogOutput io.Writer
}

// New loads configuration, opens the log and loads the document.
// Nothing touches the terminal until Run.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		metrics: NewMetrics(),
	}

	if err := app.bootstrap(); err != nil {
		app.closeLog()
		return nil, err
	}

	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	cfg, err := config.Load(config.Options{
		Path:      app.opts.ConfigPath,
		FS:        app.opts.ConfigFS,
		Env:       app.opts.Env,
		Overrides: app.opts.Overrides,
	})
	if err != nil {
		return NewComponentError("config", "load", err)
	}
	app.config = cfg
	app.quit = cfg.QuitEvent()

	// 2. Logger
	if err := app.setupLogger(); err != nil {
		return NewComponentError("logging", "setup", err)
	}
	app.logger.Info("starting version=%s config=%q quit=%s maxRows=%d",
		app.opts.Version, cfg.Source, app.quit, cfg.Editor.MaxRows)

	// 3. Document
	if err := app.loadDocument(); err != nil {
		return NewComponentError("buffer", "open", err)
	}

	// 4. Renderer
	app.renderer = renderer.New(app.opts.Version)

	return nil
}

func (app *Application) setupLogger() error {
	level := ParseLogLevel(app.config.Logging.Level)

	if app.opts.LogOutput != nil {
		cfg := DefaultLoggerConfig()
		cfg.Level = level
		cfg.Output = app.opts.LogOutput
		app.logger = NewLogger(cfg).WithSession()
		return nil
	}

	logger, closer, err := NewFileLogger(app.config.Logging.File, level)
	if err != nil {
		return err
	}
	app.logger = logger
	app.logFile = closer
	return nil
}

func (app *Application) loadDocument() error {
	opts := []buffer.Option{buffer.WithMaxRows(app.config.Editor.MaxRows)}

	if app.opts.File == "" {
		app.doc = buffer.New(opts...)
		return nil
	}

	doc, err := buffer.LoadFile(app.opts.File, opts...)
	if err != nil {
		return err
	}
	app.doc = doc

	log := app.logger.WithComponent("buffer")
	log.Info("loaded %q rows=%d truncated=%t", app.opts.File, doc.NumRows(), doc.Full())
	if log.Enabled(LogLevelDebug) {
		for i, n := 0, doc.NumRows(); i < n; i++ {
			log.Debug("row %d len=%d", i, len(doc.Row(i)))
		}
	}
	return nil
}

// SetBackend sets the terminal backend used by Run.
func (app *Application) SetBackend(b backend.Backend) {
	app.backend = b
}

// Logger returns the application's logger instance.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Config returns the resolved configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Document returns the loaded document.
func (app *Application) Document() *buffer.Buffer {
	return app.doc
}

// Metrics returns the application metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// IsRunning reports whether the event loop is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Run enters raw mode and runs the event loop until the quit key is
// pressed or a fatal error occurs. The terminal is restored before Run
// returns on every path, including a panic inside the loop.
func (app *Application) Run() (err error) {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		_ = app.backend.Shutdown()
		return NewComponentError("terminal", "enable raw mode", err)
	}
	defer func() {
		if rerr := app.backend.Shutdown(); rerr != nil {
			rerr = NewComponentError("terminal", "disable raw mode", rerr)
			app.logger.Error("%v", rerr)
			if err == nil {
				err = rerr
			}
		}
	}()

	stop := app.backend.InstallTerminationHandlers()
	defer stop()

	defer func() {
		if r := recover(); r != nil {
			perr := NewRecoveredPanicError(r, string(debug.Stack()))
			app.logger.Error("%v", perr)
			app.clearScreen()
			err = perr
		}
	}()

	rows, cols, err := app.backend.Size()
	if err != nil {
		return NewComponentError("terminal", "query window size", err)
	}
	app.view = viewport.New(rows, cols)
	app.decoder = key.NewDecoder(app.backend)
	app.logger.Info("window size rows=%d cols=%d", rows, cols)

	if err := app.loop(); err != nil {
		app.logger.Error("%v", err)
		app.clearScreen()
		return err
	}
	return nil
}

// clearScreen is the best-effort wipe before a fatal exit.
func (app *Application) clearScreen() {
	_ = app.backend.WriteAll([]byte(renderer.ClearScreen))
}

// Shutdown restores the terminal, logs the metrics summary and closes the
// log file. It is safe to call multiple times and without Run.
func (app *Application) Shutdown() error {
	var err error
	app.shutdownOnce.Do(func() {
		if app.backend != nil {
			if berr := app.backend.Shutdown(); berr != nil {
				err = NewComponentError("terminal", "disable raw mode", berr)
			}
		}

		var timeouts uint64
		if app.decoder != nil {
			timeouts = app.decoder.Timeouts()
		}
		app.logger.WithFields(app.metrics.Snapshot(timeouts).Fields()).Info("shutdown")

		err = errors.Join(err, app.closeLog())
	})
	return err
}

func (app *Application) closeLog() error {
	if app.logFile == nil {
		return nil
	}
	err := app.logFile.Close()
	app.logFile = nil
	return err
}

// write sends p to the terminal and counts it.
func (app *Application) write(p []byte) error {
	if err := app.backend.WriteAll(p); err != nil {
		return NewComponentError("terminal", "write", err)
	}
	app.metrics.RecordWrite(len(p))
	return nil
}

// render composes and writes one frame.
func (app *Application) render() error {
	start := time.Now()
	frame := app.renderer.Render(app.view, app.doc)
	app.metrics.RecordFrame(time.Since(start))
	return app.write(frame)
}
