package app

import (
	"errors"

	"github.com/dshills/ned/internal/input/key"
	"github.com/dshills/ned/internal/renderer"
)

// State is the event loop state.
type State uint8

const (
	// StateRunning keeps the loop iterating.
	StateRunning State = iota
	// StateStopped ends the loop.
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

var crlf = []byte("\r\n")

// loop renders, decodes one key and dispatches it until the state is Stopped.
func (app *Application) loop() error {
	for state := StateRunning; state == StateRunning; {
		var err error
		state, err = app.step()
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// step runs one iteration of the loop.
func (app *Application) step() (State, error) {
	app.resize()
	if err := app.render(); err != nil {
		return StateStopped, err
	}

	ev, err := app.decoder.Next()
	if err != nil {
		return StateStopped, NewComponentError("input", "read key", err)
	}
	app.metrics.RecordKey()
	app.logger.Debug("key %s", ev)

	return app.dispatch(ev)
}

// resize re-queries the window size and fits the view to it. A failed
// query keeps the previous size.
func (app *Application) resize() {
	rows, cols, err := app.backend.Size()
	if err != nil {
		app.logger.Warn("query window size: %v", err)
		return
	}
	next := app.view.Resize(rows, cols)
	if next == app.view {
		return
	}
	app.view = next
	app.logger.Info("window resized rows=%d cols=%d", app.view.Rows, app.view.Cols)
}

// dispatch applies ev to the editor state. The quit key stops the loop
// with ErrQuit after clearing the screen.
func (app *Application) dispatch(ev key.Event) (State, error) {
	switch {
	case ev == app.quit:
		if err := app.write([]byte(renderer.ClearScreen)); err != nil {
			return StateStopped, err
		}
		return StateStopped, ErrQuit

	case ev.Key.IsNavigationKey():
		app.view = app.view.Apply(ev, app.doc.NumRows())

	case ev.IsEnter():
		if err := app.write(crlf); err != nil {
			return StateStopped, err
		}

	case ev.IsByte():
		if err := app.write([]byte{ev.Byte}); err != nil {
			return StateStopped, err
		}

	default:
		// Escape, Insert and Delete have no editing effect.
	}

	return StateRunning, nil
}
