// Package app wires configuration, macros and the date document together
// and runs them in batch or interactive mode.
package app

import (
	"context"
	"io"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/dshills/datefield/internal/config"
	"github.com/dshills/datefield/internal/engine/document"
	"github.com/dshills/datefield/internal/engine/special"
	"github.com/dshills/datefield/internal/logging"
	"github.com/dshills/datefield/internal/notify"
	"github.com/dshills/datefield/internal/plugin/lua"
	"github.com/dshills/datefield/internal/watcher"
	"github.com/dshills/datefield/internal/widget"
)

// Options configures the application. Non-empty fields override the
// configuration file and the environment.
type Options struct {
	// ConfigPath is the configuration file. Empty means config.DefaultPath.
	ConfigPath string

	Locale    string
	Pattern   string
	MacroFile string
	Script    string
	LogLevel  string

	// Date is the initial value as YYYY-MM-DD.
	Date string

	// LogOutput receives log output unless the configuration names a file.
	// Defaults to os.Stderr.
	LogOutput io.Writer

	// FS reads the configuration file. Defaults to config.OSFS.
	FS config.FileSystem

	// LookupEnv reads environment overrides. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// Now and Location fix the clock, mainly for tests.
	Now      func() time.Time
	Location *time.Location
}

// Result is the outcome of editing.
type Result struct {
	// Text is the displayed text.
	Text string
	// Date is the entered date. It is the zero time when HasDate is false.
	Date    time.Time
	HasDate bool
}

// Application owns every component of one date field session.
type Application struct {
	mu sync.Mutex

	opts   Options
	config *config.Config
	logger *logging.Logger
	locale string

	logFile  *os.File
	notifier *notify.Notifier
	macros   *special.Store
	script   *lua.Engine
	watcher  *watcher.Watcher
	document *document.Document

	subscriptions []*notify.Subscription
	screen        widget.Screen
	closed        bool
}

// New creates and starts an application.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the effective configuration.
func (app *Application) Config() *config.Config { return app.config }

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger { return app.logger }

// Locale returns the locale the layout was chosen for.
func (app *Application) Locale() string { return app.locale }

// Document returns the edited document.
func (app *Application) Document() *document.Document { return app.document }

// Macros returns the macro table store.
func (app *Application) Macros() *special.Store { return app.macros }

// Notifier returns the change notifier.
func (app *Application) Notifier() *notify.Notifier { return app.notifier }

// Type feeds s to the document at the caret and returns the displayed text.
func (app *Application) Type(s string) string {
	d := app.document
	if d.Insert(d.Caret(), s) < 0 {
		app.logger.Warn("caret %d outside layout", d.Caret())
	}
	return d.Text()
}

// Result returns the current text and date.
func (app *Application) Result() Result {
	date, ok := app.document.DateWithoutTimeOrNull()
	return Result{Text: app.document.Text(), Date: date, HasDate: ok}
}

// RunInteractive edits the document on screen until the user accepts or
// cancels, or ctx is done. Cancelling returns ErrCancelled.
func (app *Application) RunInteractive(ctx context.Context, screen widget.Screen) (Result, error) {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return Result{}, ErrClosed
	}
	app.screen = screen
	app.mu.Unlock()

	defer func() {
		app.mu.Lock()
		app.screen = nil
		app.mu.Unlock()
	}()

	field := widget.NewField(app.document,
		widget.WithLabel("Date:"),
		widget.WithHintFunc(app.hint),
		widget.WithLogger(app.logger),
	)

	action, err := widget.Run(ctx, screen, field)
	if err != nil {
		return app.Result(), err
	}
	if action != widget.ActionAccept {
		return app.Result(), ErrCancelled
	}
	return app.Result(), nil
}

// hint lists the macro triggers available in the field.
func (app *Application) hint() string {
	triggers := app.macros.Load().Triggers()
	if app.script != nil {
		triggers = append(triggers, app.script.Triggers()...)
		slices.Sort(triggers)
		triggers = slices.Compact(triggers)
	}
	if len(triggers) == 0 {
		return ""
	}
	return "macros: " + string(triggers)
}

// redraw asks a running interactive session to repaint.
func (app *Application) redraw() {
	app.mu.Lock()
	screen := app.screen
	app.mu.Unlock()
	if screen != nil {
		screen.PostEvent(widget.Event{Type: widget.EventInterrupt})
	}
}

// Shutdown stops all components in reverse start order. It is idempotent.
func (app *Application) Shutdown() {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return
	}
	app.closed = true
	app.mu.Unlock()

	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.logger.Warn("close watcher: %v", err)
		}
	}
	for _, sub := range app.subscriptions {
		sub.Unsubscribe()
	}
	if app.notifier != nil {
		app.notifier.Close()
	}
	if app.script != nil {
		_ = app.script.Close()
	}
	app.logger.Debug("shutdown complete")
	if logging.Default() == app.logger {
		logging.SetDefault(nil)
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
	}
}
