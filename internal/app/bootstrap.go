package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dshills/datefield/internal/config"
	"github.com/dshills/datefield/internal/engine/document"
	"github.com/dshills/datefield/internal/engine/layout"
	"github.com/dshills/datefield/internal/engine/special"
	"github.com/dshills/datefield/internal/logging"
	"github.com/dshills/datefield/internal/notify"
	"github.com/dshills/datefield/internal/plugin/lua"
	"github.com/dshills/datefield/internal/watcher"
)

// bootstrapper starts components in dependency order and stops the started
// ones again when a later step fails.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      app.opts,
		initOrder: make([]string, 0, 8),
	}
}

func (b *bootstrapper) bootstrap() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"config", b.initConfig},
		{"logging", b.initLogging},
		{"notifier", b.initNotifier},
		{"macros", b.initMacros},
		{"script", b.initScript},
		{"document", b.initDocument},
		{"watcher", b.initWatcher},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			b.cleanup()
			return err
		}
		b.initOrder = append(b.initOrder, step.name)
	}

	b.app.logger.Debug("started: locale %s, pattern %s", b.app.locale, b.app.document.Pattern())
	return nil
}

// initConfig layers defaults, file, environment and options.
func (b *bootstrapper) initConfig() error {
	path := b.opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(b.opts.FS, path)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}

	lookup := b.opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := cfg.ApplyEnvFrom(lookup); err != nil {
		return &InitError{Component: "config", Err: err}
	}

	if b.opts.Locale != "" {
		cfg.Locale.Tag = b.opts.Locale
	}
	if b.opts.Pattern != "" {
		cfg.Locale.Pattern = b.opts.Pattern
	}
	if b.opts.MacroFile != "" {
		cfg.Macros.File = b.opts.MacroFile
	}
	if b.opts.Script != "" {
		cfg.Macros.Script = b.opts.Script
	}
	if b.opts.LogLevel != "" {
		cfg.Logging.Level = b.opts.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	b.app.config = cfg
	return nil
}

func (b *bootstrapper) initLogging() error {
	cfg := b.app.config

	var out io.Writer = os.Stderr
	if b.opts.LogOutput != nil {
		out = b.opts.LogOutput
	}
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return &InitError{Component: "logging", Err: err}
		}
		b.app.logFile = f
		out = f
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel()
	logCfg.Output = out
	b.app.logger = logging.New(logCfg)
	logging.SetDefault(b.app.logger)
	return nil
}

func (b *bootstrapper) initNotifier() error {
	app := b.app
	app.notifier = notify.New()

	changes := app.logger.WithComponent("changes")
	app.subscriptions = append(app.subscriptions,
		app.notifier.Subscribe(func(c notify.Change) {
			changes.Debug("%s at %d: %q -> %q", c.Kind, c.Offset, c.OldText, c.NewText)
		}),
		app.notifier.SubscribeKinds(func(notify.Change) { app.redraw() }, notify.KindReload),
	)
	return nil
}

// initMacros fills the macro store from the macro file, or from the
// built-in rules when no file is configured.
func (b *bootstrapper) initMacros() error {
	app := b.app
	cfg := app.config.Macros

	table := special.Map{}
	switch {
	case cfg.File != "":
		m, err := special.LoadFile(cfg.File, app.logger)
		if err != nil {
			// The file may appear later; the watcher picks it up.
			app.logger.Warn("macros: %v", err)
		} else {
			table = m
		}
	case cfg.Defaults:
		table = special.Defaults()
	}

	app.macros = special.NewStore(table)
	app.logger.Debug("loaded %d macros", len(table))
	return nil
}

func (b *bootstrapper) initScript() error {
	app := b.app
	path := app.config.Macros.Script
	if path == "" {
		return nil
	}

	engine := lua.New(lua.WithLogger(app.logger))
	if err := engine.DoFile(path); err != nil {
		_ = engine.Close()
		return &InitError{Component: "script", Err: err}
	}
	app.script = engine
	app.logger.Debug("script %s defined %q", path, string(engine.Triggers()))
	return nil
}

func (b *bootstrapper) initDocument() error {
	app := b.app
	cfg := app.config

	app.locale = cfg.Locale.Tag
	if app.locale == "" && cfg.Locale.Pattern == "" {
		locale, err := layout.DetectLocale()
		if err != nil {
			app.logger.Info("locale detection failed, using %s: %v", locale, err)
		}
		app.locale = locale
	}

	pattern, err := cfg.Pattern(app.locale)
	if err != nil {
		return &InitError{Component: "document", Err: err}
	}

	resolver := special.Chain{app.macros}
	if app.script != nil {
		resolver = append(resolver, app.script)
	}

	opts := []document.Option{
		document.WithPattern(pattern),
		document.WithResolver(resolver),
		document.WithLogger(app.logger),
		document.WithNotifier(app.notifier),
	}
	if b.opts.Now != nil {
		opts = append(opts, document.WithClock(b.opts.Now))
	}
	loc := time.Local
	if b.opts.Location != nil {
		loc = b.opts.Location
		opts = append(opts, document.WithLocation(loc))
	}
	if cfg.Document.MaxLength > 0 {
		opts = append(opts, document.WithMaxLength(cfg.Document.MaxLength, cfg.Document.AutoRepair))
	}

	var initial time.Time
	if b.opts.Date != "" {
		initial, err = time.ParseInLocation(time.DateOnly, b.opts.Date, loc)
		if err != nil {
			return &InitError{Component: "document", Err: fmt.Errorf("initial date: %w", err)}
		}
		opts = append(opts, document.WithDate(initial))
	}

	doc, err := document.New(opts...)
	if err != nil {
		return &InitError{Component: "document", Err: err}
	}
	if !initial.IsZero() {
		doc.SetDateAndDisplay(initial)
	}
	app.document = doc
	return nil
}

func (b *bootstrapper) initWatcher() error {
	app := b.app
	cfg := app.config.Macros
	if cfg.File == "" || !cfg.Watch {
		return nil
	}

	w, err := watcher.New(app.onMacroFileEvent, watcher.WithLogger(app.logger))
	if err != nil {
		return &InitError{Component: "watcher", Err: err}
	}
	if err := w.Add(cfg.File); err != nil {
		_ = w.Close()
		return &InitError{Component: "watcher", Err: err}
	}
	app.watcher = w
	return nil
}

// cleanup stops the started components in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		b.cleanupComponent(b.initOrder[i])
	}
}

func (b *bootstrapper) cleanupComponent(component string) {
	app := b.app
	switch component {
	case "logging":
		if app.logFile != nil {
			_ = app.logFile.Close()
			app.logFile = nil
		}
	case "notifier":
		for _, sub := range app.subscriptions {
			sub.Unsubscribe()
		}
		app.subscriptions = nil
		app.notifier.Close()
		app.notifier = nil
	case "script":
		if app.script != nil {
			_ = app.script.Close()
			app.script = nil
		}
	case "watcher":
		if app.watcher != nil {
			_ = app.watcher.Close()
			app.watcher = nil
		}
	}
}
