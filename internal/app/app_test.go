package app

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/datefield/internal/config"
	"github.com/dshills/datefield/internal/logging"
	"github.com/dshills/datefield/internal/notify"
	"github.com/dshills/datefield/internal/watcher"
	"github.com/dshills/datefield/internal/widget"
)

var testNow = time.Date(2011, time.July, 3, 10, 30, 0, 0, time.UTC)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func testOptions() Options {
	return Options{
		ConfigPath: "/cfg/config.toml",
		Locale:     "de",
		FS:         memFS{},
		LookupEnv:  envOf(nil),
		LogOutput:  &bytes.Buffer{},
		Now:        func() time.Time { return testNow },
		Location:   time.UTC,
	}
}

func newApp(t *testing.T, opts Options) *Application {
	t.Helper()
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(app.Shutdown)
	return app
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestApplication_Type(t *testing.T) {
	app := newApp(t, testOptions())

	if got := app.Type("010100"); got != "01.01.2000" {
		t.Errorf("Type() = %q, want %q", got, "01.01.2000")
	}
	res := app.Result()
	if !res.HasDate || !res.Date.Equal(day(2000, time.January, 1)) {
		t.Errorf("Result() = %+v, want 2000-01-01", res)
	}
}

func TestApplication_DefaultMacros(t *testing.T) {
	app := newApp(t, testOptions())

	if got := app.Type("+"); got != "04.07.2011" {
		t.Errorf("Type(+) = %q, want %q", got, "04.07.2011")
	}
	if got := app.hint(); got != "macros: +-<>[]t" {
		t.Errorf("hint() = %q, want %q", got, "macros: +-<>[]t")
	}
}

func TestApplication_NoDefaultMacros(t *testing.T) {
	opts := testOptions()
	opts.LookupEnv = envOf(map[string]string{"DATEFIELD_DEFAULT_MACROS": "false"})
	app := newApp(t, opts)

	if got := app.Type("+"); got != "" {
		t.Errorf("Type(+) = %q, want empty", got)
	}
	if res := app.Result(); res.HasDate {
		t.Errorf("Result() = %+v, want no date", res)
	}
	if got := app.hint(); got != "" {
		t.Errorf("hint() = %q, want empty", got)
	}
}

func TestApplication_ConfigPrecedence(t *testing.T) {
	opts := testOptions()
	opts.Locale = ""
	opts.FS = memFS{"/cfg/config.toml": `
[locale]
tag = "sv"

[logging]
level = "debug"
`}

	app := newApp(t, opts)
	if got := app.Locale(); got != "sv" {
		t.Errorf("Locale() = %q, want sv from file", got)
	}
	if got := app.Logger().Level(); got != logging.LevelDebug {
		t.Errorf("log level = %s, want DEBUG", got)
	}

	opts.LookupEnv = envOf(map[string]string{"DATEFIELD_LOCALE": "de"})
	app = newApp(t, opts)
	if got := app.Locale(); got != "de" {
		t.Errorf("Locale() = %q, want de from environment", got)
	}

	opts.Locale = "ko"
	app = newApp(t, opts)
	if got := app.Locale(); got != "ko" {
		t.Errorf("Locale() = %q, want ko from options", got)
	}
	if got := app.Document().Pattern().String(); got != "yyyy. MM. dd" {
		t.Errorf("Pattern() = %q, want %q", got, "yyyy. MM. dd")
	}
}

func TestApplication_Pattern(t *testing.T) {
	opts := testOptions()
	opts.Pattern = "yyyy/MM/dd"
	app := newApp(t, opts)

	if got := app.Type("1955"); got != "1955/07/03" {
		t.Errorf("Type() = %q, want %q", got, "1955/07/03")
	}
}

func TestApplication_InitErrors(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Options)
		component string
	}{
		{"bad log level", func(o *Options) { o.LogLevel = "loud" }, "config"},
		{"bad pattern", func(o *Options) { o.Pattern = "dd.MM" }, "config"},
		{"bad env", func(o *Options) { o.LookupEnv = envOf(map[string]string{"DATEFIELD_WATCH": "maybe"}) }, "config"},
		{"bad file", func(o *Options) { o.FS = memFS{"/cfg/config.toml": "[locale\n"} }, "config"},
		{"bad date", func(o *Options) { o.Date = "31.12.1999" }, "document"},
		{"missing script", func(o *Options) { o.Script = filepath.Join(t.TempDir(), "none.lua") }, "script"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			tt.modify(&opts)
			_, err := New(opts)
			var initErr *InitError
			if !errors.As(err, &initErr) {
				t.Fatalf("New() error = %v, want *InitError", err)
			}
			if initErr.Component != tt.component {
				t.Errorf("Component = %q, want %q", initErr.Component, tt.component)
			}
		})
	}
}

func TestApplication_ConfigValidationError(t *testing.T) {
	opts := testOptions()
	opts.LogLevel = "loud"
	_, err := New(opts)
	if !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("New() error = %v, want ErrValidationFailed", err)
	}
}

func TestApplication_InitialDate(t *testing.T) {
	opts := testOptions()
	opts.Date = "1999-12-31"
	app := newApp(t, opts)

	res := app.Result()
	if res.Text != "31.12.1999" {
		t.Errorf("Text = %q, want %q", res.Text, "31.12.1999")
	}
	if !res.HasDate || !res.Date.Equal(day(1999, time.December, 31)) {
		t.Errorf("Result() = %+v, want 1999-12-31", res)
	}
	if got := app.Document().Caret(); got != 0 {
		t.Errorf("Caret() = %d, want 0", got)
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestApplication_MacroFileReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "special.chars")
	writeFile(t, path, "x|o0|o0|o0\n")

	opts := testOptions()
	opts.MacroFile = path
	opts.LookupEnv = envOf(map[string]string{"DATEFIELD_WATCH": "0"})
	app := newApp(t, opts)

	var reloads []notify.Change
	app.Notifier().SubscribeKinds(func(c notify.Change) { reloads = append(reloads, c) }, notify.KindReload)

	if got := app.Type("x"); got != "03.07.2011" {
		t.Errorf("Type(x) = %q, want %q", got, "03.07.2011")
	}
	if got := app.Type("+"); got != "03.07.2011" {
		t.Errorf("Type(+) = %q, want defaults unused with a macro file", got)
	}

	writeFile(t, path, "x|o1|o0|o0\ny|||\n")
	if err := app.ReloadMacros(); err != nil {
		t.Fatalf("ReloadMacros() error: %v", err)
	}
	if got := app.Type("x"); got != "03.07.2012" {
		t.Errorf("Type(x) after reload = %q, want %q", got, "03.07.2012")
	}

	if len(reloads) != 1 {
		t.Fatalf("got %d reload changes, want 1", len(reloads))
	}
	if c := reloads[0]; c.Source != path || c.OldText != "x" || c.NewText != "xy" {
		t.Errorf("reload change = %+v", c)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := app.ReloadMacros(); err == nil {
		t.Error("ReloadMacros() of a removed file returned nil")
	}
	if got := string(app.Macros().Load().Triggers()); got != "xy" {
		t.Errorf("triggers after failed reload = %q, want %q", got, "xy")
	}
}

func TestApplication_ReloadWithoutFile(t *testing.T) {
	app := newApp(t, testOptions())
	if err := app.ReloadMacros(); !errors.Is(err, ErrNoMacroFile) {
		t.Errorf("ReloadMacros() error = %v, want ErrNoMacroFile", err)
	}
}

func TestApplication_MissingMacroFile(t *testing.T) {
	opts := testOptions()
	opts.MacroFile = filepath.Join(t.TempDir(), "later.chars")
	opts.LookupEnv = envOf(map[string]string{"DATEFIELD_WATCH": "no"})
	out := &bytes.Buffer{}
	opts.LogOutput = out
	app := newApp(t, opts)

	if n := len(app.Macros().Load()); n != 0 {
		t.Errorf("got %d macros, want 0", n)
	}
	if !strings.Contains(out.String(), "[WARN]") {
		t.Errorf("log = %q, want a warning", out.String())
	}
}

func TestApplication_WatchMacroFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "special.chars")
	writeFile(t, path, "x|o0|o0|o0\n")

	opts := testOptions()
	opts.MacroFile = path
	app := newApp(t, opts)

	writeFile(t, path, "x|o0|o0|o0\nq|o0|o0|o1\n")

	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, ok := app.Macros().Load()['q']; ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("macro file change not picked up")
		}
		time.Sleep(20 * time.Millisecond)
	}

	if got := app.Type("q"); got != "04.07.2011" {
		t.Errorf("Type(q) = %q, want %q", got, "04.07.2011")
	}
}

func TestApplication_MacroFileEvent(t *testing.T) {
	tests := []struct {
		name   string
		op     watcher.Op
		remove bool
		want   string
	}{
		{"write", watcher.OpWrite, false, "qx"},
		{"create", watcher.OpCreate, false, "qx"},
		{"rename then create", watcher.OpRename | watcher.OpCreate, false, "qx"},
		{"rename then create and write", watcher.OpRename | watcher.OpCreate | watcher.OpWrite, false, "qx"},
		{"remove", watcher.OpRemove, false, "x"},
		{"rename", watcher.OpRename, false, "x"},
		{"create then remove", watcher.OpCreate | watcher.OpRemove, true, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "special.chars")
			writeFile(t, path, "x|o0|o0|o0\n")

			opts := testOptions()
			opts.MacroFile = path
			opts.LookupEnv = envOf(map[string]string{"DATEFIELD_WATCH": "0"})
			app := newApp(t, opts)

			writeFile(t, path, "x|o0|o0|o0\nq|o0|o0|o1\n")
			if tt.remove {
				if err := os.Remove(path); err != nil {
					t.Fatal(err)
				}
			}
			app.onMacroFileEvent(watcher.Event{Path: path, Op: tt.op})

			if got := string(app.Macros().Load().Triggers()); got != tt.want {
				t.Errorf("triggers after %s = %q, want %q", tt.op, got, tt.want)
			}
		})
	}
}

func TestApplication_Script(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macros.lua")
	writeFile(t, path, `
define("w", function(cur, today)
  return { year = 2000, month = 1, day = 2 }
end)
define("+", function(cur, today)
  return { year = 1900 }
end)
`)

	opts := testOptions()
	opts.Script = path
	app := newApp(t, opts)

	if got := app.Type("w"); got != "02.01.2000" {
		t.Errorf("Type(w) = %q, want %q", got, "02.01.2000")
	}
	// File and built-in rules come first.
	if got := app.Type("+"); got != "03.01.2000" {
		t.Errorf("Type(+) = %q, want %q", got, "03.01.2000")
	}
	if got := app.hint(); got != "macros: +-<>[]tw" {
		t.Errorf("hint() = %q, want %q", got, "macros: +-<>[]tw")
	}
}

func TestApplication_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datefield.log")
	opts := testOptions()
	opts.LogLevel = "debug"
	opts.LookupEnv = envOf(map[string]string{"DATEFIELD_LOG_FILE": path})
	out := &bytes.Buffer{}
	opts.LogOutput = out

	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	app.Type("1")
	app.Shutdown()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "started") {
		t.Errorf("log file = %q, want startup message", data)
	}
	if out.Len() != 0 {
		t.Errorf("LogOutput got %q, want nothing", out.String())
	}
}

func TestApplication_RunInteractive(t *testing.T) {
	app := newApp(t, testOptions())
	screen := widget.NewMemScreen(40, 3)
	screen.PostEvent(widget.RuneEvent('4'))
	screen.PostEvent(widget.KeyEvent(widget.KeyEnter))

	res, err := app.RunInteractive(context.Background(), screen)
	if err != nil {
		t.Fatalf("RunInteractive() error: %v", err)
	}
	if !res.HasDate || !res.Date.Equal(day(2011, time.July, 4)) {
		t.Errorf("Result = %+v, want 2011-07-04", res)
	}
	if !strings.HasPrefix(screen.Line(0), "Date: 04.07.2011") {
		t.Errorf("line 0 = %q", screen.Line(0))
	}
	if got := screen.Line(1); got != "2011-07-04  macros: +-<>[]t" {
		t.Errorf("line 1 = %q", got)
	}
}

func TestApplication_RunInteractiveCancel(t *testing.T) {
	app := newApp(t, testOptions())
	screen := widget.NewMemScreen(40, 3)
	screen.PostEvent(widget.KeyEvent(widget.KeyEscape))

	if _, err := app.RunInteractive(context.Background(), screen); !errors.Is(err, ErrCancelled) {
		t.Errorf("RunInteractive() error = %v, want ErrCancelled", err)
	}

	app.Shutdown()
	app.Shutdown()
	if _, err := app.RunInteractive(context.Background(), screen); !errors.Is(err, ErrClosed) {
		t.Errorf("RunInteractive() after Shutdown error = %v, want ErrClosed", err)
	}
}

func TestApplication_ReloadRedraws(t *testing.T) {
	path := filepath.Join(t.TempDir(), "special.chars")
	writeFile(t, path, "x|o0|o0|o0\n")

	opts := testOptions()
	opts.MacroFile = path
	opts.LookupEnv = envOf(map[string]string{"DATEFIELD_WATCH": "false"})
	app := newApp(t, opts)

	screen := widget.NewMemScreen(40, 3)
	app.mu.Lock()
	app.screen = screen
	app.mu.Unlock()

	if err := app.ReloadMacros(); err != nil {
		t.Fatalf("ReloadMacros() error: %v", err)
	}
	if n := screen.Pending(); n != 1 {
		t.Fatalf("Pending() = %d, want 1 redraw request", n)
	}
	if ev := screen.PollEvent(); ev.Type != widget.EventInterrupt {
		t.Errorf("posted %+v, want interrupt", ev)
	}
}

func TestApplication_HintFollowsReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "special.chars")
	writeFile(t, path, "x|o0|o0|o0\n")

	opts := testOptions()
	opts.MacroFile = path
	opts.LookupEnv = envOf(map[string]string{"DATEFIELD_WATCH": "0"})
	app := newApp(t, opts)

	// The first keystroke rewrites and reloads the macro file mid-session.
	var reloaded bool
	app.Notifier().SubscribeKinds(func(notify.Change) {
		if reloaded {
			return
		}
		reloaded = true
		writeFile(t, path, "x|o0|o0|o0\nq|o0|o0|o1\n")
		if err := app.ReloadMacros(); err != nil {
			t.Errorf("ReloadMacros() error: %v", err)
		}
	}, notify.KindInsert)

	screen := widget.NewMemScreen(40, 3)
	screen.PostEvent(widget.RuneEvent('4'))
	screen.PostEvent(widget.KeyEvent(widget.KeyEnter))

	if _, err := app.RunInteractive(context.Background(), screen); err != nil {
		t.Fatalf("RunInteractive() error: %v", err)
	}
	if got := screen.Line(1); got != "2011-07-04  macros: qx" {
		t.Errorf("line 1 = %q, want %q", got, "2011-07-04  macros: qx")
	}
}
