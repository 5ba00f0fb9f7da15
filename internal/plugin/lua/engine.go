package lua

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/datefield/internal/engine/special"
	"github.com/dshills/datefield/internal/logging"
)

// DefaultTimeout bounds a single script run or macro call.
const DefaultTimeout = time.Second

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the limit for one script run or macro call.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the logger for script failures.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Engine holds the macros defined by scripts. It implements special.Resolver
// and is safe for concurrent use; calls into Lua are serialized.
type Engine struct {
	mu      sync.Mutex
	L       *lua.LState
	rules   map[rune]*lua.LFunction
	timeout time.Duration
	logger  *logging.Logger
	closed  bool
}

// New creates an engine with an empty macro set.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules:   make(map[rune]*lua.LFunction),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.OrDefault(e.logger).WithComponent("lua")

	e.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(e.L)
	e.L.SetGlobal("define", e.L.NewFunction(e.define))
	e.L.SetGlobal("days_in_month", e.L.NewFunction(daysInMonth))
	return e
}

func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// DoString runs script source.
func (e *Engine) DoString(src string) error {
	return e.run(func() error { return e.L.DoString(src) })
}

// DoFile runs the script at path.
func (e *Engine) DoFile(path string) error {
	if err := e.run(func() error { return e.L.DoFile(path) }); err != nil {
		return fmt.Errorf("run %s: %w", path, err)
	}
	return nil
}

func (e *Engine) run(fn func() error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	return protect(fn)
}

func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// define(trigger, fn) binds a single character to fn.
func (e *Engine) define(L *lua.LState) int {
	key := L.CheckString(1)
	fn := L.CheckFunction(2)

	r, size := utf8.DecodeRuneInString(key)
	if size == 0 || size != len(key) || r == '|' || r == utf8.RuneError {
		L.ArgError(1, "trigger must be a single character other than '|'")
		return 0
	}
	e.rules[r] = fn
	return 0
}

func daysInMonth(L *lua.LState) int {
	y := L.CheckInt(1)
	m := L.CheckInt(2)
	L.Push(lua.LNumber(time.Date(y, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Day()))
	return 1
}

// Triggers returns the defined trigger characters in ascending order.
func (e *Engine) Triggers() []rune {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]rune, 0, len(e.rules))
	for r := range e.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Resolve calls the function defined for trigger. Script errors are logged
// and reported as unresolved.
func (e *Engine) Resolve(trigger rune, cur special.Fields, today time.Time) (time.Time, bool) {
	t, ok, err := e.Call(trigger, cur, today)
	if err != nil {
		e.logger.Warn("macro %q: %v", trigger, err)
		return time.Time{}, false
	}
	return t, ok
}

// Call is like Resolve but returns script errors.
func (e *Engine) Call(trigger rune, cur special.Fields, today time.Time) (time.Time, bool, error) {
	e.mu.Lock()
	fn, ok := e.rules[trigger]
	e.mu.Unlock()
	if !ok {
		return time.Time{}, false, nil
	}

	var ret lua.LValue
	err := e.run(func() error {
		L := e.L
		if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true},
			fieldsTable(L, cur, -1), fieldsTable(L, fromTime(today), int(today.Weekday()))); err != nil {
			return err
		}
		ret = L.Get(-1)
		L.Pop(1)
		return nil
	})
	if err != nil {
		return time.Time{}, false, err
	}

	switch v := ret.(type) {
	case *lua.LNilType:
		return time.Time{}, false, nil
	case *lua.LTable:
		y := intField(v, "year", cur.Year)
		m := intField(v, "month", cur.Month)
		d := intField(v, "day", cur.Day)
		return time.Date(y, time.Month(m), d, 0, 0, 0, 0, today.Location()), true, nil
	default:
		return time.Time{}, false, fmt.Errorf("%w, got %s", ErrBadResult, ret.Type())
	}
}

// Close releases the Lua state.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	e.L.Close()
	return nil
}

func fromTime(t time.Time) special.Fields {
	return special.Fields{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func fieldsTable(L *lua.LState, f special.Fields, weekday int) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("year", lua.LNumber(f.Year))
	tbl.RawSetString("month", lua.LNumber(f.Month))
	tbl.RawSetString("day", lua.LNumber(f.Day))
	if weekday >= 0 {
		tbl.RawSetString("weekday", lua.LNumber(weekday))
	}
	return tbl
}

func intField(tbl *lua.LTable, key string, def int) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return def
}
