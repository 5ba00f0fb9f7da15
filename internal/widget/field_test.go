package widget

import (
	"testing"
	"time"

	"github.com/dshills/datefield/internal/engine/document"
	"github.com/dshills/datefield/internal/engine/layout"
	"github.com/dshills/datefield/internal/logging"
)

var testNow = time.Date(2011, time.July, 3, 10, 30, 0, 0, time.UTC)

func newDoc(t *testing.T, opts ...document.Option) *document.Document {
	t.Helper()
	base := []document.Option{
		document.WithLocale("de"),
		document.WithClock(func() time.Time { return testNow }),
		document.WithLocation(time.UTC),
		document.WithLogger(logging.Nop()),
	}
	d, err := document.New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("document.New() error: %v", err)
	}
	return d
}

func newField(t *testing.T, opts ...FieldOption) *Field {
	t.Helper()
	return NewField(newDoc(t), append([]FieldOption{WithLogger(logging.Nop())}, opts...)...)
}

func typeString(f *Field, s string) {
	for _, r := range s {
		f.HandleEvent(RuneEvent(r))
	}
}

func TestField_Typing(t *testing.T) {
	f := newField(t)
	typeString(f, "010100")

	d := f.Document()
	if got := d.Text(); got != "01.01.2000" {
		t.Errorf("Text() = %q, want %q", got, "01.01.2000")
	}
	if got := d.Caret(); got != 8 {
		t.Errorf("Caret() = %d, want 8", got)
	}
	got, ok := f.Value()
	want := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !ok || !got.Equal(want) {
		t.Errorf("Value() = %v, %v, want %v, true", got, ok, want)
	}
}

func TestField_CaretKeys(t *testing.T) {
	f := newField(t)
	typeString(f, "010100")
	d := f.Document()

	tests := []struct {
		ev   Event
		want int
	}{
		{KeyEvent(KeyHome), 0},
		{KeyEvent(KeyLeft), 0},
		{KeyEvent(KeyRight), 1},
		{KeyEvent(KeyEnd), 10},
		{KeyEvent(KeyRight), 10},
		{KeyEvent(KeyLeft), 9},
		{KeyEvent(KeyCtrlA), 0},
		{KeyEvent(KeyCtrlE), 10},
	}

	for i, tt := range tests {
		if a := f.HandleEvent(tt.ev); a != ActionNone {
			t.Errorf("step %d: action = %s, want none", i, a)
		}
		if got := d.Caret(); got != tt.want {
			t.Errorf("step %d: Caret() = %d, want %d", i, got, tt.want)
		}
	}
}

func TestField_Removal(t *testing.T) {
	f := newField(t)
	typeString(f, "010100")
	d := f.Document()

	f.HandleEvent(KeyEvent(KeyBackspace))
	if d.Text() != "01.01.2000" || d.Caret() != 7 {
		t.Errorf("after backspace: %q caret %d, want %q caret 7", d.Text(), d.Caret(), "01.01.2000")
	}

	f.HandleEvent(KeyEvent(KeyDelete))
	if d.Text() != "01.01.2000" || d.Caret() != 7 {
		t.Errorf("after delete: %q caret %d, want %q caret 7", d.Text(), d.Caret(), "01.01.2000")
	}

	f.HandleEvent(KeyEvent(KeyCtrlU))
	if d.Text() != "" || d.Caret() != 0 {
		t.Errorf("after clear: %q caret %d, want empty caret 0", d.Text(), d.Caret())
	}
	if _, ok := f.Value(); ok {
		t.Error("Value() reported a date for an empty field")
	}

	// Nothing left to remove.
	f.HandleEvent(KeyEvent(KeyBackspace))
	f.HandleEvent(KeyEvent(KeyDelete))
	f.HandleEvent(KeyEvent(KeyCtrlU))
	if d.Text() != "" {
		t.Errorf("Text() = %q, want empty", d.Text())
	}
}

func TestField_Actions(t *testing.T) {
	tests := []struct {
		ev   Event
		want Action
	}{
		{KeyEvent(KeyEnter), ActionAccept},
		{KeyEvent(KeyEscape), ActionCancel},
		{KeyEvent(KeyCtrlC), ActionCancel},
		{KeyEvent(KeyTab), ActionNone},
		{RuneEvent('1'), ActionNone},
		{Event{Type: EventResize, Width: 10, Height: 2}, ActionNone},
	}

	for _, tt := range tests {
		f := newField(t)
		if got := f.HandleEvent(tt.ev); got != tt.want {
			t.Errorf("HandleEvent(%+v) = %s, want %s", tt.ev, got, tt.want)
		}
	}
}

func TestField_ModifiedRunesIgnored(t *testing.T) {
	f := newField(t)
	f.HandleEvent(Event{Type: EventKey, Key: KeyRune, Rune: '5', Mod: ModAlt})
	f.HandleEvent(Event{Type: EventKey, Key: KeyRune, Rune: '5', Mod: ModCtrl})
	if got := f.Document().Text(); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}
}

func TestField_Macro(t *testing.T) {
	f := newField(t)
	f.HandleEvent(RuneEvent('+'))

	d := f.Document()
	if got := d.Text(); got != "04.07.2011" {
		t.Errorf("Text() = %q, want %q", got, "04.07.2011")
	}
	if got := d.Caret(); got != 10 {
		t.Errorf("Caret() = %d, want 10", got)
	}
}

func TestField_Draw(t *testing.T) {
	s := NewMemScreen(40, 3)
	f := newField(t, WithLabel("Date:"), WithHint("t=today"))

	f.Draw(s)
	if got := s.Line(0); got != "Date: dd.MM.yyyy" {
		t.Errorf("line 0 = %q, want %q", got, "Date: dd.MM.yyyy")
	}
	if got := s.Line(1); got != "no date  t=today" {
		t.Errorf("line 1 = %q, want %q", got, "no date  t=today")
	}
	if x, y, vis := s.Cursor(); x != 6 || y != 0 || !vis {
		t.Errorf("Cursor() = %d, %d, %v, want 6, 0, true", x, y, vis)
	}
	if c := s.Cell(6, 0); c.Style != StylePlaceholder {
		t.Errorf("placeholder style = %d, want %d", c.Style, StylePlaceholder)
	}
	if c := s.Cell(0, 0); c.Style != StyleLabel {
		t.Errorf("label style = %d, want %d", c.Style, StyleLabel)
	}

	typeString(f, "010100")
	s.Clear()
	f.Draw(s)
	if got := s.Line(0); got != "Date: 01.01.2000" {
		t.Errorf("line 0 = %q, want %q", got, "Date: 01.01.2000")
	}
	if got := s.Line(1); got != "2000-01-01  t=today" {
		t.Errorf("line 1 = %q, want %q", got, "2000-01-01  t=today")
	}
	if x, _, _ := s.Cursor(); x != 14 {
		t.Errorf("cursor x = %d, want 14", x)
	}
	if c := s.Cell(6, 0); c.Style != StyleText {
		t.Errorf("text style = %d, want %d", c.Style, StyleText)
	}
}

func TestField_HintFunc(t *testing.T) {
	hint := "macros: t"
	f := newField(t, WithHintFunc(func() string { return hint }))
	s := NewMemScreen(40, 3)

	f.Draw(s)
	if got := s.Line(1); got != "no date  macros: t" {
		t.Errorf("line 1 = %q, want %q", got, "no date  macros: t")
	}

	hint = "macros: +t"
	s.Clear()
	f.Draw(s)
	if got := s.Line(1); got != "no date  macros: +t" {
		t.Errorf("line 1 after change = %q, want %q", got, "no date  macros: +t")
	}

	if got := newField(t).Hint(); got != "" {
		t.Errorf("Hint() without option = %q, want empty", got)
	}
}

func TestField_DrawWideLiterals(t *testing.T) {
	doc := newDoc(t, document.WithPattern(layout.MustParsePattern("yyyy年MM月dd日")))
	f := NewField(doc, WithLogger(logging.Nop()), WithPosition(2, 1))
	doc.SetDateAndDisplay(time.Date(2011, time.July, 3, 0, 0, 0, 0, time.UTC))

	s := NewMemScreen(30, 3)
	f.HandleEvent(KeyEvent(KeyEnd))
	f.Draw(s)
	if x, y, _ := s.Cursor(); x != 2+14 || y != 1 {
		t.Errorf("Cursor() = %d, %d, want 16, 1", x, y)
	}

	f.HandleEvent(KeyEvent(KeyLeft))
	f.Draw(s)
	if x, _, _ := s.Cursor(); x != 2+12 {
		t.Errorf("cursor x = %d, want 14", x)
	}

	if c := s.Cell(6, 1); c.Rune != '年' {
		t.Errorf("Cell(6, 1) = %q, want '年'", c.Rune)
	}
	if c := s.Cell(8, 1); c.Rune != '0' {
		t.Errorf("Cell(8, 1) = %q, want '0'", c.Rune)
	}
}

func TestField_Width(t *testing.T) {
	f := newField(t, WithLabel("Date:"))
	if got := f.Width(); got != 16 {
		t.Errorf("Width() = %d, want 16", got)
	}
}

func TestAction_String(t *testing.T) {
	tests := map[Action]string{
		ActionNone:   "none",
		ActionAccept: "accept",
		ActionCancel: "cancel",
		Action(9):    "unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, want %q", a, got, want)
		}
	}
}
