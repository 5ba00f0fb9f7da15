package widget

import (
	"time"

	"github.com/rivo/uniseg"

	"github.com/dshills/datefield/internal/engine/document"
	"github.com/dshills/datefield/internal/logging"
)

// Action is what the host should do after an event.
type Action int

const (
	ActionNone Action = iota
	ActionAccept
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionAccept:
		return "accept"
	case ActionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Field is a one-line date input bound to a document.
type Field struct {
	doc    *document.Document
	label  string
	hint   func() string
	x, y   int
	logger *logging.Logger
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// WithLabel sets the text drawn before the input.
func WithLabel(label string) FieldOption {
	return func(f *Field) { f.label = label }
}

// WithHint sets the text drawn after the date on the status line.
func WithHint(hint string) FieldOption {
	return func(f *Field) { f.hint = func() string { return hint } }
}

// WithHintFunc sets a hint that is recomputed on every draw.
func WithHintFunc(hint func() string) FieldOption {
	return func(f *Field) { f.hint = hint }
}

// WithPosition sets the top left corner of the field.
func WithPosition(x, y int) FieldOption {
	return func(f *Field) { f.x, f.y = x, y }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) FieldOption {
	return func(f *Field) { f.logger = l }
}

// NewField creates a field editing doc.
func NewField(doc *document.Document, opts ...FieldOption) *Field {
	f := &Field{doc: doc}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = logging.OrDefault(f.logger).WithComponent("widget")
	return f
}

// Hint returns the current status line hint.
func (f *Field) Hint() string {
	if f.hint == nil {
		return ""
	}
	return f.hint()
}

// Document returns the edited document.
func (f *Field) Document() *document.Document { return f.doc }

// Value returns the entered date without time of day. ok is false while the
// field is empty.
func (f *Field) Value() (time.Time, bool) {
	return f.doc.DateWithoutTimeOrNull()
}

// HandleEvent applies a key event to the document.
func (f *Field) HandleEvent(ev Event) Action {
	if ev.Type != EventKey {
		return ActionNone
	}

	d := f.doc
	caret := d.Caret()
	switch ev.Key {
	case KeyRune:
		if ev.Mod.Has(ModCtrl) || ev.Mod.Has(ModAlt) {
			return ActionNone
		}
		if d.Insert(caret, string(ev.Rune)) < 0 {
			f.logger.Debug("insert at %d outside field", caret)
		}
	case KeyLeft:
		d.SetCaret(caret - 1)
	case KeyRight:
		d.SetCaret(caret + 1)
	case KeyHome, KeyCtrlA:
		d.SetCaret(0)
	case KeyEnd, KeyCtrlE:
		d.SetCaret(d.Len())
	case KeyBackspace:
		if caret > 0 {
			f.remove(caret-1, 1)
		}
	case KeyDelete:
		if caret < d.Len() {
			f.remove(caret, 1)
		}
	case KeyCtrlU:
		if n := d.Len(); n > 0 {
			f.remove(0, n)
		}
	case KeyEnter:
		return ActionAccept
	case KeyEscape, KeyCtrlC:
		return ActionCancel
	}
	return ActionNone
}

func (f *Field) remove(offset, length int) {
	if err := f.doc.Remove(offset, length); err != nil {
		f.logger.Warn("remove: %v", err)
	}
}

// Draw renders the field and places the cursor at the caret.
func (f *Field) Draw(s Screen) {
	x := f.x
	if f.label != "" {
		x = drawString(s, x, f.y, f.label, StyleLabel)
		x = drawString(s, x, f.y, " ", StyleDefault)
	}
	start := x

	text := f.doc.Text()
	if text == "" {
		drawString(s, x, f.y, f.doc.Pattern().String(), StylePlaceholder)
		s.ShowCursor(start, f.y)
	} else {
		drawString(s, x, f.y, text, StyleText)
		runes := []rune(text)
		s.ShowCursor(start+uniseg.StringWidth(string(runes[:f.doc.Caret()])), f.y)
	}

	status := "no date"
	if t, ok := f.Value(); ok {
		status = t.Format(time.DateOnly)
	}
	if hint := f.Hint(); hint != "" {
		status += "  " + hint
	}
	drawString(s, f.x, f.y+1, status, StyleStatus)
}

// Width returns the display width of the label and input.
func (f *Field) Width() int {
	w := uniseg.StringWidth(f.doc.Pattern().String())
	if tw := uniseg.StringWidth(f.doc.Content()); tw > w {
		w = tw
	}
	if f.label != "" {
		w += uniseg.StringWidth(f.label) + 1
	}
	return w
}

// drawString draws s starting at x and returns the column after it.
func drawString(s Screen, x, y int, str string, style Style) int {
	g := uniseg.NewGraphemes(str)
	for g.Next() {
		runes := g.Runes()
		s.SetCell(x, y, runes[0], style)
		x += g.Width()
	}
	return x
}
