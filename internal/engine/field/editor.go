package field

import (
	"strconv"
	"time"
)

// bounds describes the digit range an editor accepts.
type bounds struct {
	width int
	min   int
	max   int
}

var editorBounds = map[Kind]bounds{
	KindDay:   {width: 2, min: 1, max: 31},
	KindMonth: {width: 2, min: 1, max: 12},
	KindYear:  {width: 4, min: 1, max: 9999},
}

// Editor is a zero-padded numeric buffer for one date part.
type Editor struct {
	kind Kind
	b    bounds
	buf  []byte
}

// NewEditor creates an editor of the given kind seeded with seed.
// A seed outside the kind's range falls back to today's value for that part.
// It panics if kind is not an editor kind.
func NewEditor(kind Kind, seed int, today time.Time) *Editor {
	b, ok := editorBounds[kind]
	if !ok {
		panic("field: NewEditor called with kind " + kind.String())
	}

	if seed < b.min || seed > b.max {
		seed = partOf(kind, today)
	}

	e := &Editor{
		kind: kind,
		b:    b,
		buf:  make([]byte, b.width),
	}
	e.set(seed)
	return e
}

// NewDay creates a day editor.
func NewDay(seed int, today time.Time) *Editor { return NewEditor(KindDay, seed, today) }

// NewMonth creates a month editor.
func NewMonth(seed int, today time.Time) *Editor { return NewEditor(KindMonth, seed, today) }

// NewYear creates a year editor.
func NewYear(seed int, today time.Time) *Editor { return NewEditor(KindYear, seed, today) }

func partOf(kind Kind, t time.Time) int {
	switch kind {
	case KindDay:
		return t.Day()
	case KindMonth:
		return int(t.Month())
	default:
		return t.Year()
	}
}

// set writes v zero-padded into the buffer. v must already be in range.
func (e *Editor) set(v int) {
	for i := e.b.width - 1; i >= 0; i-- {
		e.buf[i] = byte('0' + v%10)
		v /= 10
	}
}

// Kind implements Component.
func (e *Editor) Kind() Kind { return e.kind }

// Width implements Component.
func (e *Editor) Width() int { return e.b.width }

// Value implements Component.
func (e *Editor) Value() string { return string(e.buf) }

// String returns the rendered value.
func (e *Editor) String() string { return e.Value() }

// Int returns the numeric value of the buffer.
func (e *Editor) Int() int { return digitsValue(e.buf) }

// Equal reports whether other is the same kind of editor holding the same value.
func (e *Editor) Equal(other *Editor) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.kind == other.kind && e.Value() == other.Value()
}

// Enter implements Component.
func (e *Editor) Enter(c rune, offset int) int {
	if c < '0' || c > '9' || offset < 0 || offset >= e.b.width {
		return Reject
	}
	d := byte(c)
	if e.kind == KindYear {
		return e.enterYear(d, offset)
	}
	return e.enterPair(d, offset)
}

// enterPair handles the two digit day and month editors.
func (e *Editor) enterPair(d byte, offset int) int {
	if offset == 0 {
		if int(d-'0') > e.b.max/10 {
			// No valid value starts with d: the digit completes the field.
			e.buf[0], e.buf[1] = '0', d
			return e.b.width
		}
		e.buf[0] = d
		switch v := e.Int(); {
		case v > e.b.max:
			e.buf[1] = '0'
		case v < e.b.min:
			e.buf[1] = '1'
		}
		return 1
	}

	next := []byte{e.buf[0], d}
	if !e.inRange(next) {
		return Reject
	}
	e.buf[1] = d
	return 1
}

// enterYear treats offset as the count of digits already typed into the
// field; earlier digits sit right-aligned in the buffer.
func (e *Editor) enterYear(d byte, offset int) int {
	next := make([]byte, 4)
	switch offset {
	case 0:
		copy(next, century('0'))
		next[2] = '0'
	case 1:
		prev := e.buf[3]
		copy(next, century(prev))
		next[2] = prev
	case 2:
		next[0] = '1'
		next[1] = e.buf[2]
		next[2] = e.buf[3]
	case 3:
		copy(next, e.buf[1:])
	}
	next[3] = d

	if !e.inRange(next) {
		return Reject
	}
	copy(e.buf, next)
	return 1
}

// century picks the century for a two digit year by its tens digit.
func century(tens byte) string {
	if tens <= '3' {
		return "20"
	}
	return "19"
}

func (e *Editor) inRange(digits []byte) bool {
	v := digitsValue(digits)
	return v >= e.b.min && v <= e.b.max
}

func digitsValue(digits []byte) int {
	v, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0
	}
	return v
}
