package field

// Literal is an immutable separator between editors.
type Literal struct {
	text []rune
}

// NewLiteral creates a literal for s.
func NewLiteral(s string) *Literal {
	return &Literal{text: []rune(s)}
}

// Kind implements Component.
func (l *Literal) Kind() Kind { return KindLiteral }

// Width implements Component.
func (l *Literal) Width() int { return len(l.text) }

// Value implements Component.
func (l *Literal) Value() string { return string(l.text) }

// String returns the literal text.
func (l *Literal) String() string { return l.Value() }

// Enter accepts c only when it matches the separator rune at offset, so that
// typing the separator moves past it.
func (l *Literal) Enter(c rune, offset int) int {
	if offset < 0 || offset >= len(l.text) {
		return Reject
	}
	if l.text[offset] != c {
		return Reject
	}
	return 1
}
