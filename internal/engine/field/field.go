package field

// Kind identifies which part of a date a component represents.
type Kind uint8

const (
	// KindLiteral is a fixed separator such as "." or "/".
	KindLiteral Kind = iota
	// KindDay is the day-of-month editor.
	KindDay
	// KindMonth is the month editor.
	KindMonth
	// KindYear is the four digit year editor.
	KindYear
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindDay:
		return "day"
	case KindMonth:
		return "month"
	case KindYear:
		return "year"
	default:
		return "unknown"
	}
}

// IsEditor reports whether the kind holds a numeric value.
func (k Kind) IsEditor() bool {
	return k == KindDay || k == KindMonth || k == KindYear
}

// Reject is returned by Enter when the character was not placed.
const Reject = -1

// Component is one fixed-width piece of a date layout.
type Component interface {
	// Kind returns what the component represents.
	Kind() Kind

	// Width returns the number of characters the component occupies.
	Width() int

	// Value returns the current rendering, always Width runes long.
	Value() string

	// Enter places c at offset (relative to the component start).
	// It returns the number of positions the caret advances, or Reject.
	Enter(c rune, offset int) int
}
