package layout

import (
	"strings"
	"time"

	"github.com/dshills/datefield/internal/engine/field"
)

// Seed carries explicit starting values for a layout. Zero or out of range
// values are replaced with today's.
type Seed struct {
	Day   int
	Month int
	Year  int
}

// SeedFrom returns the seed for t's calendar date.
func SeedFrom(t time.Time) Seed {
	return Seed{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

// Layout is one composed date format: editors and literals in display order.
type Layout struct {
	pattern    Pattern
	components []field.Component
	day        *field.Editor
	month      *field.Editor
	year       *field.Editor
	width      int
}

// Compose builds the layout for p. It fails only if p is not a valid pattern.
func Compose(p Pattern, seed Seed, today time.Time) (*Layout, error) {
	if err := p.Validate(); err != nil {
		return nil, &PatternError{Pattern: p.String(), Pos: -1, Err: err}
	}

	l := &Layout{
		pattern:    clonePattern(p),
		components: make([]field.Component, 0, len(p)),
	}

	for _, el := range p {
		var c field.Component
		switch el.Kind {
		case field.KindDay:
			l.day = field.NewDay(seed.Day, today)
			c = l.day
		case field.KindMonth:
			l.month = field.NewMonth(seed.Month, today)
			c = l.month
		case field.KindYear:
			l.year = field.NewYear(seed.Year, today)
			c = l.year
		default:
			c = field.NewLiteral(el.Text)
		}
		l.components = append(l.components, c)
		l.width += c.Width()
	}

	return l, nil
}

// ComposeLocale builds the layout for the pattern of locale.
func ComposeLocale(locale string, seed Seed, today time.Time) *Layout {
	// Table patterns are always valid.
	l, _ := Compose(ForLocale(locale), seed, today)
	return l
}

// Pattern returns the pattern the layout was composed from.
func (l *Layout) Pattern() Pattern { return clonePattern(l.pattern) }

// Components returns the components in display order.
func (l *Layout) Components() []field.Component { return l.components }

// Width returns the total character width of the layout.
func (l *Layout) Width() int { return l.width }

// Day returns the day editor.
func (l *Layout) Day() *field.Editor { return l.day }

// Month returns the month editor.
func (l *Layout) Month() *field.Editor { return l.month }

// Year returns the year editor.
func (l *Layout) Year() *field.Editor { return l.year }

// Text concatenates the current value of every component.
func (l *Layout) Text() string {
	var sb strings.Builder
	sb.Grow(l.width)
	for _, c := range l.components {
		sb.WriteString(c.Value())
	}
	return sb.String()
}

// Values returns the numeric year, month and day held by the editors.
func (l *Layout) Values() (year, month, day int) {
	return l.year.Int(), l.month.Int(), l.day.Int()
}

// Locate finds the component that owns offset. It returns the component
// index, the offset relative to the component start and the component's
// start offset. ok is false when offset lies outside the layout.
func (l *Layout) Locate(offset int) (index, local, start int, ok bool) {
	if offset < 0 {
		return -1, 0, 0, false
	}
	for i, c := range l.components {
		if offset < start+c.Width() {
			return i, offset - start, start, true
		}
		start += c.Width()
	}
	return -1, 0, start, false
}

// Equal reports whether both layouts share the pattern and render the same text.
func (l *Layout) Equal(other *Layout) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.pattern.String() == other.pattern.String() && l.Text() == other.Text()
}
