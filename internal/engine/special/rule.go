package special

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Type selects how a field rule computes its value.
type Type uint8

const (
	// Increment adds the rule value to the field's current value.
	Increment Type = iota
	// Offset adds the rule value to today's value of the field.
	Offset
	// Constant sets the field to the rule value.
	Constant
)

// Char returns the letter that denotes t in a macro file.
func (t Type) Char() byte {
	switch t {
	case Constant:
		return 'c'
	case Offset:
		return 'o'
	default:
		return 'i'
	}
}

func (t Type) String() string {
	switch t {
	case Constant:
		return "constant"
	case Offset:
		return "offset"
	case Increment:
		return "increment"
	default:
		return "unknown"
	}
}

func typeOf(c byte) (Type, bool) {
	switch c {
	case 'c':
		return Constant, true
	case 'o':
		return Offset, true
	case 'i':
		return Increment, true
	default:
		return Increment, false
	}
}

// FieldRule computes one of year, month or day.
type FieldRule struct {
	Type  Type
	Value int
}

func (r FieldRule) apply(current, today int) int {
	switch r.Type {
	case Constant:
		return r.Value
	case Offset:
		return today + r.Value
	default:
		return current + r.Value
	}
}

func (r FieldRule) String() string {
	return string(r.Type.Char()) + strconv.Itoa(r.Value)
}

// Rule is the definition bound to one trigger character.
type Rule struct {
	Trigger rune
	Year    FieldRule
	Month   FieldRule
	Day     FieldRule
}

// String renders the rule as a macro file line.
func (r Rule) String() string {
	return fmt.Sprintf("%c|%s|%s|%s", r.Trigger, r.Year, r.Month, r.Day)
}

// Fields are the year, month and day currently held by a date field.
type Fields struct {
	Year  int
	Month int
	Day   int
}

// Apply computes the date r yields for the current field values. The result
// is midnight of the normalized date in today's location.
func (r Rule) Apply(cur Fields, today time.Time) time.Time {
	y := r.Year.apply(cur.Year, today.Year())
	m := r.Month.apply(cur.Month, int(today.Month()))
	d := r.Day.apply(cur.Day, today.Day())
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, today.Location())
}

// Resolver turns a trigger character into a new date.
type Resolver interface {
	// Resolve reports false when trigger has no meaning.
	Resolve(trigger rune, cur Fields, today time.Time) (time.Time, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(trigger rune, cur Fields, today time.Time) (time.Time, bool)

// Resolve calls f.
func (f ResolverFunc) Resolve(trigger rune, cur Fields, today time.Time) (time.Time, bool) {
	return f(trigger, cur, today)
}

// Map holds one rule per trigger. A Map is not modified after loading.
type Map map[rune]Rule

// Resolve applies the rule for trigger.
func (m Map) Resolve(trigger rune, cur Fields, today time.Time) (time.Time, bool) {
	r, ok := m[trigger]
	if !ok {
		return time.Time{}, false
	}
	return r.Apply(cur, today), true
}

// Triggers returns the defined trigger characters in ascending order.
func (m Map) Triggers() []rune {
	out := make([]rune, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Chain consults each resolver in order and returns the first answer.
type Chain []Resolver

// Resolve implements Resolver.
func (c Chain) Resolve(trigger rune, cur Fields, today time.Time) (time.Time, bool) {
	for _, r := range c {
		if r == nil {
			continue
		}
		if t, ok := r.Resolve(trigger, cur, today); ok {
			return t, true
		}
	}
	return time.Time{}, false
}
