package layout

import (
	"strings"

	"github.com/dshills/datefield/internal/engine/field"
)

// Element is one entry of a pattern: a date part or a literal separator.
type Element struct {
	Kind field.Kind
	Text string // set for field.KindLiteral only
}

// Pattern is an ordered description of a date format.
type Pattern []Element

// NewPattern builds a pattern from parts. "D", "M" and "Y" denote the day,
// month and year fields; any other part is a literal separator.
func NewPattern(parts ...string) Pattern {
	var p Pattern
	for _, part := range parts {
		switch part {
		case "D":
			p = append(p, Element{Kind: field.KindDay})
		case "M":
			p = append(p, Element{Kind: field.KindMonth})
		case "Y":
			p = append(p, Element{Kind: field.KindYear})
		case "":
		default:
			p = p.appendLiteral(part)
		}
	}
	return p
}

// MustParsePattern is like ParsePattern but panics on error.
func MustParsePattern(s string) Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePattern parses a pattern such as "dd.MM.yyyy".
//
// Runs of d, M and y select the day, month and year fields (run length is
// ignored, the field widths are fixed). Text in single quotes is literal and
// two quotes in a row are a literal quote. Any other ASCII letter is an
// error; everything else is a separator.
func ParsePattern(s string) (Pattern, error) {
	if s == "" {
		return nil, &PatternError{Pattern: s, Pos: -1, Err: ErrEmptyPattern}
	}

	var p Pattern
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			p = p.appendLiteral(lit.String())
			lit.Reset()
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '\'':
			if i+1 < len(runes) && runes[i+1] == '\'' {
				lit.WriteRune('\'')
				i += 2
				continue
			}
			end := i + 1
			for {
				if end >= len(runes) {
					return nil, &PatternError{Pattern: s, Pos: i, Err: ErrUnterminated}
				}
				if runes[end] == '\'' {
					if end+1 < len(runes) && runes[end+1] == '\'' {
						lit.WriteRune('\'')
						end += 2
						continue
					}
					break
				}
				lit.WriteRune(runes[end])
				end++
			}
			i = end + 1

		case isASCIILetter(r):
			kind, ok := symbolKind(r)
			if !ok {
				return nil, &PatternError{Pattern: s, Pos: i, Err: ErrUnknownSymbol}
			}
			j := i
			for j < len(runes) && runes[j] == r {
				j++
			}
			flush()
			p = append(p, Element{Kind: kind})
			i = j

		default:
			lit.WriteRune(r)
			i++
		}
	}
	flush()

	if err := p.Validate(); err != nil {
		return nil, &PatternError{Pattern: s, Pos: -1, Err: err}
	}
	return p, nil
}

// Validate checks that day, month and year each appear exactly once.
func (p Pattern) Validate() error {
	if len(p) == 0 {
		return ErrEmptyPattern
	}
	seen := make(map[field.Kind]bool, 3)
	for _, el := range p {
		if !el.Kind.IsEditor() {
			continue
		}
		if seen[el.Kind] {
			return ErrDuplicateField
		}
		seen[el.Kind] = true
	}
	if len(seen) != 3 {
		return ErrMissingField
	}
	return nil
}

// Order returns the field order as a string such as "DMY".
func (p Pattern) Order() string {
	var sb strings.Builder
	for _, el := range p {
		switch el.Kind {
		case field.KindDay:
			sb.WriteByte('D')
		case field.KindMonth:
			sb.WriteByte('M')
		case field.KindYear:
			sb.WriteByte('Y')
		}
	}
	return sb.String()
}

// String renders the pattern back into "dd.MM.yyyy" form.
func (p Pattern) String() string {
	var sb strings.Builder
	for _, el := range p {
		switch el.Kind {
		case field.KindDay:
			sb.WriteString("dd")
		case field.KindMonth:
			sb.WriteString("MM")
		case field.KindYear:
			sb.WriteString("yyyy")
		default:
			sb.WriteString(quoteLiteral(el.Text))
		}
	}
	return sb.String()
}

func (p Pattern) appendLiteral(text string) Pattern {
	if n := len(p); n > 0 && p[n-1].Kind == field.KindLiteral {
		p[n-1].Text += text
		return p
	}
	return append(p, Element{Kind: field.KindLiteral, Text: text})
}

func symbolKind(r rune) (field.Kind, bool) {
	switch r {
	case 'd', 'D':
		return field.KindDay, true
	case 'M':
		return field.KindMonth, true
	case 'y', 'Y':
		return field.KindYear, true
	default:
		return field.KindLiteral, false
	}
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func quoteLiteral(s string) string {
	if !strings.ContainsFunc(s, isASCIILetter) {
		return strings.ReplaceAll(s, "'", "''")
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
