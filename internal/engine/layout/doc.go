// Package layout composes the ordered sequence of editors and separators that
// make up one date format.
//
// A Pattern is the locale-supplied description of the format: the three date
// parts in display order with literal separators between (and sometimes
// after) them. Patterns come from the built-in locale table, from a
// "dd.MM.yyyy"-style string, or from an explicit list of parts:
//
//	p, _ := layout.ParsePattern("yyyy. MM. dd")
//	p = layout.NewPattern("D", ".", "M", ".", "Y")
//	p = layout.ForLocale("sv-SE")
//
// Compose turns a pattern and optional seeds into a Layout. Seeds of zero (or
// out of range) are replaced by today's values.
package layout
