// Package special implements the macro characters of a date field.
//
// A macro file holds one rule per line:
//
//	<key>|<year>|<month>|<day>   # comment
//
// where key is a single character other than '|' and each field spec is empty
// or a type letter followed by a signed integer:
//
//	c<n>  constant: the field becomes n
//	o<n>  offset:   the field becomes today's value plus n
//	i<n>  increment: the field becomes its current value plus n
//
// An empty spec means i0. Lines that do not match are skipped. Later rules for
// the same key replace earlier ones.
//
// Resolved values are normalized the way time.Date normalizes them, so
// "-|||i-1" applied to 01.03.1955 yields 28.02.1955.
package special
