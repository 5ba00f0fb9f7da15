// Package field provides the fixed-width pieces a date layout is built from.
//
// A layout is an ordered sequence of Components. Editors hold one numeric
// date part (day, month or year) as a zero-padded digit buffer that is never
// partially blank. Literals hold the separators between them.
//
// Typing works positionally: Enter receives one character and the offset
// inside the component, and reports how many positions the caret should
// advance, or Reject if the character cannot be placed there.
//
// Day and month editors overflow early: a leading digit that cannot start a
// two-digit value completes the field on its own ("4" in a day field becomes
// "04" and reports 2 consumed positions). The year editor treats the offset
// as the number of digits typed so far and synthesizes a century for short
// input:
//
//	offset 0: "7"    -> 2007
//	offset 1: "7" 5  -> 1975
//	offset 2: ... 8  -> 1758
//	offset 3: ... 1  -> 7581
//
// Components are not safe for concurrent use.
package field
