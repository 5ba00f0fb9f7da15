// Package widget hosts a date document in a one-line terminal field.
//
// A Field turns key events into document operations and draws the document
// text with a caret. Screens abstract the terminal: Terminal drives a real
// one through tcell, MemScreen records output for tests.
package widget
