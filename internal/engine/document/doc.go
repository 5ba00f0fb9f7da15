// Package document implements the editable date document behind a date field.
//
// A Document owns one composed layout and a display text. Typed characters
// are routed by offset to the editor or literal that owns the position; a
// character no component accepts is tried as a macro. The display text is
// always either empty or the full canonical rendering of the layout, so the
// text width never disagrees with the layout.
//
// A Document is not safe for concurrent use.
package document
