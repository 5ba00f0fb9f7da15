package document

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/datefield/internal/engine/field"
	"github.com/dshills/datefield/internal/engine/layout"
	"github.com/dshills/datefield/internal/engine/special"
	"github.com/dshills/datefield/internal/logging"
	"github.com/dshills/datefield/internal/notify"
)

// Document is an editable date. The zero value is not usable; use New.
type Document struct {
	id      string
	locale  string
	pattern layout.Pattern
	seed    *layout.Seed
	layout  *layout.Layout

	text  string
	caret int

	resolver    special.Resolver
	resolverSet bool

	now func() time.Time
	loc *time.Location

	logger   *logging.Logger
	notifier *notify.Notifier

	maxLength  int
	autoRepair bool
}

// New creates a document. Without options it uses the DefaultLocale layout
// seeded with today, the built-in macros and the local time zone.
func New(opts ...Option) (*Document, error) {
	d := &Document{
		id:     uuid.NewString(),
		locale: layout.DefaultLocale,
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(d)
	}

	if !d.resolverSet {
		d.resolver = special.Defaults()
	}
	if d.pattern == nil {
		d.pattern = layout.ForLocale(d.locale)
	}
	d.logger = logging.OrDefault(d.logger).WithComponent("document").WithField("doc", d.id[:8])

	var seed layout.Seed
	if d.seed != nil {
		seed = *d.seed
	}
	l, err := layout.Compose(d.pattern, seed, d.today())
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	d.layout = l
	return d, nil
}

// ID returns the unique document ID used as the source of its changes.
func (d *Document) ID() string { return d.id }

// Pattern returns the layout pattern.
func (d *Document) Pattern() layout.Pattern { return d.layout.Pattern() }

// Width returns the width of the full rendering.
func (d *Document) Width() int { return d.layout.Width() }

// Text returns the display text. It is empty or equal to Content, unless a
// maximum length trimmed it.
func (d *Document) Text() string { return d.text }

// Len returns the display text length in characters.
func (d *Document) Len() int { return utf8.RuneCountInString(d.text) }

// Content returns the canonical rendering of the current values, whether or
// not it is displayed.
func (d *Document) Content() string { return d.layout.Text() }

// Caret returns the caret position.
func (d *Document) Caret() int { return d.caret }

// SetCaret moves the caret, clamped to the display text.
func (d *Document) SetCaret(pos int) {
	d.caret = clamp(pos, 0, d.Len())
}

// Fields returns the current year, month and day values.
func (d *Document) Fields() special.Fields {
	y, m, day := d.layout.Values()
	return special.Fields{Year: y, Month: m, Day: day}
}

// Insert types s at offset and returns the new caret position, or -1 when
// offset lies outside the layout.
//
// Each character goes to the component owning the offset; a rejected
// character moves on to the following components. A character nobody
// accepts is resolved as a macro. A macro replaces the whole date, puts the
// caret at the end of the text and ends the insert, so a repeated trigger
// goes straight back to the macro table even when it is also a separator.
func (d *Document) Insert(offset int, s string) int {
	if offset < 0 || offset > d.layout.Width() {
		return -1
	}

	old, start := d.text, offset
	accepted, changed := false, false
	commit := func() {
		if !accepted {
			return
		}
		d.text = d.layout.Text()
		d.caret = offset
		d.repairIfAuto()
		d.publish(notify.KindInsert, start, old, 0)
		old, start = d.text, offset
		accepted, changed = false, true
	}

	for _, c := range s {
		if next, ok := d.enter(offset, c); ok {
			offset = next
			accepted = true
			continue
		}
		commit()
		if d.applySpecial(c) {
			return d.caret
		}
		d.logger.Debug("rejected %q at %d", c, offset)
	}

	commit()
	if !changed {
		d.SetCaret(offset)
	}
	return d.caret
}

func (d *Document) enter(offset int, c rune) (int, bool) {
	index, local, start, ok := d.layout.Locate(offset)
	if !ok {
		return offset, false
	}
	components := d.layout.Components()
	for _, comp := range components[index:] {
		if n := comp.Enter(c, local); n != field.Reject {
			return start + local + n, true
		}
		start += comp.Width()
		local = 0
	}
	return offset, false
}

func (d *Document) applySpecial(c rune) bool {
	if d.resolver == nil {
		return false
	}
	t, ok := d.resolver.Resolve(c, d.Fields(), d.today())
	if !ok {
		return false
	}

	old := d.text
	d.rebuild(layout.SeedFrom(t))
	d.text = d.layout.Text()
	d.repairIfAuto()
	d.SetCaret(d.Len())
	d.logger.Debug("macro %q resolved to %s", c, t.Format(time.DateOnly))
	d.publish(notify.KindSpecial, 0, old, c)
	return true
}

// Remove deletes length characters at offset. Fields never become partially
// blank: removing the whole text empties the display but keeps the values,
// any smaller range leaves the text as it is and moves the caret to offset.
func (d *Document) Remove(offset, length int) error {
	n := d.Len()
	if offset < 0 || length < 0 || offset+length > n {
		return fmt.Errorf("%w: remove %d+%d from %d", ErrBadLocation, offset, length, n)
	}
	if length == 0 {
		return nil
	}

	old := d.text
	if offset == 0 && length == n {
		d.text = ""
	}
	d.SetCaret(offset)
	d.repairIfAuto()
	if d.text != old {
		d.publish(notify.KindRemove, offset, old, 0)
	}
	return nil
}

// Replace removes length characters at offset and inserts s there.
func (d *Document) Replace(offset, length int, s string) (int, error) {
	if err := d.Remove(offset, length); err != nil {
		return -1, err
	}
	return d.Insert(offset, s), nil
}

// SetDate rebuilds the layout from t and clears the display text. Date still
// reports t afterwards; DateOrNull reports no value until text is entered.
func (d *Document) SetDate(t time.Time) {
	d.reset(t, false)
}

// SetDateAndDisplay rebuilds the layout from t, displays it and puts the
// caret at 0.
func (d *Document) SetDateAndDisplay(t time.Time) {
	d.reset(t, true)
}

func (d *Document) reset(t time.Time, display bool) {
	old := d.text
	d.rebuild(layout.SeedFrom(t))
	d.text = ""
	if display {
		d.text = d.layout.Text()
	}
	d.caret = 0
	d.repairIfAuto()
	d.publish(notify.KindReset, 0, old, 0)
}

func (d *Document) rebuild(seed layout.Seed) {
	l, err := layout.Compose(d.pattern, seed, d.today())
	if err != nil {
		d.logger.Error("rebuild layout: %v", err)
		return
	}
	d.layout = l
}

// Date returns the date held by the editors, with today's time of day.
// Values that do not form a calendar date are normalized.
func (d *Document) Date() time.Time {
	now := d.today()
	y, m, day := d.layout.Values()
	return time.Date(y, time.Month(m), day, now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), d.loc)
}

// DateOrNull is like Date but reports false when the display text is empty.
func (d *Document) DateOrNull() (time.Time, bool) {
	if d.text == "" {
		return time.Time{}, false
	}
	return d.Date(), true
}

// DateWithoutTime returns the date held by the editors at midnight.
func (d *Document) DateWithoutTime() time.Time {
	y, m, day := d.layout.Values()
	return time.Date(y, time.Month(m), day, 0, 0, 0, 0, d.loc)
}

// DateWithoutTimeOrNull is like DateWithoutTime but reports false when the
// display text is empty.
func (d *Document) DateWithoutTimeOrNull() (time.Time, bool) {
	if d.text == "" {
		return time.Time{}, false
	}
	return d.DateWithoutTime(), true
}

// Repair trims the display text to the maximum length, if one is set.
func (d *Document) Repair() {
	if d.maxLength <= 0 || d.Len() <= d.maxLength {
		return
	}
	r := []rune(d.text)
	d.text = string(r[:d.maxLength])
	d.caret = clamp(d.caret, 0, d.maxLength)
	d.logger.Debug("trimmed text to %d characters", d.maxLength)
}

func (d *Document) repairIfAuto() {
	if d.autoRepair {
		d.Repair()
	}
}

func (d *Document) today() time.Time {
	return d.now().In(d.loc)
}

func (d *Document) publish(kind notify.Kind, offset int, old string, trigger rune) {
	if d.notifier == nil {
		return
	}
	d.notifier.Notify(notify.Change{
		Kind:    kind,
		Source:  d.id,
		Offset:  offset,
		OldText: old,
		NewText: d.text,
		Trigger: trigger,
	})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
