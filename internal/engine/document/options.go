package document

import (
	"time"

	"github.com/dshills/datefield/internal/engine/layout"
	"github.com/dshills/datefield/internal/engine/special"
	"github.com/dshills/datefield/internal/logging"
	"github.com/dshills/datefield/internal/notify"
)

// Option configures a Document.
type Option func(*Document)

// WithLocale selects the layout of locale. WithPattern takes precedence.
func WithLocale(locale string) Option {
	return func(d *Document) { d.locale = locale }
}

// WithPattern sets an explicit layout pattern.
func WithPattern(p layout.Pattern) Option {
	return func(d *Document) { d.pattern = p }
}

// WithResolver sets the macro resolver. A nil resolver disables macros.
func WithResolver(r special.Resolver) Option {
	return func(d *Document) {
		d.resolver = r
		d.resolverSet = true
	}
}

// WithClock sets the source of "today".
func WithClock(now func() time.Time) Option {
	return func(d *Document) {
		if now != nil {
			d.now = now
		}
	}
}

// WithLocation sets the location of returned dates.
func WithLocation(loc *time.Location) Option {
	return func(d *Document) {
		if loc != nil {
			d.loc = loc
		}
	}
}

// WithDate seeds the layout with t instead of today.
func WithDate(t time.Time) Option {
	return func(d *Document) {
		seed := layout.SeedFrom(t)
		d.seed = &seed
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(d *Document) { d.logger = l }
}

// WithNotifier publishes changes to n.
func WithNotifier(n *notify.Notifier) Option {
	return func(d *Document) { d.notifier = n }
}

// WithMaxLength limits the display text to n runes. With autoRepair the text
// is trimmed after every mutation; otherwise only Repair trims it.
func WithMaxLength(n int, autoRepair bool) Option {
	return func(d *Document) {
		d.maxLength = n
		d.autoRepair = autoRepair
	}
}
