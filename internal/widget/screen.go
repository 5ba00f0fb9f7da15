package widget

// EventType identifies the kind of input event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event is an input event from a Screen.
type Event struct {
	Type EventType
	Key  Key
	Rune rune
	Mod  ModMask

	// Width and Height are set for EventResize.
	Width  int
	Height int
}

// Key identifies a key.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyCtrlA
	KeyCtrlC
	KeyCtrlE
	KeyCtrlU
)

// ModMask holds modifier keys.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether m includes mod.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// KeyEvent returns a key event.
func KeyEvent(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

// RuneEvent returns the event of typing r.
func RuneEvent(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}

// Style selects how a cell is drawn.
type Style int

const (
	StyleDefault Style = iota
	StyleLabel
	StyleText
	StylePlaceholder
	StyleStatus
)

// Screen is the surface a Field draws on and reads input from.
type Screen interface {
	Init() error
	Shutdown()
	Size() (width, height int)
	SetCell(x, y int, r rune, style Style)
	Clear()
	Show()
	ShowCursor(x, y int)
	HideCursor()

	// PollEvent blocks until an event arrives.
	PollEvent() Event

	// PostEvent queues an event for PollEvent. It is safe to call from
	// other goroutines.
	PostEvent(ev Event)
}
