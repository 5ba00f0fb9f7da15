package widget

import (
	"strings"
	"sync"
)

// Cell is one cell of a MemScreen.
type Cell struct {
	Rune  rune
	Style Style
}

// MemScreen is an in-memory Screen. Events posted to it are returned by
// PollEvent in order.
type MemScreen struct {
	mu      sync.Mutex
	width   int
	height  int
	cells   []Cell
	cursorX int
	cursorY int
	cursor  bool
	shown   int
	events  chan Event
}

// NewMemScreen creates a width x height screen.
func NewMemScreen(width, height int) *MemScreen {
	s := &MemScreen{
		width:  width,
		height: height,
		events: make(chan Event, 64),
	}
	s.cells = make([]Cell, width*height)
	s.clear()
	return s
}

func (s *MemScreen) Init() error { return nil }
func (s *MemScreen) Shutdown()   {}

func (s *MemScreen) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *MemScreen) SetCell(x, y int, r rune, style Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	s.cells[y*s.width+x] = Cell{Rune: r, Style: style}
}

func (s *MemScreen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
}

func (s *MemScreen) clear() {
	for i := range s.cells {
		s.cells[i] = Cell{Rune: ' '}
	}
}

func (s *MemScreen) Show() {
	s.mu.Lock()
	s.shown++
	s.mu.Unlock()
}

func (s *MemScreen) ShowCursor(x, y int) {
	s.mu.Lock()
	s.cursorX, s.cursorY, s.cursor = x, y, true
	s.mu.Unlock()
}

func (s *MemScreen) HideCursor() {
	s.mu.Lock()
	s.cursor = false
	s.mu.Unlock()
}

func (s *MemScreen) PollEvent() Event {
	return <-s.events
}

func (s *MemScreen) PostEvent(ev Event) {
	s.events <- ev
}

// Pending returns the number of queued events.
func (s *MemScreen) Pending() int {
	return len(s.events)
}

// Resize changes the screen size and clears it.
func (s *MemScreen) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	s.cells = make([]Cell, width*height)
	s.clear()
}

// Cell returns the cell at x, y.
func (s *MemScreen) Cell(x, y int) Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return Cell{}
	}
	return s.cells[y*s.width+x]
}

// Line returns row y with trailing blanks removed.
func (s *MemScreen) Line(y int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if y < 0 || y >= s.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		if c.Rune != 0 {
			sb.WriteRune(c.Rune)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// Cursor returns the cursor position and whether it is visible.
func (s *MemScreen) Cursor() (x, y int, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursorX, s.cursorY, s.cursor
}

// Shown returns how many times Show was called.
func (s *MemScreen) Shown() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shown
}
