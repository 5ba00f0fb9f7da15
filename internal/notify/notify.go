// Package notify delivers date document changes to observers.
//
// Observers run in subscription order. With WithAsync they run on a single
// background goroutine, otherwise on the goroutine that made the change.
package notify

import (
	"sort"
	"sync"
)

// Kind is the kind of document change.
type Kind int

const (
	// KindInsert is typed text that changed the document.
	KindInsert Kind = iota
	// KindRemove is removed text.
	KindRemove
	// KindReset is a whole-date assignment.
	KindReset
	// KindSpecial is a macro character that replaced the date.
	KindSpecial
	// KindReload is a replaced macro table.
	KindReload
)

func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindRemove:
		return "remove"
	case KindReset:
		return "reset"
	case KindSpecial:
		return "special"
	case KindReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change describes one document change.
type Change struct {
	Kind Kind

	// Source identifies the document or component that changed.
	Source string

	// Offset is the position the change was applied at.
	Offset int

	OldText string
	NewText string

	// Trigger is the macro character for KindSpecial.
	Trigger rune
}

// Observer receives changes.
type Observer func(Change)

// Subscription is an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes the observer. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type entry struct {
	observer Observer
	kinds    map[Kind]bool // nil means every kind
}

// Notifier fans changes out to observers.
type Notifier struct {
	mu        sync.RWMutex
	observers map[uint64]entry
	nextID    uint64
	closed    bool

	async   bool
	buffer  chan Change
	done    chan struct{}
	wg      sync.WaitGroup
	sending sync.WaitGroup // async Notify calls past the closed check
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync delivers changes from a goroutine through a buffer of size.
func WithAsync(size int) Option {
	return func(n *Notifier) {
		if size > 0 {
			n.async = true
			n.buffer = make(chan Change, size)
		}
	}
}

// New creates a Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		observers: make(map[uint64]entry),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.async {
		n.wg.Add(1)
		go n.run()
	}
	return n
}

// Subscribe registers observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.add(entry{observer: observer})
}

// SubscribeKinds registers observer for the listed kinds only.
func (n *Notifier) SubscribeKinds(observer Observer, kinds ...Kind) *Subscription {
	set := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return n.add(entry{observer: observer, kinds: set})
}

func (n *Notifier) add(e entry) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = e
	return &Subscription{id: id, notifier: n}
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	delete(n.observers, id)
	n.mu.Unlock()
}

// Notify delivers change. Changes sent after Close are dropped.
func (n *Notifier) Notify(change Change) {
	if n == nil {
		return
	}
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	if !n.async {
		n.mu.RUnlock()
		n.deliver(change)
		return
	}
	n.sending.Add(1)
	n.mu.RUnlock()
	defer n.sending.Done()

	select {
	case n.buffer <- change:
		return
	default:
	}
	select {
	case n.buffer <- change:
	case <-n.done:
	}
}

// Len returns the number of subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

// Close stops delivery after draining buffered changes. It is idempotent.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.sending.Wait()
	n.wg.Wait()
	n.drain()
}

func (n *Notifier) deliver(change Change) {
	n.mu.RLock()
	ids := make([]uint64, 0, len(n.observers))
	for id, e := range n.observers {
		if e.kinds == nil || e.kinds[change.Kind] {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	observers := make([]Observer, len(ids))
	for i, id := range ids {
		observers[i] = n.observers[id].observer
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}

func (n *Notifier) run() {
	defer n.wg.Done()
	for {
		select {
		case change := <-n.buffer:
			n.deliver(change)
		case <-n.done:
			n.drain()
			return
		}
	}
}

func (n *Notifier) drain() {
	for {
		select {
		case change := <-n.buffer:
			n.deliver(change)
		default:
			return
		}
	}
}
