package interaction

import (
	"slices"
	"sync"

	"github.com/gogpu/gpucontext"
)

// Keyboard reports which keys are held and notifies about key transitions.
type Keyboard interface {
	// IsPressed reports whether key is currently held down.
	IsPressed(key gpucontext.Key) bool

	// OnKeyDown registers fn to run when key goes down. The returned
	// function unregisters it.
	OnKeyDown(key gpucontext.Key, fn func()) (cancel func())

	// OnKeyUp registers fn to run when key is released.
	OnKeyUp(key gpucontext.Key, fn func()) (cancel func())
}

// IsControlPressed reports whether either control key is held.
func IsControlPressed(k Keyboard) bool {
	return k.IsPressed(gpucontext.KeyLeftControl) || k.IsPressed(gpucontext.KeyRightControl)
}

type keyListener struct {
	id   int
	key  gpucontext.Key
	down bool
	fn   func()
}

// KeyTracker implements Keyboard on top of a gpucontext.EventSource.
//
// A tracker only sees events between Attach and Detach. Detach also releases
// every held key, so nothing stays stuck down after the window goes away.
//
// KeyTracker is safe for concurrent use. Listeners run on the goroutine that
// delivers the event, outside the tracker's lock.
type KeyTracker struct {
	mu         sync.Mutex
	pressed    map[gpucontext.Key]bool
	listeners  []keyListener
	nextListen int

	// attached counts Attach calls; callbacks from an earlier attachment
	// carry an older generation and are ignored.
	attached   uint64
	generation uint64
}

var _ Keyboard = (*KeyTracker)(nil)

// NewKeyTracker creates a detached tracker with no keys held.
func NewKeyTracker() *KeyTracker {
	return &KeyTracker{pressed: make(map[gpucontext.Key]bool)}
}

// Attach starts tracking key events from src. Attaching again replaces the
// previous source.
//
// gpucontext has no way to unregister callbacks, so the ones registered here
// stay installed on src and turn into no-ops once the tracker is detached or
// attached elsewhere.
func (t *KeyTracker) Attach(src gpucontext.EventSource) {
	t.mu.Lock()
	t.attached++
	gen := t.attached
	t.generation = gen
	t.mu.Unlock()

	src.OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		t.handle(gen, key, true)
	})
	src.OnKeyRelease(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		t.handle(gen, key, false)
	})
}

// Detach stops tracking and releases every held key. Key-up listeners of the
// released keys are notified.
func (t *KeyTracker) Detach() {
	t.mu.Lock()
	t.generation = 0
	held := make([]gpucontext.Key, 0, len(t.pressed))
	for key, down := range t.pressed {
		if down {
			held = append(held, key)
		}
	}
	t.mu.Unlock()

	slices.Sort(held)
	for _, key := range held {
		t.Release(key)
	}
}

// Attached reports whether the tracker currently receives events.
func (t *KeyTracker) Attached() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.generation != 0
}

// Press records key as held and runs its key-down listeners. Hosts without a
// gpucontext.EventSource can feed events through Press and Release directly.
func (t *KeyTracker) Press(key gpucontext.Key) {
	t.set(key, true)
}

// Release records key as released and runs its key-up listeners.
func (t *KeyTracker) Release(key gpucontext.Key) {
	t.set(key, false)
}

// IsPressed implements Keyboard.
func (t *KeyTracker) IsPressed(key gpucontext.Key) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pressed[key]
}

// OnKeyDown implements Keyboard.
func (t *KeyTracker) OnKeyDown(key gpucontext.Key, fn func()) (cancel func()) {
	return t.listen(key, true, fn)
}

// OnKeyUp implements Keyboard.
func (t *KeyTracker) OnKeyUp(key gpucontext.Key, fn func()) (cancel func()) {
	return t.listen(key, false, fn)
}

func (t *KeyTracker) listen(key gpucontext.Key, down bool, fn func()) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextListen
	t.nextListen++
	t.listeners = append(t.listeners, keyListener{id: id, key: key, down: down, fn: fn})
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.listeners = slices.DeleteFunc(t.listeners, func(l keyListener) bool { return l.id == id })
	}
}

func (t *KeyTracker) handle(gen uint64, key gpucontext.Key, down bool) {
	t.mu.Lock()
	current := t.generation == gen
	t.mu.Unlock()
	if current {
		t.set(key, down)
	}
}

func (t *KeyTracker) set(key gpucontext.Key, down bool) {
	t.mu.Lock()
	t.pressed[key] = down
	var fire []func()
	for _, l := range t.listeners {
		if l.key == key && l.down == down {
			fire = append(fire, l.fn)
		}
	}
	t.mu.Unlock()

	for _, fn := range fire {
		fn()
	}
}
