// ABOUTME: Point stack engine: owns the active/redo sequences and persists after each mutation
// ABOUTME: Transitions are pure (undo.History); save failures are logged, never returned

package board

import (
	"github.com/mauromedda/circles-go/internal/eventbus"
	"github.com/mauromedda/circles-go/internal/log"
	"github.com/mauromedda/circles-go/internal/point"
	"github.com/mauromedda/circles-go/pkg/undo"
)

// Default persistence keys. They match the keys the web version of the app used.
const (
	DefaultActiveKey = "circles"
	DefaultRedoKey   = "undo-circles"
)

// Store is the key-value persistence the engine mirrors its state into.
// Load must return an empty sequence for absent or unreadable keys.
type Store interface {
	Load(key string) []point.Point
	Save(key string, pts []point.Point) error
}

// Op identifies the operation that produced a Change.
type Op string

const (
	OpLoad  Op = "load"
	OpAdd   Op = "add"
	OpUndo  Op = "undo"
	OpRedo  Op = "redo"
	OpReset Op = "reset"
)

// Change describes one applied transition and the resulting state.
type Change struct {
	Op     Op
	Point  point.Point // the added, undone or redone point; zero for load/reset
	Active []point.Point
	Redo   []point.Point
}

// Option configures an Engine.
type Option func(*Engine)

// WithKeys overrides the persistence keys.
func WithKeys(activeKey, redoKey string) Option {
	return func(e *Engine) {
		if activeKey != "" {
			e.activeKey = activeKey
		}
		if redoKey != "" {
			e.redoKey = redoKey
		}
	}
}

// Engine owns the point history for one session. It is not safe for
// concurrent use; callers drive it from a single goroutine.
type Engine struct {
	store     Store
	activeKey string
	redoKey   string

	hist    undo.History[point.Point]
	bus     *eventbus.Bus[Change]
	saveErr error
}

// New creates an Engine and restores its state from store, reading each key once.
func New(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:     store,
		activeKey: DefaultActiveKey,
		redoKey:   DefaultRedoKey,
		bus:       eventbus.New[Change](),
	}
	for _, opt := range opts {
		opt(e)
	}

	active := store.Load(e.activeKey)
	redo := store.Load(e.redoKey)
	e.hist = undo.Restore(active, redo)
	log.Debug("board: restored %d active, %d redo", len(active), len(redo))
	return e
}

// AddPoint places p, discarding any undone points.
func (e *Engine) AddPoint(p point.Point) {
	e.apply(OpAdd, p, e.hist.Push(p))
}

// Undo moves the most recent point to the redo buffer. Returns false, leaving
// state untouched, when there is nothing to undo.
func (e *Engine) Undo() bool {
	moved, ok := e.hist.Last()
	if !ok {
		return false
	}
	next, _ := e.hist.Undo()
	e.apply(OpUndo, moved, next)
	return true
}

// Redo moves the most recently undone point back. Returns false when the redo
// buffer is empty.
func (e *Engine) Redo() bool {
	moved, ok := e.hist.NextRedo()
	if !ok {
		return false
	}
	next, _ := e.hist.Redo()
	e.apply(OpRedo, moved, next)
	return true
}

// Reset clears both sequences.
func (e *Engine) Reset() {
	e.apply(OpReset, point.Point{}, e.hist.Reset())
}

// Active returns a copy of the active sequence in placement order.
func (e *Engine) Active() []point.Point { return e.hist.Done() }

// RedoBuffer returns a copy of the redo buffer; the last element is redone first.
func (e *Engine) RedoBuffer() []point.Point { return e.hist.Undone() }

// CanUndo reports whether Undo would move a point.
func (e *Engine) CanUndo() bool { return e.hist.CanUndo() }

// CanRedo reports whether Redo would move a point.
func (e *Engine) CanRedo() bool { return e.hist.CanRedo() }

// CanReset reports whether Reset would change anything.
func (e *Engine) CanReset() bool { return !e.hist.Empty() }

// LastSaveError returns the error from the most recent persist, or nil.
func (e *Engine) LastSaveError() error { return e.saveErr }

// Keys returns the active and redo persistence keys.
func (e *Engine) Keys() (activeKey, redoKey string) { return e.activeKey, e.redoKey }

// Subscribe registers fn for every applied change and returns an unsubscribe func.
func (e *Engine) Subscribe(fn func(Change)) func() {
	return e.bus.Subscribe(fn)
}

// Snapshot returns the current state as a load change, for late subscribers.
func (e *Engine) Snapshot() Change {
	return Change{Op: OpLoad, Active: e.Active(), Redo: e.RedoBuffer()}
}

func (e *Engine) apply(op Op, p point.Point, next undo.History[point.Point]) {
	e.hist = next
	e.persist()
	e.bus.Publish(Change{Op: op, Point: p, Active: e.Active(), Redo: e.RedoBuffer()})
}

// persist mirrors both sequences into the store. The in-memory state stays
// authoritative whatever the store does.
func (e *Engine) persist() {
	e.saveErr = nil
	if err := e.store.Save(e.activeKey, e.hist.Done()); err != nil {
		log.Warn("board: saving %q: %v", e.activeKey, err)
		e.saveErr = err
	}
	if err := e.store.Save(e.redoKey, e.hist.Undone()); err != nil {
		log.Warn("board: saving %q: %v", e.redoKey, err)
		e.saveErr = err
	}
}
