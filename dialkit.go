// Package dialkit provides the public API for live-tweaking panels.
//
// This is the recommended import for most applications:
//
//	import "github.com/dialkit-go/dialkit"
//
// Usage:
//
//	type Card struct {
//	    Opacity float64 `json:"opacity"`
//	    Motion  struct {
//	        Visible bool `json:"visible"`
//	    } `json:"motion"`
//	}
//
//	st := dialkit.New()
//	card := dialkit.Use[Card](st, "card", dialkit.NewTree().
//	    Set("opacity", dialkit.Range(0.8, 0, 1)).
//	    Set("motion", dialkit.NewTree().Set("visible", true)))
//	defer card.Close()
//
//	v, err := card.Get()
package dialkit

import (
	"sync"

	"github.com/dialkit-go/dialkit/pkg/control"
	"github.com/dialkit-go/dialkit/pkg/store"
)

// =============================================================================
// Store
// =============================================================================

// Store holds panels, their values and presets.
type Store = store.Store

// Option configures a Store.
type Option = store.Option

// New creates an empty store.
func New(opts ...Option) *Store {
	return store.New(opts...)
}

var (
	// WithLogger sets the store's logger.
	WithLogger = store.WithLogger

	// WithObserver registers a function called for every change.
	WithObserver = store.WithObserver
)

// =============================================================================
// Configuration trees
// =============================================================================

// Tree is an ordered configuration tree.
type Tree = control.Tree

// Record is a tagged control record such as a spring or a choice.
type Record = control.Record

// Result is a resolved, nested view of a panel's values.
type Result = control.Result

// NewTree creates an empty configuration tree.
func NewTree() *Tree {
	return control.NewTree()
}

// Control constructors.
var (
	Range         = control.Range
	Toggle        = control.Toggle
	Text          = control.Text
	Color         = control.Color
	Choice        = control.Choice
	Options       = control.Options
	Opt           = control.Opt
	Spring        = control.Spring
	PhysicsSpring = control.PhysicsSpring
	Easing        = control.Easing
	Action        = control.Action
)

// =============================================================================
// Handles
// =============================================================================

// Handle is a registered panel whose resolved values decode into T.
type Handle[T any] struct {
	store *Store
	id    string

	mu     sync.Mutex
	stops  []func()
	closed bool
}

// Use registers tree under an id derived from name and returns a handle to
// it. Registering the same name twice yields two independent panels.
func Use[T any](st *Store, name string, tree *Tree) *Handle[T] {
	return &Handle[T]{store: st, id: st.Register(name, tree)}
}

// ID returns the panel id.
func (h *Handle[T]) ID() string {
	return h.id
}

// Result returns the panel's current resolved values.
func (h *Handle[T]) Result() Result {
	return h.store.Resolve(h.id)
}

// Values returns the panel's current snapshot.
func (h *Handle[T]) Values() *store.Snapshot {
	return h.store.Values(h.id)
}

// Get decodes the current resolved values into a T.
func (h *Handle[T]) Get() (T, error) {
	var v T
	err := h.Result().Decode(&v)
	return v, err
}

// OnChange calls fn with the resolved values after every change to the
// panel. The returned function unsubscribes.
func (h *Handle[T]) OnChange(fn func(Result)) func() {
	return h.track(h.store.Subscribe(h.id, func(store.Change) {
		fn(h.Result())
	}))
}

// OnAction calls fn whenever the action at path is triggered. The
// returned function unsubscribes.
func (h *Handle[T]) OnAction(path string, fn func()) func() {
	return h.track(h.store.SubscribeActions(h.id, func(p string) {
		if p == path {
			fn()
		}
	}))
}

func (h *Handle[T]) track(stop func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		stop()
		return func() {}
	}
	h.stops = append(h.stops, stop)
	return stop
}

// Close drops the handle's subscriptions and unregisters the panel.
func (h *Handle[T]) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	stops := h.stops
	h.stops = nil
	h.mu.Unlock()

	for _, stop := range stops {
		stop()
	}
	h.store.UnregisterPanel(h.id)
}
