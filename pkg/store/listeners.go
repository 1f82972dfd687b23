package store

import "sync/atomic"

// Op names the kind of mutation reported in a Change.
type Op string

const (
	OpRegister     Op = "register"
	OpUnregister   Op = "unregister"
	OpValue        Op = "value"
	OpMode         Op = "mode"
	OpPresetSave   Op = "preset-save"
	OpPresetLoad   Op = "preset-load"
	OpPresetDelete Op = "preset-delete"
	OpPresetClear  Op = "preset-clear"
	OpPresetRename Op = "preset-rename"
)

// Change describes one completed mutation. Path is set for value and mode
// changes. Version is the store generation after the mutation.
type Change struct {
	PanelID string `json:"panelId"`
	Op      Op     `json:"op"`
	Path    string `json:"path,omitempty"`
	Version uint64 `json:"version"`
}

// Listener receives panel and panel-list changes.
type Listener func(Change)

// ActionListener receives the path of a triggered action.
type ActionListener func(path string)

var listenerIDCounter uint64

func nextListenerID() uint64 {
	return atomic.AddUint64(&listenerIDCounter, 1)
}

type listenerEntry[F any] struct {
	id uint64
	fn F
}

// listenerSet is an ordered set of callbacks. It is guarded by the store
// mutex; snapshot copies the callbacks so they can run unlocked.
type listenerSet[F any] struct {
	entries []listenerEntry[F]
}

func (l *listenerSet[F]) add(fn F) uint64 {
	id := nextListenerID()
	l.entries = append(l.entries, listenerEntry[F]{id: id, fn: fn})
	return id
}

// remove deletes the listener with id and reports whether it was present.
func (l *listenerSet[F]) remove(id uint64) bool {
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (l *listenerSet[F]) len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// snapshot copies the callbacks in subscription order.
func (l *listenerSet[F]) snapshot() []F {
	if l == nil || len(l.entries) == 0 {
		return nil
	}
	out := make([]F, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.fn
	}
	return out
}
