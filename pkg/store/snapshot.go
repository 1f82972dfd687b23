package store

import "github.com/dialkit-go/dialkit/pkg/control"

// Snapshot is an immutable view of a panel's values and spring modes.
// A new Snapshot replaces the old one on every mutation; callers must not
// modify the maps.
type Snapshot struct {
	PanelID string            `json:"panelId"`
	Version uint64            `json:"version"`
	Values  map[string]any    `json:"values"`
	Modes   map[string]string `json:"modes"`
}

// EmptySnapshot is returned by Store.Values for panels that are not
// registered. It is the same pointer on every call.
var EmptySnapshot = &Snapshot{
	Values: map[string]any{},
	Modes:  map[string]string{},
}

// Get returns the value stored at path.
func (s *Snapshot) Get(path string) (any, bool) {
	v, ok := s.Values[path]
	return v, ok
}

// Mode returns the mode of the spring at path, or control.DefaultMode.
func (s *Snapshot) Mode(path string) string {
	if m, ok := s.Modes[path]; ok {
		return m
	}
	return control.DefaultMode
}

func copyValues(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func copyModes(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// cloneValue copies record values so that snapshots, presets and base
// values never share mutable state with each other or with callers.
func cloneValue(v any) any {
	switch x := v.(type) {
	case control.Record:
		return x.Clone()
	case map[string]any:
		return control.Record(x).Clone()
	}
	return v
}
