// Package store holds the live state of registered panels.
//
// A Store owns, per panel, the control schema built from the panel's
// configuration tree, the current flat values and spring modes, an
// immutable Snapshot of both, and the panel's presets. Mutations replace
// the snapshot and then notify listeners:
//
//	s := store.New()
//	defer s.Close()
//
//	s.RegisterPanel("card", "Card", tree)
//	unsub := s.Subscribe("card", func(c store.Change) {
//	    fmt.Println(c.Op, c.Path, s.Values("card").Values[c.Path])
//	})
//	defer unsub()
//
//	s.UpdateValue("card", "shadow.blur", 32.0)
//
// UpdateValue coerces the value to the control's type (see control.Coerce)
// and ignores values the control cannot hold, so stored values are always
// plain numbers, booleans, strings or tagged records.
//
// # Change detection
//
// Values returns the same *Snapshot until the next mutation of that panel,
// so observers can compare pointers or Snapshot.Version. Absent panels
// return EmptySnapshot.
//
// # Presets
//
// SavePreset captures values and modes under a name and makes the preset
// active. While a preset is active every UpdateValue, UpdateMode and
// SwitchSpringMode is written through to it. ClearActivePreset restores the
// base values, which are the registration defaults plus any edits made
// while the panel had presets but none was active.
//
// # Concurrency
//
// All methods are safe for concurrent use. Listeners run on the mutating
// goroutine after the store lock has been released, so they may call back
// into the store.
package store
