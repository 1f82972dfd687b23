package store

import "errors"

// ErrPanelNotFound is returned by SavePreset when the panel is not registered.
// Other operations on absent panels are no-ops.
var ErrPanelNotFound = errors.New("dialkit: panel not found")

// ErrClosed is returned by SavePreset after Close.
var ErrClosed = errors.New("dialkit: store closed")
