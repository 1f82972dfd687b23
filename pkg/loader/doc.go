// Package loader reads configuration trees from JSON and TOML files.
//
// Both formats keep the key order of the file, so controls appear in the
// order they were written. Objects carrying a string "kind" entry become
// control.Record values; other objects become nested trees (groups).
// Integers are read as float64.
package loader
