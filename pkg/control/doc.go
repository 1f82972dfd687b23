// Package control turns a declarative configuration tree into a control
// schema and resolves live values back into a result shaped like the tree.
//
// A configuration tree maps keys to loosely-typed entries:
//
//	tree := control.NewTree().
//	    Set("opacity", []float64{0.8, 0, 1}).
//	    Set("enabled", true).
//	    Set("tint", "#ff00ff").
//	    Set("shadow", control.NewTree().
//	        Set("blur", 24).
//	        Set("_collapsed", true)).
//	    Set("enter", control.Spring(0.3, 0.2)).
//	    Set("reset", control.Action("Reset"))
//
// Classify decides the control kind of a single entry. Build walks the
// whole tree and returns the metadata tree, the flat path→value map and the
// initial mode of every spring. Resolve combines the tree with a flat value
// map and returns a Result with the same nesting as the tree.
//
// Entries that match no rule are dropped from the schema and from the
// result; nothing in this package returns an error for malformed input.
//
// Keys starting with an underscore are reserved for rendering hints
// (currently "_collapsed" on groups) and never produce a control or a value.
package control
