package control

// Kind is the control kind of a configuration entry.
type Kind string

const (
	KindRange   Kind = "range"
	KindBoolean Kind = "boolean"
	KindText    Kind = "text"
	KindColor   Kind = "color"
	KindChoice  Kind = "choice"
	KindSpring  Kind = "spring"
	KindEasing  Kind = "easing"
	KindAction  Kind = "action"
	KindGroup   Kind = "group"
)

// taggedKinds are the kinds a record may name in its "kind" field.
var taggedKinds = map[Kind]bool{
	KindSpring:  true,
	KindAction:  true,
	KindChoice:  true,
	KindColor:   true,
	KindText:    true,
	KindEasing:  true,
	KindRange:   true,
	KindBoolean: true,
}

// IsLeaf reports whether controls of this kind hold a value.
func (k Kind) IsLeaf() bool {
	return k != KindGroup && k != ""
}

// Spring modes stored in a panel's mode map.
const (
	ModeTime    = "time"
	ModePhysics = "physics"

	// DefaultMode is reported for paths with no stored mode.
	DefaultMode = ModeTime
)

// ReservedPrefix marks keys that configure rendering rather than values.
const ReservedPrefix = "_"

// CollapsedKey makes a group render collapsed by default.
const CollapsedKey = "_collapsed"

// FallbackColor is the resolved value of a color control with no default.
const FallbackColor = "#000000"
