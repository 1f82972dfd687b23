package control

var (
	timeFields    = []string{"visualDuration", "bounce"}
	physicsFields = []string{"stiffness", "damping", "mass"}
)

// Defaults used when a spring switches to a mode it has no fields for.
var (
	timeDefaults    = Record{"visualDuration": 0.3, "bounce": 0.2}
	physicsDefaults = Record{"stiffness": 200.0, "damping": 25.0, "mass": 1.0}
)

func hasAny(rec Record, fields []string) bool {
	for _, f := range fields {
		if _, ok := rec[f]; ok {
			return true
		}
	}
	return false
}

// springMode reports which field family a spring record uses. Records with
// neither family are treated as time-domain.
func springMode(rec Record) string {
	if !hasAny(rec, timeFields) && hasAny(rec, physicsFields) {
		return ModePhysics
	}
	return ModeTime
}

// normalizeSpring returns a copy of rec holding a single field family.
// Time-domain fields win when both are present.
func normalizeSpring(rec Record) Record {
	out := rec.Clone()
	if out == nil {
		out = Record{}
	}
	out["kind"] = string(KindSpring)
	if springMode(out) == ModeTime {
		for _, f := range physicsFields {
			delete(out, f)
		}
	} else {
		for _, f := range timeFields {
			delete(out, f)
		}
	}
	return out
}

// SwitchSpringMode returns a copy of rec using only the fields of mode.
// Fields of the target family that rec lacks are filled with defaults;
// fields of the other family are removed. Unknown modes return rec's
// normalized copy.
func SwitchSpringMode(rec Record, mode string) Record {
	out := rec.Clone()
	if out == nil {
		out = Record{}
	}
	out["kind"] = string(KindSpring)

	var keep, drop []string
	var defaults Record
	switch mode {
	case ModeTime:
		keep, drop, defaults = timeFields, physicsFields, timeDefaults
	case ModePhysics:
		keep, drop, defaults = physicsFields, timeFields, physicsDefaults
	default:
		return normalizeSpring(out)
	}
	for _, f := range drop {
		delete(out, f)
	}
	for _, f := range keep {
		if _, ok := out[f]; !ok {
			out[f] = defaults[f]
		}
	}
	return out
}
