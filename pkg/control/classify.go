package control

import "regexp"

// hexColor matches "#" followed by 3, 6 or 8 hex digits.
var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// IsHexColor reports whether s is a strict hex color literal.
func IsHexColor(s string) bool {
	return hexColor.MatchString(s)
}

// rule maps one accepted entry shape to a control kind.
type rule struct {
	name  string
	match func(v any) (Kind, bool)
}

// rules is evaluated in order; the first match wins.
var rules = []rule{
	{"tuple", func(v any) (Kind, bool) {
		_, ok := asTuple(v)
		return KindRange, ok
	}},
	{"number", func(v any) (Kind, bool) {
		return KindRange, isNumber(v)
	}},
	{"boolean", func(v any) (Kind, bool) {
		_, ok := v.(bool)
		return KindBoolean, ok
	}},
	{"tagged", func(v any) (Kind, bool) {
		rec, k, ok := taggedRecord(v)
		if !ok {
			return "", false
		}
		if k == KindChoice && len(parseOptions(rec["options"])) == 0 {
			return "", false
		}
		return k, true
	}},
	{"string", func(v any) (Kind, bool) {
		s, ok := v.(string)
		if !ok {
			return "", false
		}
		if IsHexColor(s) {
			return KindColor, true
		}
		return KindText, true
	}},
	{"group", func(v any) (Kind, bool) {
		if _, ok := mappingEntries(v); !ok {
			return "", false
		}
		if rec, ok := asRecord(v); ok && taggedKinds[rec.Kind()] {
			return "", false
		}
		return KindGroup, true
	}},
}

// Classify returns the control kind of a configuration entry. The boolean
// is false for entries outside the accepted shapes; callers drop them.
func Classify(v any) (Kind, bool) {
	for _, r := range rules {
		if k, ok := r.match(v); ok {
			return k, true
		}
	}
	return "", false
}
