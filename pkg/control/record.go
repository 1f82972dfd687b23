package control

// Record is a tagged configuration entry. Its "kind" field selects the
// control kind; the other fields are kind specific. Records are plain
// JSON-compatible maps so they can be stored as values and exported as-is.
type Record map[string]any

// Option is one entry of a choice control.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Opt returns an option with an explicit label.
func Opt(value, label string) Option {
	return Option{Value: value, Label: label}
}

// Options returns options whose labels equal their values.
func Options(values ...string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Label: v}
	}
	return out
}

// Kind returns the record's kind tag.
func (r Record) Kind() Kind {
	s, _ := r["kind"].(string)
	return Kind(s)
}

// With sets key on the record and returns it.
func (r Record) With(key string, value any) Record {
	r[key] = value
	return r
}

// Float returns a numeric field.
func (r Record) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// String returns a string field.
func (r Record) String(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// Clone returns a deep copy of the record. Nested records, maps, trees and
// slices are copied; scalars are shared.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies the JSON-compatible containers a value may hold.
func cloneValue(v any) any {
	switch x := v.(type) {
	case Record:
		return x.Clone()
	case map[string]any:
		return map[string]any(Record(x).Clone())
	case *Tree:
		if x == nil {
			return nil
		}
		return x.record().Clone()
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	case []float64:
		return append([]float64(nil), x...)
	case []Option:
		return append([]Option(nil), x...)
	case []string:
		return append([]string(nil), x...)
	}
	return v
}

// Range returns a tagged numeric range. The step is inferred from the
// bounds unless set with With("step", …).
func Range(def, min, max float64) Record {
	return Record{"kind": string(KindRange), "default": def, "min": min, "max": max}
}

// Toggle returns a tagged boolean control.
func Toggle(def bool) Record {
	return Record{"kind": string(KindBoolean), "default": def}
}

// Text returns a tagged text control.
func Text(def string) Record {
	return Record{"kind": string(KindText), "default": def}
}

// Color returns a tagged color control.
func Color(def string) Record {
	return Record{"kind": string(KindColor), "default": def}
}

// Choice returns a choice control. The first option is the default unless
// With("default", …) names another.
func Choice(options ...Option) Record {
	return Record{"kind": string(KindChoice), "options": options}
}

// Spring returns a time-domain spring.
func Spring(visualDuration, bounce float64) Record {
	return Record{"kind": string(KindSpring), "visualDuration": visualDuration, "bounce": bounce}
}

// PhysicsSpring returns a physics-domain spring.
func PhysicsSpring(stiffness, damping, mass float64) Record {
	return Record{"kind": string(KindSpring), "stiffness": stiffness, "damping": damping, "mass": mass}
}

// Easing returns a cubic-bezier easing curve.
func Easing(duration, x1, y1, x2, y2 float64) Record {
	return Record{"kind": string(KindEasing), "duration": duration, "controlPoints": []float64{x1, y1, x2, y2}}
}

// Action returns an action trigger.
func Action(label string) Record {
	r := Record{"kind": string(KindAction)}
	if label != "" {
		r["label"] = label
	}
	return r
}

// asRecord returns v as a record if it is a mapping.
func asRecord(v any) (Record, bool) {
	switch m := v.(type) {
	case Record:
		return m, m != nil
	case map[string]any:
		return Record(m), m != nil
	case *Tree:
		if m == nil {
			return nil, false
		}
		if _, ok := m.Get("kind"); ok {
			return m.record(), true
		}
	}
	return nil, false
}

// taggedRecord returns v as a record with a recognized kind tag.
func taggedRecord(v any) (Record, Kind, bool) {
	rec, ok := asRecord(v)
	if !ok {
		return nil, "", false
	}
	k := rec.Kind()
	if !taggedKinds[k] {
		return nil, "", false
	}
	return rec, k, true
}

// parseOptions reads a choice options list. Strings become options whose
// label equals the value; mappings need a string "value".
func parseOptions(v any) []Option {
	var out []Option
	add := func(e any) {
		switch o := e.(type) {
		case Option:
			out = append(out, o)
		case string:
			out = append(out, Option{Value: o, Label: o})
		default:
			rec, ok := asRecord(e)
			if !ok {
				if t, isTree := e.(*Tree); isTree && t != nil {
					rec, ok = t.record(), true
				}
			}
			if !ok {
				return
			}
			value, ok := rec.String("value")
			if !ok {
				return
			}
			label, ok := rec.String("label")
			if !ok {
				label = value
			}
			out = append(out, Option{Value: value, Label: label})
		}
	}

	switch list := v.(type) {
	case []Option:
		out = append(out, list...)
	case []string:
		for _, s := range list {
			add(s)
		}
	case []any:
		for _, e := range list {
			add(e)
		}
	case []map[string]any:
		for _, e := range list {
			add(e)
		}
	}
	return out
}
