package control

import (
	"encoding/json"
	"strings"
)

// Result is a resolved configuration tree. Groups are nested Results and
// leaves hold float64, bool, string or Record values.
type Result map[string]any

// Get returns the value at a dot-separated path.
func (r Result) Get(path string) (any, bool) {
	keys := strings.Split(path, ".")
	var cur any = r
	for _, k := range keys {
		group, ok := cur.(Result)
		if !ok {
			return nil, false
		}
		cur, ok = group[k]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Float returns the number at path, or 0.
func (r Result) Float(path string) float64 {
	v, _ := r.Get(path)
	f, _ := toFloat(v)
	return f
}

// Bool returns the boolean at path, or false.
func (r Result) Bool(path string) bool {
	v, _ := r.Get(path)
	b, _ := v.(bool)
	return b
}

// String returns the string at path, or "".
func (r Result) String(path string) string {
	v, _ := r.Get(path)
	s, _ := v.(string)
	return s
}

// Record returns the spring, easing or action record at path, or nil.
func (r Result) Record(path string) Record {
	v, _ := r.Get(path)
	rec, _ := asRecord(v)
	return rec
}

// Group returns the nested result at path, or nil.
func (r Result) Group(path string) Result {
	v, _ := r.Get(path)
	g, _ := v.(Result)
	return g
}

// Decode copies the result into dst, which is typically a pointer to a
// struct whose JSON tags mirror the configuration keys.
func (r Result) Decode(dst any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
