package control

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// Entry is one key/value pair of a Tree.
type Entry struct {
	Key   string
	Value any
}

// Tree is an ordered configuration mapping. Entry order is the order in
// which controls are presented. The zero value and a nil *Tree are empty.
type Tree struct {
	entries []Entry
	index   map[string]int
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{index: make(map[string]int)}
}

// TreeFromMap builds a tree from a map, ordering keys alphabetically.
// Nested maps are kept as values and classified as groups or records later.
func TreeFromMap(m map[string]any) *Tree {
	t := NewTree()
	for _, e := range sortedEntries(m) {
		t.Set(e.Key, e.Value)
	}
	return t
}

// Set adds or replaces key and returns the tree for chaining. Replacing a
// key keeps its original position.
func (t *Tree) Set(key string, value any) *Tree {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[key]; ok {
		t.entries[i].Value = value
		return t
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, Entry{Key: key, Value: value})
	return t
}

// Get returns the value stored under key.
func (t *Tree) Get(key string) (any, bool) {
	if t == nil {
		return nil, false
	}
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.entries[i].Value, true
}

// Len returns the number of entries.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Keys returns the keys in order.
func (t *Tree) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, len(t.entries))
	for i, e := range t.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the entries in order.
func (t *Tree) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// MarshalJSON encodes the tree as a JSON object preserving entry order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// record converts a tree carrying a "kind" entry into a Record.
func (t *Tree) record() Record {
	rec := make(Record, t.Len())
	for _, e := range t.entries {
		rec[e.Key] = e.Value
	}
	return rec
}

// mappingEntries returns the ordered entries of a tree or map value.
func mappingEntries(v any) ([]Entry, bool) {
	switch m := v.(type) {
	case *Tree:
		if m == nil {
			return nil, false
		}
		return m.entries, true
	case Record:
		return sortedEntries(m), true
	case map[string]any:
		return sortedEntries(m), true
	}
	return nil, false
}

func sortedEntries(m map[string]any) []Entry {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Entry, len(keys))
	for i, k := range keys {
		out[i] = Entry{Key: k, Value: m[k]}
	}
	return out
}

func isReserved(key string) bool {
	return strings.HasPrefix(key, ReservedPrefix)
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
