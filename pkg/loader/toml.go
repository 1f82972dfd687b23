package loader

import (
	"bytes"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dialkit-go/dialkit/internal/errors"
	"github.com/dialkit-go/dialkit/pkg/control"
)

// ParseTOML decodes a TOML document into a tree. Tables become groups
// unless they carry a string kind; key order follows the document.
func ParseTOML(data []byte) (*control.Tree, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		de := errors.New("D141").Wrap(err)
		if pe, ok := err.(toml.ParseError); ok {
			de = de.WithDetail(pe.Message)
			de.Location = &errors.Location{Line: pe.Position.Line, Column: column(data, pe.Position.Start)}
		}
		return nil, de
	}

	root := control.NewTree()
	groups := map[string]*control.Tree{"": root}
	// done holds paths whose whole value has been set; their descendants
	// are part of that value.
	done := map[string]bool{}

	for _, key := range md.Keys() {
		if len(key) == 0 || coveredBy(done, key) {
			continue
		}
		parent := groups[strings.Join(key[:len(key)-1], "\x00")]
		if parent == nil {
			continue
		}
		path := strings.Join(key, "\x00")
		name := key[len(key)-1]
		value := lookup(raw, key)

		if table, ok := value.(map[string]any); ok && !isRecord(table["kind"]) {
			child := control.NewTree()
			parent.Set(name, child)
			groups[path] = child
			continue
		}
		parent.Set(name, tomlValue(value))
		done[path] = true
	}
	return root, nil
}

// column returns the 1-based column of byte offset in data.
func column(data []byte, offset int) int {
	if offset < 0 || offset > len(data) {
		return 0
	}
	return offset - bytes.LastIndexByte(data[:offset], '\n')
}

func coveredBy(done map[string]bool, key toml.Key) bool {
	for i := 1; i < len(key); i++ {
		if done[strings.Join(key[:i], "\x00")] {
			return true
		}
	}
	return false
}

func lookup(raw map[string]any, key toml.Key) any {
	var cur any = raw
	for _, k := range key {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[k]
	}
	return cur
}

// tomlValue converts decoded TOML values to the types used by the JSON
// loader: integers become float64 and kind tables become records.
func tomlValue(v any) any {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = tomlValue(e)
		}
		if isRecord(x["kind"]) {
			return control.Record(out)
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = tomlValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = tomlValue(e)
		}
		return out
	}
	return v
}
