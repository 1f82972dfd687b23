package loader

import (
	"github.com/tidwall/gjson"

	"github.com/dialkit-go/dialkit/internal/errors"
	"github.com/dialkit-go/dialkit/pkg/control"
)

// ParseJSON decodes a JSON object into a tree, preserving key order.
func ParseJSON(data []byte) (*control.Tree, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("D141").WithDetail("The file is not valid JSON.")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("D143")
	}
	return jsonTree(root), nil
}

func jsonTree(obj gjson.Result) *control.Tree {
	tree := control.NewTree()
	obj.ForEach(func(key, value gjson.Result) bool {
		tree.Set(key.String(), jsonValue(value))
		return true
	})
	return tree
}

func jsonValue(v gjson.Result) any {
	switch {
	case v.IsObject():
		if kind := v.Get("kind"); kind.Type == gjson.String {
			return jsonRecord(v)
		}
		return jsonTree(v)
	case v.IsArray():
		var out []any
		v.ForEach(func(_, e gjson.Result) bool {
			out = append(out, jsonValue(e))
			return true
		})
		if out == nil {
			out = []any{}
		}
		return out
	}
	switch v.Type {
	case gjson.Number:
		return v.Float()
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.String:
		return v.String()
	}
	return nil
}

// jsonRecord decodes a tagged object. Nested objects inside a record are
// plain maps because records are stored and exported as values.
func jsonRecord(obj gjson.Result) control.Record {
	rec := control.Record{}
	obj.ForEach(func(key, value gjson.Result) bool {
		rec[key.String()] = jsonPlain(value)
		return true
	})
	return rec
}

func jsonPlain(v gjson.Result) any {
	switch {
	case v.IsObject():
		m := map[string]any{}
		v.ForEach(func(key, e gjson.Result) bool {
			m[key.String()] = jsonPlain(e)
			return true
		})
		return m
	case v.IsArray():
		out := []any{}
		v.ForEach(func(_, e gjson.Result) bool {
			out = append(out, jsonPlain(e))
			return true
		})
		return out
	}
	return jsonValue(v)
}
