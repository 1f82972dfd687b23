package export

import (
	"sort"
	"strings"
	"time"

	"github.com/tidwall/sjson"

	"github.com/dialkit-go/dialkit/internal/errors"
	"github.com/dialkit-go/dialkit/pkg/control"
	"github.com/dialkit-go/dialkit/pkg/store"
)

// Document renders a panel as JSON:
//
//	{
//	  "panel":    {"id", "name", "version", "activePresetId"},
//	  "values":   nested values,
//	  "modes":    nested spring modes,
//	  "resolved": result,
//	  "presets":  [{"id", "name", "values", "modes"}]
//	}
//
// Dot paths of the flat maps become nested objects.
func Document(p store.Panel, presets []store.Preset, result control.Result) ([]byte, error) {
	doc, err := document(p, presets, result)
	if err != nil {
		return nil, errors.New("D160").WithDetail("Panel " + p.ID + ".").Wrap(err)
	}
	return doc, nil
}

func document(p store.Panel, presets []store.Preset, result control.Result) ([]byte, error) {
	values, err := Nest(p.Values)
	if err != nil {
		return nil, err
	}
	modes, err := Nest(p.Modes)
	if err != nil {
		return nil, err
	}

	doc := []byte(`{}`)
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, v)
		}
	}
	setRaw := func(path string, raw []byte) {
		if err == nil {
			doc, err = sjson.SetRawBytes(doc, path, raw)
		}
	}

	set("panel.id", p.ID)
	set("panel.name", p.Name)
	set("panel.version", p.Version)
	if p.ActivePresetID != "" {
		set("panel.activePresetId", p.ActivePresetID)
	}
	setRaw("values", values)
	setRaw("modes", modes)

	if result == nil {
		result = control.Result{}
	}
	set("resolved", result)

	setRaw("presets", []byte(`[]`))
	for _, preset := range presets {
		entry, perr := presetEntry(preset)
		if perr != nil {
			return nil, perr
		}
		setRaw("presets.-1", entry)
	}
	return doc, err
}

func presetEntry(p store.Preset) ([]byte, error) {
	values, err := Nest(p.Values)
	if err != nil {
		return nil, err
	}
	modes, err := Nest(p.Modes)
	if err != nil {
		return nil, err
	}
	entry, err := sjson.SetBytes([]byte(`{}`), "id", p.ID)
	if err == nil {
		entry, err = sjson.SetBytes(entry, "name", p.Name)
	}
	if err == nil {
		entry, err = sjson.SetRawBytes(entry, "values", values)
	}
	if err == nil {
		entry, err = sjson.SetRawBytes(entry, "modes", modes)
	}
	return entry, err
}

// Nest renders a flat path map as nested JSON. Keys are applied in sorted
// order so the output is deterministic.
func Nest[V any](flat map[string]V) ([]byte, error) {
	doc := []byte(`{}`)
	for _, path := range sortedKeys(flat) {
		var err error
		doc, err = sjson.SetBytes(doc, escapePath(path), flat[path])
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Key names the object an export of panel id is stored under.
func Key(id string, at time.Time) string {
	return id + "/" + at.UTC().Format("20060102T150405Z") + ".json"
}

// escapePath converts a dot path into an sjson path whose segments are
// always object keys.
func escapePath(path string) string {
	segments := strings.Split(path, ".")
	for i, seg := range segments {
		var b strings.Builder
		if isDigits(seg) {
			b.WriteByte(':')
		}
		for _, r := range seg {
			if r == '\\' || r == '*' || r == '?' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		segments[i] = b.String()
	}
	return strings.Join(segments, ".")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
