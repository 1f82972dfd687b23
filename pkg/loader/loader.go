package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dialkit-go/dialkit/internal/errors"
	"github.com/dialkit-go/dialkit/pkg/control"
)

// Format identifies a panel file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".toml":
		return FormatTOML, true
	}
	return "", false
}

// LoadFile reads a panel tree from path, choosing the parser by extension.
func LoadFile(path string) (*control.Tree, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, errors.New("D142").WithDetail("Got " + filepath.Base(path) + ".")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("D140").WithDetail(path).Wrap(err)
		}
		return nil, errors.New("D141").WithDetail(path).Wrap(err)
	}

	tree, err := Parse(format, data)
	if err != nil {
		if de, ok := err.(*errors.DialError); ok {
			if de.Location != nil && de.Location.Line > 0 {
				return nil, de.WithLocation(path, de.Location.Line, de.Location.Column)
			}
			return nil, de.WithDetail(joinDetail(path, de.Detail))
		}
		return nil, err
	}
	return tree, nil
}

// Parse decodes data in the given format.
func Parse(format Format, data []byte) (*control.Tree, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatTOML:
		return ParseTOML(data)
	}
	return nil, errors.New("D142").WithDetail("Unknown format " + string(format) + ".")
}

func joinDetail(path, detail string) string {
	if detail == "" {
		return path
	}
	return path + ": " + detail
}

// isRecord reports whether an object's kind entry makes it a tagged record.
func isRecord(kind any) bool {
	_, ok := kind.(string)
	return ok
}
