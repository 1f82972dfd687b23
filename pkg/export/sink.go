package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/dialkit-go/dialkit/internal/errors"
)

// Sink stores exported documents.
type Sink interface {
	// Put stores data under key, replacing any previous object.
	Put(ctx context.Context, key string, data []byte) error
}

// DiskSink writes exports below a directory.
type DiskSink struct {
	dir string
}

// NewDiskSink creates the directory if needed and returns a sink writing
// into it.
func NewDiskSink(dir string) (*DiskSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("D161").WithDetail(dir).Wrap(err)
	}
	return &DiskSink{dir: dir}, nil
}

// Dir returns the sink's root directory.
func (s *DiskSink) Dir() string {
	return s.dir
}

// Put writes data to dir/key. The file is written to a temporary name
// first and renamed into place.
func (s *DiskSink) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.New("D161").WithDetail(path).Wrap(err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.New("D161").WithDetail(path).Wrap(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.New("D161").WithDetail(path).Wrap(err)
	}
	return nil
}

// path maps key into the sink directory, rejecting keys that escape it.
func (s *DiskSink) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.New("D161").WithDetail("Invalid export key " + key + ".")
	}
	return filepath.Join(s.dir, clean), nil
}
