package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dialkit-go/dialkit/internal/config"
	"github.com/dialkit-go/dialkit/internal/errors"
	"github.com/dialkit-go/dialkit/pkg/control"
	"github.com/dialkit-go/dialkit/pkg/export"
	"github.com/dialkit-go/dialkit/pkg/loader"
	"github.com/dialkit-go/dialkit/pkg/store"
)

// registerPanels loads every panel file named in cfg into st and returns
// the ids they were registered under.
func registerPanels(st *store.Store, cfg *config.Config, logger *slog.Logger) ([]string, error) {
	ids := make([]string, 0, len(cfg.Panels))
	for _, p := range cfg.Panels {
		path := cfg.PanelPath(p)
		tree, err := loader.LoadFile(path)
		if err != nil {
			return nil, err
		}
		id := p.ID
		if id != "" {
			st.RegisterPanel(id, p.Name, tree)
		} else {
			id = st.Register(p.Name, tree)
		}
		logger.Info("panel registered", "panel", id, "file", path, "controls", tree.Len())
		ids = append(ids, id)
	}
	return ids, nil
}

// loadPanel loads a single panel file given on the command line into a
// fresh store. The panel is named after the file.
func loadPanel(path string, logger *slog.Logger) (*store.Store, string, error) {
	tree, err := loader.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	st := store.New(store.WithLogger(logger))
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return st, st.Register(name, tree), nil
}

// applySets applies path=value assignments to a panel. Values are coerced
// like values sent by presentation clients; a value that does not coerce
// as a string is retried as JSON, so springs can be set with
// motion.spring='{"stiffness":300}'.
func applySets(st *store.Store, id string, sets []string) error {
	for _, set := range sets {
		path, raw, ok := strings.Cut(set, "=")
		if !ok || path == "" {
			return errors.New("D180").
				WithDetail(fmt.Sprintf("--set %q is not of the form path=value", set))
		}
		node, ok := st.Control(id, path)
		if !ok {
			return errors.New("D003").WithDetail(fmt.Sprintf("panel %q has no control %q", id, path))
		}
		v, ok := control.Coerce(node, raw)
		if !ok && gjson.Valid(raw) {
			v, ok = control.Coerce(node, gjson.Parse(raw).Value())
		}
		if !ok {
			return errors.New("D061").
				WithDetail(fmt.Sprintf("%q is not a valid %s value for %q", raw, node.Kind, path))
		}
		st.UpdateValue(id, path, v)
	}
	return nil
}

// newSink builds the export sink configured in cfg. The S3 sink wins over
// the disk sink when a bucket is set; dir overrides the configured
// directory.
func newSink(cfg *config.Config, dir string) (export.Sink, string, error) {
	if s3 := cfg.Export.S3; s3.Bucket != "" && dir == "" {
		client := export.NewS3Client(export.S3ClientOptions{
			Region:    s3.Region,
			Endpoint:  s3.Endpoint,
			PathStyle: s3.PathStyle,
		})
		return export.NewS3Sink(client, s3.Bucket, s3.Prefix), "s3://" + s3.Bucket + "/" + s3.Prefix, nil
	}
	if dir == "" {
		dir = cfg.ExportPath()
	}
	sink, err := export.NewDiskSink(dir)
	if err != nil {
		return nil, "", err
	}
	return sink, sink.Dir(), nil
}
