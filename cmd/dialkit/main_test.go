package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/tidwall/gjson"

	"github.com/dialkit-go/dialkit/internal/config"
	"github.com/dialkit-go/dialkit/internal/errors"
	"github.com/dialkit-go/dialkit/pkg/control"
	"github.com/dialkit-go/dialkit/pkg/export"
	"github.com/dialkit-go/dialkit/pkg/store"
)

const cardJSON = `{
  "opacity": {"kind": "range", "default": 0.5, "min": 0, "max": 1},
  "tint": "#ff8800",
  "motion": {
    "spring": {"kind": "spring", "visualDuration": 0.3, "bounce": 0.2},
    "visible": true
  }
}`

func writePanel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "card.json")
	if err := os.WriteFile(path, []byte(cardJSON), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApplySets(t *testing.T) {
	path := writePanel(t)
	logger, err := newLogger(config.New(), io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		set  string
		code string
		path string
		want any
	}{
		{"range", "opacity=0.25", "", "opacity", 0.25},
		{"clamped", "opacity=9", "", "opacity", 1.0},
		{"boolean", "motion.visible=false", "", "motion.visible", false},
		{"color", "tint=#00F", "", "tint", "#0000ff"},
		{"spring as json", `motion.spring={"stiffness":300}`, "", "", nil},
		{"missing equals", "opacity", "D180", "", nil},
		{"unknown control", "nope=1", "D003", "", nil},
		{"bad value", "opacity=lots", "D061", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, id, err := loadPanel(path, logger)
			if err != nil {
				t.Fatal(err)
			}
			defer st.Close()

			err = applySets(st, id, []string{tt.set})
			if tt.code != "" {
				de, ok := err.(*errors.DialError)
				if !ok || de.Code != tt.code {
					t.Fatalf("expected %s, got %v", tt.code, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if tt.path == "" {
				return
			}
			if got, _ := st.Values(id).Get(tt.path); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestSpringSetSwitchesFields(t *testing.T) {
	logger, _ := newLogger(config.New(), io.Discard)
	st, id, err := loadPanel(writePanel(t), logger)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	if err := applySets(st, id, []string{`motion.spring={"stiffness":300,"damping":20,"mass":1}`}); err != nil {
		t.Fatal(err)
	}
	rec, _ := st.Values(id).Values["motion.spring"].(control.Record)
	if rec["stiffness"] != 300.0 {
		t.Errorf("spring = %v", rec)
	}
}

func TestRunResolve(t *testing.T) {
	var buf bytes.Buffer
	if err := runResolve(&buf, writePanel(t), []string{"opacity=0.75"}); err != nil {
		t.Fatal(err)
	}
	out := buf.Bytes()
	if gjson.GetBytes(out, "opacity").Float() != 0.75 {
		t.Errorf("opacity missing: %s", out)
	}
	if !gjson.GetBytes(out, "motion.visible").Bool() {
		t.Errorf("nested group missing: %s", out)
	}
	if gjson.GetBytes(out, "tint").String() != "#ff8800" {
		t.Errorf("tint missing: %s", out)
	}
}

func TestRegisterPanels(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "card.json"), []byte(cardJSON), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := config.New()
	cfg.Panels = []config.PanelConfig{
		{ID: "main", Name: "Main", File: filepath.Join(dir, "card.json")},
		{Name: "card", File: filepath.Join(dir, "card.json")},
		{Name: "card", File: filepath.Join(dir, "card.json")},
	}
	logger, _ := newLogger(config.New(), io.Discard)

	st := store.New()
	defer st.Close()
	ids, err := registerPanels(st, cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(ids, ",") != "main,card,card-2" {
		t.Errorf("ids = %v", ids)
	}

	cfg.Panels = []config.PanelConfig{{File: filepath.Join(dir, "missing.json")}}
	if _, err := registerPanels(store.New(), cfg, logger); err == nil {
		t.Error("expected an error for a missing panel file")
	}
}

func TestNewSink(t *testing.T) {
	cfg := config.New()
	dir := t.TempDir()

	sink, target, err := newSink(cfg, dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := sink.(*export.DiskSink); !ok || target != dir {
		t.Errorf("expected a disk sink at %s, got %T at %s", dir, sink, target)
	}

	cfg.Export.S3.Bucket = "tuning"
	cfg.Export.S3.Prefix = "dialkit/"
	sink, target, err = newSink(cfg, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := sink.(*export.S3Sink); !ok || target != "s3://tuning/dialkit/" {
		t.Errorf("expected an S3 sink, got %T at %s", sink, target)
	}

	// --out wins over the bucket.
	if sink, _, _ = newSink(cfg, dir); sink == nil {
		t.Fatal("nil sink")
	}
	if _, ok := sink.(*export.DiskSink); !ok {
		t.Errorf("expected a disk sink, got %T", sink)
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	defer func() { logLevel = "" }()
	logLevel = "loud"
	if _, err := newLogger(config.New(), io.Discard); err == nil {
		t.Error("expected an invalid level error")
	}
}

func TestDescribe(t *testing.T) {
	color.NoColor = true
	schema := control.Build(control.NewTree().
		Set("size", control.Range(4, 0, 10)).
		Set("tint", "#ff8800").
		Set("label", control.Text("hi")).
		Set("fire", control.Action("")))

	var buf bytes.Buffer
	printNodes(&buf, schema.Root.Children, 0)
	out := buf.String()
	for _, want := range []string{"Size range 4 [0..10 step", "Tint color  #ff8800", `Label text "hi"`, "Fire action"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunInitAndAdd(t *testing.T) {
	dir := t.TempDir()
	path, err := runInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, config.ConfigFileName) {
		t.Errorf("path = %s", path)
	}

	_, err = runInit(dir, false)
	if de, ok := err.(*errors.DialError); !ok || de.Code != "D126" {
		t.Fatalf("expected D126 for an existing file, got %v", err)
	}
	if _, err := runInit(dir, true); err != nil {
		t.Fatalf("--force: %v", err)
	}

	panelDir := filepath.Join(dir, "panels")
	if err := os.MkdirAll(panelDir, 0755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(panelDir, "card.json")
	if err := os.WriteFile(file, []byte(cardJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	panel, err := runAdd(cfg, file, "main", "")
	if err != nil {
		t.Fatal(err)
	}
	if panel.File != "panels/card.json" {
		t.Errorf("stored file = %q, want a path relative to the config", panel.File)
	}

	if _, err := runAdd(cfg, file, "main", ""); err == nil {
		t.Error("expected a duplicate id error")
	}
	bad := filepath.Join(panelDir, "bad.json")
	os.WriteFile(bad, []byte("{"), 0644)
	if _, err := runAdd(cfg, bad, "", ""); err == nil {
		t.Error("expected a parse error for a broken panel")
	}

	reloaded, err := config.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.Panels) != 1 || reloaded.Panels[0].ID != "main" {
		t.Fatalf("panels = %+v", reloaded.Panels)
	}
	if reloaded.PanelPath(reloaded.Panels[0]) != file {
		t.Errorf("PanelPath = %s, want %s", reloaded.PanelPath(reloaded.Panels[0]), file)
	}
}
