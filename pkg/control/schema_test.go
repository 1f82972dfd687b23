package control

import (
	"reflect"
	"testing"
)

func sampleTree() *Tree {
	return NewTree().
		Set("opacity", []float64{0.8, 0, 1}).
		Set("enabled", true).
		Set("tint", "#FF00FF").
		Set("title", "Hello").
		Set("scale", 5).
		Set("mode", Choice(Opt("fit", "Fit"), Opt("fill", "Fill")).With("default", "fill")).
		Set("enter", Spring(0.3, 0.2)).
		Set("bounceIn", PhysicsSpring(300, 20, 1)).
		Set("curve", Easing(0.4, 0.25, 0.1, 0.25, 1)).
		Set("reset", Action("Reset all")).
		Set("shadow", NewTree().
			Set("_collapsed", true).
			Set("blur", []float64{24, 0, 100}).
			Set("color", Color("#000000")).
			Set("offset", NewTree().Set("x", 2).Set("y", -4))).
		Set("broken", nil).
		Set("_hidden", true)
}

func TestBuildValues(t *testing.T) {
	s := Build(sampleTree())

	want := map[string]any{
		"opacity":         0.8,
		"enabled":         true,
		"tint":            "#FF00FF",
		"title":           "Hello",
		"scale":           5.0,
		"mode":            "fill",
		"enter":           Record{"kind": "spring", "visualDuration": 0.3, "bounce": 0.2},
		"bounceIn":        Record{"kind": "spring", "stiffness": 300.0, "damping": 20.0, "mass": 1.0},
		"curve":           Record{"kind": "easing", "duration": 0.4, "controlPoints": []float64{0.25, 0.1, 0.25, 1}},
		"reset":           Record{"kind": "action", "label": "Reset all"},
		"shadow.blur":     24.0,
		"shadow.color":    "#000000",
		"shadow.offset.x": 2.0,
		"shadow.offset.y": -4.0,
	}
	if !reflect.DeepEqual(s.Values, want) {
		t.Errorf("Values =\n%#v\nwant\n%#v", s.Values, want)
	}

	if len(s.Leaves) != len(want) {
		t.Errorf("len(Leaves) = %d, want %d", len(s.Leaves), len(want))
	}
	for path := range want {
		if s.Leaves[path] == nil {
			t.Errorf("missing leaf %q", path)
		}
	}

	wantModes := map[string]string{"enter": ModeTime, "bounceIn": ModePhysics}
	if !reflect.DeepEqual(s.Modes, wantModes) {
		t.Errorf("Modes = %v, want %v", s.Modes, wantModes)
	}
}

func TestBuildMetadata(t *testing.T) {
	s := Build(sampleTree())

	var keys []string
	for _, c := range s.Root.Children {
		keys = append(keys, c.Key)
	}
	wantKeys := []string{"opacity", "enabled", "tint", "title", "scale", "mode", "enter", "bounceIn", "curve", "reset", "shadow"}
	if !reflect.DeepEqual(keys, wantKeys) {
		t.Errorf("root children = %v, want %v", keys, wantKeys)
	}

	opacity := s.Leaves["opacity"]
	if opacity.Kind != KindRange || opacity.Label != "Opacity" {
		t.Errorf("opacity = %+v", opacity)
	}
	if *opacity.Range != (Bounds{Min: 0, Max: 1, Step: 0.01}) {
		t.Errorf("opacity range = %+v", *opacity.Range)
	}

	scale := s.Leaves["scale"]
	if *scale.Range != (Bounds{Min: 0, Max: 15, Step: 0.1}) {
		t.Errorf("scale range = %+v", *scale.Range)
	}

	mode := s.Leaves["mode"]
	if len(mode.Options) != 2 || mode.Options[1].Label != "Fill" {
		t.Errorf("mode options = %+v", mode.Options)
	}

	if s.Leaves["tint"].Kind != KindColor || s.Leaves["title"].Kind != KindText {
		t.Error("string leaves misclassified")
	}
	if s.Leaves["reset"].Label != "Reset" {
		t.Errorf("action label = %q, want key-derived label", s.Leaves["reset"].Label)
	}
	if s.Leaves["bounceIn"].Label != "Bounce In" {
		t.Errorf("bounceIn label = %q", s.Leaves["bounceIn"].Label)
	}

	shadow := s.Root.Children[len(s.Root.Children)-1]
	if shadow.Kind != KindGroup || !shadow.Collapsed || shadow.Path != "shadow" {
		t.Errorf("shadow = %+v", shadow)
	}
	if len(shadow.Children) != 3 {
		t.Fatalf("shadow children = %d, want 3", len(shadow.Children))
	}
	offset := shadow.Children[2]
	if offset.Kind != KindGroup || offset.Path != "shadow.offset" || offset.Collapsed {
		t.Errorf("offset = %+v", offset)
	}
	if offset.Children[1].Path != "shadow.offset.y" {
		t.Errorf("offset.y path = %q", offset.Children[1].Path)
	}
	if *offset.Children[1].Range != (Bounds{Min: -12, Max: 12, Step: 1}) {
		t.Errorf("offset.y range = %+v", *offset.Children[1].Range)
	}
}

func TestBuildLabelOverride(t *testing.T) {
	s := Build(NewTree().Set("r", Range(4, 0, 16).With("label", "Radius")))
	if got := s.Leaves["r"].Label; got != "Radius" {
		t.Errorf("Label = %q, want Radius", got)
	}
	if got := *s.Leaves["r"].Range; got != (Bounds{Min: 0, Max: 16, Step: 1}) {
		t.Errorf("Range = %+v", got)
	}
}

func TestBuildTextPlaceholder(t *testing.T) {
	s := Build(NewTree().Set("caption", Text("").With("placeholder", "Type…")))
	n := s.Leaves["caption"]
	if n.Placeholder != "Type…" || s.Values["caption"] != "" {
		t.Errorf("caption = %+v value %v", n, s.Values["caption"])
	}
}

func TestBuildTaggedFallbacks(t *testing.T) {
	s := Build(NewTree().
		Set("c", Record{"kind": "color"}).
		Set("t", Record{"kind": "text"}).
		Set("b", Record{"kind": "boolean"}).
		Set("pick", Record{"kind": "choice", "options": []any{"a", map[string]any{"value": "b", "label": "Bee"}}}))

	if s.Values["c"] != FallbackColor {
		t.Errorf("color fallback = %v", s.Values["c"])
	}
	if s.Values["t"] != "" {
		t.Errorf("text fallback = %v", s.Values["t"])
	}
	if s.Values["b"] != false {
		t.Errorf("boolean fallback = %v", s.Values["b"])
	}
	if s.Values["pick"] != "a" {
		t.Errorf("choice fallback = %v", s.Values["pick"])
	}
	if opts := s.Leaves["pick"].Options; len(opts) != 2 || opts[1] != (Option{Value: "b", Label: "Bee"}) {
		t.Errorf("options = %+v", opts)
	}
}

func TestBuildSpringWithBothFamilies(t *testing.T) {
	s := Build(NewTree().Set("s", Record{"kind": "spring", "bounce": 0.1, "stiffness": 100.0}))
	got := s.Values["s"].(Record)
	if _, ok := got["stiffness"]; ok {
		t.Errorf("physics field kept: %v", got)
	}
	if got["bounce"] != 0.1 || s.Modes["s"] != ModeTime {
		t.Errorf("spring = %v mode %q", got, s.Modes["s"])
	}
}

func TestBuildDoesNotAliasConfig(t *testing.T) {
	spring := Spring(0.3, 0.2)
	s := Build(NewTree().Set("s", spring))
	s.Values["s"].(Record)["bounce"] = 0.9
	if spring["bounce"] != 0.2 {
		t.Error("Build must copy records into values")
	}
}

func TestBuildEmpty(t *testing.T) {
	for _, tree := range []*Tree{nil, NewTree(), NewTree().Set("x", nil)} {
		s := Build(tree)
		if s.Root == nil || len(s.Root.Children) != 0 || len(s.Values) != 0 {
			t.Errorf("Build(%v) = %+v", tree, s)
		}
	}
}

func TestBuildMapGroupsSorted(t *testing.T) {
	s := Build(NewTree().Set("g", map[string]any{"b": 1.0, "a": 2.0}))
	g := s.Root.Children[0]
	if g.Children[0].Key != "a" || g.Children[1].Key != "b" {
		t.Errorf("map group order = %s, %s", g.Children[0].Key, g.Children[1].Key)
	}
}
