package control

import (
	"reflect"
	"testing"
)

func TestResolveRoundTrip(t *testing.T) {
	tree := NewTree().Set("blur", []float64{24, 0, 100})
	got := Resolve(tree, map[string]any{"blur": 24.0})
	if !reflect.DeepEqual(got, Result{"blur": 24.0}) {
		t.Errorf("Resolve = %v, want {blur: 24}", got)
	}

	tree = sampleTree()
	fromDefaults := Resolve(tree, Build(tree).Values)
	fromEmpty := Resolve(tree, nil)
	if !reflect.DeepEqual(fromDefaults, fromEmpty) {
		t.Errorf("Resolve(tree, defaults) =\n%#v\nResolve(tree, nil) =\n%#v", fromDefaults, fromEmpty)
	}

	// A spring declaring both families resolves to the time family either way.
	tree = NewTree().Set("enter", Record{"kind": "spring", "visualDuration": 0.3, "bounce": 0.2, "stiffness": 100.0})
	fromDefaults = Resolve(tree, Build(tree).Values)
	fromEmpty = Resolve(tree, nil)
	if !reflect.DeepEqual(fromDefaults, fromEmpty) {
		t.Errorf("dual spring: Resolve(tree, defaults) = %v, Resolve(tree, nil) = %v", fromDefaults, fromEmpty)
	}
	if _, ok := fromEmpty.Record("enter")["stiffness"]; ok {
		t.Errorf("spring carries both families: %v", fromEmpty.Record("enter"))
	}
}

func TestResolveShape(t *testing.T) {
	r := Resolve(sampleTree(), nil)

	if r.Float("opacity") != 0.8 {
		t.Errorf("opacity = %v", r.Float("opacity"))
	}
	if !r.Bool("enabled") {
		t.Error("enabled should be true")
	}
	if r.String("tint") != "#FF00FF" || r.String("title") != "Hello" {
		t.Errorf("strings = %q %q", r.String("tint"), r.String("title"))
	}
	if r.String("mode") != "fill" {
		t.Errorf("mode = %q", r.String("mode"))
	}
	if r.Float("shadow.offset.y") != -4 {
		t.Errorf("shadow.offset.y = %v", r.Float("shadow.offset.y"))
	}
	if r.Record("enter")["visualDuration"] != 0.3 {
		t.Errorf("enter = %v", r.Record("enter"))
	}
	if _, ok := r["broken"]; ok {
		t.Error("unrecognized entries must be omitted")
	}
	if _, ok := r["_hidden"]; ok {
		t.Error("reserved keys must be skipped")
	}
	if _, ok := r.Group("shadow")["_collapsed"]; ok {
		t.Error("reserved keys inside groups must be skipped")
	}
}

func TestResolveLiveValues(t *testing.T) {
	tree := sampleTree()
	values := Build(tree).Values
	values["opacity"] = 0.25
	values["shadow.blur"] = 60.0
	values["enter"] = Record{"kind": "spring", "stiffness": 10.0, "damping": 1.0, "mass": 2.0}

	r := Resolve(tree, values)
	if r.Float("opacity") != 0.25 || r.Float("shadow.blur") != 60 {
		t.Errorf("live numbers not used: %v", r)
	}
	enter := r.Record("enter")
	if _, ok := enter["visualDuration"]; ok {
		t.Errorf("spring must be replaced wholesale, got %v", enter)
	}
}

func TestResolveStringFallbacks(t *testing.T) {
	tree := NewTree().
		Set("c", Record{"kind": "color"}).
		Set("t", Record{"kind": "text"}).
		Set("pick", Choice(Options("x", "y")...)).
		Set("picked", Choice(Options("x", "y")...).With("default", "y"))

	r := Resolve(tree, map[string]any{"t": 12.0})
	want := Result{"c": FallbackColor, "t": "", "pick": "x", "picked": "y"}
	if !reflect.DeepEqual(r, want) {
		t.Errorf("Resolve = %v, want %v", r, want)
	}

	r = Resolve(tree, map[string]any{"c": "#123456", "pick": "y"})
	if r.String("c") != "#123456" || r.String("pick") != "y" {
		t.Errorf("live strings not used: %v", r)
	}
}

func TestResolveIgnoresModeKeys(t *testing.T) {
	tree := NewTree().Set("s", Spring(0.3, 0.2))
	r := Resolve(tree, map[string]any{"s.__mode": "physics"})
	if len(r) != 1 {
		t.Errorf("Resolve = %v, want only s", r)
	}
}

func TestResultDecode(t *testing.T) {
	type shadow struct {
		Blur  float64 `json:"blur"`
		Color string  `json:"color"`
	}
	type config struct {
		Opacity float64 `json:"opacity"`
		Enabled bool    `json:"enabled"`
		Mode    string  `json:"mode"`
		Shadow  shadow  `json:"shadow"`
		Enter   struct {
			VisualDuration float64 `json:"visualDuration"`
		} `json:"enter"`
	}

	var c config
	if err := Resolve(sampleTree(), nil).Decode(&c); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if c.Opacity != 0.8 || !c.Enabled || c.Mode != "fill" || c.Shadow.Blur != 24 || c.Shadow.Color != "#000000" {
		t.Errorf("decoded = %+v", c)
	}
	if c.Enter.VisualDuration != 0.3 {
		t.Errorf("enter = %+v", c.Enter)
	}
}

func TestResultGetMissing(t *testing.T) {
	r := Result{"a": Result{"b": 1.0}}
	if _, ok := r.Get("a.c"); ok {
		t.Error("a.c should be missing")
	}
	if _, ok := r.Get("a.b.c"); ok {
		t.Error("a.b.c should be missing")
	}
	if r.Float("nope") != 0 || r.String("a") != "" || r.Group("a.b") != nil {
		t.Error("zero values expected for mismatched types")
	}
}
