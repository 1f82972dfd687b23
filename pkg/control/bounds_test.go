package control

import "testing"

func TestInferBounds(t *testing.T) {
	tests := []struct {
		v    float64
		want Bounds
	}{
		{0, Bounds{Min: 0, Max: 1, Step: 0.01}},
		{0.5, Bounds{Min: 0, Max: 1, Step: 0.01}},
		{1, Bounds{Min: 0, Max: 1, Step: 0.01}},
		{1.2, Bounds{Min: 0, Max: 10, Step: 0.1}},
		{5, Bounds{Min: 0, Max: 15, Step: 0.1}},
		{10, Bounds{Min: 0, Max: 30, Step: 0.1}},
		{20, Bounds{Min: 0, Max: 100, Step: 1}},
		{50, Bounds{Min: 0, Max: 150, Step: 1}},
		{200, Bounds{Min: 0, Max: 1000, Step: 10}},
		{500, Bounds{Min: 0, Max: 1500, Step: 10}},
		{-2, Bounds{Min: -6, Max: 6, Step: 1}},
	}

	for _, tt := range tests {
		if got := InferBounds(tt.v); got != tt.want {
			t.Errorf("InferBounds(%v) = %+v, want %+v", tt.v, got, tt.want)
		}
	}
}

func TestInferStep(t *testing.T) {
	tests := []struct {
		min, max, want float64
	}{
		{0, 1, 0.01},
		{-0.5, 0.5, 0.01},
		{0, 10, 0.1},
		{0, 100, 1},
		{0, 360, 10},
		{-100, 100, 10},
	}

	for _, tt := range tests {
		if got := InferStep(tt.min, tt.max); got != tt.want {
			t.Errorf("InferStep(%v, %v) = %v, want %v", tt.min, tt.max, got, tt.want)
		}
	}
}

func TestTupleBounds(t *testing.T) {
	tests := []struct {
		name    string
		tuple   []float64
		want    Bounds
		wantDef float64
	}{
		{"explicit step", []float64{0.5, 0, 1, 0.05}, Bounds{0, 1, 0.05}, 0.5},
		{"inferred step", []float64{24, 0, 100}, Bounds{0, 100, 1}, 24},
		{"clamped high", []float64{150, 0, 100}, Bounds{0, 100, 1}, 100},
		{"clamped low", []float64{-5, 0, 10}, Bounds{0, 10, 0.1}, 0},
		{"swapped bounds", []float64{5, 10, 0}, Bounds{0, 10, 0.1}, 5},
		{"two elements", []float64{5, 0}, Bounds{0, 15, 1}, 5},
		{"zero step inferred", []float64{1, 0, 2, 0}, Bounds{0, 2, 0.1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, def := tupleBounds(tt.tuple)
			if b != tt.want {
				t.Errorf("bounds = %+v, want %+v", b, tt.want)
			}
			if def != tt.wantDef {
				t.Errorf("default = %v, want %v", def, tt.wantDef)
			}
		})
	}
}
