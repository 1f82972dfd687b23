package control

import "math"

// autoRangeFactor scales a bare number into its inferred upper bound.
const autoRangeFactor = 3

// Bounds are the numeric limits and step of a range control.
type Bounds struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// InferBounds returns the bounds of a bare number with no explicit range.
func InferBounds(v float64) Bounds {
	switch {
	case v < 0:
		return Bounds{Min: v * autoRangeFactor, Max: -v * autoRangeFactor, Step: 1}
	case v <= 1:
		return Bounds{Min: 0, Max: 1, Step: 0.01}
	case v <= 10:
		return Bounds{Min: 0, Max: math.Max(v*autoRangeFactor, 10), Step: 0.1}
	case v <= 100:
		return Bounds{Min: 0, Max: math.Max(v*autoRangeFactor, 100), Step: 1}
	default:
		return Bounds{Min: 0, Max: math.Max(v*autoRangeFactor, 1000), Step: 10}
	}
}

// InferStep returns the step for explicit bounds with no step given.
func InferStep(min, max float64) float64 {
	span := max - min
	switch {
	case span <= 1:
		return 0.01
	case span <= 10:
		return 0.1
	case span <= 100:
		return 1
	default:
		return 10
	}
}

// tupleBounds reads (default, min, max?, step?) and returns the bounds and
// the default clamped into them.
func tupleBounds(t []float64) (Bounds, float64) {
	def, min := t[0], t[1]
	var max float64
	if len(t) >= 3 {
		max = t[2]
	} else {
		max = math.Max(InferBounds(def).Max, min)
	}
	if min > max {
		min, max = max, min
	}
	b := Bounds{Min: min, Max: max}
	if len(t) == 4 && t[3] > 0 {
		b.Step = t[3]
	} else {
		b.Step = InferStep(min, max)
	}
	return b, clamp(def, b.Min, b.Max)
}

// recordBounds reads a tagged range record. Missing bounds are inferred
// from the default the same way as for a bare number.
func recordBounds(rec Record) (Bounds, float64) {
	def, hasDef := rec.Float("default")
	min, hasMin := rec.Float("min")
	max, hasMax := rec.Float("max")
	if !hasDef {
		def = min
	}
	auto := InferBounds(def)
	if !hasMin {
		min = math.Min(auto.Min, def)
	}
	if !hasMax {
		max = math.Max(auto.Max, def)
	}
	t := []float64{def, min, max}
	if step, ok := rec.Float("step"); ok {
		t = append(t, step)
	}
	return tupleBounds(t)
}
