package control

import "math"

// toFloat converts any Go numeric type to float64. NaN and infinities are
// rejected because they cannot be exported as JSON.
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isNumber(v any) bool {
	_, ok := toFloat(v)
	return ok
}

// asTuple returns v as a numeric tuple of 2 to 4 elements.
func asTuple(v any) ([]float64, bool) {
	var out []float64
	switch list := v.(type) {
	case []float64:
		out = append(out, list...)
	case []float32:
		for _, f := range list {
			out = append(out, float64(f))
		}
	case []int:
		for _, n := range list {
			out = append(out, float64(n))
		}
	case []int64:
		for _, n := range list {
			out = append(out, float64(n))
		}
	case []any:
		for _, e := range list {
			f, ok := toFloat(e)
			if !ok {
				return nil, false
			}
			out = append(out, f)
		}
	default:
		return nil, false
	}
	if len(out) < 2 || len(out) > 4 {
		return nil, false
	}
	for _, f := range out {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
	}
	return out, true
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
