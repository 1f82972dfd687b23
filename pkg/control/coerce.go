package control

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Coerce converts a value received from a presentation client into the
// type stored for node. Range values are clamped to the node's bounds.
// The boolean is false when the value cannot be converted; actions and
// groups never accept values.
func Coerce(node *Node, raw any) (any, bool) {
	if node == nil {
		return nil, false
	}
	switch node.Kind {
	case KindRange:
		f, ok := toFloat(raw)
		if !ok {
			s, isStr := raw.(string)
			if !isStr {
				return nil, false
			}
			parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, false
			}
			if f, ok = toFloat(parsed); !ok {
				return nil, false
			}
		}
		if node.Range != nil {
			f = clamp(f, node.Range.Min, node.Range.Max)
		}
		return f, true
	case KindBoolean:
		switch b := raw.(type) {
		case bool:
			return b, true
		case string:
			parsed, err := strconv.ParseBool(b)
			return parsed, err == nil
		}
		return nil, false
	case KindText:
		s, ok := raw.(string)
		return s, ok
	case KindColor:
		s, ok := raw.(string)
		if !ok {
			return nil, false
		}
		c, err := NormalizeColor(s)
		return c, err == nil
	case KindChoice:
		s, ok := raw.(string)
		if !ok {
			return nil, false
		}
		for _, o := range node.Options {
			if o.Value == s {
				return s, true
			}
		}
		return nil, false
	case KindSpring:
		rec, ok := asRecord(raw)
		if !ok || (rec.Kind() != "" && rec.Kind() != KindSpring) {
			return nil, false
		}
		if !numericFields(rec, timeFields) || !numericFields(rec, physicsFields) {
			return nil, false
		}
		return normalizeSpring(rec), true
	case KindEasing:
		rec, ok := asRecord(raw)
		if !ok || (rec.Kind() != "" && rec.Kind() != KindEasing) {
			return nil, false
		}
		if _, ok := rec.Float("duration"); !ok {
			return nil, false
		}
		points, ok := asTuple(rec["controlPoints"])
		if !ok || len(points) != 4 {
			return nil, false
		}
		out := rec.Clone()
		out["kind"] = string(KindEasing)
		out["controlPoints"] = points
		return out, true
	}
	return nil, false
}

// numericFields reports whether every present field is a number.
func numericFields(rec Record, fields []string) bool {
	for _, f := range fields {
		if v, ok := rec[f]; ok && !isNumber(v) {
			return false
		}
	}
	return true
}

// ParseColor parses a hex color literal. The alpha channel of 8-digit
// colors is returned separately; other forms report alpha 1.
func ParseColor(s string) (colorful.Color, float64, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if !IsHexColor(s) {
		return colorful.Color{}, 0, fmt.Errorf("control: invalid hex color %q", s)
	}
	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return colorful.Color{}, 0, err
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	if len(s) == 4 {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, 0, err
	}
	return c, alpha, nil
}

// NormalizeColor returns s as a lowercase 6 or 8 digit hex color.
func NormalizeColor(s string) (string, error) {
	c, _, err := ParseColor(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	out := c.Hex()
	if t := strings.TrimPrefix(strings.TrimSpace(s), "#"); len(t) == 8 {
		out += strings.ToLower(t[6:])
	}
	return out, nil
}
