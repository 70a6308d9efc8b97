// Package model defines the core domain models used throughout the application.
package model

import (
	"strconv"
	"strings"
)

// Minutia represents a single fingerprint feature after normalization:
// a ridge ending or bifurcation at a coordinate with a local orientation.
type Minutia struct {
	X     float64
	Y     float64
	Angle float64 // radians, periodic with period 2π
	Type  string  // canonical comparable form, see NormalizeType
}

// PointSet is an ordered sequence of minutiae. Order carries no meaning for
// matching; it is kept stable for deterministic output.
type PointSet []Minutia

// NormalizePoint converts any of the stored point shapes to a Minutia.
// Reference minutiae accumulated over time arrive in three shapes:
//
//   - maps keyed by positional digit strings: {"0": x, "1": y, "2": type, "3": angle}
//   - positional arrays: [x, y, type, angle]
//   - maps keyed by role names: {"x": ..., "y": ..., "type": ..., "angle": ...}
//
// Missing or unparsable fields default to zero rather than erroring;
// minutiae data is noisy and partial rows are expected.
func NormalizePoint(raw any) Minutia {
	switch p := raw.(type) {
	case map[string]any:
		if _, ok := p["0"]; ok {
			return Minutia{
				X:     ToFloat(p["0"]),
				Y:     ToFloat(p["1"]),
				Type:  NormalizeType(p["2"]),
				Angle: ToFloat(p["3"]),
			}
		}
		return Minutia{
			X:     ToFloat(p["x"]),
			Y:     ToFloat(p["y"]),
			Type:  NormalizeType(p["type"]),
			Angle: ToFloat(p["angle"]),
		}
	case []any:
		m := Minutia{Type: NormalizeType(nil)}
		if len(p) > 0 {
			m.X = ToFloat(p[0])
		}
		if len(p) > 1 {
			m.Y = ToFloat(p[1])
		}
		if len(p) > 2 {
			m.Type = NormalizeType(p[2])
		}
		if len(p) > 3 {
			m.Angle = ToFloat(p[3])
		}
		return m
	default:
		return Minutia{Type: NormalizeType(nil)}
	}
}

// NormalizePoints normalizes a whole stored minutiae sequence.
func NormalizePoints(raw []any) PointSet {
	points := make(PointSet, 0, len(raw))
	for _, p := range raw {
		points = append(points, NormalizePoint(p))
	}
	return points
}

// ToFloat coerces a raw cell value to a float64, defaulting to 0 on
// absence or failure.
func ToFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// NormalizeType maps a raw type value to its canonical comparable form so
// that "1" and "1.0" and 1 and 1.0 all denote the same minutia type.
// Non-numeric strings are kept as-is.
func NormalizeType(v any) string {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return NormalizeType(f)
		}
		return s
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return NormalizeType(float64(t))
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case nil:
		return "0"
	default:
		return "0"
	}
}
