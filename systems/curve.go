package systems

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// Key is one keyframe of an easing curve.
type Key struct {
	T, Value float64
}

// Curve is a keyframed easing curve. Between keys it interpolates with a
// monotone cubic, so it never overshoots the key values.
type Curve struct {
	keys []Key
	pred interp.Predictor
}

// Curve presets by name.
var curvePresets = map[string][]Key{
	"linear":      {{0, 0}, {1, 1}},
	"bump":        {{0, 0}, {0.5, 1}, {1, 0}},
	"ease_in_out": {{0, 0}, {0.25, 0.1}, {0.5, 0.5}, {0.75, 0.9}, {1, 1}},
}

// NewCurve fits a curve through keys. Keys are sorted by T; at least two
// keys with distinct T values are required.
func NewCurve(keys []Key) (*Curve, error) {
	if len(keys) < 2 {
		return nil, fmt.Errorf("curve needs at least 2 keys, got %d", len(keys))
	}

	sorted := make([]Key, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].T < sorted[j].T })

	xs := make([]float64, len(sorted))
	ys := make([]float64, len(sorted))
	for i, k := range sorted {
		if i > 0 && k.T <= sorted[i-1].T {
			return nil, fmt.Errorf("curve keys must have distinct times, %g repeats", k.T)
		}
		xs[i] = k.T
		ys[i] = k.Value
	}

	var fp interp.FittablePredictor
	if len(sorted) == 2 {
		fp = &interp.PiecewiseLinear{}
	} else {
		fp = &interp.FritschButland{}
	}
	if err := fp.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("fitting curve: %w", err)
	}

	return &Curve{keys: sorted, pred: fp}, nil
}

// PresetCurve returns one of the named curves: linear, bump, ease_in_out.
func PresetCurve(name string) (*Curve, error) {
	keys, ok := curvePresets[name]
	if !ok {
		return nil, fmt.Errorf("unknown curve preset %q", name)
	}
	return NewCurve(keys)
}

// CurveFromConfig builds a curve from [t, value] pairs, falling back to the
// named preset when pairs is empty.
func CurveFromConfig(preset string, pairs [][]float64) (*Curve, error) {
	if len(pairs) == 0 {
		return PresetCurve(preset)
	}
	keys := make([]Key, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("curve key %d needs [t, value], got %v", i, p)
		}
		keys[i] = Key{T: p[0], Value: p[1]}
	}
	return NewCurve(keys)
}

// Evaluate returns the curve value at t. Outside the key range the value of
// the nearest end key is returned.
func (c *Curve) Evaluate(t float64) float64 {
	first, last := c.keys[0], c.keys[len(c.keys)-1]
	if t <= first.T {
		return first.Value
	}
	if t >= last.T {
		return last.Value
	}
	return c.pred.Predict(t)
}
