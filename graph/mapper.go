package graph

import "math"

// MapCoordinate maps a raw value on one axis into device space:
//
//	scale = 1 if the origin is centered on that axis, else 2
//	out   = (value*scale - min) / range + origin
//
// The result is not clamped; values outside the window land outside [-1,1].
func MapCoordinate(value float64, axis Axis, w AxisWindow, o Origin) float32 {
	lo, _, span := w.Bounds(axis)
	org := o.coord(axis)
	scale := 1.0
	if org != 0 {
		scale = 2
	}
	return float32((value*scale-lo)/span + org)
}

// MapSamples maps an interleaved [x0,y0,x1,y1,...] sequence. A trailing unpaired
// value is ignored.
func MapSamples(data []float64, w AxisWindow, o Origin) []float32 {
	n := len(data) &^ 1
	out := make([]float32, n)
	for i := 0; i < n; i += 2 {
		out[i] = MapCoordinate(data[i], AxisX, w, o)
		out[i+1] = MapCoordinate(data[i+1], AxisY, w, o)
	}
	return out
}

// PairVisible is the per-pair visibility test: the magnitude of the mapped x must
// lie in [0,1]. The y of the pair is not consulted.
func PairVisible(x, _ float32) bool {
	v := math.Abs(float64(x))
	return v >= 0 && v <= 1
}

// VisibleSamples keeps the pairs of mapped that pass PairVisible, dropping both
// coordinates of a failing pair. Order is preserved.
func VisibleSamples(mapped []float32) []float32 {
	out := make([]float32, 0, len(mapped)&^1)
	for i := 0; i+1 < len(mapped); i += 2 {
		if PairVisible(mapped[i], mapped[i+1]) {
			out = append(out, mapped[i], mapped[i+1])
		}
	}
	return out
}
