package graph

// Axis selects the X or Y component of a sample pair.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// AxisWindow is the data-space rectangle mapped onto the device square.
type AxisWindow struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// DefaultWindow is [0,100] on both axes.
func DefaultWindow() AxisWindow {
	return AxisWindow{MaxX: 100, MaxY: 100}
}

func (w AxisWindow) RangeX() float64 { return w.MaxX - w.MinX }
func (w AxisWindow) RangeY() float64 { return w.MaxY - w.MinY }

// Bounds returns min, max and range of one axis.
func (w AxisWindow) Bounds(axis Axis) (lo, hi, span float64) {
	if axis == AxisY {
		return w.MinY, w.MaxY, w.RangeY()
	}
	return w.MinX, w.MaxX, w.RangeX()
}

// Valid reports whether both ranges are non-zero.
func (w AxisWindow) Valid() bool {
	return w.RangeX() != 0 && w.RangeY() != 0
}
