package graph

import (
	"fmt"
	"strings"
)

// Horizontal is the origin placement on the X axis.
type Horizontal uint8

const (
	HCenter Horizontal = iota
	Left
	Right
)

// Vertical is the origin placement on the Y axis.
type Vertical uint8

const (
	VCenter Vertical = iota
	Top
	Bottom
)

// Origin pins the device-space anchor of each axis. The zero value is centered.
type Origin struct {
	H Horizontal
	V Vertical
}

// Raw origin flags, as accepted from upstream callers.
const (
	FlagLeft   uint = 0x01
	FlagRight  uint = 0x02
	FlagTop    uint = 0x04
	FlagBottom uint = 0x08
	FlagCenter uint = 0x10
)

// OriginFromFlags converts a flag set. LEFT wins over RIGHT and BOTTOM wins over TOP;
// an axis without a flag is centered.
func OriginFromFlags(flags uint) Origin {
	var o Origin
	switch {
	case flags&FlagLeft != 0:
		o.H = Left
	case flags&FlagRight != 0:
		o.H = Right
	}
	switch {
	case flags&FlagBottom != 0:
		o.V = Bottom
	case flags&FlagTop != 0:
		o.V = Top
	}
	return o
}

// Flags is the inverse of OriginFromFlags. A fully centered origin reports FlagCenter.
func (o Origin) Flags() uint {
	var f uint
	switch o.H {
	case Left:
		f |= FlagLeft
	case Right:
		f |= FlagRight
	}
	switch o.V {
	case Bottom:
		f |= FlagBottom
	case Top:
		f |= FlagTop
	}
	if f == 0 {
		f = FlagCenter
	}
	return f
}

// X is the device-space x of the origin: -1, 0 or 1.
func (o Origin) X() float64 {
	switch o.H {
	case Left:
		return -1
	case Right:
		return 1
	default:
		return 0
	}
}

// Y is the device-space y of the origin: -1, 0 or 1.
func (o Origin) Y() float64 {
	switch o.V {
	case Bottom:
		return -1
	case Top:
		return 1
	default:
		return 0
	}
}

func (o Origin) coord(axis Axis) float64 {
	if axis == AxisY {
		return o.Y()
	}
	return o.X()
}

func (o Origin) String() string {
	var parts []string
	switch o.H {
	case Left:
		parts = append(parts, "left")
	case Right:
		parts = append(parts, "right")
	}
	switch o.V {
	case Bottom:
		parts = append(parts, "bottom")
	case Top:
		parts = append(parts, "top")
	}
	if len(parts) == 0 {
		return "center"
	}
	return strings.Join(parts, "|")
}

// ParseOrigin parses names joined by '|', ',' or '+', e.g. "left|bottom". Matching
// follows OriginFromFlags, so "left|right" is Left.
func ParseOrigin(s string) (Origin, error) {
	var flags uint
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '|' || r == ',' || r == '+' || r == ' '
	})
	if len(fields) == 0 {
		return Origin{}, fmt.Errorf("graph: empty origin")
	}
	for _, f := range fields {
		switch f {
		case "left":
			flags |= FlagLeft
		case "right":
			flags |= FlagRight
		case "top":
			flags |= FlagTop
		case "bottom":
			flags |= FlagBottom
		case "center", "centre":
			flags |= FlagCenter
		default:
			return Origin{}, fmt.Errorf("graph: unknown origin %q", f)
		}
	}
	return OriginFromFlags(flags), nil
}
