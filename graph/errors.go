package graph

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrConstruction means the surface's program could not be built. The surface is unusable.
	ErrConstruction = errors.New("graph: construction failed")
	// ErrDomain means an axis range has zero or non-finite width.
	ErrDomain = errors.New("graph: degenerate axis range")
	// ErrIndex means a series index is out of range.
	ErrIndex = errors.New("graph: series index out of range")
	// ErrOddSamples means an interleaved x/y sequence has an odd length.
	ErrOddSamples = errors.New("graph: interleaved samples must come in x/y pairs")
)

// ConstructionError reports which setup stage failed.
type ConstructionError struct {
	Stage string // "program", "attribute"
	Info  string
	Err   error
}

func (e *ConstructionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("graph: %s setup failed: %s: %v", e.Stage, e.Info, e.Err)
	}
	return fmt.Sprintf("graph: %s setup failed: %s", e.Stage, e.Info)
}

func (e *ConstructionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConstruction}
	}
	return []error{ErrConstruction, e.Err}
}

// IndexError reports an out-of-range series index.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("graph: series index %d out of range [0,%d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndex }

// RangeError reports a rejected axis range.
type RangeError struct {
	Axis     Axis
	Min, Max float64
}

func (e *RangeError) Error() string {
	if e.Min == e.Max {
		return fmt.Sprintf("graph: %s range [%g,%g] has zero width", e.Axis, e.Min, e.Max)
	}
	return fmt.Sprintf("graph: %s range [%g,%g] has no finite width", e.Axis, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrDomain }

// CheckRange reports whether [lo,hi] can span an axis: its width must be
// finite and non-zero. Inverted ranges are allowed.
func CheckRange(axis Axis, lo, hi float64) error {
	d := hi - lo
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return &RangeError{Axis: axis, Min: lo, Max: hi}
	}
	return nil
}
