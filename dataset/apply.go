package dataset

import (
	"fmt"

	"xgraph/graph"
)

// View is the axis setup used when a table is shown.
type View struct {
	Origin graph.Origin
	// MinY and MaxY bound the Y axis.
	MinY, MaxY float64
	// MinX and MaxX bound the X axis. When both are zero the X axis spans the
	// table rows.
	MinX, MaxX float64
	Palette    Palette
}

// DefaultView pins the origin to the lower-left corner with Y in [0,5].
func DefaultView() View {
	return View{
		Origin:  graph.Origin{H: graph.Left, V: graph.Bottom},
		MaxY:    5,
		Palette: DefaultPalette,
	}
}

// Apply replaces the series of s with the columns of t and sets up the axes. The
// surface is not rendered; AutoRender is suspended for the duration and restored.
// A rejected axis range leaves s untouched.
func Apply(s *graph.Surface, t *Table, v View) error {
	minX, maxX := v.MinX, v.MaxX
	if minX == 0 && maxX == 0 {
		maxX = float64(max(t.Rows(), 1))
	}
	if err := graph.CheckRange(graph.AxisX, minX, maxX); err != nil {
		return err
	}
	if err := graph.CheckRange(graph.AxisY, v.MinY, v.MaxY); err != nil {
		return err
	}

	if auto := s.AutoRender(); auto {
		s.SetAutoRender(false)
		defer s.SetAutoRender(auto)
	}

	s.Reset()
	if err := s.SetOrigin(v.Origin); err != nil {
		return err
	}
	if err := s.SetRangeX(minX, maxX); err != nil {
		return err
	}
	if err := s.SetRangeY(v.MinY, v.MaxY); err != nil {
		return err
	}
	for j, name := range t.Names {
		if _, err := s.AddSeries(name, v.Palette.Color(j), t.Columns[j]); err != nil {
			return fmt.Errorf("dataset: add %q: %w", name, err)
		}
	}
	return nil
}
