package app

import "xgraph/hal"

// Selected returns the checked series indices in ascending order.
func (a *App) Selected() []int {
	var out []int
	for i, on := range a.checked {
		if on {
			out = append(out, i)
		}
	}
	return out
}

// Toggle flips series i. Out-of-range indices are ignored.
func (a *App) Toggle(i int) {
	if i < 0 || i >= len(a.checked) {
		return
	}
	a.checked[i] = !a.checked[i]
	a.dirty = true
}

func (a *App) SelectAll() {
	for i := range a.checked {
		a.checked[i] = true
	}
	a.dirty = true
}

func (a *App) SelectNone() {
	for i := range a.checked {
		a.checked[i] = false
	}
	a.dirty = true
}

// MoveCursor moves the list cursor by d, clamped to the list.
func (a *App) MoveCursor(d int) {
	a.cursor = min(max(a.cursor+d, 0), max(len(a.checked)-1, 0))
	a.dirty = true
}

// RenderSelection clears the canvas once, then renders each checked series on its
// own so that later series paint over earlier ones. AutoClear is left off.
func (a *App) RenderSelection() error {
	a.surface.SetAutoClear(false)
	if err := a.surface.Clear(); err != nil {
		return err
	}
	sel := a.Selected()
	if len(sel) == 0 {
		// Axes only.
		return a.surface.Render(-1)
	}
	for _, i := range sel {
		if err := a.surface.Render(i); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAtCursor drops the series under the cursor from the surface and the list.
func (a *App) RemoveAtCursor() error {
	if len(a.checked) == 0 {
		return nil
	}
	sr, err := a.surface.RemoveSeries(a.cursor)
	if err != nil {
		return err
	}
	a.checked = append(a.checked[:a.cursor], a.checked[a.cursor+1:]...)
	a.MoveCursor(0)
	a.setStatus("removed %s", sr.Name)
	return nil
}

func (a *App) handleKey(ev hal.KeyEvent) {
	var err error
	switch {
	case ev.Rune >= '1' && ev.Rune <= '9':
		a.Toggle(int(ev.Rune - '1'))
	case ev.Rune == 'a' || ev.Rune == 'A':
		a.SelectAll()
	case ev.Rune == 'n' || ev.Rune == 'N':
		a.SelectNone()
	case ev.Rune == 'c' || ev.Rune == 'C':
		a.surface.SetAutoClear(true)
		err = a.surface.Render(-1)
	case ev.Rune == ' ' || ev.Code == hal.KeySpace:
		a.Toggle(a.cursor)
	case ev.Code == hal.KeyUp:
		a.MoveCursor(-1)
	case ev.Code == hal.KeyDown:
		a.MoveCursor(1)
	case ev.Code == hal.KeyHome:
		a.MoveCursor(-len(a.checked))
	case ev.Code == hal.KeyEnd:
		a.MoveCursor(len(a.checked))
	case ev.Code == hal.KeyDelete:
		err = a.RemoveAtCursor()
	case ev.Code == hal.KeyEnter:
		err = a.RenderSelection()
		if err == nil {
			a.setStatus("rendered %d of %d series", len(a.Selected()), len(a.checked))
		}
	}
	if err != nil {
		a.logf("key: %v", err)
		a.setStatus("error: %v", err)
	}
}
