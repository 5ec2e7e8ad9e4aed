package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyterm"
)

// recoverPanic turns a panic in Step into an error, logging the stack and
// painting it over the graph.
func (a *App) recoverPanic(err *error) {
	r := recover()
	if r == nil {
		return
	}
	stack := debug.Stack()
	a.logf("panic: %v", r)
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		a.log.WriteLineString(line)
	}
	a.ov.drawPanic(r, stack)
	*err = fmt.Errorf("app: panic: %v", r)
}

var colorPanicBG = color.RGBA{A: 0xff}

func (o *overlay) drawPanic(value any, stack []byte) {
	fb := o.d.fb
	if fb == nil {
		return
	}
	fb.Clear(colorPanicBG)
	if o.fontWidth <= 0 || o.fontHeight <= 0 {
		_ = fb.Present()
		return
	}

	term := tinyterm.NewTerminal(o.d)
	term.Configure(&tinyterm.Config{
		Font:       o.font,
		FontHeight: o.fontHeight,
		FontOffset: o.fontOffset,
	})
	cols := fb.Width() / int(o.fontWidth)
	rows := fb.Height() / int(o.fontHeight)
	// No trailing newline: a line feed on the last row wraps to the first and erases it.
	_, _ = term.Write([]byte(strings.Join(panicLines(value, stack, cols, rows), "\n")))
	term.Display()
}

// panicLines lists the panic header and stack lines that fit on a screen of
// cols x rows cells once long lines wrap.
func panicLines(value any, stack []byte, cols, rows int) []string {
	lines := []string{
		"xgraph panic:",
		fmt.Sprintf("panic: %v", value),
	}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	cols = max(cols, 1)
	used := 0
	for i, line := range lines {
		need := max((utf8.RuneCountInString(line)+cols-1)/cols, 1)
		if used+need > rows {
			return lines[:i]
		}
		used += need
	}
	return lines
}
