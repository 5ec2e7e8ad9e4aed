//go:build !cgo && !js

package hal

// WindowConfig sizes the desktop (or browser) window.
type WindowConfig struct {
	Width  int
	Height int
	Title  string
}

func RunWindow(_ WindowConfig, _ func(h HAL) func() error) error {
	return ErrNoWindow
}
