//go:build js

package main

import (
	"fmt"

	"xgraph/app"
	"xgraph/config"
	"xgraph/hal"
)

// In the browser there is no command line: the default config applies and files
// arrive by drag and drop.
func main() {
	cfg := config.Default()
	view, err := cfg.View()
	if err != nil {
		fmt.Println(err)
		return
	}
	ac := app.DefaultConfig()
	ac.View = view
	if err := hal.RunWindow(hal.WindowConfig{Width: cfg.Width, Height: cfg.Height}, app.Runner(ac)); err != nil {
		fmt.Println(err)
	}
}
