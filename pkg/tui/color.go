// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ColorEnabled reports whether output written to f should carry color
// escapes: f must be a terminal, NO_COLOR unset and TERM not dumb.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	t := os.Getenv("TERM")
	if t == "" || t == "dumb" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Colorizer paints text with a fixed set of attributes when enabled.
type Colorizer struct {
	c *color.Color
}

// NewColorizer returns a Colorizer for the given attributes. When enabled is
// false the text is returned unchanged.
func NewColorizer(enabled bool, attrs ...color.Attribute) Colorizer {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return Colorizer{c: c}
}

// Wrap returns text with the colorizer's attributes applied.
func (z Colorizer) Wrap(text string) string {
	if z.c == nil {
		return text
	}
	return z.c.Sprint(text)
}
