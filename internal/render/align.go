package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// column pads cells to a shared display width. When disabled every pad is
// empty, which reproduces the compact single-space layout.
type column struct {
	enabled bool
	width   int
}

func newColumn(enabled bool, cells ...[]string) column {
	c := column{enabled: enabled}
	if !enabled {
		return c
	}
	for _, group := range cells {
		for _, s := range group {
			if w := runewidth.StringWidth(s); w > c.width {
				c.width = w
			}
		}
	}
	return c
}

func (c column) pad(s string) string {
	if !c.enabled {
		return s
	}
	if w := runewidth.StringWidth(s); w < c.width {
		return s + strings.Repeat(" ", c.width-w)
	}
	return s
}
