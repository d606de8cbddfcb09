// Package tui draws sessions on a terminal and turns terminal events into
// game input.
package tui

import "github.com/kiryu-dev/xoxo/internal/geom"

// Layout places the board, the status line and the reset button on a
// terminal of the given size. All rects are in terminal cells.
type Layout struct {
	Screen geom.Rect
	Board  geom.Rect
	Status geom.Rect
	Reset  geom.Rect
}

func NewLayout(width, height int) Layout {
	screen := geom.Rect{Width: float64(width), Height: float64(height)}
	return Layout{
		Screen: screen,
		Board:  geom.PlaceRelativeCenter(screen, 60, 70),
		Status: geom.PlaceRelative(screen, 5, 2, 90, 8),
		Reset:  geom.PlaceRelative(screen, 40, 90, 33, 100),
	}
}
