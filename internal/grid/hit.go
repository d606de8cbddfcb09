package grid

import (
	"math"

	"github.com/kiryu-dev/xoxo/internal/geom"
)

// CellAt maps p to the cell containing it. ok is false when p lies outside
// the grid rectangle; the far edges still belong to the last column and row.
func (g Info) CellAt(p geom.Point) (cell geom.Rect, index int, ok bool) {
	dx := p.X - g.Rect.X
	dy := p.Y - g.Rect.Y
	if dx < 0 || dx > g.Rect.Width || dy < 0 || dy > g.Rect.Height {
		return geom.Rect{}, 0, false
	}

	column := clamp(int(math.Floor(dx/g.CellSize.X)), 0, g.Columns-1)
	row := clamp(int(math.Floor(dy/g.CellSize.Y)), 0, g.Rows-1)

	origin := g.cellOrigin(column, row)
	cell = geom.Rect{X: origin.X, Y: origin.Y, Width: g.CellSize.X, Height: g.CellSize.Y}
	return cell, g.Index(column, row), true
}

func (g Info) CellRect(p geom.Point) (geom.Rect, bool) {
	cell, _, ok := g.CellAt(p)
	return cell, ok
}

// CellIndex returns 0 for points outside the grid.
func (g Info) CellIndex(p geom.Point) int {
	_, index, _ := g.CellAt(p)
	return index
}
