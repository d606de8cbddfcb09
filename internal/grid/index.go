package grid

import (
	"github.com/kiryu-dev/xoxo/internal/geom"
	"github.com/kiryu-dev/xoxo/pkg/utils"
)

// ColumnRow inverts Index.
func (g Info) ColumnRow(index int) (column, row int) {
	utils.Assert(index >= 1 && index <= g.CellCount(), "cell index %d out of [1,%d]", index, g.CellCount())

	k := g.CellCount() - index
	column = clamp(k%g.Columns, 0, g.Columns-1)
	row = clamp(k/g.Columns, 0, g.Rows-1)
	return column, row
}

// IndexToPoint returns the top-left corner of the cell numbered index.
func (g Info) IndexToPoint(index int) geom.Point {
	return g.cellOrigin(g.ColumnRow(index))
}

func (g Info) IndexToCenter(index int) geom.Point {
	return g.IndexToPoint(index).Add(g.CellSize.Scale(0.5))
}

func (g Info) IndexToRect(index int) geom.Rect {
	origin := g.IndexToPoint(index)
	return geom.Rect{X: origin.X, Y: origin.Y, Width: g.CellSize.X, Height: g.CellSize.Y}
}
