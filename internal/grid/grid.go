// Package grid partitions a rectangle into uniform cells and converts
// between points and cell indices.
//
// Cells are numbered from Columns*Rows at the top-left cell down to 1 at the
// bottom-right, walking each row left to right. Win masks address cells by
// that number, so the ordering is part of the contract.
package grid

import (
	"github.com/kiryu-dev/xoxo/internal/geom"
	"github.com/kiryu-dev/xoxo/pkg/utils"
)

const minLines = 2

type Info struct {
	Rect     geom.Rect  `json:"rect"`
	CellSize geom.Point `json:"cell_size"`
	Columns  int        `json:"columns"`
	Rows     int        `json:"rows"`
}

// New splits rect evenly. Dimensions that do not divide evenly leave the
// fraction in the floating point cell size.
func New(rect geom.Rect, columns, rows int) Info {
	utils.Assert(columns >= minLines, "column count %d below %d", columns, minLines)
	utils.Assert(rows >= minLines, "row count %d below %d", rows, minLines)

	return Info{
		Rect: rect,
		CellSize: geom.Point{
			X: rect.Width / float64(columns),
			Y: rect.Height / float64(rows),
		},
		Columns: columns,
		Rows:    rows,
	}
}

func (g Info) CellCount() int {
	return g.Columns * g.Rows
}

// Index numbers the cell at column/row.
func (g Info) Index(column, row int) int {
	return g.CellCount() - (column + row*g.Columns)
}

// cellOrigin is the top-left corner of the cell at column/row.
func (g Info) cellOrigin(column, row int) geom.Point {
	return geom.Point{
		X: g.Rect.X + float64(column)*g.CellSize.X,
		Y: g.Rect.Y + float64(row)*g.CellSize.Y,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
