package game

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/kiryu-dev/xoxo/pkg/utils"
)

// WinTable lists every run of goal cells that wins a round. Bit k of a mask
// is the cell numbered k+1.
type WinTable struct {
	masks []*bitset.BitSet
	goal  int
}

type direction struct {
	dc, dr int
}

var directions = []direction{
	{dc: 1, dr: 0},  // row
	{dc: 0, dr: 1},  // column
	{dc: 1, dr: 1},  // diagonal
	{dc: -1, dr: 1}, // anti-diagonal
}

// NewWinTable generates the masks for a columns x rows board where goal
// marks in a line win.
func NewWinTable(columns, rows, goal int) WinTable {
	utils.Assert(goal >= 2 && goal <= columns && goal <= rows,
		"goal %d does not fit a %dx%d board", goal, columns, rows)

	cells := columns * rows
	table := WinTable{goal: goal}
	for _, d := range directions {
		for row := 0; row < rows; row++ {
			for column := 0; column < columns; column++ {
				lastColumn := column + d.dc*(goal-1)
				lastRow := row + d.dr*(goal-1)
				if lastColumn < 0 || lastColumn >= columns || lastRow >= rows {
					continue
				}
				mask := bitset.New(uint(cells))
				for step := 0; step < goal; step++ {
					c := column + d.dc*step
					r := row + d.dr*step
					mask.Set(uint(cells - (c + r*columns) - 1))
				}
				table.masks = append(table.masks, mask)
			}
		}
	}
	return table
}

func (t WinTable) Len() int {
	return len(t.masks)
}

func (t WinTable) Goal() int {
	return t.goal
}

// Match returns the cell numbers of the first mask fully covered by moves,
// in ascending order.
func (t WinTable) Match(moves *bitset.BitSet) ([]int, bool) {
	for _, mask := range t.masks {
		if moves.IntersectionCardinality(mask) != uint(t.goal) {
			continue
		}
		cells := make([]int, 0, t.goal)
		for i, ok := mask.NextSet(0); ok; i, ok = mask.NextSet(i + 1) {
			cells = append(cells, int(i)+1)
		}
		return cells, true
	}
	return nil, false
}
