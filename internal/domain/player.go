package domain

import (
	"github.com/bits-and-blooms/bitset"
)

// Player is one side of a session. Bit k of Moves is set once the player
// owns the cell numbered k+1.
type Player struct {
	ID    int
	Name  string
	Color Color
	Moves *bitset.BitSet
}

func NewPlayer(id int, name string, color Color, cells int) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		Color: color,
		Moves: bitset.New(uint(cells)),
	}
}

// Mark records a move on the cell numbered index.
func (p *Player) Mark(index int) {
	p.Moves.Set(uint(index - 1))
}

func (p *Player) Owns(index int) bool {
	return p.Moves.Test(uint(index - 1))
}

func (p *Player) Clear() {
	p.Moves.ClearAll()
}

func (p *Player) Info() PlayerInfo {
	return PlayerInfo{ID: p.ID, Name: p.Name, Color: p.Color}
}

type PlayerInfo struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`
}
