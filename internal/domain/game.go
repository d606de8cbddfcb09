package domain

import (
	"context"

	"github.com/pkg/errors"

	"github.com/kiryu-dev/xoxo/internal/geom"
	"github.com/kiryu-dev/xoxo/internal/grid"
)

type GameState byte

const (
	None = GameState(iota)
	Win
	Tie
	End
)

func (s GameState) String() string {
	switch s {
	case None:
		return "none"
	case Win:
		return "win"
	case Tie:
		return "tie"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// Finished reports whether the round is over but the session still runs.
func (s GameState) Finished() bool {
	return s == Win || s == Tie
}

const NoPlayer = -1

// ColoredRect is a placed mark. Two marks are the same move when their
// rectangles share an origin.
type ColoredRect struct {
	Rect    geom.Rect `json:"rect"`
	Color   Color     `json:"color"`
	OwnerID int       `json:"owner_id"`
}

func (c ColoredRect) SameCell(o ColoredRect) bool {
	return c.Rect.X == o.Rect.X && c.Rect.Y == o.Rect.Y
}

// Input is everything the game reads from its input source in one frame.
type Input struct {
	Point    geom.Point `json:"point"`
	Register bool       `json:"register"`
	Reset    bool       `json:"reset"`
	Quit     bool       `json:"quit"`
}

func (in Input) Empty() bool {
	return !in.Register && !in.Reset && !in.Quit
}

// Snapshot is a read-only copy of a session for renderers and clients.
type Snapshot struct {
	Version   uint64        `json:"version"`
	Grid      grid.Info     `json:"grid"`
	Marks     []ColoredRect `json:"marks"`
	State     GameState     `json:"state"`
	Current   int           `json:"current"`
	Players   []PlayerInfo  `json:"players"`
	Winner    int           `json:"winner"`
	WinCells  []int         `json:"win_cells,omitempty"`
	WinPoints []geom.Point  `json:"win_points,omitempty"`
}

func (s Snapshot) CurrentPlayer() (PlayerInfo, bool) {
	for _, p := range s.Players {
		if p.ID == s.Current {
			return p, true
		}
	}
	return PlayerInfo{}, false
}

func (s Snapshot) WinnerPlayer() (PlayerInfo, bool) {
	if s.State != Win {
		return PlayerInfo{}, false
	}
	for _, p := range s.Players {
		if p.ID == s.Winner {
			return p, true
		}
	}
	return PlayerInfo{}, false
}

// Effects receives fire-and-forget celebration calls from the game.
type Effects interface {
	Burst(at geom.Point, color Color)
	Clear()
}

type GameSession interface {
	Update(in Input) GameState
	InputDue() bool
	Current() int
	State() GameState
	Snapshot() Snapshot
}

// Outcome is the result of one finished round.
type Outcome struct {
	State  GameState
	Winner int
}

var ErrScoreNotFound = errors.New("score not found")

type Score struct {
	SessionID string `json:"session_id"`
	Wins      [2]int `json:"wins"`
	Ties      int    `json:"ties"`
}

func (s *Score) Add(o Outcome) {
	switch {
	case o.State == Tie:
		s.Ties++
	case o.State == Win && o.Winner >= 0 && o.Winner < len(s.Wins):
		s.Wins[o.Winner]++
	}
}

type ScoreRepository interface {
	Record(ctx context.Context, sessionID string, outcome Outcome) error
	Get(ctx context.Context, sessionID string) (Score, error)
}
