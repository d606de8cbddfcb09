package game

import (
	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/kiryu-dev/xoxo/internal/geom"
	"github.com/kiryu-dev/xoxo/internal/grid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	playerCount       = 2
	minLines          = 2
	defaultInputEvery = 2
	markPercent       = 55
)

type Options struct {
	Rect       geom.Rect
	Columns    int
	Rows       int
	Goal       int
	InputEvery int
	Players    []domain.PlayerInfo
}

// Session is one running game: the board, both players and the round state.
// It is not safe for concurrent use; a single loop owns it and everything
// else reads snapshots.
type Session struct {
	grid    grid.Info
	table   WinTable
	players [playerCount]*domain.Player
	current int

	marks    []domain.ColoredRect
	state    domain.GameState
	winner   int
	winCells []int

	frame      uint64
	inputEvery uint64
	version    uint64

	effects domain.Effects
	logger  *zap.Logger
}

type nopEffects struct{}

func (nopEffects) Burst(geom.Point, domain.Color) {}
func (nopEffects) Clear()                         {}

// NewSession validates opts and builds a fresh session in the None state.
// effects may be nil.
func NewSession(opts Options, effects domain.Effects, logger *zap.Logger) (*Session, error) {
	if opts.Columns < minLines || opts.Rows < minLines {
		return nil, errors.WithMessagef(ErrInvalidBoard, "%dx%d", opts.Columns, opts.Rows)
	}
	if opts.Rect.Width <= 0 || opts.Rect.Height <= 0 {
		return nil, errors.WithMessagef(ErrInvalidBoard, "rect %vx%v", opts.Rect.Width, opts.Rect.Height)
	}
	if opts.Goal < minLines || opts.Goal > opts.Columns || opts.Goal > opts.Rows {
		return nil, errors.WithMessagef(ErrInvalidGoal, "goal %d on %dx%d", opts.Goal, opts.Columns, opts.Rows)
	}
	if len(opts.Players) != playerCount {
		return nil, errors.WithMessagef(ErrPlayerCount, "got %d", len(opts.Players))
	}
	if opts.InputEvery < 1 {
		opts.InputEvery = defaultInputEvery
	}
	if effects == nil {
		effects = nopEffects{}
	}
	s := &Session{
		grid:       grid.New(opts.Rect, opts.Columns, opts.Rows),
		table:      NewWinTable(opts.Columns, opts.Rows, opts.Goal),
		winner:     domain.NoPlayer,
		inputEvery: uint64(opts.InputEvery),
		effects:    effects,
		logger:     logger,
	}
	cells := s.grid.CellCount()
	for i, p := range opts.Players {
		s.players[i] = domain.NewPlayer(i, p.Name, p.Color, cells)
	}
	s.marks = make([]domain.ColoredRect, 0, cells)
	return s, nil
}

func (s *Session) Grid() grid.Info {
	return s.grid
}

func (s *Session) State() domain.GameState {
	return s.state
}

func (s *Session) Current() int {
	return s.current
}

func (s *Session) Player(id int) *domain.Player {
	return s.players[id]
}

// InputDue reports whether the next Update will act on register and reset
// gestures. Quit is honored on every frame.
func (s *Session) InputDue() bool {
	return s.frame%s.inputEvery == 0
}

// Update advances the session by one frame.
func (s *Session) Update(in domain.Input) domain.GameState {
	due := s.InputDue()
	s.frame++
	if in.Quit {
		s.Quit()
		return s.state
	}
	if !due {
		return s.state
	}
	if in.Reset {
		s.Reset()
	}
	if in.Register {
		s.Register(in.Point)
	}
	return s.state
}

// Register places a mark for the active player on the cell under p. The
// mark covers the middle 55% of the cell. It reports whether a move was
// made; points outside the board, taken cells and finished rounds are
// ignored.
func (s *Session) Register(p geom.Point) bool {
	if s.state != domain.None {
		return false
	}
	cell, index, ok := s.grid.CellAt(p)
	if !ok {
		return false
	}
	player := s.players[s.current]
	mark := domain.ColoredRect{
		Rect:    geom.PlaceRelativeCenter(cell, markPercent, markPercent),
		Color:   player.Color,
		OwnerID: player.ID,
	}
	for _, placed := range s.marks {
		if placed.SameCell(mark) {
			return false
		}
	}

	s.marks = append(s.marks, mark)
	player.Mark(index)
	s.version++
	s.logger.Debug("move registered",
		zap.Int("player", player.ID),
		zap.Int("index", index),
		zap.Int("placed", len(s.marks)))

	if cells, won := s.table.Match(player.Moves); won {
		s.state = domain.Win
		s.winner = player.ID
		s.winCells = cells
		s.logger.Info("round won", zap.String("player", player.Name), zap.Ints("cells", cells))
		for _, index := range cells {
			s.effects.Burst(s.grid.IndexToCenter(index), player.Color)
		}
		return true
	}
	if len(s.marks) == s.grid.CellCount() {
		s.state = domain.Tie
		s.logger.Info("round tied")
		s.effects.Burst(s.grid.Rect.Center(), domain.White)
		return true
	}
	s.current = (s.current + 1) % playerCount
	return true
}

// Reset starts a new round with the first player. Calling it on an empty
// board leaves the session as it was.
func (s *Session) Reset() {
	if s.state == domain.End {
		return
	}
	if s.state == domain.None && len(s.marks) == 0 && s.current == 0 {
		s.effects.Clear()
		return
	}
	for _, p := range s.players {
		p.Clear()
	}
	s.marks = s.marks[:0]
	s.winCells = nil
	s.winner = domain.NoPlayer
	s.current = 0
	s.state = domain.None
	s.effects.Clear()
	s.version++
	s.logger.Debug("session reset")
}

func (s *Session) Quit() {
	if s.state == domain.End {
		return
	}
	s.state = domain.End
	s.version++
	s.logger.Debug("session ended")
}

// Outcome describes the finished round; it is only meaningful in Win or Tie.
func (s *Session) Outcome() domain.Outcome {
	return domain.Outcome{State: s.state, Winner: s.winner}
}

func (s *Session) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		Version: s.version,
		Grid:    s.grid,
		Marks:   append([]domain.ColoredRect(nil), s.marks...),
		State:   s.state,
		Current: s.current,
		Winner:  s.winner,
	}
	for _, p := range s.players {
		snap.Players = append(snap.Players, p.Info())
	}
	if len(s.winCells) > 0 {
		snap.WinCells = append([]int(nil), s.winCells...)
		for _, index := range s.winCells {
			snap.WinPoints = append(snap.WinPoints, s.grid.IndexToCenter(index))
		}
	}
	return snap
}
