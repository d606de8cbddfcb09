package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/kiryu-dev/xoxo/internal/effects"
	"github.com/kiryu-dev/xoxo/internal/geom"
	"github.com/kiryu-dev/xoxo/internal/grid"
	"github.com/kiryu-dev/xoxo/internal/usecase/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var board = geom.Rect{Width: 300, Height: 300}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func newSession(t *testing.T) *game.Session {
	t.Helper()
	red, err := domain.ParseColor("#e0457b")
	require.NoError(t, err)
	blue, err := domain.ParseColor("#3d9be9")
	require.NoError(t, err)
	s, err := game.NewSession(game.Options{
		Rect:       board,
		Columns:    3,
		Rows:       3,
		Goal:       3,
		InputEvery: 1,
		Players: []domain.PlayerInfo{
			{ID: 0, Name: "Red", Color: red},
			{ID: 1, Name: "Blue", Color: blue},
		},
	}, nil, zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

func row(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestNewLayout(t *testing.T) {
	l := NewLayout(80, 24)

	assert.Equal(t, geom.Rect{Width: 80, Height: 24}, l.Screen)
	assert.Equal(t, l.Screen.Center(), l.Board.Center())
	assert.InDelta(t, 48, l.Board.Width, 1e-9)
	for _, r := range []geom.Rect{l.Board, l.Status, l.Reset} {
		assert.True(t, l.Screen.Contains(r.Origin()))
		assert.LessOrEqual(t, r.X+r.Width, l.Screen.Width+1e-9)
		assert.LessOrEqual(t, r.Y+r.Height, l.Screen.Height+1e-9)
	}
	assert.Less(t, l.Status.Y+l.Status.Height, l.Board.Y)
	assert.Greater(t, l.Reset.Y, l.Board.Y+l.Board.Height)
}

func TestButton_Contains(t *testing.T) {
	b := NewButton(geom.Rect{X: 10, Y: 5, Width: 8, Height: 2}, "reset", tcell.StyleDefault)

	assert.True(t, b.Contains(10, 5))
	assert.True(t, b.Contains(17, 6))
	assert.False(t, b.Contains(18, 5))
	assert.False(t, b.Contains(10, 7))
	assert.False(t, b.Contains(9, 5))
}

func TestStatusLine(t *testing.T) {
	s := newSession(t)
	tally := domain.Score{Wins: [2]int{2, 1}, Ties: 3}

	assert.Equal(t, "Red to move   Red 2 : 1 Blue   ties 3", StatusLine(s.Snapshot(), tally))

	g := s.Grid()
	for _, index := range []int{9, 1, 8, 2, 7} {
		s.Register(g.IndexToCenter(index))
	}
	assert.True(t, strings.HasPrefix(StatusLine(s.Snapshot(), tally), "Red wins!"))

	s.Quit()
	assert.True(t, strings.HasPrefix(StatusLine(s.Snapshot(), tally), "game over"))
}

func TestRenderer_Draw(t *testing.T) {
	screen := newScreen(t)
	s := newSession(t)
	layout := NewLayout(80, 24)
	s.Register(s.Grid().IndexToCenter(9))
	s.Register(s.Grid().IndexToCenter(1))

	snap := s.Snapshot()
	status := StatusLine(snap, domain.Score{})
	fx := effects.New(effects.DefaultSettings(), 1)
	fx.Burst(s.Grid().IndexToCenter(5), snap.Players[0].Color)

	NewRenderer(screen).Draw(Frame{
		Snapshot:  snap,
		Layout:    layout,
		Particles: fx.Particles(),
		Status:    status,
	})

	t.Run("marks at mapped centers", func(t *testing.T) {
		for index, want := range map[int]rune{9: 'X', 1: 'O'} {
			at := board.MapPoint(s.Grid().IndexToCenter(index), layout.Board)
			r, _, _, _ := screen.GetContent(int(at.X), int(at.Y))
			assert.Equal(t, want, r, "cell %d", index)
		}
	})

	t.Run("grid lines", func(t *testing.T) {
		x := int(layout.Board.X + layout.Board.Width/3)
		y := int(layout.Board.Y + layout.Board.Height/2)
		r, _, _, _ := screen.GetContent(x, y)
		assert.Equal(t, '│', r)
	})

	t.Run("status and reset", func(t *testing.T) {
		assert.Contains(t, row(screen, int(layout.Status.Y)), status)
		assert.Contains(t, row(screen, int(layout.Reset.Y)), "[ reset ]")
	})

	t.Run("current player tint", func(t *testing.T) {
		_, _, style, _ := screen.GetContent(0, 0)
		_, bg, _ := style.Decompose()
		want := toTcell(black.Blend(snap.Players[0].Color, tintAmount))
		assert.Equal(t, want, bg)
	})
}

func statusStyle(t *testing.T, screen tcell.Screen, layout Layout, status string) tcell.Style {
	t.Helper()
	y := int(layout.Status.Y)
	x := strings.Index(row(screen, y), status)
	require.GreaterOrEqual(t, x, 0)
	_, _, style, _ := screen.GetContent(x, y)
	return style
}

func TestRenderer_Outcome(t *testing.T) {
	layout := NewLayout(80, 24)

	t.Run("win keeps the winner tint", func(t *testing.T) {
		screen := newScreen(t)
		s := newSession(t)
		for _, index := range []int{9, 1, 8, 2, 7} {
			s.Register(s.Grid().IndexToCenter(index))
		}
		snap := s.Snapshot()
		require.Equal(t, domain.Win, snap.State)
		status := StatusLine(snap, domain.Score{})
		NewRenderer(screen).Draw(Frame{Snapshot: snap, Layout: layout, Status: status})

		red := snap.Players[0].Color
		_, _, style, _ := screen.GetContent(0, 0)
		_, bg, _ := style.Decompose()
		assert.Equal(t, toTcell(black.Blend(red, tintAmount)), bg)

		fg, _, _ := statusStyle(t, screen, layout, status).Decompose()
		assert.Equal(t, toTcell(red), fg)
	})

	t.Run("tie is white", func(t *testing.T) {
		screen := newScreen(t)
		s := newSession(t)
		for _, index := range []int{9, 8, 7, 5, 6, 4, 2, 3, 1} {
			s.Register(s.Grid().IndexToCenter(index))
		}
		snap := s.Snapshot()
		require.Equal(t, domain.Tie, snap.State)
		status := StatusLine(snap, domain.Score{})
		NewRenderer(screen).Draw(Frame{Snapshot: snap, Layout: layout, Status: status})

		_, _, style, _ := screen.GetContent(0, 0)
		_, bg, _ := style.Decompose()
		assert.Equal(t, toTcell(black.Blend(domain.White, tintAmount)), bg)

		fg, _, _ := statusStyle(t, screen, layout, status).Decompose()
		assert.Equal(t, toTcell(domain.White), fg)
	})

	t.Run("ended session is not tinted", func(t *testing.T) {
		screen := newScreen(t)
		s := newSession(t)
		s.Quit()
		NewRenderer(screen).Draw(Frame{Snapshot: s.Snapshot(), Layout: layout})

		_, _, style, _ := screen.GetContent(0, 0)
		_, bg, _ := style.Decompose()
		assert.Equal(t, toTcell(black), bg)
	})
}

func TestRenderer_WinCircles(t *testing.T) {
	screen := newScreen(t)
	s := newSession(t)
	layout := NewLayout(80, 24)
	for _, index := range []int{9, 1, 8, 2, 7} {
		s.Register(s.Grid().IndexToCenter(index))
	}
	snap := s.Snapshot()
	require.Len(t, snap.WinPoints, 3)

	at := func(i int) rune {
		p := board.MapPoint(snap.WinPoints[i], layout.Board)
		r, _, _, _ := screen.GetContent(int(p.X), int(p.Y))
		return r
	}
	isCircle := func(r rune) bool {
		return strings.ContainsRune(string(circleGlyphs[:]), r)
	}

	renderer := NewRenderer(screen)
	draw := func(frames int) {
		for range frames {
			renderer.Draw(Frame{Snapshot: snap, Layout: layout})
		}
	}
	y := int(board.MapPoint(snap.WinPoints[0], layout.Board).Y)

	draw(1)
	assert.True(t, isCircle(at(0)))
	assert.Equal(t, 'X', at(1))
	assert.Equal(t, 'X', at(2))

	draw(revealJump)
	assert.True(t, isCircle(at(1)))
	assert.Equal(t, 'X', at(2))
	assert.NotContains(t, row(screen, y), "•")

	draw(revealJump)
	for i := range snap.WinPoints {
		assert.True(t, isCircle(at(i)), "circle %d", i)
	}
	assert.Contains(t, row(screen, y), "•")

	t.Run("restarts after a reset", func(t *testing.T) {
		s.Reset()
		renderer.Draw(Frame{Snapshot: s.Snapshot(), Layout: layout})
		for _, index := range []int{9, 1, 8, 2, 7} {
			s.Register(s.Grid().IndexToCenter(index))
		}
		snap = s.Snapshot()
		draw(1)
		assert.True(t, isCircle(at(0)))
		assert.Equal(t, 'X', at(1))
	})
}

func TestPoller_Poll(t *testing.T) {
	screen := newScreen(t)
	layout := NewLayout(80, 24)
	g := grid.New(board, 3, 3)
	p := NewPoller(screen, zaptest.NewLogger(t))

	t.Run("click registers in board space", func(t *testing.T) {
		p.events <- tcell.NewEventMouse(int(layout.Board.X)+1, int(layout.Board.Y)+1, tcell.Button1, tcell.ModNone)
		in, resized := p.Poll(layout, board)
		require.True(t, in.Register)
		assert.False(t, resized)
		assert.Equal(t, 9, g.CellIndex(in.Point))
	})

	t.Run("held button does not repeat", func(t *testing.T) {
		p.events <- tcell.NewEventMouse(int(layout.Board.X)+2, int(layout.Board.Y)+1, tcell.Button1, tcell.ModNone)
		in, _ := p.Poll(layout, board)
		assert.True(t, in.Empty())

		p.events <- tcell.NewEventMouse(int(layout.Board.X)+2, int(layout.Board.Y)+1, tcell.ButtonNone, tcell.ModNone)
		p.events <- tcell.NewEventMouse(int(layout.Board.X+layout.Board.Width)-1, int(layout.Board.Y+layout.Board.Height)-1,
			tcell.Button1, tcell.ModNone)
		in, _ = p.Poll(layout, board)
		require.True(t, in.Register)
		assert.Equal(t, 1, g.CellIndex(in.Point))
		p.events <- tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone)
		p.Poll(layout, board)
	})

	t.Run("click outside board", func(t *testing.T) {
		p.events <- tcell.NewEventMouse(0, 12, tcell.Button1, tcell.ModNone)
		p.events <- tcell.NewEventMouse(0, 12, tcell.ButtonNone, tcell.ModNone)
		in, _ := p.Poll(layout, board)
		assert.True(t, in.Empty())
	})

	t.Run("reset button", func(t *testing.T) {
		p.events <- tcell.NewEventMouse(int(layout.Reset.X)+1, int(layout.Reset.Y), tcell.Button1, tcell.ModNone)
		p.events <- tcell.NewEventMouse(int(layout.Reset.X)+1, int(layout.Reset.Y), tcell.ButtonNone, tcell.ModNone)
		in, _ := p.Poll(layout, board)
		assert.Equal(t, domain.Input{Reset: true}, in)
	})

	t.Run("keys", func(t *testing.T) {
		tests := []struct {
			name string
			ev   *tcell.EventKey
			want domain.Input
		}{
			{name: "r", ev: tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), want: domain.Input{Reset: true}},
			{name: "q", ev: tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), want: domain.Input{Quit: true}},
			{name: "esc", ev: tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), want: domain.Input{Quit: true}},
			{name: "ctrl-c", ev: tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), want: domain.Input{Quit: true}},
			{name: "other", ev: tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), want: domain.Input{}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				p.events <- tt.ev
				in, _ := p.Poll(layout, board)
				assert.Equal(t, tt.want, in)
			})
		}
	})

	t.Run("resize", func(t *testing.T) {
		p.events <- tcell.NewEventResize(100, 30)
		_, resized := p.Poll(layout, board)
		assert.True(t, resized)
	})
}
