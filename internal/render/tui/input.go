package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/kiryu-dev/xoxo/internal/geom"
	"go.uber.org/zap"
)

const eventBuffer = 100

// Poller pumps terminal events off the screen and folds them into one
// domain.Input per frame.
type Poller struct {
	screen  tcell.Screen
	events  chan tcell.Event
	pressed bool
	logger  *zap.Logger
}

func NewPoller(screen tcell.Screen, logger *zap.Logger) *Poller {
	return &Poller{
		screen: screen,
		events: make(chan tcell.Event, eventBuffer),
		logger: logger,
	}
}

// Start reads events until ctx is done or the screen is finalized.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case p.events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Poll drains pending events. A click on the board registers at the center
// of the clicked terminal cell, translated from layout.Board into board.
// resized is set when the caller has to rebuild its layout.
func (p *Poller) Poll(layout Layout, board geom.Rect) (in domain.Input, resized bool) {
	for {
		select {
		case ev := <-p.events:
			if p.fold(&in, ev, layout, board) {
				resized = true
			}
		default:
			return in, resized
		}
	}
}

func (p *Poller) fold(in *domain.Input, ev tcell.Event, layout Layout, board geom.Rect) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			in.Quit = true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			in.Quit = true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			in.Reset = true
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		edge := down && !p.pressed
		p.pressed = down
		if !edge {
			return false
		}
		x, y := ev.Position()
		if NewButton(layout.Reset, resetText, tcell.StyleDefault).Contains(x, y) {
			in.Reset = true
			return false
		}
		at := geom.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
		if !layout.Board.Contains(at) {
			return false
		}
		in.Register = true
		in.Point = layout.Board.MapPoint(at, board)
		p.logger.Debug("click", zap.Int("x", x), zap.Int("y", y), zap.Stringer("board", in.Point))
	case *tcell.EventResize:
		p.screen.Sync()
		return true
	}
	return false
}
