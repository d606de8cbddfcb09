package main

import (
	"context"

	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/kiryu-dev/xoxo/internal/effects"
	"github.com/kiryu-dev/xoxo/internal/geom"
	"github.com/kiryu-dev/xoxo/internal/render/tui"
	"github.com/kiryu-dev/xoxo/internal/usecase/game"
	"github.com/pkg/errors"
)

type inputSource interface {
	Poll(layout tui.Layout, board geom.Rect) (in domain.Input, resized bool)
}

// localGame is one hot-seat session driven frame by frame from a terminal.
type localGame struct {
	sessionID string
	session   *game.Session
	fx        *effects.System
	input     inputSource
	renderer  *tui.Renderer
	tally     domain.ScoreRepository
	size      func() (int, int)
	dt        float64

	layout  tui.Layout
	pending domain.Input
}

// merge folds a newer input into one still waiting for a due frame: the
// latest click wins, reset and quit stick.
func merge(pending, in domain.Input) domain.Input {
	if in.Register {
		pending.Register = true
		pending.Point = in.Point
	}
	pending.Reset = pending.Reset || in.Reset
	pending.Quit = pending.Quit || in.Quit
	return pending
}

// frame runs one tick. Clicks that arrive between input frames are held
// until the session reads input again. It reports false once the session
// has ended.
func (g *localGame) frame(ctx context.Context) (bool, error) {
	in, resized := g.input.Poll(g.layout, g.session.Grid().Rect)
	if resized {
		g.layout = tui.NewLayout(g.size())
	}
	g.pending = merge(g.pending, in)

	var due domain.Input
	if g.pending.Quit || g.session.InputDue() {
		due, g.pending = g.pending, domain.Input{}
	}
	before := g.session.State()
	if g.session.Update(due) == domain.End {
		return false, nil
	}
	if before == domain.None && g.session.State().Finished() {
		if err := g.tally.Record(ctx, g.sessionID, g.session.Outcome()); err != nil {
			return false, errors.WithMessage(err, "record outcome")
		}
	}
	g.fx.Step(g.dt)

	score, err := g.tally.Get(ctx, g.sessionID)
	if err != nil && !errors.Is(err, domain.ErrScoreNotFound) {
		return false, errors.WithMessage(err, "get score")
	}
	snap := g.session.Snapshot()
	g.renderer.Draw(tui.Frame{
		Snapshot:  snap,
		Layout:    g.layout,
		Particles: g.fx.Particles(),
		Status:    tui.StatusLine(snap, score),
	})
	return true, nil
}
