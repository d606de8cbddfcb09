package tui

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/kiryu-dev/xoxo/internal/anim"
	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/kiryu-dev/xoxo/internal/effects"
	"github.com/kiryu-dev/xoxo/internal/geom"
)

const (
	tintAmount      = 0.18
	highlightAmount = 0.45
	resetText       = "reset"

	// win circles come out one per revealJump frames
	revealJump = 10
	pulseSpeed = 8
	pulseMax   = 30
)

var (
	black        = domain.Color{}
	ink          = domain.Color{R: 0xd0, G: 0xd0, B: 0xd0}
	glyph        = [...]rune{'X', 'O'}
	circleGlyphs = [...]rune{'○', '◎', '●', '◎'}
)

// Frame is everything drawn in one pass. Snapshot geometry and particles
// are in the session's board space and get mapped onto Layout.Board.
type Frame struct {
	Snapshot  domain.Snapshot
	Layout    Layout
	Particles []effects.Particle
	Status    string
}

// Renderer draws frames on a screen. It keeps the win animation between
// frames, so one Renderer serves one screen and one loop.
type Renderer struct {
	screen tcell.Screen

	reveal     *anim.Reveal
	pulse      *anim.Sprite
	winVersion uint64
	celebrated bool
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		reveal: anim.NewReveal(revealJump),
		pulse:  anim.NewSprite(len(circleGlyphs), pulseSpeed, pulseMax),
	}
}

func (r *Renderer) Draw(f Frame) {
	snap := f.Snapshot
	from := snap.Grid.Rect
	view := f.Layout.Board

	accent, tinted := accentColor(snap)
	background := black
	if tinted {
		background = black.Blend(accent, tintAmount)
	}
	base := tcell.StyleDefault.Background(toTcell(background)).Foreground(toTcell(ink))
	r.screen.Fill(' ', base)

	winning := make(map[int]bool, len(snap.WinCells))
	for _, index := range snap.WinCells {
		winning[index] = true
	}
	for _, mark := range snap.Marks {
		color := mark.Color
		if winning[snap.Grid.CellIndex(mark.Rect.Center())] {
			color = color.Blend(domain.White, highlightAmount)
		}
		r.fill(from.MapRect(mark.Rect, view), base.Background(toTcell(color)))
		center := from.MapPoint(mark.Rect.Center(), view)
		if mark.OwnerID >= 0 && mark.OwnerID < len(glyph) {
			r.screen.SetContent(int(center.X), int(center.Y), glyph[mark.OwnerID], nil,
				base.Background(toTcell(color)).Foreground(toTcell(domain.White)).Bold(true))
		}
	}
	r.gridLines(snap, view, base)
	r.celebrate(snap, from, view)

	for _, p := range f.Particles {
		at := from.MapPoint(p.Pos, view)
		if !f.Layout.Screen.Contains(at) {
			continue
		}
		color := background.Blend(p.Color, p.Fade())
		r.over(int(at.X), int(at.Y), '*', toTcell(color))
	}

	status := base.Bold(true)
	if tinted {
		status = status.Foreground(toTcell(accent))
	}
	Label{Rect: f.Layout.Status, Text: f.Status, Style: status}.Draw(r.screen)
	NewButton(f.Layout.Reset, resetText, base.Reverse(true)).Draw(r.screen)
	r.screen.Show()
}

// accentColor is the color of whoever the round is about: the player on
// turn, the winner, or white for a tie. Ended sessions have none.
func accentColor(snap domain.Snapshot) (domain.Color, bool) {
	switch snap.State {
	case domain.None:
		if p, ok := snap.CurrentPlayer(); ok {
			return p.Color, true
		}
	case domain.Win:
		if p, ok := snap.WinnerPlayer(); ok {
			return p.Color, true
		}
	case domain.Tie:
		return domain.White, true
	}
	return domain.Color{}, false
}

// celebrate reveals circles over the winning cells one at a time and joins
// the first and the last once all are out.
func (r *Renderer) celebrate(snap domain.Snapshot, from, view geom.Rect) {
	if snap.State != domain.Win || len(snap.WinPoints) == 0 {
		r.celebrated = false
		return
	}
	if !r.celebrated || snap.Version != r.winVersion {
		r.celebrated = true
		r.winVersion = snap.Version
		r.reveal.Restart(len(snap.WinPoints))
		r.pulse.Rewind()
	}
	white := toTcell(domain.White)
	if r.reveal.Done() {
		first := from.MapPoint(snap.WinPoints[0], view)
		last := from.MapPoint(snap.WinPoints[len(snap.WinPoints)-1], view)
		steps := int(math.Max(math.Abs(last.X-first.X), math.Abs(last.Y-first.Y)))
		for i := 1; i < steps; i++ {
			at := first.Add(last.Sub(first).Scale(float64(i) / float64(steps)))
			r.over(int(at.X), int(at.Y), '•', white)
		}
	}
	circle := circleGlyphs[r.pulse.Frame()]
	for _, p := range snap.WinPoints[:r.reveal.Visible()] {
		at := from.MapPoint(p, view)
		r.over(int(at.X), int(at.Y), circle, white)
	}
	r.reveal.Step()
	r.pulse.Update()
}

func (r *Renderer) gridLines(snap domain.Snapshot, view geom.Rect, style tcell.Style) {
	x0, y0, w, h := cells(view)
	if w <= 0 || h <= 0 {
		return
	}
	vertical := make(map[int]bool, snap.Grid.Columns+1)
	for c := 0; c <= snap.Grid.Columns; c++ {
		x := int(view.X + float64(c)*view.Width/float64(snap.Grid.Columns))
		vertical[min(x, x0+w-1)] = true
	}
	horizontal := make(map[int]bool, snap.Grid.Rows+1)
	for row := 0; row <= snap.Grid.Rows; row++ {
		y := int(view.Y + float64(row)*view.Height/float64(snap.Grid.Rows))
		horizontal[min(y, y0+h-1)] = true
	}
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			var ch rune
			switch {
			case vertical[x] && horizontal[y]:
				ch = '┼'
			case vertical[x]:
				ch = '│'
			case horizontal[y]:
				ch = '─'
			default:
				continue
			}
			_, _, cell, _ := r.screen.GetContent(x, y)
			_, bg, _ := cell.Decompose()
			r.screen.SetContent(x, y, ch, nil, style.Background(bg))
		}
	}
}

// over draws ch in fg and keeps whatever background the cell already has.
func (r *Renderer) over(x, y int, ch rune, fg tcell.Color) {
	_, _, style, _ := r.screen.GetContent(x, y)
	r.screen.SetContent(x, y, ch, nil, style.Foreground(fg))
}

// fill paints every terminal cell whose center lies inside rect.
func (r *Renderer) fill(rect geom.Rect, style tcell.Style) {
	x0, y0, w, h := cells(rect)
	for y := y0; y <= y0+h; y++ {
		for x := x0; x <= x0+w; x++ {
			if rect.Contains(geom.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}) {
				r.screen.SetContent(x, y, ' ', nil, style)
			}
		}
	}
}

func toTcell(c domain.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
