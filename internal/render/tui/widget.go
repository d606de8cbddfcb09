package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/kiryu-dev/xoxo/internal/geom"
)

// Label writes one line of text into the top row of its rect, centered and
// cut to fit.
type Label struct {
	Rect  geom.Rect
	Text  string
	Style tcell.Style
}

func (l Label) Draw(screen tcell.Screen) {
	x0, y0, w, h := cells(l.Rect)
	if w <= 0 || h <= 0 {
		return
	}
	text := []rune(l.Text)
	if len(text) > w {
		text = text[:w]
	}
	x := x0 + (w-len(text))/2
	for i, r := range text {
		screen.SetContent(x+i, y0, r, nil, l.Style)
	}
}

type Button struct {
	Label
}

func NewButton(rect geom.Rect, text string, style tcell.Style) Button {
	return Button{Label{Rect: rect, Text: "[ " + text + " ]", Style: style}}
}

// Contains reports whether the terminal cell (x, y) belongs to the button.
func (b Button) Contains(x, y int) bool {
	x0, y0, w, h := cells(b.Rect)
	return x >= x0 && x < x0+w && y >= y0 && y < y0+h
}

// StatusLine describes the round for the status label.
func StatusLine(snap domain.Snapshot, tally domain.Score) string {
	var head string
	switch snap.State {
	case domain.None:
		if p, ok := snap.CurrentPlayer(); ok {
			head = fmt.Sprintf("%s to move", p.Name)
		}
	case domain.Win:
		if p, ok := snap.WinnerPlayer(); ok {
			head = fmt.Sprintf("%s wins!", p.Name)
		}
	case domain.Tie:
		head = "tie"
	case domain.End:
		head = "game over"
	}
	if len(snap.Players) < 2 {
		return head
	}
	return fmt.Sprintf("%s   %s %d : %d %s   ties %d",
		head, snap.Players[0].Name, tally.Wins[0], tally.Wins[1], snap.Players[1].Name, tally.Ties)
}

// cells rounds r to whole terminal cells.
func cells(r geom.Rect) (x, y, w, h int) {
	x, y = int(r.X), int(r.Y)
	return x, y, int(r.X+r.Width) - x, int(r.Y+r.Height) - y
}
