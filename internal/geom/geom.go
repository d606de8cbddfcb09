// Package geom holds the floating point screen geometry shared by the grid,
// the renderers and the wire protocol.
package geom

import "fmt"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// Rect is an axis aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

func (r Rect) Size() Point {
	return Point{X: r.Width, Y: r.Height}
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains treats all four edges as inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// MapPoint translates p from r's coordinate space into to's, keeping its
// relative position. Points outside r land outside to.
func (r Rect) MapPoint(p Point, to Rect) Point {
	if r.Width == 0 || r.Height == 0 {
		return to.Origin()
	}
	return Point{
		X: to.X + (p.X-r.X)*to.Width/r.Width,
		Y: to.Y + (p.Y-r.Y)*to.Height/r.Height,
	}
}

// MapRect maps both corners of in through MapPoint.
func (r Rect) MapRect(in Rect, to Rect) Rect {
	lo := r.MapPoint(in.Origin(), to)
	hi := r.MapPoint(in.Origin().Add(in.Size()), to)
	return Rect{X: lo.X, Y: lo.Y, Width: hi.X - lo.X, Height: hi.Y - lo.Y}
}
