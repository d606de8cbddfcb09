package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceRelativeCenter(t *testing.T) {
	parent := Rect{X: 10, Y: 20, Width: 200, Height: 100}

	tests := []struct {
		name   string
		w, h   float64
		expect Rect
	}{
		{name: "full size", w: 100, h: 100, expect: parent},
		{name: "half", w: 50, h: 50, expect: Rect{X: 60, Y: 45, Width: 100, Height: 50}},
		{name: "uneven", w: 10, h: 80, expect: Rect{X: 100, Y: 30, Width: 20, Height: 80}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlaceRelativeCenter(parent, tt.w, tt.h)
			assert.InDelta(t, tt.expect.X, got.X, 1e-9)
			assert.InDelta(t, tt.expect.Y, got.Y, 1e-9)
			assert.InDelta(t, tt.expect.Width, got.Width, 1e-9)
			assert.InDelta(t, tt.expect.Height, got.Height, 1e-9)
			assert.Equal(t, parent.Center(), got.Center())
		})
	}
}

func TestPlaceRelative(t *testing.T) {
	parent := Rect{X: 0, Y: 0, Width: 200, Height: 100}

	t.Run("anchor and remainder", func(t *testing.T) {
		// Given: an anchor a quarter into the parent
		// When: taking half of what remains past it
		got := PlaceRelative(parent, 25, 50, 50, 100)

		// Then: the rect starts at the anchor and spans half of the remainder
		assert.Equal(t, Rect{X: 50, Y: 50, Width: 75, Height: 50}, got)
	})

	t.Run("offset parent", func(t *testing.T) {
		// Given: a parent that does not start at the origin
		offset := Rect{X: 100, Y: 20, Width: 200, Height: 80}

		// When: anchoring half way into its extended size
		got := PlaceRelative(offset, 50, 25, 100, 50)

		// Then: the anchor scales origin plus size, the size what is left of the parent size
		assert.Equal(t, Rect{X: 150, Y: 25, Width: 50, Height: 27.5}, got)
	})

	t.Run("zero offset keeps the parent size", func(t *testing.T) {
		got := PlaceRelative(Rect{X: 100, Y: 10, Width: 40, Height: 20}, 0, 0, 100, 50)
		assert.Equal(t, Rect{X: 0, Y: 0, Width: 40, Height: 10}, got)
	})
}

func TestRect_MapPoint(t *testing.T) {
	from := Rect{X: 10, Y: 10, Width: 30, Height: 15}
	to := Rect{X: 0, Y: 0, Width: 300, Height: 300}

	assert.Equal(t, Point{X: 0, Y: 0}, from.MapPoint(Point{X: 10, Y: 10}, to))
	assert.Equal(t, Point{X: 300, Y: 300}, from.MapPoint(Point{X: 40, Y: 25}, to))
	assert.Equal(t, Point{X: 150, Y: 100}, from.MapPoint(Point{X: 25, Y: 15}, to))

	outside := from.MapPoint(Point{X: 5, Y: 12}, to)
	assert.False(t, to.Contains(outside))

	mapped := to.MapRect(Rect{X: 100, Y: 100, Width: 100, Height: 100}, from)
	assert.InDelta(t, 20.0, mapped.X, 1e-9)
	assert.InDelta(t, 15.0, mapped.Y, 1e-9)
	assert.InDelta(t, 10.0, mapped.Width, 1e-9)
	assert.InDelta(t, 5.0, mapped.Height, 1e-9)
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 1, Y: 1, Width: 2, Height: 2}
	assert.True(t, r.Contains(Point{X: 1, Y: 1}))
	assert.True(t, r.Contains(Point{X: 3, Y: 3}))
	assert.False(t, r.Contains(Point{X: 0.99, Y: 2}))
	assert.False(t, r.Contains(Point{X: 2, Y: 3.01}))
}
