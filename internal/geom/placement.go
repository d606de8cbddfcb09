package geom

import (
	"github.com/kiryu-dev/xoxo/pkg/utils"
)

// PlaceRelativeCenter returns a rectangle sharing parent's center and sized
// to the given percentages of parent's width and height. Percentages must be
// in (0, 100]; out of range values are only caught in debug builds.
func PlaceRelativeCenter(parent Rect, widthPercent, heightPercent float64) Rect {
	utils.Assert(widthPercent > 0 && widthPercent <= 100, "width percent %v out of (0,100]", widthPercent)
	utils.Assert(heightPercent > 0 && heightPercent <= 100, "height percent %v out of (0,100]", heightPercent)

	width := parent.Width * widthPercent / 100
	height := parent.Height * heightPercent / 100
	return Rect{
		X:      parent.X + (parent.Width-width)/2,
		Y:      parent.Y + (parent.Height-height)/2,
		Width:  width,
		Height: height,
	}
}

// PlaceRelative anchors a rectangle at xOffsetPercent/yOffsetPercent of the
// parent's extended width and height (origin plus size), then gives it
// widthRemainPercent/heightRemainPercent of the parent size left over past
// that anchor. For a parent at the origin this is the space between the
// anchor and the far edge.
func PlaceRelative(parent Rect, xOffsetPercent, yOffsetPercent, widthRemainPercent, heightRemainPercent float64) Rect {
	utils.Assert(xOffsetPercent >= 0 && xOffsetPercent <= 100, "x offset percent %v out of [0,100]", xOffsetPercent)
	utils.Assert(yOffsetPercent >= 0 && yOffsetPercent <= 100, "y offset percent %v out of [0,100]", yOffsetPercent)
	utils.Assert(widthRemainPercent > 0 && widthRemainPercent <= 100,
		"width remain percent %v out of (0,100]", widthRemainPercent)
	utils.Assert(heightRemainPercent > 0 && heightRemainPercent <= 100,
		"height remain percent %v out of (0,100]", heightRemainPercent)

	x := (parent.X + parent.Width) * xOffsetPercent / 100
	y := (parent.Y + parent.Height) * yOffsetPercent / 100
	return Rect{
		X:      x,
		Y:      y,
		Width:  (parent.Width - x) * widthRemainPercent / 100,
		Height: (parent.Height - y) * heightRemainPercent / 100,
	}
}
