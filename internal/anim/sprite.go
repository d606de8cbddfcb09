// Package anim steps frame counted animations. Everything here advances
// once per rendered frame and assumes FPS frames per second.
package anim

import "github.com/kiryu-dev/xoxo/pkg/utils"

const FPS = 60

// Sprite cycles through Length frames. At speed s it advances one frame
// every FPS/s updates; speed stays within [1, max].
type Sprite struct {
	length  int
	counter int
	current int

	speed        int
	defaultSpeed int
	maxSpeed     int
}

func NewSprite(length, speed, maxSpeed int) *Sprite {
	utils.Assert(length > 0, "sprite length %d must be positive", length)
	utils.Assert(speed >= 1 && speed <= maxSpeed, "sprite speed %d out of [1,%d]", speed, maxSpeed)

	s := &Sprite{
		length:   max(length, 1),
		speed:    speed,
		maxSpeed: max(maxSpeed, 1),
	}
	s.limit()
	s.defaultSpeed = s.speed
	return s
}

func (s *Sprite) Update() {
	s.counter++
	if s.counter < FPS/s.speed {
		return
	}
	s.counter = 0
	s.current = (s.current + 1) % s.length
}

func (s *Sprite) Frame() int {
	return s.current
}

func (s *Sprite) Speed() int {
	return s.speed
}

func (s *Sprite) Faster() {
	s.speed++
	s.limit()
}

func (s *Sprite) Slower() {
	s.speed--
	s.limit()
}

func (s *Sprite) ResetSpeed() {
	s.speed = s.defaultSpeed
}

// Rewind goes back to the first frame without touching the speed.
func (s *Sprite) Rewind() {
	s.current = 0
	s.counter = 0
}

func (s *Sprite) limit() {
	s.speed = min(max(s.speed, 1), s.maxSpeed)
}
