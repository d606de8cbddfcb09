// Package effects runs the celebration particles fired when a round ends.
package effects

import (
	"math"
	"math/rand/v2"

	"github.com/ByteArena/box2d"
	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/kiryu-dev/xoxo/internal/geom"
)

const (
	velocityIterations = 6
	positionIterations = 2

	// particles collide with the world but never with each other
	particleCategory = 0x0002
	particleMask     = 0xffff ^ particleCategory
)

type Particle struct {
	Pos   geom.Point
	Vel   geom.Point
	Color domain.Color
	Life  float64 // seconds left
	TTL   float64 // seconds at spawn
}

// Fade is 1 for a fresh particle and 0 for one about to expire.
func (p Particle) Fade() float64 {
	if p.TTL <= 0 {
		return 0
	}
	return p.Life / p.TTL
}

type Settings struct {
	Count    int     // particles per burst
	MinSpeed float64 // units per second
	MaxSpeed float64
	Gravity  float64 // units per second squared, positive is down
	Drag     float64 // linear damping of every body
	Radius   float64
	Density  float64
	Friction float64
	TTL      float64
	Limit    int // bodies in the pool; the oldest particles are recycled past this
}

func DefaultSettings() Settings {
	return Settings{
		Count:    24,
		MinSpeed: 4,
		MaxSpeed: 14,
		Gravity:  9,
		Drag:     0.8,
		Radius:   0.2,
		Density:  0.5,
		Friction: 0.1,
		TTL:      1.4,
		Limit:    512,
	}
}

type slot struct {
	body  *box2d.B2Body
	color domain.Color
	life  float64
	ttl   float64
}

// System keeps a pool of box2d bodies, woken by Burst and put back to
// sleep when they expire or on Clear. It satisfies domain.Effects and
// belongs to the loop that steps it.
type System struct {
	settings Settings
	rng      *rand.Rand
	world    *box2d.B2World
	slots    []slot
	next     int // oldest slot once the pool is full
	out      []Particle
}

func New(settings Settings, seed uint64) *System {
	world := box2d.MakeB2World(box2d.MakeB2Vec2(0, settings.Gravity))
	return &System{
		settings: settings,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		world:    &world,
		slots:    make([]slot, 0, settings.Count),
	}
}

func (s *System) newBody() *box2d.B2Body {
	def := box2d.MakeB2BodyDef()
	def.Type = box2d.B2BodyType.B2_dynamicBody
	def.Active = false
	def.AllowSleep = false
	def.FixedRotation = true
	def.LinearDamping = s.settings.Drag
	body := s.world.CreateBody(&def)

	shape := box2d.MakeB2CircleShape()
	shape.M_radius = s.settings.Radius
	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = s.settings.Density
	fd.Friction = s.settings.Friction
	fd.Filter.CategoryBits = particleCategory
	fd.Filter.MaskBits = particleMask
	body.CreateFixtureFromDef(&fd)
	return body
}

// take hands out a fresh slot, or the oldest one once Limit bodies exist.
func (s *System) take() *slot {
	if s.settings.Limit <= 0 || len(s.slots) < s.settings.Limit {
		s.slots = append(s.slots, slot{body: s.newBody()})
		return &s.slots[len(s.slots)-1]
	}
	sl := &s.slots[s.next]
	s.next = (s.next + 1) % len(s.slots)
	return sl
}

// Burst throws a ring of particles out of at.
func (s *System) Burst(at geom.Point, color domain.Color) {
	n := s.settings.Count
	for i := 0; i < n; i++ {
		angle := 2*math.Pi*float64(i)/float64(n) + s.rng.Float64()*0.3
		speed := s.settings.MinSpeed + s.rng.Float64()*(s.settings.MaxSpeed-s.settings.MinSpeed)
		ttl := s.settings.TTL * (0.6 + 0.4*s.rng.Float64())

		sl := s.take()
		sl.color, sl.life, sl.ttl = color, ttl, ttl
		body := sl.body
		body.SetTransform(box2d.MakeB2Vec2(at.X, at.Y), 0)
		body.SetLinearVelocity(box2d.MakeB2Vec2(0, 0))
		body.SetActive(true)
		impulse := speed * body.GetMass()
		body.ApplyLinearImpulse(box2d.MakeB2Vec2(math.Cos(angle)*impulse, math.Sin(angle)*impulse), body.GetWorldCenter(), true)
	}
}

// Clear puts every body back to sleep at the origin.
func (s *System) Clear() {
	for i := range s.slots {
		s.retire(&s.slots[i])
	}
}

func (s *System) retire(sl *slot) {
	sl.life = 0
	sl.body.SetActive(false)
	sl.body.SetTransform(box2d.MakeB2Vec2(0, 0), 0)
	sl.body.SetLinearVelocity(box2d.MakeB2Vec2(0, 0))
}

// Step advances the world by dt seconds and retires expired particles.
func (s *System) Step(dt float64) {
	if dt <= 0 {
		return
	}
	s.world.Step(dt, velocityIterations, positionIterations)
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.body.IsActive() {
			continue
		}
		sl.life -= dt
		if sl.life <= 0 {
			s.retire(sl)
		}
	}
}

// Particles lists the live particles, oldest first. The slice is reused by
// the next call.
func (s *System) Particles() []Particle {
	s.out = s.out[:0]
	for i := range s.slots {
		sl := &s.slots[(s.next+i)%len(s.slots)]
		if !sl.body.IsActive() {
			continue
		}
		pos, vel := sl.body.GetPosition(), sl.body.GetLinearVelocity()
		s.out = append(s.out, Particle{
			Pos:   geom.Point{X: pos.X, Y: pos.Y},
			Vel:   geom.Point{X: vel.X, Y: vel.Y},
			Color: sl.color,
			Life:  sl.life,
			TTL:   sl.ttl,
		})
	}
	return s.out
}

func (s *System) Len() int {
	n := 0
	for i := range s.slots {
		if s.slots[i].body.IsActive() {
			n++
		}
	}
	return n
}

var _ domain.Effects = (*System)(nil)
