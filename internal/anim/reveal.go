package anim

// Reveal uncovers count items one after another: the first straight away,
// then one more every jump frames. Once all are out it holds.
type Reveal struct {
	count int
	jump  int
	frame int
	shown int
}

func NewReveal(jump int) *Reveal {
	return &Reveal{jump: max(jump, 1)}
}

// Restart begins a new sequence of count items.
func (r *Reveal) Restart(count int) {
	r.count = count
	r.frame = 0
	r.shown = min(1, count)
}

func (r *Reveal) Step() {
	if r.Done() {
		return
	}
	r.frame++
	if r.frame%r.jump == 0 {
		r.shown++
	}
}

// Visible is how many of the items are out.
func (r *Reveal) Visible() int {
	return r.shown
}

func (r *Reveal) Done() bool {
	return r.shown >= r.count
}
