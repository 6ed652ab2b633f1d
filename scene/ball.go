package scene

import "github.com/jakecoffman/cp"

// Ball pairs one physics handle (body + shape) with one visual handle
// (sprite). The pair is created and destroyed together; a ball never
// exists in only one subsystem.
type Ball struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Sprite *Sprite
	Radius float64

	settled bool
}

// Settled reports whether the ball met the removal heuristic. It is a
// one-way latch: once set the ball is culled on the same tick and the
// handle becomes invalid.
func (b *Ball) Settled() bool {
	return b != nil && b.settled
}
