package body

import "github.com/jakecoffman/cp"

// Trail is a bounded FIFO of past positions, oldest first. MaxLen may be
// lowered at any time; the trail converges to the new bound on the next push.
type Trail struct {
	Points []cp.Vector
	MaxLen int
}

// Push appends p, evicting the oldest points until the trail fits MaxLen.
func (t *Trail) Push(p cp.Vector) {
	if t == nil {
		return
	}
	if t.MaxLen <= 0 {
		t.Points = t.Points[:0]
		return
	}
	t.Points = append(t.Points, p)
	if over := len(t.Points) - t.MaxLen; over > 0 {
		t.Points = append(t.Points[:0], t.Points[over:]...)
	}
}

// Len returns the number of recorded positions.
func (t *Trail) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Points)
}

func (t Trail) clone() Trail {
	out := t
	out.Points = append([]cp.Vector(nil), t.Points...)
	return out
}
