package body

import "github.com/jakecoffman/cp"

// Body is one simulated particle. Mass and Radius are strictly positive for
// physical bodies. Preview bodies render the drag-to-create affordance only;
// the gravity and collision passes skip them and they never merge.
type Body struct {
	Pos     cp.Vector
	Vel     cp.Vector
	Acc     cp.Vector
	Mass    float64
	Radius  float64
	Preview bool
	Trail   Trail
}

func (b Body) clone() Body {
	out := b
	out.Trail = b.Trail.clone()
	return out
}
