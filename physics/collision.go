package physics

import (
	"math"

	"github.com/RustWorks/gravity-sim-v2/body"
)

// Merge records one inelastic merge resolved during a collision pass.
type Merge struct {
	Survivor body.Handle
	Absorbed body.Handle
}

// ResolveCollisions merges every overlapping pair of physical bodies.
// A pair collides when the center distance is at most the sum of the radii.
// The body in the lower slot keeps its handle and receives the merged state;
// the other is marked for deferred removal. Once absorbed, a body is out of
// pair evaluation for the rest of the pass, so each body is consumed at most
// once per pass and anything still overlapping it resolves next iteration.
func ResolveCollisions(s *body.Store) []Merge {
	bodies := collectPhysical(s)
	absorbed := make([]bool, len(bodies))

	var merges []Merge
	for i := 0; i < len(bodies); i++ {
		if absorbed[i] {
			continue
		}
		bi := bodies[i].b
		for j := i + 1; j < len(bodies); j++ {
			if absorbed[j] {
				continue
			}
			bj := bodies[j].b

			if bi.Pos.Distance(bj.Pos) > bi.Radius+bj.Radius {
				continue
			}

			mass := bi.Mass + bj.Mass
			bi.Vel = bi.Vel.Mult(bi.Mass).Add(bj.Vel.Mult(bj.Mass)).Mult(1 / mass)
			bi.Pos = bi.Pos.Mult(bi.Mass).Add(bj.Pos.Mult(bj.Mass)).Mult(1 / mass)
			bi.Radius = math.Sqrt(bi.Radius*bi.Radius + bj.Radius*bj.Radius)
			bi.Mass = mass

			absorbed[j] = true
			s.MarkRemove(bodies[j].h)
			merges = append(merges, Merge{Survivor: bodies[i].h, Absorbed: bodies[j].h})
		}
	}
	return merges
}
