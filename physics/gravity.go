package physics

import (
	"math"

	"github.com/RustWorks/gravity-sim-v2/body"
)

// minSeparationSq floors the squared distance between a pair so a degenerate
// overlap never divides by zero. Pairs are clamped, never skipped.
const minSeparationSq = 1e-6

// ApplyGravity overwrites the acceleration of every physical body with the
// net pull of all other physical bodies. Each unordered pair is evaluated
// once and applied with equal and opposite contributions, so the pass itself
// conserves momentum up to floating-point error.
func ApplyGravity(s *body.Store, g float64) {
	bodies := collectPhysical(s)
	for _, e := range bodies {
		e.b.Acc.X = 0
		e.b.Acc.Y = 0
	}

	for i := 0; i < len(bodies); i++ {
		bi := bodies[i].b
		for j := i + 1; j < len(bodies); j++ {
			bj := bodies[j].b

			d := bj.Pos.Sub(bi.Pos)
			distSq := d.LengthSq()
			if distSq < minSeparationSq {
				distSq = minSeparationSq
			}

			f := g * bi.Mass * bj.Mass / distSq
			// direction comes from the clamped distance, not Normalize:
			// a zero-length delta divided by its own length is NaN, while
			// here it stays a zero contribution
			dir := d.Mult(1 / math.Sqrt(distSq))

			bi.Acc = bi.Acc.Add(dir.Mult(f / bi.Mass))
			bj.Acc = bj.Acc.Add(dir.Mult(-f / bj.Mass))
		}
	}
}

type entry struct {
	h body.Handle
	b *body.Body
}

// collectPhysical snapshots the live physical bodies in slot order so pair
// loops index a stable list even while bodies get marked for removal.
func collectPhysical(s *body.Store) []entry {
	var out []entry
	s.ForEach(func(h body.Handle, b *body.Body) {
		if b.Preview {
			return
		}
		out = append(out, entry{h: h, b: b})
	})
	return out
}
