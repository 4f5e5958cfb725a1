package physics

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/RustWorks/gravity-sim-v2/body"
)

func TestIntegratePositions(t *testing.T) {
	cases := []struct {
		name string
		vel  cp.Vector
		acc  cp.Vector
		dt   float64
		want cp.Vector
	}{
		{"velocity_only", cp.Vector{X: 2, Y: -1}, cp.Vector{}, 1, cp.Vector{X: 2, Y: -1}},
		{"quadratic_term", cp.Vector{X: 1}, cp.Vector{X: 2}, 0.5, cp.Vector{X: 0.75}},
		{"both_axes", cp.Vector{X: 1, Y: 1}, cp.Vector{X: 4, Y: -4}, 2, cp.Vector{X: 10, Y: -6}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := body.NewStore()
			h := s.Insert(body.Body{Vel: c.vel, Acc: c.acc, Mass: 1, Radius: 1})

			IntegratePositions(s, c.dt)

			b, _ := s.Get(h)
			if !approx(b.Pos.X, c.want.X) || !approx(b.Pos.Y, c.want.Y) {
				t.Fatalf("expected position %v, got %v", c.want, b.Pos)
			}
			if b.Vel != c.vel {
				t.Fatalf("position half must not touch velocity: %v", b.Vel)
			}
		})
	}
}

func TestIntegrateVelocities(t *testing.T) {
	s := body.NewStore()
	h := s.Insert(body.Body{Vel: cp.Vector{X: 1, Y: 2}, Acc: cp.Vector{X: -3, Y: 0.5}, Mass: 1, Radius: 1})

	IntegrateVelocities(s, 2)

	b, _ := s.Get(h)
	if !approx(b.Vel.X, -5) || !approx(b.Vel.Y, 3) {
		t.Fatalf("expected velocity (-5, 3), got %v", b.Vel)
	}
}

func TestIntegratorSkipsPreviewBodies(t *testing.T) {
	s := body.NewStore()
	h := s.Insert(body.Body{
		Pos:     cp.Vector{X: 7, Y: 7},
		Vel:     cp.Vector{X: 1, Y: 1},
		Acc:     cp.Vector{X: 1, Y: 1},
		Radius:  1,
		Preview: true,
	})

	IntegratePositions(s, 1)
	IntegrateVelocities(s, 1)

	b, _ := s.Get(h)
	if b.Pos.X != 7 || b.Vel.X != 1 {
		t.Fatalf("preview body must not integrate, got pos=%v vel=%v", b.Pos, b.Vel)
	}
}
