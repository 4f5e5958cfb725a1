package physics

import "github.com/RustWorks/gravity-sim-v2/body"

// The integrator is split in two so the pipeline controls exactly which
// acceleration sample each half consumes: positions advance on the sample
// that already updated the velocity last iteration, then velocities pick up
// the freshly recomputed sample. Per body the combined update is
//
//	vel += acc*dt
//	pos += vel*dt + 0.5*acc*dt*dt
//
// with the position term using the already-updated velocity.

// IntegratePositions advances every physical body's position by one step of
// dt using its current velocity and last acceleration sample.
func IntegratePositions(s *body.Store, dt float64) {
	s.ForEach(func(_ body.Handle, b *body.Body) {
		if b.Preview {
			return
		}
		b.Pos = b.Pos.Add(b.Vel.Mult(dt)).Add(b.Acc.Mult(0.5 * dt * dt))
	})
}

// IntegrateVelocities advances every physical body's velocity by one step of
// dt using its current acceleration.
func IntegrateVelocities(s *body.Store, dt float64) {
	s.ForEach(func(_ body.Handle, b *body.Body) {
		if b.Preview {
			return
		}
		b.Vel = b.Vel.Add(b.Acc.Mult(dt))
	})
}
