package sim

import (
	"github.com/jakecoffman/cp"

	"github.com/RustWorks/gravity-sim-v2/body"
	"github.com/RustWorks/gravity-sim-v2/physics"
)

// Clock owns the committed body arena and drives the fixed pipeline. It has
// exactly two run modes, paused and running; external ticks are physics
// no-ops while paused. The clock is single-threaded: callers must not touch
// it from more than one goroutine.
type Clock struct {
	store   *body.Store
	tuning  Tuning
	paused  bool
	preview body.Handle
	events  EventQueue
	graphs  graphSet
}

// NewClock creates a running clock with the given tuning.
func NewClock(t Tuning) *Clock {
	return &Clock{
		store:  body.NewStore(),
		tuning: t.normalized(),
		graphs: graphSet{},
	}
}

// SetTuning replaces the engine parameters. The change takes effect on the
// next tick.
func (c *Clock) SetTuning(t Tuning) {
	c.tuning = t.normalized()
}

// Tuning returns the current engine parameters.
func (c *Clock) Tuning() Tuning {
	return c.tuning
}

// Paused reports the run mode.
func (c *Clock) Paused() bool {
	return c.paused
}

// SetPaused switches between the two run modes.
func (c *Clock) SetPaused(p bool) {
	c.paused = p
}

// TogglePaused flips the run mode and returns the new paused state.
func (c *Clock) TogglePaused() bool {
	c.paused = !c.paused
	return c.paused
}

// Tick advances the committed world by one external frame: MainIterations
// pipeline iterations, then one sample for the tracked scalar series.
// While paused it does nothing.
func (c *Clock) Tick() {
	if c.paused {
		return
	}
	t := c.tuning
	for i := 0; i < t.MainIterations; i++ {
		step(c.store, t, &c.events)
	}
	c.graphs.record(c.store)
}

// step is one pipeline iteration, shared verbatim by the committed world and
// preview runs. Order is fixed: merge collisions (removals deferred), advance
// positions on the previous acceleration sample, recompute gravity, advance
// velocities on the fresh sample, record trails, then reap the deferred
// removals.
func step(s *body.Store, t Tuning, events *EventQueue) {
	for _, m := range physics.ResolveCollisions(s) {
		events.Push(Event{Kind: EventMerged, Handle: m.Survivor, Absorbed: m.Absorbed})
	}
	physics.IntegratePositions(s, t.Dt)
	physics.ApplyGravity(s, t.G)
	physics.IntegrateVelocities(s, t.Dt)
	recordTrails(s)
	s.Reap()
}

func recordTrails(s *body.Store) {
	s.ForEach(func(_ body.Handle, b *body.Body) {
		if b.Preview {
			return
		}
		b.Trail.Push(b.Pos)
	})
}

// Spawn commits a drag gesture as a new physical body at start, with
// velocity (start − end) * CreationVelocityScale. Non-positive mass or
// radius is clamped to the smallest legal value rather than stored.
func (c *Clock) Spawn(start, end cp.Vector, mass, radius float64) body.Handle {
	if mass <= 0 {
		mass = minMass
	}
	if radius <= 0 {
		radius = minRadius
	}
	h := c.store.Insert(body.Body{
		Pos:    start,
		Vel:    start.Sub(end).Mult(CreationVelocityScale),
		Mass:   mass,
		Radius: radius,
		Trail:  body.Trail{MaxLen: c.tuning.TrailMaxLen},
	})
	c.events.Push(Event{Kind: EventSpawned, Handle: h})
	return h
}

// SetPreview replaces the drag-to-create affordance: the previous preview
// body, if any, is removed wholesale and a fresh one inserted, so at most
// one preview body is ever alive.
func (c *Clock) SetPreview(start, end cp.Vector, radius float64) body.Handle {
	c.ClearPreview()
	c.preview = c.store.Insert(body.Body{
		Pos:     start,
		Vel:     start.Sub(end).Mult(CreationVelocityScale),
		Radius:  radius,
		Preview: true,
	})
	return c.preview
}

// ClearPreview removes the current preview body, if any.
func (c *Clock) ClearPreview() {
	if c.preview.Valid() {
		c.store.Remove(c.preview)
		c.preview = 0
	}
}

// Preview runs the pipeline PreviewIterations times over a disposable copy
// of the committed world plus the hypothetical body described by the drag
// gesture, and returns that body's position after each iteration. The
// committed arena is never touched; the scratch run shares no mutable state
// with it. The trajectory ends early if the hypothetical body is absorbed.
func (c *Clock) Preview(start, end cp.Vector, mass, radius float64) []cp.Vector {
	t := c.tuning
	if t.PreviewIterations <= 0 {
		return nil
	}
	if mass <= 0 {
		mass = minMass
	}
	if radius <= 0 {
		radius = minRadius
	}

	scratch := c.store.Clone()
	if c.preview.Valid() {
		// the on-screen affordance is not part of the hypothetical world
		scratch.Remove(c.preview)
	}
	h := scratch.Insert(body.Body{
		Pos:    start,
		Vel:    start.Sub(end).Mult(CreationVelocityScale),
		Mass:   mass,
		Radius: radius,
	})

	path := make([]cp.Vector, 0, t.PreviewIterations)
	for i := 0; i < t.PreviewIterations; i++ {
		step(scratch, t, nil)
		b, ok := scratch.Get(h)
		if !ok {
			break
		}
		path = append(path, b.Pos)
	}
	return path
}

// Snapshot is the read-only per-body view handed to the rendering and UI
// collaborator.
type Snapshot struct {
	Pos     cp.Vector
	Vel     cp.Vector
	Mass    float64
	Radius  float64
	Preview bool
}

// Each visits a snapshot of every live body in stable order.
func (c *Clock) Each(fn func(body.Handle, Snapshot)) {
	c.store.ForEach(func(h body.Handle, b *body.Body) {
		fn(h, Snapshot{
			Pos:     b.Pos,
			Vel:     b.Vel,
			Mass:    b.Mass,
			Radius:  b.Radius,
			Preview: b.Preview,
		})
	})
}

// Len returns the number of live bodies, previews included.
func (c *Clock) Len() int {
	return c.store.Len()
}

// Alive reports whether h still refers to a live body, so the UI can drop
// selections of bodies consumed by a merge.
func (c *Clock) Alive(h body.Handle) bool {
	return c.store.Alive(h)
}

// Trail returns a copy of the body's recorded positions, oldest first.
func (c *Clock) Trail(h body.Handle) []cp.Vector {
	b, ok := c.store.Get(h)
	if !ok {
		return nil
	}
	return append([]cp.Vector(nil), b.Trail.Points...)
}

// Remove deletes a body by explicit selection. It reports whether a body
// was removed.
func (c *Clock) Remove(h body.Handle) bool {
	if !c.store.Remove(h) {
		return false
	}
	if h == c.preview {
		c.preview = 0
	}
	c.graphs.drop(h)
	c.events.Push(Event{Kind: EventRemoved, Handle: h})
	return true
}

// SetMass updates a selected body's mass. Non-positive values are rejected.
func (c *Clock) SetMass(h body.Handle, mass float64) bool {
	b, ok := c.store.Get(h)
	if !ok || mass <= 0 {
		return false
	}
	b.Mass = mass
	return true
}

// SetRadius updates a selected body's radius. Non-positive values are
// rejected.
func (c *Clock) SetRadius(h body.Handle, radius float64) bool {
	b, ok := c.store.Get(h)
	if !ok || radius <= 0 {
		return false
	}
	b.Radius = radius
	return true
}

// SetTrailLen updates a selected body's trail capacity. The trail converges
// to the new bound on its next append.
func (c *Clock) SetTrailLen(h body.Handle, n int) bool {
	b, ok := c.store.Get(h)
	if !ok || n < 0 {
		return false
	}
	b.Trail.MaxLen = n
	return true
}

// Insert adds a pre-built body, clamping non-positive mass or radius for
// physical bodies. Scenario loading goes through here.
func (c *Clock) Insert(b body.Body) body.Handle {
	if !b.Preview {
		if b.Mass <= 0 {
			b.Mass = minMass
		}
		if b.Radius <= 0 {
			b.Radius = minRadius
		}
		if b.Trail.MaxLen == 0 {
			b.Trail.MaxLen = c.tuning.TrailMaxLen
		}
	}
	return c.store.Insert(b)
}

// Events returns the lifecycle event queue.
func (c *Clock) Events() *EventQueue {
	return &c.events
}
