package sim

import (
	"github.com/RustWorks/gravity-sim-v2/body"
)

// GraphKind selects which derived scalar a graph samples.
type GraphKind int

const (
	GraphSpeed GraphKind = iota
	GraphVelX
	GraphVelY
)

// graphMaxSamples bounds every series; the oldest samples fall off first.
const graphMaxSamples = 512

// Graph is a bounded time series of one derived scalar for one body. It is
// display-side data, not part of the physics contract.
type Graph struct {
	Kind    GraphKind
	Display bool
	Data    []float64
}

func (g *Graph) push(v float64) {
	g.Data = append(g.Data, v)
	if over := len(g.Data) - graphMaxSamples; over > 0 {
		g.Data = append(g.Data[:0], g.Data[over:]...)
	}
}

func (g *Graph) sample(b *body.Body) float64 {
	switch g.Kind {
	case GraphVelX:
		return b.Vel.X
	case GraphVelY:
		return b.Vel.Y
	default:
		return b.Vel.Length()
	}
}

type graphSet map[body.Handle][]*Graph

// record appends one sample per tracked graph and forgets bodies that died.
func (gs graphSet) record(s *body.Store) {
	for h, graphs := range gs {
		b, ok := s.Get(h)
		if !ok {
			delete(gs, h)
			continue
		}
		for _, g := range graphs {
			g.push(g.sample(b))
		}
	}
}

func (gs graphSet) drop(h body.Handle) {
	delete(gs, h)
}

// Track starts (or resumes) sampling kind for h once per tick and returns
// the series. Tracking a dead handle returns nil.
func (c *Clock) Track(h body.Handle, kind GraphKind) *Graph {
	if !c.store.Alive(h) {
		return nil
	}
	for _, g := range c.graphs[h] {
		if g.Kind == kind {
			g.Display = true
			return g
		}
	}
	g := &Graph{Kind: kind, Display: true}
	c.graphs[h] = append(c.graphs[h], g)
	return g
}

// Untrack stops sampling kind for h.
func (c *Clock) Untrack(h body.Handle, kind GraphKind) {
	graphs := c.graphs[h]
	for i, g := range graphs {
		if g.Kind == kind {
			c.graphs[h] = append(graphs[:i], graphs[i+1:]...)
			break
		}
	}
	if len(c.graphs[h]) == 0 {
		delete(c.graphs, h)
	}
}

// Graphs returns the tracked series for h whose display flag is set.
func (c *Clock) Graphs(h body.Handle) []*Graph {
	var out []*Graph
	for _, g := range c.graphs[h] {
		if g.Display {
			out = append(out, g)
		}
	}
	return out
}
