// Package sim ships two self-contained state-transition simulations, color
// diffusion and the Game of Life. They exist to exercise the animated
// rendering path end to end: each exposes an Init/Reset that seeds the
// graph's attribute records and a Step with the state-function signature
// the visualization loop invokes every period.
package sim

import (
	"fmt"
	"math/rand/v2"

	"cogentcore.org/core/math32"

	"github.com/ekalosak/graph3d/pkg/graph"
)

// DiffusionRate scales the per-tick color transfer along each edge.
const DiffusionRate float32 = 0.05

// restartEps is the per-node "not diffusing" threshold: when the total
// absolute color delta across all edges drops under restartEps*n, the
// field has flattened and the board reseeds.
const restartEps float32 = 0.18

// Diffusion runs color diffusion over a graph. Each tick every edge moves
// its endpoint colors toward each other by [DiffusionRate] and recolors
// itself with their mean; labels track the color sums so the numbers
// visibly converge too.
type Diffusion struct {
	rnd *rand.Rand
	// Labels controls whether Init and Step maintain element labels.
	Labels bool
}

// NewDiffusion creates a diffusion sim seeded for reproducible restarts.
func NewDiffusion(seed uint64) *Diffusion {
	return &Diffusion{rnd: rand.New(rand.NewPCG(seed, seed)), Labels: true}
}

// Init seeds every node with a random dim color and recolors edges with
// their endpoint means. Call before building the scene; Step calls it again
// whenever the field flattens.
func (d *Diffusion) Init(g *graph.Graph) {
	for _, n := range g.Nodes() {
		c := math32.Vec4(
			float32(d.rnd.Float64())*0.8,
			float32(d.rnd.Float64())*0.8,
			float32(d.rnd.Float64())*0.8,
			1,
		)
		n.Attrs.SetColor(c)
		n.Attrs.SetLabel(d.label(c.X + c.Y + c.Z + c.W - 1))
	}
	for _, e := range g.Edges() {
		c0, _ := g.Node(e.From)
		c1, _ := g.Node(e.To)
		mean := c0.Attrs.Color.Add(*c1.Attrs.Color).MulScalar(0.5)
		e.Attrs.SetColor(mean)
		e.Attrs.SetLabel(d.label(mean.X + mean.Y + mean.Z + mean.W))
	}
}

// Step is the state-transition function. The tick and delay arguments are
// unused; diffusion advances a fixed amount per invocation.
func (d *Diffusion) Step(g *graph.Graph, tick int, delay float32) {
	var totalDelta float32
	for _, e := range g.Edges() {
		n0, _ := g.Node(e.From)
		n1, _ := g.Node(e.To)
		c0, c1 := *n0.Attrs.Color, *n1.Attrs.Color
		dc := c0.Sub(c1)
		totalDelta += math32.Abs(dc.X) + math32.Abs(dc.Y) + math32.Abs(dc.Z) + math32.Abs(dc.W)

		c0 = c0.Sub(dc.MulScalar(DiffusionRate))
		c1 = c1.Add(dc.MulScalar(DiffusionRate))
		*n0.Attrs.Color = c0
		*n1.Attrs.Color = c1
		*n0.Attrs.Label = d.label(c0.X + c0.Y + c0.Z + c0.W)
		*n1.Attrs.Label = d.label(c1.X + c1.Y + c1.Z + c1.W)
		*e.Attrs.Color = c0.Add(c1).MulScalar(0.5)
		*e.Attrs.Label = d.label(dc.X + dc.Y + dc.Z + dc.W)
	}
	if totalDelta < restartEps*float32(g.NodeCount()) {
		d.reseed(g)
	}
}

// reseed randomizes node colors in place, preserving the pointers the
// scene builder captured.
func (d *Diffusion) reseed(g *graph.Graph) {
	for _, n := range g.Nodes() {
		c := math32.Vec4(
			float32(d.rnd.Float64())*0.8,
			float32(d.rnd.Float64())*0.8,
			float32(d.rnd.Float64())*0.8,
			1,
		)
		*n.Attrs.Color = c
		*n.Attrs.Label = d.label(c.X + c.Y + c.Z + c.W - 1)
	}
	for _, e := range g.Edges() {
		n0, _ := g.Node(e.From)
		n1, _ := g.Node(e.To)
		mean := n0.Attrs.Color.Add(*n1.Attrs.Color).MulScalar(0.5)
		*e.Attrs.Color = mean
		*e.Attrs.Label = d.label(mean.X + mean.Y + mean.Z + mean.W)
	}
}

func (d *Diffusion) label(v float32) string {
	if !d.Labels {
		return ""
	}
	return fmt.Sprintf("%.3f", v)
}
