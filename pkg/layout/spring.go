package layout

import (
	"math/rand/v2"

	"cogentcore.org/core/math32"

	"github.com/ekalosak/graph3d/pkg/graph"
)

// SpringOptions configures the force-directed layout.
type SpringOptions struct {
	// Scale is the radius of the final layout. Zero means 2*sqrt(n).
	Scale float32
	// Iterations is the number of relaxation steps. Zero means 50.
	Iterations int
	// Seed drives the initial random placement. The same seed and graph
	// produce the same layout, which is what the layout cache keys on.
	// Zero means the default seed 42.
	Seed uint64
}

// Spring is a 3D Fruchterman-Reingold force-directed layout.
// Nodes repel each other, edges pull their endpoints together, and a
// decaying temperature caps per-step movement. The result is centered at
// the origin and scaled so the farthest node sits at the configured radius.
type Spring struct {
	opts SpringOptions
}

// DefaultSpringIterations is the relaxation step count when unset.
const DefaultSpringIterations = 50

// DefaultSpringSeed is the layout seed when unset.
const DefaultSpringSeed = uint64(42)

// NewSpring creates a spring layout provider with the given options.
func NewSpring(opts SpringOptions) *Spring {
	if opts.Iterations == 0 {
		opts.Iterations = DefaultSpringIterations
	}
	if opts.Seed == 0 {
		opts.Seed = DefaultSpringSeed
	}
	return &Spring{opts: opts}
}

// Layout implements [Provider].
func (s *Spring) Layout(g *graph.Graph) (Positions, error) {
	ids := g.NodeIDs()
	n := len(ids)
	pos := make(Positions, n)
	if n == 0 {
		return pos, nil
	}

	scale := s.opts.Scale
	if scale == 0 {
		scale = DefaultScale(n)
	}
	if n == 1 {
		pos[ids[0]] = math32.Vector3{}
		return pos, nil
	}

	rng := rand.New(rand.NewPCG(s.opts.Seed, s.opts.Seed))
	p := make([]math32.Vector3, n)
	for i := range p {
		p[i] = math32.Vec3(
			float32(rng.Float64())-0.5,
			float32(rng.Float64())-0.5,
			float32(rng.Float64())-0.5,
		)
	}

	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}
	type pair struct{ a, b int }
	var springs []pair
	for _, e := range g.Edges() {
		springs = append(springs, pair{index[e.From], index[e.To]})
	}

	// Optimal pairwise distance for a unit-volume layout.
	k := math32.Pow(1/float32(n), 1.0/3.0)
	temp := float32(0.1)
	cool := temp / float32(s.opts.Iterations+1)

	disp := make([]math32.Vector3, n)
	for range s.opts.Iterations {
		for i := range disp {
			disp[i] = math32.Vector3{}
		}
		// Repulsion between all pairs.
		for i := range n {
			for j := i + 1; j < n; j++ {
				delta := p[i].Sub(p[j])
				dist := math32.Max(delta.Length(), 1e-4)
				f := delta.MulScalar(k * k / (dist * dist))
				disp[i] = disp[i].Add(f)
				disp[j] = disp[j].Sub(f)
			}
		}
		// Attraction along edges.
		for _, s := range springs {
			delta := p[s.a].Sub(p[s.b])
			dist := math32.Max(delta.Length(), 1e-4)
			f := delta.MulScalar(dist / k)
			disp[s.a] = disp[s.a].Sub(f)
			disp[s.b] = disp[s.b].Add(f)
		}
		// Apply displacements capped by temperature.
		for i := range n {
			d := disp[i].Length()
			if d > 0 {
				step := math32.Min(d, temp)
				p[i] = p[i].Add(disp[i].MulScalar(step / d))
			}
		}
		temp -= cool
	}

	rescale(p, scale)
	for i, id := range ids {
		pos[id] = p[i]
	}
	return pos, nil
}

// rescale centers points at the origin and scales so the farthest point is
// at radius scale.
func rescale(p []math32.Vector3, scale float32) {
	var center math32.Vector3
	for _, v := range p {
		center = center.Add(v)
	}
	center = center.MulScalar(1 / float32(len(p)))

	var maxLen float32
	for i := range p {
		p[i] = p[i].Sub(center)
		if l := p[i].Length(); l > maxLen {
			maxLen = l
		}
	}
	if maxLen == 0 {
		return
	}
	for i := range p {
		p[i] = p[i].MulScalar(scale / maxLen)
	}
}
