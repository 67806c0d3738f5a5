// Package layout produces a 3D position for every node of a graph.
//
// The renderer needs every node positioned before the scene is built. This
// package provides the position policies:
//
//   - [Passthrough]: use caller-supplied positions unmodified, validating
//     that every node has one.
//   - [Spring]: seeded 3D force-directed layout, the default when positions
//     are missing. Output is scaled by 2*sqrt(n) so small graphs stay dense
//     and large graphs spread out.
//   - [Lattice]: derive positions directly from coordinate-shaped node IDs,
//     for regular grids where a force layout would only add noise.
//   - [Graphviz]: neato spring layout computed by the graphviz library,
//     lifted onto the z=0 plane.
//
// [Resolve] applies the standard policy order used by the viewer.
package layout

import (
	"fmt"

	"cogentcore.org/core/math32"

	"github.com/ekalosak/graph3d/pkg/errors"
	"github.com/ekalosak/graph3d/pkg/graph"
)

// Positions maps node IDs to scene-space positions.
type Positions map[string]math32.Vector3

// Provider computes a position for every node of a graph.
type Provider interface {
	// Layout returns a complete position map for g. Implementations must
	// return a position for every node or an error.
	Layout(g *graph.Graph) (Positions, error)
}

// FromSlices converts raw per-node coordinate slices into Positions,
// rejecting any entry that is not exactly 3-dimensional. This is the
// validation gate for positions read from files or supplied by callers as
// untyped data.
func FromSlices(raw map[string][]float32) (Positions, error) {
	pos := make(Positions, len(raw))
	for id, p := range raw {
		if len(p) != 3 {
			return nil, errors.New(errors.ErrCodeInvalidPosition,
				"position for node %q has %d components, want 3", id, len(p))
		}
		pos[id] = math32.Vec3(p[0], p[1], p[2])
	}
	return pos, nil
}

// Passthrough is the identity provider: it collects the positions already
// set on the graph's node attributes and fails if any node lacks one.
type Passthrough struct{}

// Layout implements [Provider].
func (Passthrough) Layout(g *graph.Graph) (Positions, error) {
	pos := make(Positions, g.NodeCount())
	for _, n := range g.Nodes() {
		if n.Attrs.Pos == nil {
			return nil, errors.New(errors.ErrCodeInvalidPosition,
				"node %q has no position", n.ID)
		}
		pos[n.ID] = *n.Attrs.Pos
	}
	return pos, nil
}

// Resolve fills in positions for g using the standard policy order:
// if every node already carries a position, pass them through unmodified;
// otherwise run the given provider (or [Spring] defaults when nil) over the
// whole graph. Nodes that carried a position keep it even when the provider
// runs, matching the attribute priority rules.
func Resolve(g *graph.Graph, p Provider) (Positions, error) {
	all := true
	for _, n := range g.Nodes() {
		if n.Attrs.Pos == nil {
			all = false
			break
		}
	}
	if all {
		return Passthrough{}.Layout(g)
	}

	if p == nil {
		p = NewSpring(SpringOptions{})
	}
	pos, err := p.Layout(g)
	if err != nil {
		return nil, err
	}
	for _, n := range g.Nodes() {
		if _, ok := pos[n.ID]; !ok {
			return nil, fmt.Errorf("layout provider returned no position for node %q", n.ID)
		}
		if n.Attrs.Pos != nil {
			pos[n.ID] = *n.Attrs.Pos
		}
	}
	return pos, nil
}

// DefaultScale returns the layout scale used when the caller does not
// override it: 2*sqrt(n). Graphs of different sizes stay visually
// proportioned, denser for few nodes and more spread for many.
func DefaultScale(nodeCount int) float32 {
	return 2 * math32.Sqrt(float32(nodeCount))
}
