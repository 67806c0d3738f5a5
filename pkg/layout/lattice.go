package layout

import (
	"cogentcore.org/core/math32"

	"github.com/ekalosak/graph3d/pkg/errors"
	"github.com/ekalosak/graph3d/pkg/graph"
)

// Lattice derives positions deterministically from coordinate-shaped node
// IDs (see [graph.GridID]). A "2,3" node lands at (2, 3, 0); IDs with three
// or more components use the first three. This is the policy of choice for
// regular grids, where a force layout would jitter an already-perfect
// arrangement.
type Lattice struct{}

// Layout implements [Provider]. It fails if any node ID does not parse as
// coordinates, since a partial lattice would silently overlap nodes at the
// origin.
func (Lattice) Layout(g *graph.Graph) (Positions, error) {
	pos := make(Positions, g.NodeCount())
	for _, id := range g.NodeIDs() {
		coords, ok := graph.GridCoords(id)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidPosition,
				"node %q is not a coordinate key; lattice layout needs grid-shaped IDs", id)
		}
		var v math32.Vector3
		switch len(coords) {
		case 1:
			v = math32.Vec3(float32(coords[0]), 0, 0)
		case 2:
			v = math32.Vec3(float32(coords[0]), float32(coords[1]), 0)
		default:
			v = math32.Vec3(float32(coords[0]), float32(coords[1]), float32(coords[2]))
		}
		pos[id] = v
	}
	return pos, nil
}
