package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// Frucht returns the Frucht graph: the smallest cubic graph with no
// nontrivial symmetries, 12 nodes and 18 edges. It is the default demo
// graph because its layout is visually interesting at any angle.
func Frucht() *Graph {
	g := New(Undirected, nil)
	for i := range 12 {
		mustNode(g, strconv.Itoa(i))
	}
	// 7-cycle plus the chords that complete the Frucht graph.
	pairs := [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}, {6, 0},
		{0, 7}, {1, 7}, {2, 8}, {3, 9}, {4, 9}, {5, 10},
		{6, 10}, {7, 11}, {8, 11}, {8, 9}, {10, 11},
	}
	for _, p := range pairs {
		mustEdge(g, strconv.Itoa(p[0]), strconv.Itoa(p[1]))
	}
	return g
}

// Grid returns a rows x cols lattice with orthogonal edges. Node IDs are
// coordinate keys produced by [GridID], which the lattice layout provider
// recognizes and converts directly to positions.
func Grid(rows, cols int) *Graph {
	g := New(Undirected, nil)
	for r := range rows {
		for c := range cols {
			mustNode(g, GridID(r, c))
		}
	}
	for r := range rows {
		for c := range cols {
			if r+1 < rows {
				mustEdge(g, GridID(r, c), GridID(r+1, c))
			}
			if c+1 < cols {
				mustEdge(g, GridID(r, c), GridID(r, c+1))
			}
		}
	}
	return g
}

// MooreGrid returns a rows x cols lattice where each cell is also connected
// to its diagonal neighbors (the 8-cell Moore neighborhood). This is the
// board the Game of Life simulation runs on.
func MooreGrid(rows, cols int) *Graph {
	g := Grid(rows, cols)
	for r := range rows {
		for c := range cols {
			if r+1 < rows && c+1 < cols {
				mustEdge(g, GridID(r, c), GridID(r+1, c+1))
			}
			if r+1 < rows && c > 0 {
				mustEdge(g, GridID(r, c), GridID(r+1, c-1))
			}
		}
	}
	return g
}

// WithParallelEdges returns a multigraph copy of g in which every edge is
// replicated n times. Directedness is preserved; the result's kind is the
// multi variant of g's kind. Used to demo parallel-edge fan-out.
func WithParallelEdges(g *Graph, n int) *Graph {
	kind := MultiUndirected
	if g.Kind().IsDirected() {
		kind = MultiDirected
	}
	out := New(kind, nil)
	for _, id := range g.NodeIDs() {
		mustNode(out, id)
	}
	for _, e := range g.Edges() {
		for range n {
			mustEdge(out, e.From, e.To)
		}
	}
	return out
}

// GridID formats integer coordinates as a node ID, e.g. GridID(2, 3) is
// "2,3". The inverse is [GridCoords].
func GridID(coords ...int) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

// GridCoords parses a node ID produced by [GridID] back into coordinates.
// Returns false if the ID is not a comma-separated list of integers.
func GridCoords(id string) ([]int, bool) {
	parts := strings.Split(id, ",")
	coords := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		coords[i] = v
	}
	return coords, true
}

// mustNode and mustEdge are for generators building known-valid topology.
func mustNode(g *Graph, id string) *Node {
	n, err := g.AddNode(id)
	if err != nil {
		panic(fmt.Sprintf("graph generator: %v", err))
	}
	return n
}

func mustEdge(g *Graph, from, to string) *Edge {
	e, err := g.AddEdge(from, to)
	if err != nil {
		panic(fmt.Sprintf("graph generator: %v", err))
	}
	return e
}
