package graph

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownEndpoint is returned by [Graph.AddEdge] when either endpoint
	// does not exist in the graph.
	ErrUnknownEndpoint = errors.New("unknown edge endpoint")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] on non-multi graphs
	// when an edge between the same endpoints already exists. Multigraphs
	// accept parallel edges and assign them increasing keys instead.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are the
	// same node. The renderer has no self-loop primitive.
	ErrSelfLoop = errors.New("self loops are not supported")
)

// Kind classifies a graph by directedness and by whether parallel edges
// between the same pair of nodes are allowed. The kind determines which
// edge primitive the scene builder loads.
type Kind int

const (
	// Undirected is a simple graph: at most one edge per node pair,
	// (a, b) and (b, a) are the same edge.
	Undirected Kind = iota
	// Directed is a simple directed graph: (a, b) and (b, a) are distinct.
	Directed
	// MultiUndirected allows parallel undirected edges, distinguished by Key.
	MultiUndirected
	// MultiDirected allows parallel directed edges, distinguished by Key.
	MultiDirected
)

// IsDirected reports whether edges of this kind have a direction.
func (k Kind) IsDirected() bool { return k == Directed || k == MultiDirected }

// IsMulti reports whether this kind allows parallel edges.
func (k Kind) IsMulti() bool { return k == MultiUndirected || k == MultiDirected }

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Undirected:
		return "undirected"
	case Directed:
		return "directed"
	case MultiUndirected:
		return "multi-undirected"
	case MultiDirected:
		return "multi-directed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind is the inverse of [Kind.String].
func ParseKind(s string) (Kind, error) {
	switch s {
	case "undirected":
		return Undirected, nil
	case "directed":
		return Directed, nil
	case "multi-undirected":
		return MultiUndirected, nil
	case "multi-directed":
		return MultiDirected, nil
	default:
		return 0, fmt.Errorf("unknown graph kind %q", s)
	}
}

// Node is a vertex together with its visual attribute record.
// Nodes are created by [Graph.AddNode]; the returned pointer refers to the
// node held by the graph, so attribute mutations are visible to the renderer
// on the next sync.
type Node struct {
	ID    string
	Attrs NodeAttrs
}

// Edge is a connection between two nodes together with its visual attribute
// record. Key distinguishes parallel edges in multigraphs and is always 0
// otherwise. For undirected graphs From/To record insertion order but carry
// no semantic direction.
type Edge struct {
	From  string
	To    string
	Key   int
	Attrs EdgeAttrs
}

// Graph is a mutable graph with attribute sidecars on every element.
//
// The zero value is not usable; use [New]. Graph is not safe for concurrent
// use, which matches the renderer's single-threaded cooperative model: the
// state-transition function is the single writer and the scene builder the
// single reader, never at the same time.
type Graph struct {
	kind      Kind
	meta      Metadata
	nodes     map[string]*Node
	nodeOrder []string
	edges     []*Edge
	adjacency map[string][]string // neighbor IDs; both directions for undirected
	parallel  map[[2]string]int   // endpoint pair -> next parallel key
}

// New creates an empty graph of the given kind with optional graph-level
// metadata. The metadata parameter can be nil.
func New(kind Kind, meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		kind:      kind,
		meta:      meta,
		nodes:     make(map[string]*Node),
		adjacency: make(map[string][]string),
		parallel:  make(map[[2]string]int),
	}
}

// Kind returns the graph's kind.
func (g *Graph) Kind() Kind { return g.kind }

// Meta returns the graph-level metadata map. It is never nil and may be
// freely read and written by simulations.
func (g *Graph) Meta() Metadata { return g.meta }

// AddNode adds a node with the given ID and returns it.
// Returns ErrInvalidNodeID for an empty ID or ErrDuplicateNodeID if the ID
// is already present.
func (g *Graph) AddNode(id string) (*Node, error) {
	if id == "" {
		return nil, ErrInvalidNodeID
	}
	if _, exists := g.nodes[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateNodeID, id)
	}
	n := &Node{ID: id, Attrs: NodeAttrs{Val: Metadata{}}}
	g.nodes[id] = n
	g.nodeOrder = append(g.nodeOrder, id)
	return n, nil
}

// AddEdge adds an edge between two existing nodes and returns it.
// On multigraphs, repeated calls with the same endpoints create parallel
// edges with increasing keys. On simple graphs a repeated pair returns
// ErrDuplicateEdge; for undirected kinds the pair is considered unordered.
func (g *Graph) AddEdge(from, to string) (*Edge, error) {
	if _, ok := g.nodes[from]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, from)
	}
	if _, ok := g.nodes[to]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, to)
	}
	if from == to {
		return nil, fmt.Errorf("%w: %s", ErrSelfLoop, from)
	}

	pair := g.pairKey(from, to)
	if !g.kind.IsMulti() {
		if g.parallel[pair] > 0 {
			return nil, fmt.Errorf("%w: %s-%s", ErrDuplicateEdge, from, to)
		}
	}
	key := g.parallel[pair]
	g.parallel[pair] = key + 1

	e := &Edge{From: from, To: to, Key: key, Attrs: EdgeAttrs{Val: Metadata{}}}
	g.edges = append(g.edges, e)
	g.adjacency[from] = append(g.adjacency[from], to)
	if !g.kind.IsDirected() {
		g.adjacency[to] = append(g.adjacency[to], from)
	}
	return e, nil
}

// pairKey normalizes an endpoint pair for parallel-edge bookkeeping.
// Undirected kinds treat (a, b) and (b, a) as the same pair.
func (g *Graph) pairKey(from, to string) [2]string {
	if !g.kind.IsDirected() && to < from {
		return [2]string{to, from}
	}
	return [2]string{from, to}
}

// Node returns the node with the given ID and true, or nil and false.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The slice is freshly
// allocated but the node pointers refer to graph state.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodeOrder))
	for i, id := range g.nodeOrder {
		out[i] = g.nodes[id]
	}
	return out
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.nodeOrder) }

// Edges returns all edges in insertion order. The slice is freshly
// allocated but the edge pointers refer to graph state.
func (g *Graph) Edges() []*Edge { return slices.Clone(g.edges) }

// Neighbors returns the IDs adjacent to the node. For directed kinds these
// are the out-neighbors only; for undirected kinds, all adjacent nodes.
// The returned slice is a read-only view.
func (g *Graph) Neighbors(id string) []string { return g.adjacency[id] }

// Degree returns the number of adjacent nodes counted by Neighbors.
func (g *Graph) Degree(id string) int { return len(g.adjacency[id]) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, counting parallels individually.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// ParallelCount returns the number of parallel edges between two endpoints,
// using the same unordered-pair rules as AddEdge.
func (g *Graph) ParallelCount(from, to string) int {
	return g.parallel[g.pairKey(from, to)]
}

// MaxParallel returns the largest number of parallel edges between any pair
// of endpoints, or 1 for an empty graph. The geometry solver uses this to
// size the fan-out arc shared by a bundle of parallel edges.
func (g *Graph) MaxParallel() int {
	maxK := 1
	for _, k := range g.parallel {
		if k > maxK {
			maxK = k
		}
	}
	return maxK
}
