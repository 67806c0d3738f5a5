package graph

import (
	"errors"
	"testing"

	"cogentcore.org/core/math32"
)

func TestAddNode(t *testing.T) {
	g := New(Undirected, nil)

	if _, err := g.AddNode("a"); err != nil {
		t.Fatalf("AddNode(a) = %v", err)
	}
	if _, err := g.AddNode(""); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("empty ID error = %v, want ErrInvalidNodeID", err)
	}
	if _, err := g.AddNode("a"); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("duplicate ID error = %v, want ErrDuplicateNodeID", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", g.NodeCount())
	}
}

func TestAddEdge(t *testing.T) {
	g := New(Undirected, nil)
	_, _ = g.AddNode("a")
	_, _ = g.AddNode("b")

	if _, err := g.AddEdge("a", "b"); err != nil {
		t.Fatalf("AddEdge(a, b) = %v", err)
	}
	if _, err := g.AddEdge("a", "missing"); !errors.Is(err, ErrUnknownEndpoint) {
		t.Errorf("unknown endpoint error = %v, want ErrUnknownEndpoint", err)
	}
	if _, err := g.AddEdge("a", "a"); !errors.Is(err, ErrSelfLoop) {
		t.Errorf("self loop error = %v, want ErrSelfLoop", err)
	}
	// Undirected graphs treat (b, a) as the existing (a, b) edge.
	if _, err := g.AddEdge("b", "a"); !errors.Is(err, ErrDuplicateEdge) {
		t.Errorf("reversed duplicate error = %v, want ErrDuplicateEdge", err)
	}
}

func TestDirectedAllowsBothDirections(t *testing.T) {
	g := New(Directed, nil)
	_, _ = g.AddNode("a")
	_, _ = g.AddNode("b")

	if _, err := g.AddEdge("a", "b"); err != nil {
		t.Fatalf("AddEdge(a, b) = %v", err)
	}
	if _, err := g.AddEdge("b", "a"); err != nil {
		t.Fatalf("AddEdge(b, a) = %v", err)
	}
	if got := g.Neighbors("a"); len(got) != 1 || got[0] != "b" {
		t.Errorf("Neighbors(a) = %v, want [b]", got)
	}
}

func TestMultigraphParallelKeys(t *testing.T) {
	g := New(MultiUndirected, nil)
	_, _ = g.AddNode("a")
	_, _ = g.AddNode("b")

	var keys []int
	for range 3 {
		e, err := g.AddEdge("a", "b")
		if err != nil {
			t.Fatalf("AddEdge = %v", err)
		}
		keys = append(keys, e.Key)
	}
	if keys[0] != 0 || keys[1] != 1 || keys[2] != 2 {
		t.Errorf("parallel keys = %v, want [0 1 2]", keys)
	}
	if g.ParallelCount("b", "a") != 3 {
		t.Errorf("ParallelCount = %d, want 3", g.ParallelCount("b", "a"))
	}
	if g.MaxParallel() != 3 {
		t.Errorf("MaxParallel = %d, want 3", g.MaxParallel())
	}
}

func TestAttrMutationIsVisible(t *testing.T) {
	g := New(Undirected, nil)
	n, _ := g.AddNode("a")
	n.Attrs.SetColor(math32.Vec4(1, 0, 0, 1))

	got, _ := g.Node("a")
	if got.Attrs.Color == nil || got.Attrs.Color.X != 1 {
		t.Errorf("color mutation not visible through graph: %+v", got.Attrs.Color)
	}
}

func TestFrucht(t *testing.T) {
	g := Frucht()
	if g.NodeCount() != 12 {
		t.Errorf("NodeCount = %d, want 12", g.NodeCount())
	}
	if g.EdgeCount() != 18 {
		t.Errorf("EdgeCount = %d, want 18", g.EdgeCount())
	}
	// Frucht is cubic: every node has degree 3.
	for _, n := range g.Nodes() {
		if g.Degree(n.ID) != 3 {
			t.Errorf("Degree(%s) = %d, want 3", n.ID, g.Degree(n.ID))
		}
	}
}

func TestGrid(t *testing.T) {
	g := Grid(3, 4)
	if g.NodeCount() != 12 {
		t.Errorf("NodeCount = %d, want 12", g.NodeCount())
	}
	// 3x4 lattice: 2*4 vertical + 3*3 horizontal edges.
	if g.EdgeCount() != 17 {
		t.Errorf("EdgeCount = %d, want 17", g.EdgeCount())
	}
	coords, ok := GridCoords("2,3")
	if !ok || coords[0] != 2 || coords[1] != 3 {
		t.Errorf("GridCoords(2,3) = %v, %v", coords, ok)
	}
	if _, ok := GridCoords("not-a-grid-id"); ok {
		t.Error("GridCoords accepted a non-coordinate ID")
	}
}

func TestWithParallelEdges(t *testing.T) {
	g := WithParallelEdges(Frucht(), 3)
	if !g.Kind().IsMulti() {
		t.Errorf("kind = %v, want a multi kind", g.Kind())
	}
	if g.EdgeCount() != 18*3 {
		t.Errorf("EdgeCount = %d, want %d", g.EdgeCount(), 18*3)
	}
	if g.MaxParallel() != 3 {
		t.Errorf("MaxParallel = %d, want 3", g.MaxParallel())
	}
}
