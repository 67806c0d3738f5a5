package sim

import (
	"math/rand/v2"

	"cogentcore.org/core/math32"

	"github.com/ekalosak/graph3d/pkg/graph"
)

// Game of Life cell colors.
var (
	ColorDead = math32.Vec4(0.2, 0.2, 0.2, 1)
	ColorLive = math32.Vec4(0.8, 0.8, 0.8, 1)
)

// Metadata keys for cell state.
const (
	keyVal     = "val"
	keyLastVal = "last_val"
)

// Life runs Conway's Game of Life on an arbitrary graph: a live cell with
// two or three live neighbors survives, a dead cell with exactly three
// live neighbors is born, everything else dies. On the usual board — a
// grid with diagonal adjacency, see [graph.MooreGrid] — interior cells
// have eight neighbors, matching the classic rules. When the board reaches
// a fixed point it reseeds with a quarter of the cells alive.
type Life struct {
	rnd *rand.Rand
}

// NewLife creates a Game of Life sim seeded for reproducible boards.
func NewLife(seed uint64) *Life {
	return &Life{rnd: rand.New(rand.NewPCG(seed, seed))}
}

// Reset clears the board and brings nLive random cells to life. A negative
// nLive picks log(n)+1; zero leaves the board dead.
func (l *Life) Reset(g *graph.Graph, nLive int) {
	for _, n := range g.Nodes() {
		n.Attrs.Val[keyVal] = 0
		n.Attrs.Val[keyLastVal] = 0
	}
	if nLive < 0 {
		nLive = int(math32.Log(float32(g.NodeCount()))) + 1
	}
	ids := g.NodeIDs()
	l.rnd.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	if nLive > len(ids) {
		nLive = len(ids)
	}
	for _, id := range ids[:nLive] {
		n, _ := g.Node(id)
		n.Attrs.Val[keyVal] = 1
	}
	l.recolor(g)
}

// Alive reports whether a node's cell is live.
func (l *Life) Alive(n *graph.Node) bool { return cell(n, keyVal) == 1 }

// Step is the state-transition function: one synchronous generation.
func (l *Life) Step(g *graph.Graph, tick int, delay float32) {
	if l.fixedPoint(g) {
		l.Reset(g, g.NodeCount()/4)
	}
	for _, n := range g.Nodes() {
		n.Attrs.Val[keyLastVal] = cell(n, keyVal)
	}

	next := make(map[string]int, g.NodeCount())
	for _, n := range g.Nodes() {
		live := 0
		for _, nbr := range g.Neighbors(n.ID) {
			m, _ := g.Node(nbr)
			live += cell(m, keyLastVal)
		}
		switch {
		case live == 3:
			next[n.ID] = 1
		case cell(n, keyLastVal) == 1 && live == 2:
			next[n.ID] = 1
		default:
			next[n.ID] = 0
		}
	}
	for _, n := range g.Nodes() {
		n.Attrs.Val[keyVal] = next[n.ID]
	}
	l.recolor(g)
}

func (l *Life) fixedPoint(g *graph.Graph) bool {
	for _, n := range g.Nodes() {
		if cell(n, keyVal) != cell(n, keyLastVal) {
			return false
		}
	}
	return true
}

func (l *Life) recolor(g *graph.Graph) {
	for _, n := range g.Nodes() {
		c := ColorDead
		if cell(n, keyVal) == 1 {
			c = ColorLive
		}
		if n.Attrs.Color == nil {
			n.Attrs.SetColor(c)
		} else {
			*n.Attrs.Color = c
		}
		if n.Attrs.Label == nil {
			n.Attrs.SetLabel("")
		}
	}
}

func cell(n *graph.Node, key string) int {
	v, _ := n.Attrs.Val[key].(int)
	return v
}
