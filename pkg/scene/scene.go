// Package scene materializes a graph as engine objects and keeps them in
// sync with the graph's attribute records.
//
// [Build] creates exactly one primitive handle per node and per edge, plus
// billboarded labels, resolving visual attributes in priority order:
// value already on the element, then the caller's option, then the package
// default. Handles are created once; [Scene.SyncAll] re-applies mutable
// attributes (color, label) onto the existing handles and is the hook the
// animation scheduler calls every tick.
package scene

import (
	"io"

	"cogentcore.org/core/math32"
	"github.com/charmbracelet/log"

	"github.com/ekalosak/graph3d/pkg/engine"
	"github.com/ekalosak/graph3d/pkg/errors"
	"github.com/ekalosak/graph3d/pkg/graph"
	"github.com/ekalosak/graph3d/pkg/layout"
	"github.com/ekalosak/graph3d/pkg/observability"
	"github.com/ekalosak/graph3d/pkg/spatial"
)

// Default visual attributes, applied when neither the element nor the
// caller supplies a value.
var (
	DefaultNodeColor      = math32.Vec4(0.4, 0, 0.3, 1)
	DefaultNodeLabelColor = math32.Vec4(0, 1, 0, 1)
	DefaultEdgeColor      = math32.Vec4(0.3, 0.3, 0.3, 0.5)
	DefaultEdgeLabelColor = math32.Vec4(0, 1, 0, 1)
)

// DefaultNodeSize is the uniform node scale when unset.
const DefaultNodeSize float32 = 1.0

// DefaultFanOutArcDeg is the arc parallel edges are spread across.
const DefaultFanOutArcDeg float32 = 360

// labelHeight is where node labels anchor above the node, in node-local
// units (the node model has unit radius).
const labelHeight = 1.1

// Options configures scene construction. The zero value is usable.
type Options struct {
	// NodeColor overrides the default node color for nodes without one.
	NodeColor *math32.Vector4
	// NodeSize overrides the default node scale. Zero means default.
	NodeSize float32
	// NodeLabels maps node IDs to labels for nodes without one.
	NodeLabels map[string]string
	// NodeLabelColor overrides the default node label color.
	NodeLabelColor *math32.Vector4
	// EdgeColor overrides the default edge color for edges without one.
	EdgeColor *math32.Vector4
	// EdgeLabels maps edge references to labels for edges without one.
	EdgeLabels map[EdgeRef]string
	// EdgeLabelColor overrides the default edge label color.
	EdgeLabelColor *math32.Vector4
	// AutoLabel labels every element with its own key, overriding the
	// label maps (a warning is logged when both are set).
	AutoLabel bool
	// FanOutArcDeg is the arc parallel edges spread over. Zero means 360.
	FanOutArcDeg float32
	// RequireSimAttrs makes SyncAll treat an absent color or label as a
	// contract violation. Set when a state-transition function is
	// declared, since the function is then responsible for them.
	RequireSimAttrs bool
	// Logger receives build diagnostics. Nil discards.
	Logger *log.Logger
}

// EdgeRef identifies an edge for label lookup: endpoints plus the
// parallel-edge key.
type EdgeRef struct {
	From string
	To   string
	Key  int
}

// Ref returns the EdgeRef for an edge.
func Ref(e *graph.Edge) EdgeRef { return EdgeRef{From: e.From, To: e.To, Key: e.Key} }

// Scene owns the element-to-handle mapping for a built graph.
type Scene struct {
	g   *graph.Graph
	eng engine.Engine

	nodeHandles map[string]engine.Handle
	nodeLabels  map[string]engine.Label
	edgeHandles map[EdgeRef]engine.Handle
	edgeLabels  map[EdgeRef]engine.Label

	builtNodes int
	builtEdges int
	requireSim bool
}

// EdgePrimitive returns the primitive variant for a graph kind.
func EdgePrimitive(k graph.Kind) (engine.PrimitiveID, error) {
	switch k {
	case graph.Undirected:
		return engine.PrimitiveEdge, nil
	case graph.Directed:
		return engine.PrimitiveEdgeDirected, nil
	case graph.MultiUndirected:
		return engine.PrimitiveEdgeBent, nil
	case graph.MultiDirected:
		return engine.PrimitiveEdgeDirectedBent, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupportedKind, "no edge primitive for graph kind %v", k)
	}
}

// Build materializes g on eng. Positions must cover every node (use the
// layout package); missing primitives or unsupported kinds abort with a
// configuration error. Build resolves every element's attribute record in
// place, so after Build all attribute pointers are non-nil.
func Build(eng engine.Engine, g *graph.Graph, pos layout.Positions, opts Options) (*Scene, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	edgePrim, err := EdgePrimitive(g.Kind())
	if err != nil {
		return nil, err
	}
	if opts.AutoLabel && (len(opts.NodeLabels) > 0 || len(opts.EdgeLabels) > 0) {
		logger.Warn("autolabel overwrites supplied labels; disable autolabel if undesired")
	}
	if opts.FanOutArcDeg == 0 {
		opts.FanOutArcDeg = DefaultFanOutArcDeg
	}
	if opts.NodeSize == 0 {
		opts.NodeSize = DefaultNodeSize
	}

	observability.Scene().OnBuildStart(g.NodeCount(), g.EdgeCount())

	s := &Scene{
		g:           g,
		eng:         eng,
		nodeHandles: make(map[string]engine.Handle, g.NodeCount()),
		nodeLabels:  make(map[string]engine.Label, g.NodeCount()),
		edgeHandles: make(map[EdgeRef]engine.Handle, g.EdgeCount()),
		edgeLabels:  make(map[EdgeRef]engine.Label, g.EdgeCount()),
		requireSim:  opts.RequireSimAttrs,
	}

	for _, n := range g.Nodes() {
		resolveNodeAttrs(n, pos, opts)

		h, err := eng.LoadPrimitive(engine.PrimitiveNode)
		if err != nil {
			return nil, err
		}
		size := n.Attrs.Size
		h.SetColor(*n.Attrs.Color)
		h.SetScale(math32.Vec3(size, size, size))
		h.SetPosition(*n.Attrs.Pos)

		// Label rides the node, inverse-scaled so its on-screen size does
		// not depend on the node's.
		lbl := eng.NewLabel(h, *n.Attrs.Label, *n.Attrs.LabelColor)
		lbl.SetScale(1 / size)
		lbl.SetOffset(math32.Vec3(0, 0, labelHeight))

		s.nodeHandles[n.ID] = h
		s.nodeLabels[n.ID] = lbl
	}

	maxParallel := g.MaxParallel()
	for _, e := range g.Edges() {
		resolveEdgeAttrs(e, opts)

		h, err := eng.LoadPrimitive(edgePrim)
		if err != nil {
			return nil, err
		}
		p0, p1 := pos[e.From], pos[e.To]
		tr := spatial.Solve(p0, p1)
		if g.Kind().IsMulti() {
			tr = spatial.FanOut(tr, e.Key, maxParallel, opts.FanOutArcDeg)
		}
		h.SetColor(*e.Attrs.Color)
		h.SetPosition(tr.Position)
		h.SetScale(math32.Vec3(1, 1, tr.ScaleZ))
		h.SetRotation(tr.HeadingDeg, tr.PitchDeg, tr.SpinDeg)

		lbl := eng.NewLabel(nil, *e.Attrs.Label, *e.Attrs.LabelColor)
		lbl.SetOffset(spatial.Midpoint(p0, p1))

		ref := Ref(e)
		s.edgeHandles[ref] = h
		s.edgeLabels[ref] = lbl
	}

	s.builtNodes = g.NodeCount()
	s.builtEdges = g.EdgeCount()
	observability.Scene().OnBuildComplete(s.builtNodes, s.builtEdges)
	logger.Debug("scene built", "nodes", s.builtNodes, "edges", s.builtEdges)
	return s, nil
}

// resolveNodeAttrs fills a node's attribute record using the standard
// priority: element value, caller option, package default.
func resolveNodeAttrs(n *graph.Node, pos layout.Positions, opts Options) {
	if n.Attrs.Pos == nil {
		n.Attrs.SetPos(pos[n.ID])
	}
	if n.Attrs.Color == nil {
		n.Attrs.SetColor(pick(opts.NodeColor, DefaultNodeColor))
	}
	if n.Attrs.Size == 0 {
		n.Attrs.Size = opts.NodeSize
	}
	if n.Attrs.Label == nil {
		switch {
		case opts.AutoLabel:
			n.Attrs.SetLabel(n.ID)
		default:
			n.Attrs.SetLabel(opts.NodeLabels[n.ID])
		}
	} else if opts.AutoLabel {
		n.Attrs.SetLabel(n.ID)
	}
	if n.Attrs.LabelColor == nil {
		n.Attrs.SetLabelColor(pick(opts.NodeLabelColor, DefaultNodeLabelColor))
	}
}

func resolveEdgeAttrs(e *graph.Edge, opts Options) {
	if e.Attrs.Color == nil {
		e.Attrs.SetColor(pick(opts.EdgeColor, DefaultEdgeColor))
	}
	if e.Attrs.Label == nil {
		switch {
		case opts.AutoLabel:
			e.Attrs.SetLabel(edgeString(e))
		default:
			e.Attrs.SetLabel(opts.EdgeLabels[Ref(e)])
		}
	} else if opts.AutoLabel {
		e.Attrs.SetLabel(edgeString(e))
	}
	if e.Attrs.LabelColor == nil {
		e.Attrs.SetLabelColor(pick(opts.EdgeLabelColor, DefaultEdgeLabelColor))
	}
}

func edgeString(e *graph.Edge) string {
	if e.Key > 0 {
		return e.From + "-" + e.To + "#" + string(rune('0'+e.Key%10))
	}
	return e.From + "-" + e.To
}

func pick(override *math32.Vector4, def math32.Vector4) math32.Vector4 {
	if override != nil {
		return *override
	}
	return def
}

// SyncAll re-applies every element's current color and label onto its
// existing scene handle. It never allocates handles and is idempotent:
// with no intervening attribute mutation, a second call leaves the scene
// bit-identical.
//
// A malformed color (absent or non-finite channels), an absent label when
// a state function is declared, or a topology change since Build are
// programming contract violations and return a CONTRACT_VIOLATION error,
// which callers treat as fatal.
func (s *Scene) SyncAll() error {
	if s.g.NodeCount() != s.builtNodes || s.g.EdgeCount() != s.builtEdges {
		return errors.New(errors.ErrCodeContract,
			"graph topology changed after build (%d/%d nodes, %d/%d edges); this renderer is static-topology",
			s.g.NodeCount(), s.builtNodes, s.g.EdgeCount(), s.builtEdges)
	}

	for _, n := range s.g.Nodes() {
		if err := checkColor(n.Attrs.Color, "node", n.ID); err != nil {
			return err
		}
		if err := s.checkLabel(n.Attrs.Label, "node", n.ID); err != nil {
			return err
		}
		s.nodeHandles[n.ID].SetColor(*n.Attrs.Color)
		if n.Attrs.Label != nil {
			s.nodeLabels[n.ID].SetText(*n.Attrs.Label)
		}
		if n.Attrs.LabelColor != nil {
			s.nodeLabels[n.ID].SetColor(*n.Attrs.LabelColor)
		}
	}
	for _, e := range s.g.Edges() {
		ref := Ref(e)
		if err := checkColor(e.Attrs.Color, "edge", ref.From+"-"+ref.To); err != nil {
			return err
		}
		if err := s.checkLabel(e.Attrs.Label, "edge", ref.From+"-"+ref.To); err != nil {
			return err
		}
		s.edgeHandles[ref].SetColor(*e.Attrs.Color)
		if e.Attrs.Label != nil {
			s.edgeLabels[ref].SetText(*e.Attrs.Label)
		}
		if e.Attrs.LabelColor != nil {
			s.edgeLabels[ref].SetColor(*e.Attrs.LabelColor)
		}
	}
	return nil
}

func checkColor(c *math32.Vector4, kind, id string) error {
	if c == nil {
		return errors.New(errors.ErrCodeContract, "%s %q has no color at sync time", kind, id)
	}
	for _, ch := range [4]float32{c.X, c.Y, c.Z, c.W} {
		if math32.IsNaN(ch) || math32.IsInf(ch, 0) {
			return errors.New(errors.ErrCodeContract, "%s %q has non-finite color channel %v", kind, id, ch)
		}
	}
	return nil
}

func (s *Scene) checkLabel(l *string, kind, id string) error {
	if s.requireSim && l == nil {
		return errors.New(errors.ErrCodeContract,
			"%s %q has no label at sync time; the state function must maintain labels", kind, id)
	}
	return nil
}

// NodeHandle returns the engine handle for a node, or nil.
func (s *Scene) NodeHandle(id string) engine.Handle { return s.nodeHandles[id] }

// EdgeHandle returns the engine handle for an edge, or nil.
func (s *Scene) EdgeHandle(e *graph.Edge) engine.Handle { return s.edgeHandles[Ref(e)] }

// Graph returns the graph this scene renders.
func (s *Scene) Graph() *graph.Graph { return s.g }
