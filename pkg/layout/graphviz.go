package layout

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"cogentcore.org/core/math32"
	"github.com/goccy/go-graphviz"

	"github.com/ekalosak/graph3d/pkg/graph"
)

// Graphviz computes positions with the graphviz neato engine, an
// alternative spring model to [Spring]. Neato is 2D, so the result lies on
// the z=0 plane scaled to the same 2*sqrt(n) radius as the native layout.
// Useful when a planar reading of the graph is wanted.
type Graphviz struct {
	// Scale overrides the output radius. Zero means 2*sqrt(n).
	Scale float32
}

// Layout implements [Provider]. It round-trips the graph through DOT,
// lets neato assign pos attributes, and parses them back out.
func (gv Graphviz) Layout(g *graph.Graph) (Positions, error) {
	ctx := context.Background()
	engine, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer engine.Close()
	engine.SetLayout(graphviz.NEATO)

	dot, err := graphviz.ParseBytes([]byte(toDOT(g)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer dot.Close()

	var buf bytes.Buffer
	if err := engine.Render(ctx, dot, graphviz.Format("dot"), &buf); err != nil {
		return nil, fmt.Errorf("neato layout: %w", err)
	}

	raw, err := parsePositions(buf.Bytes(), g.NodeIDs())
	if err != nil {
		return nil, err
	}

	scale := gv.Scale
	if scale == 0 {
		scale = DefaultScale(g.NodeCount())
	}
	points := make([]math32.Vector3, 0, len(raw))
	ids := g.NodeIDs()
	for _, id := range ids {
		points = append(points, raw[id])
	}
	rescale(points, scale)

	pos := make(Positions, len(ids))
	for i, id := range ids {
		pos[id] = points[i]
	}
	return pos, nil
}

// toDOT serializes the graph topology for layout purposes only; attributes
// other than structure are irrelevant to neato.
func toDOT(g *graph.Graph) string {
	var buf bytes.Buffer
	if g.Kind().IsDirected() {
		buf.WriteString("digraph G {\n")
	} else {
		buf.WriteString("graph G {\n")
	}
	arrow := " -- "
	if g.Kind().IsDirected() {
		arrow = " -> "
	}
	for _, id := range g.NodeIDs() {
		fmt.Fprintf(&buf, "  %q;\n", id)
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q%s%q;\n", e.From, arrow, e.To)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// parsePositions extracts pos attributes from rendered DOT output.
// Nodes appear as `"id" [pos="x,y", ...];` statements.
func parsePositions(dot []byte, ids []string) (map[string]math32.Vector3, error) {
	out := make(map[string]math32.Vector3, len(ids))
	for _, id := range ids {
		nodeRe, err := regexp.Compile(regexp.QuoteMeta(strconv.Quote(id)) + `\s*\[[^\]]*pos="(-?[0-9.]+),(-?[0-9.]+)"`)
		if err != nil {
			return nil, err
		}
		m := nodeRe.FindSubmatch(dot)
		if m == nil {
			return nil, fmt.Errorf("neato output missing position for node %q", id)
		}
		x, _ := strconv.ParseFloat(string(m[1]), 32)
		y, _ := strconv.ParseFloat(string(m[2]), 32)
		out[id] = math32.Vec3(float32(x), float32(y), 0)
	}
	return out, nil
}
