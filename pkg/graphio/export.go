package graphio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"cogentcore.org/core/math32"
	"gopkg.in/yaml.v3"

	"github.com/ekalosak/graph3d/pkg/graph"
)

type document struct {
	Kind  string `json:"kind" yaml:"kind"`
	Nodes []node `json:"nodes" yaml:"nodes"`
	Edges []edge `json:"edges" yaml:"edges"`
}

type node struct {
	ID         string         `json:"id" yaml:"id"`
	Pos        []float32      `json:"pos,omitempty" yaml:"pos,omitempty"`
	Color      []float32      `json:"color,omitempty" yaml:"color,omitempty"`
	Label      *string        `json:"label,omitempty" yaml:"label,omitempty"`
	LabelColor []float32      `json:"label_color,omitempty" yaml:"label_color,omitempty"`
	Size       float32        `json:"size,omitempty" yaml:"size,omitempty"`
	Val        graph.Metadata `json:"val,omitempty" yaml:"val,omitempty"`
}

type edge struct {
	From       string         `json:"from" yaml:"from"`
	To         string         `json:"to" yaml:"to"`
	Color      []float32      `json:"color,omitempty" yaml:"color,omitempty"`
	Label      *string        `json:"label,omitempty" yaml:"label,omitempty"`
	LabelColor []float32      `json:"label_color,omitempty" yaml:"label_color,omitempty"`
	Val        graph.Metadata `json:"val,omitempty" yaml:"val,omitempty"`
}

func toDocument(g *graph.Graph) document {
	out := document{
		Kind:  g.Kind().String(),
		Nodes: make([]node, len(g.Nodes())),
		Edges: make([]edge, len(g.Edges())),
	}
	for i, n := range g.Nodes() {
		nd := node{
			ID:         n.ID,
			Color:      vec4Slice(n.Attrs.Color),
			Label:      n.Attrs.Label,
			LabelColor: vec4Slice(n.Attrs.LabelColor),
			Size:       n.Attrs.Size,
		}
		if n.Attrs.Pos != nil {
			nd.Pos = []float32{n.Attrs.Pos.X, n.Attrs.Pos.Y, n.Attrs.Pos.Z}
		}
		if len(n.Attrs.Val) > 0 {
			nd.Val = n.Attrs.Val
		}
		out.Nodes[i] = nd
	}
	for i, e := range g.Edges() {
		ed := edge{
			From:       e.From,
			To:         e.To,
			Color:      vec4Slice(e.Attrs.Color),
			Label:      e.Attrs.Label,
			LabelColor: vec4Slice(e.Attrs.LabelColor),
		}
		if len(e.Attrs.Val) > 0 {
			ed.Val = e.Attrs.Val
		}
		out.Edges[i] = ed
	}
	return out
}

func vec4Slice(v *math32.Vector4) []float32 {
	if v == nil {
		return nil
	}
	return []float32{v.X, v.Y, v.Z, v.W}
}

// WriteJSON encodes a graph as JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// WriteYAML encodes a graph as YAML and writes it to w.
func WriteYAML(g *graph.Graph, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(toDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportYAML writes a graph to a YAML file at path.
func ExportYAML(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteYAML(g, f)
}
