package graphio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/core/math32"
	"gopkg.in/yaml.v3"

	"github.com/ekalosak/graph3d/pkg/errors"
	"github.com/ekalosak/graph3d/pkg/graph"
)

// ReadJSON decodes a JSON graph document from r.
//
// ReadJSON returns an error if:
//   - The JSON is malformed or the kind is unknown
//   - A node has a duplicate ID, or an edge references an unknown node
//   - A position does not have exactly three components
//   - A color does not have exactly four components
//
// Errors are wrapped with context describing which node or edge caused
// the problem. The returned graph is independent of r and can be modified
// safely after ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromDocument(doc)
}

// ReadYAML decodes a YAML graph document from r. Validation matches
// [ReadJSON].
func ReadYAML(r io.Reader) (*graph.Graph, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromDocument(doc)
}

// ImportFile reads a graph document, dispatching on the file extension:
// .json, .yaml, or .yml.
func ImportFile(path string) (*graph.Graph, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json", ".yaml", ".yml":
	default:
		return nil, errors.New(errors.ErrCodeInvalidOption,
			"unsupported graph file extension %q (want .json, .yaml, or .yml)", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if ext == ".json" {
		return ReadJSON(f)
	}
	return ReadYAML(f)
}

func fromDocument(doc document) (*graph.Graph, error) {
	kind := graph.Undirected
	if doc.Kind != "" {
		var err error
		kind, err = graph.ParseKind(doc.Kind)
		if err != nil {
			return nil, err
		}
	}

	g := graph.New(kind, nil)
	for _, nd := range doc.Nodes {
		n, err := g.AddNode(nd.ID)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", nd.ID, err)
		}
		if nd.Pos != nil {
			if len(nd.Pos) != 3 {
				return nil, errors.New(errors.ErrCodeInvalidPosition,
					"node %s: position has %d components, want 3", nd.ID, len(nd.Pos))
			}
			n.Attrs.SetPos(math32.Vec3(nd.Pos[0], nd.Pos[1], nd.Pos[2]))
		}
		c, err := colorOf(nd.Color, "node "+nd.ID)
		if err != nil {
			return nil, err
		}
		n.Attrs.Color = c
		n.Attrs.Label = nd.Label
		lc, err := colorOf(nd.LabelColor, "node "+nd.ID+" label")
		if err != nil {
			return nil, err
		}
		n.Attrs.LabelColor = lc
		n.Attrs.Size = nd.Size
		for k, v := range nd.Val {
			n.Attrs.Val[k] = v
		}
	}
	for _, ed := range doc.Edges {
		e, err := g.AddEdge(ed.From, ed.To)
		if err != nil {
			return nil, fmt.Errorf("edge %s-%s: %w", ed.From, ed.To, err)
		}
		ref := fmt.Sprintf("edge %s-%s", ed.From, ed.To)
		c, err := colorOf(ed.Color, ref)
		if err != nil {
			return nil, err
		}
		e.Attrs.Color = c
		e.Attrs.Label = ed.Label
		lc, err := colorOf(ed.LabelColor, ref+" label")
		if err != nil {
			return nil, err
		}
		e.Attrs.LabelColor = lc
		for k, v := range ed.Val {
			e.Attrs.Val[k] = v
		}
	}
	return g, nil
}

func colorOf(c []float32, ref string) (*math32.Vector4, error) {
	if c == nil {
		return nil, nil
	}
	if len(c) != 4 {
		return nil, errors.New(errors.ErrCodeInvalidColor,
			"%s: color has %d channels, want 4", ref, len(c))
	}
	v := math32.Vec4(c[0], c[1], c[2], c[3])
	return &v, nil
}
