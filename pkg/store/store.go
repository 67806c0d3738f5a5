// Package store persists named scenes: a graph with its resolved attribute
// records and layout positions. A saved scene reopens exactly as it looked,
// including colors and labels a simulation had reached.
package store

import (
	"context"
	"time"

	"cogentcore.org/core/math32"
	"github.com/google/uuid"

	"github.com/ekalosak/graph3d/pkg/errors"
	"github.com/ekalosak/graph3d/pkg/graph"
	"github.com/ekalosak/graph3d/pkg/layout"
)

// SceneDoc is the persisted form of a scene.
type SceneDoc struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Kind      string    `bson:"kind" json:"kind"`
	Nodes     []NodeDoc `bson:"nodes" json:"nodes"`
	Edges     []EdgeDoc `bson:"edges" json:"edges"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NodeDoc is a persisted node with its visual attributes.
type NodeDoc struct {
	ID         string      `bson:"id" json:"id"`
	Pos        [3]float32  `bson:"pos" json:"pos"`
	Color      *[4]float32 `bson:"color,omitempty" json:"color,omitempty"`
	Label      *string     `bson:"label,omitempty" json:"label,omitempty"`
	LabelColor *[4]float32 `bson:"label_color,omitempty" json:"label_color,omitempty"`
	Size       float32     `bson:"size,omitempty" json:"size,omitempty"`
}

// EdgeDoc is a persisted edge.
type EdgeDoc struct {
	From       string      `bson:"from" json:"from"`
	To         string      `bson:"to" json:"to"`
	Key        int         `bson:"key,omitempty" json:"key,omitempty"`
	Color      *[4]float32 `bson:"color,omitempty" json:"color,omitempty"`
	Label      *string     `bson:"label,omitempty" json:"label,omitempty"`
	LabelColor *[4]float32 `bson:"label_color,omitempty" json:"label_color,omitempty"`
}

// SceneInfo is the listing projection of a stored scene.
type SceneInfo struct {
	Name      string    `bson:"name" json:"name"`
	Kind      string    `bson:"kind" json:"kind"`
	NodeCount int       `bson:"node_count" json:"node_count"`
	EdgeCount int       `bson:"edge_count" json:"edge_count"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Store is the scene persistence contract. Save upserts by name.
type Store interface {
	Save(ctx context.Context, doc *SceneDoc) error
	Load(ctx context.Context, name string) (*SceneDoc, error)
	List(ctx context.Context) ([]SceneInfo, error)
	Delete(ctx context.Context, name string) error
	Close(ctx context.Context) error
}

// FromGraph captures a graph and its positions as a document. Attribute
// pointers that are still unset stay unset in the document.
func FromGraph(name string, g *graph.Graph, pos layout.Positions) *SceneDoc {
	now := time.Now().UTC()
	doc := &SceneDoc{
		ID:        uuid.NewString(),
		Name:      name,
		Kind:      g.Kind().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, n := range g.Nodes() {
		p := pos[n.ID]
		if n.Attrs.Pos != nil {
			p = *n.Attrs.Pos
		}
		doc.Nodes = append(doc.Nodes, NodeDoc{
			ID:         n.ID,
			Pos:        [3]float32{p.X, p.Y, p.Z},
			Color:      vec4Doc(n.Attrs.Color),
			Label:      n.Attrs.Label,
			LabelColor: vec4Doc(n.Attrs.LabelColor),
			Size:       n.Attrs.Size,
		})
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, EdgeDoc{
			From:       e.From,
			To:         e.To,
			Key:        e.Key,
			Color:      vec4Doc(e.Attrs.Color),
			Label:      e.Attrs.Label,
			LabelColor: vec4Doc(e.Attrs.LabelColor),
		})
	}
	return doc
}

// Graph reconstructs the graph and positions from a document.
func (d *SceneDoc) Graph() (*graph.Graph, layout.Positions, error) {
	kind, err := graph.ParseKind(d.Kind)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeStore, err, "scene %q has invalid kind", d.Name)
	}
	g := graph.New(kind, nil)
	pos := make(layout.Positions, len(d.Nodes))
	for _, nd := range d.Nodes {
		n, err := g.AddNode(nd.ID)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeStore, err, "scene %q has invalid node", d.Name)
		}
		p := math32.Vec3(nd.Pos[0], nd.Pos[1], nd.Pos[2])
		pos[nd.ID] = p
		n.Attrs.SetPos(p)
		if nd.Color != nil {
			n.Attrs.SetColor(vec4Of(*nd.Color))
		}
		n.Attrs.Label = nd.Label
		if nd.LabelColor != nil {
			n.Attrs.SetLabelColor(vec4Of(*nd.LabelColor))
		}
		n.Attrs.Size = nd.Size
	}
	for _, ed := range d.Edges {
		e, err := g.AddEdge(ed.From, ed.To)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeStore, err, "scene %q has invalid edge", d.Name)
		}
		if ed.Color != nil {
			e.Attrs.SetColor(vec4Of(*ed.Color))
		}
		e.Attrs.Label = ed.Label
		if ed.LabelColor != nil {
			e.Attrs.SetLabelColor(vec4Of(*ed.LabelColor))
		}
	}
	return g, pos, nil
}

func vec4Doc(v *math32.Vector4) *[4]float32 {
	if v == nil {
		return nil
	}
	return &[4]float32{v.X, v.Y, v.Z, v.W}
}

func vec4Of(a [4]float32) math32.Vector4 {
	return math32.Vec4(a[0], a[1], a[2], a[3])
}
