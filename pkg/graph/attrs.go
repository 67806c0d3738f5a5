package graph

import "cogentcore.org/core/math32"

// Metadata stores arbitrary key-value pairs attached to graph elements or
// the graph itself. Simulations use it for state that the renderer does not
// interpret, such as a diffusion value or a cell's liveness. Metadata maps
// are never nil after the element is created.
type Metadata map[string]any

// NodeAttrs is the visual attribute record of a node.
//
// Pointer fields are nil until assigned, either by the caller before the
// scene is built or by the builder's default resolution. After a scene is
// built every field is non-nil and state-transition functions mutate the
// pointed-to values in place.
type NodeAttrs struct {
	// Pos is the node's position in scene coordinates. The layout provider
	// fills this in when the caller does not.
	Pos *math32.Vector3
	// Color is the RGBA base color with channels in [0, 1].
	Color *math32.Vector4
	// Label is the billboard text anchored above the node.
	Label *string
	// LabelColor is the RGBA color of the label text.
	LabelColor *math32.Vector4
	// Size is the uniform scale of the node primitive. Zero means unset.
	Size float32
	// Val holds simulation-specific state. Never nil.
	Val Metadata
}

// EdgeAttrs is the visual attribute record of an edge. Edge geometry is
// derived from the endpoint node positions, so there is no position field.
type EdgeAttrs struct {
	// Color is the RGBA base color with channels in [0, 1].
	Color *math32.Vector4
	// Label is the billboard text placed at the edge midpoint.
	Label *string
	// LabelColor is the RGBA color of the label text.
	LabelColor *math32.Vector4
	// Val holds simulation-specific state. Never nil.
	Val Metadata
}

// SetPos assigns the node position.
func (a *NodeAttrs) SetPos(p math32.Vector3) { a.Pos = &p }

// SetColor assigns the node color.
func (a *NodeAttrs) SetColor(c math32.Vector4) { a.Color = &c }

// SetLabel assigns the node label.
func (a *NodeAttrs) SetLabel(s string) { a.Label = &s }

// SetLabelColor assigns the node label color.
func (a *NodeAttrs) SetLabelColor(c math32.Vector4) { a.LabelColor = &c }

// SetColor assigns the edge color.
func (a *EdgeAttrs) SetColor(c math32.Vector4) { a.Color = &c }

// SetLabel assigns the edge label.
func (a *EdgeAttrs) SetLabel(s string) { a.Label = &s }

// SetLabelColor assigns the edge label color.
func (a *EdgeAttrs) SetLabelColor(c math32.Vector4) { a.LabelColor = &c }
