// Package engine defines the contract between graph3d and the 3D engine
// that actually renders.
//
// The renderer is deliberately engine-agnostic: everything it needs from a
// scene-graph/game engine is captured by the [Engine] interface — load a
// positionable lit primitive, attach camera-facing text, expose keyboard
// state and frame timing, and drive one callback per rendered frame. The
// default implementation is the software-projection backend in
// internal/softrender; tests use the recording fake in
// [github.com/ekalosak/graph3d/pkg/engine/enginetest].
package engine

import "cogentcore.org/core/math32"

// PrimitiveID identifies a pre-built model the engine can instantiate.
// The scene builder selects the edge variant from the graph kind.
type PrimitiveID string

const (
	// PrimitiveNode is the sphere-like node model.
	PrimitiveNode PrimitiveID = "node"
	// PrimitiveEdge is the plain cylinder for undirected edges.
	PrimitiveEdge PrimitiveID = "edge"
	// PrimitiveEdgeDirected is the arrow-tipped directed edge.
	PrimitiveEdgeDirected PrimitiveID = "edge_directed"
	// PrimitiveEdgeBent is the bowed cylinder for parallel undirected edges.
	PrimitiveEdgeBent PrimitiveID = "edge_bent"
	// PrimitiveEdgeDirectedBent is the bowed arrow-tipped variant.
	PrimitiveEdgeDirectedBent PrimitiveID = "edge_directed_bent"
)

// Handle is an engine-owned scene object. Handles are created once at scene
// build time and mutated for the rest of the process lifetime; they are
// never destroyed mid-run.
type Handle interface {
	// ID returns the engine's identifier for this object.
	ID() string
	// SetPosition moves the object's origin in scene coordinates.
	SetPosition(p math32.Vector3)
	// SetScale scales the object along its local axes.
	SetScale(s math32.Vector3)
	// SetRotation orients the object: heading around the world up axis,
	// pitch around the resulting local X axis, spin around the object's
	// own long axis. All in degrees.
	SetRotation(headingDeg, pitchDeg, spinDeg float32)
	// SetColor sets the object's base material color (RGBA in [0, 1]).
	SetColor(c math32.Vector4)
}

// Label is a billboarded text object: the engine keeps it facing the
// active camera.
type Label interface {
	// SetText replaces the displayed text.
	SetText(s string)
	// SetColor sets the text color.
	SetColor(c math32.Vector4)
	// SetOffset positions the label relative to its parent handle, or in
	// scene coordinates when the label is unparented.
	SetOffset(p math32.Vector3)
	// SetScale scales the text uniformly.
	SetScale(s float32)
}

// Key is an abstract camera control key. The engine maps physical keys
// onto these; the camera controller only reads the abstraction.
type Key int

const (
	KeyRotateLeft Key = iota
	KeyRotateRight
	KeyTiltUp
	KeyTiltDown
	KeyZoomIn
	KeyZoomOut
)

// Input exposes current keyboard state, polled once per frame.
type Input interface {
	Pressed(k Key) bool
}

// LightKind classifies lights in a rig description.
type LightKind string

const (
	LightDirectional LightKind = "directional"
	LightAmbient     LightKind = "ambient"
	LightPoint       LightKind = "point"
)

// Light describes one light in the scene rig. Which fields matter depends
// on Kind: directional lights use HPR, ambient lights Intensity, point
// lights Pos.
type Light struct {
	Kind      LightKind
	HPR       math32.Vector3
	Intensity float32
	Pos       math32.Vector3
}

// Engine is the external collaborator contract. Implementations are not
// required to be safe for concurrent use: all calls happen on the frame
// loop's goroutine.
type Engine interface {
	// LoadPrimitive instantiates a model and returns its handle.
	// Unknown or unresolvable primitives fail with a MISSING_PRIMITIVE
	// error; this is fatal at scene build time.
	LoadPrimitive(id PrimitiveID) (Handle, error)

	// NewLabel creates a billboarded text object. A nil parent anchors the
	// label in scene coordinates (used for edge labels at midpoints);
	// otherwise the label follows the parent handle.
	NewLabel(parent Handle, text string, color math32.Vector4) Label

	// AddLight adds a light to the scene rig. Unsupported kinds fail with
	// an INVALID_LIGHT error.
	AddLight(l Light) error

	// Bounds returns the approximate center and bounding radius of all
	// placed geometry, used to compute the initial camera distance.
	Bounds() (center math32.Vector3, radius float32)

	// FieldOfViewDeg returns the camera's field of view in degrees.
	FieldOfViewDeg() float32

	// SetCamera places and orients the camera. Pitch and heading are in
	// degrees, matching the spherical rig's conventions.
	SetCamera(pos math32.Vector3, pitchDeg, headingDeg float32)

	// SetMouseOrbit enables the engine's built-in orbit/pan/zoom mouse
	// controls, replacing the keyboard rig.
	SetMouseOrbit(enabled bool)

	// SetOverlay replaces the fixed-position diagnostic text lines drawn
	// over the scene.
	SetOverlay(lines []string)

	// Input returns the keyboard state reader.
	Input() Input

	// Run enters the frame loop, invoking frame once per rendered frame
	// with the elapsed wall-clock delta in seconds. Run returns when the
	// window closes or frame returns an error, which is propagated.
	Run(frame func(dt float32) error) error
}
