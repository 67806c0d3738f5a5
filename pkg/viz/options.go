// Package viz assembles the render pipeline: layout, scene, camera,
// scheduler, and engine, behind one Options struct and an App that runs
// the frame loop. This is the package callers use; everything below it is
// plumbing.
package viz

import (
	"io"

	"cogentcore.org/core/math32"
	"github.com/charmbracelet/log"

	"github.com/ekalosak/graph3d/pkg/engine"
	"github.com/ekalosak/graph3d/pkg/errors"
	"github.com/ekalosak/graph3d/pkg/graph"
	"github.com/ekalosak/graph3d/pkg/layout"
	"github.com/ekalosak/graph3d/pkg/scene"
)

// DefaultStatePeriod is the state-transition period in seconds when a
// state function is set without a period.
const DefaultStatePeriod float32 = 1.0

// StateFunc mutates the graph's attribute records once per period. The
// renderer syncs the scene right after each invocation; under a state
// function every element must keep a color and a label at all times.
type StateFunc func(g *graph.Graph, tick int, delay float32)

// Options configures a visualization. The zero value renders a static
// scene with package defaults.
type Options struct {
	// NodeColor, NodeSize, NodeLabels, NodeLabelColor, EdgeColor,
	// EdgeLabels, EdgeLabelColor and AutoLabel resolve element attributes
	// as described in the scene package.
	NodeColor      *math32.Vector4
	NodeSize       float32
	NodeLabels     map[string]string
	NodeLabelColor *math32.Vector4
	EdgeColor      *math32.Vector4
	EdgeLabels     map[scene.EdgeRef]string
	EdgeLabelColor *math32.Vector4
	AutoLabel      bool

	// Layout computes node positions for nodes without one. Nil means the
	// seeded spring layout; ignored when every node is pre-positioned.
	Layout layout.Provider

	// StateFunc animates the graph. StatePeriod is its period in seconds;
	// zero means DefaultStatePeriod.
	StateFunc   StateFunc
	StatePeriod float32

	// Mouse hands camera control to the engine's orbit controls instead of
	// the keyboard rig.
	Mouse bool

	// Axes draws the debug coordinate axes at the origin.
	Axes bool

	// NoOverlay suppresses the on-screen help and diagnostics text.
	NoOverlay bool

	// Lights overrides the default light rig. Nil means two directional
	// lights, one ambient fill, and a point light at the origin.
	Lights []engine.Light

	// SettingsPath names a TOML settings file to load and watch for
	// changes while running. Empty disables.
	SettingsPath string

	// Logger receives diagnostics. Nil discards.
	Logger *log.Logger
}

// DefaultLights is the standard rig.
func DefaultLights() []engine.Light {
	return []engine.Light{
		{Kind: engine.LightDirectional, HPR: math32.Vec3(0, -20, 0)},
		{Kind: engine.LightDirectional, HPR: math32.Vec3(180, -20, 0)},
		{Kind: engine.LightAmbient, Intensity: 0.3},
		{Kind: engine.LightPoint, Pos: math32.Vec3(0, 0, 0)},
	}
}

// validateAndSetDefaults normalizes the options in place.
func (o *Options) validateAndSetDefaults() error {
	if o.StatePeriod < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "state period must be non-negative, got %v", o.StatePeriod)
	}
	if o.StatePeriod == 0 {
		o.StatePeriod = DefaultStatePeriod
	}
	if o.StatePeriod > 0 && o.StateFunc == nil && o.StatePeriod != DefaultStatePeriod {
		return errors.New(errors.ErrCodeInvalidOption, "state period set without a state function")
	}
	if o.NodeSize < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "node size must be non-negative, got %v", o.NodeSize)
	}
	if o.Lights == nil {
		o.Lights = DefaultLights()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return nil
}

// sceneOptions projects the viz options onto the scene builder's.
func (o *Options) sceneOptions() scene.Options {
	return scene.Options{
		NodeColor:       o.NodeColor,
		NodeSize:        o.NodeSize,
		NodeLabels:      o.NodeLabels,
		NodeLabelColor:  o.NodeLabelColor,
		EdgeColor:       o.EdgeColor,
		EdgeLabels:      o.EdgeLabels,
		EdgeLabelColor:  o.EdgeLabelColor,
		AutoLabel:       o.AutoLabel,
		RequireSimAttrs: o.StateFunc != nil,
		Logger:          o.Logger,
	}
}
