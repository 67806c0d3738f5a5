// Package enginetest provides a recording in-memory implementation of
// [engine.Engine] for tests.
//
// The fake creates no window and draws nothing; it records every handle,
// label, light, and camera update so tests can assert on the visible state
// a real engine would have received. Frames are driven manually with
// [Fake.Step], making scheduler and camera behavior deterministic.
package enginetest

import (
	"fmt"

	"cogentcore.org/core/math32"

	"github.com/ekalosak/graph3d/pkg/engine"
	"github.com/ekalosak/graph3d/pkg/errors"
)

// Handle is the fake's scene object, recording the last applied state.
type Handle struct {
	Primitive engine.PrimitiveID
	Handle    string

	Position math32.Vector3
	Scale    math32.Vector3
	Heading  float32
	Pitch    float32
	Spin     float32
	Color    math32.Vector4

	// SetCount counts mutations of any kind, letting tests verify that
	// syncs mutate rather than recreate.
	SetCount int
}

// ID implements [engine.Handle].
func (h *Handle) ID() string { return h.Handle }

// SetPosition implements [engine.Handle].
func (h *Handle) SetPosition(p math32.Vector3) { h.Position = p; h.SetCount++ }

// SetScale implements [engine.Handle].
func (h *Handle) SetScale(s math32.Vector3) { h.Scale = s; h.SetCount++ }

// SetRotation implements [engine.Handle].
func (h *Handle) SetRotation(headingDeg, pitchDeg, spinDeg float32) {
	h.Heading, h.Pitch, h.Spin = headingDeg, pitchDeg, spinDeg
	h.SetCount++
}

// SetColor implements [engine.Handle].
func (h *Handle) SetColor(c math32.Vector4) { h.Color = c; h.SetCount++ }

// Label is the fake's billboard text object.
type Label struct {
	Parent *Handle // nil when scene-anchored
	Text   string
	Color  math32.Vector4
	Offset math32.Vector3
	Size   float32
}

// SetText implements [engine.Label].
func (l *Label) SetText(s string) { l.Text = s }

// SetColor implements [engine.Label].
func (l *Label) SetColor(c math32.Vector4) { l.Color = c }

// SetOffset implements [engine.Label].
func (l *Label) SetOffset(p math32.Vector3) { l.Offset = p }

// SetScale implements [engine.Label].
func (l *Label) SetScale(s float32) { l.Size = s }

// Input is a scriptable keyboard: tests set Down directly.
type Input struct {
	Down map[engine.Key]bool
}

// Pressed implements [engine.Input].
func (i *Input) Pressed(k engine.Key) bool { return i.Down[k] }

// Fake is a recording [engine.Engine].
type Fake struct {
	Handles []*Handle
	Labels  []*Label
	Lights  []engine.Light

	CameraPos     math32.Vector3
	CameraPitch   float32
	CameraHeading float32
	CameraSets    int

	Overlay    []string
	MouseOrbit bool

	// MissingPrimitives simulates unresolvable model files: loads of these
	// IDs fail with MISSING_PRIMITIVE.
	MissingPrimitives map[engine.PrimitiveID]bool

	// SceneCenter and SceneRadius are returned by Bounds.
	SceneCenter math32.Vector3
	SceneRadius float32

	// FOV is returned by FieldOfViewDeg; defaults to 45 when zero.
	FOV float32

	Keys Input

	frame func(dt float32) error
}

// New creates an empty fake engine with a unit scene radius.
func New() *Fake {
	return &Fake{
		SceneRadius:       1,
		MissingPrimitives: map[engine.PrimitiveID]bool{},
		Keys:              Input{Down: map[engine.Key]bool{}},
	}
}

// LoadPrimitive implements [engine.Engine].
func (f *Fake) LoadPrimitive(id engine.PrimitiveID) (engine.Handle, error) {
	if f.MissingPrimitives[id] {
		return nil, errors.New(errors.ErrCodeMissingPrimitive, "no model for primitive %q", id)
	}
	h := &Handle{
		Primitive: id,
		Handle:    fmt.Sprintf("%s_%d", id, len(f.Handles)),
		Scale:     math32.Vec3(1, 1, 1),
	}
	f.Handles = append(f.Handles, h)
	return h, nil
}

// NewLabel implements [engine.Engine].
func (f *Fake) NewLabel(parent engine.Handle, text string, color math32.Vector4) engine.Label {
	l := &Label{Text: text, Color: color, Size: 1}
	if parent != nil {
		l.Parent = parent.(*Handle)
	}
	f.Labels = append(f.Labels, l)
	return l
}

// AddLight implements [engine.Engine].
func (f *Fake) AddLight(l engine.Light) error {
	switch l.Kind {
	case engine.LightDirectional, engine.LightAmbient, engine.LightPoint:
		f.Lights = append(f.Lights, l)
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidLight, "unsupported light kind %q", l.Kind)
	}
}

// Bounds implements [engine.Engine].
func (f *Fake) Bounds() (math32.Vector3, float32) { return f.SceneCenter, f.SceneRadius }

// FieldOfViewDeg implements [engine.Engine].
func (f *Fake) FieldOfViewDeg() float32 {
	if f.FOV == 0 {
		return 45
	}
	return f.FOV
}

// SetCamera implements [engine.Engine].
func (f *Fake) SetCamera(pos math32.Vector3, pitchDeg, headingDeg float32) {
	f.CameraPos, f.CameraPitch, f.CameraHeading = pos, pitchDeg, headingDeg
	f.CameraSets++
}

// SetMouseOrbit implements [engine.Engine].
func (f *Fake) SetMouseOrbit(enabled bool) { f.MouseOrbit = enabled }

// SetOverlay implements [engine.Engine].
func (f *Fake) SetOverlay(lines []string) { f.Overlay = lines }

// Input implements [engine.Engine].
func (f *Fake) Input() engine.Input { return &f.Keys }

// Run implements [engine.Engine]. The fake does not loop; it stores the
// callback for [Fake.Step] to drive.
func (f *Fake) Run(frame func(dt float32) error) error {
	f.frame = frame
	return nil
}

// Step advances n frames of dt seconds each, returning the first frame
// error. Run (or a direct callback registration through it) must have been
// called first.
func (f *Fake) Step(n int, dt float32) error {
	for range n {
		if f.frame == nil {
			return fmt.Errorf("enginetest: Step before Run")
		}
		if err := f.frame(dt); err != nil {
			return err
		}
	}
	return nil
}

// HandleCount returns the number of primitives created so far. The scene
// builder contract pins this constant after build.
func (f *Fake) HandleCount() int { return len(f.Handles) }
