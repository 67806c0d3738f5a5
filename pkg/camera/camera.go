// Package camera implements the keyboard-driven spherical orbit rig.
//
// The camera lives on a sphere around the scene origin, parameterized by
// radius, an azimuthal angle theta, and an elevation angle phi. Keyboard
// input adjusts the three parameters at fixed angular and radial speeds;
// every frame the rig converts them to a Cartesian position and a
// pitch/heading orientation that keeps the scene centered in view.
package camera

import (
	"cogentcore.org/core/math32"

	"github.com/ekalosak/graph3d/pkg/engine"
)

// Rig speeds and limits.
const (
	// ThetaSpeedDeg and PhiSpeedDeg are the orbit speeds, degrees per second.
	ThetaSpeedDeg float32 = 96
	PhiSpeedDeg   float32 = 96
	// RadiusSpeed is the zoom speed in scene units per second.
	RadiusSpeed float32 = 36
	// MinRadius keeps the camera from entering the scene.
	MinRadius float32 = 2.5
)

// initialDistanceFactor pads the fitted radius so the whole scene sits
// comfortably inside the frustum.
const initialDistanceFactor float32 = 1.75

// Rig is the spherical camera state. Angles are in degrees.
// The speed fields override the package defaults when non-zero; settings
// live-reload retunes them mid-run.
type Rig struct {
	Radius   float32
	ThetaDeg float32
	PhiDeg   float32

	ThetaSpeed float32
	PhiSpeed   float32
	ZoomSpeed  float32
}

// InitialRadius returns the orbit radius that fits a scene with the given
// bounding center and radius into a frustum of the given vertical field of
// view.
func InitialRadius(center math32.Vector3, boundRadius, fovDeg float32) float32 {
	r := (center.Length() + boundRadius) / math32.Tan(math32.DegToRad(fovDeg)) * initialDistanceFactor
	return math32.Max(r, MinRadius)
}

// NewRig creates a rig at the fitted distance for the scene bounds, looking
// at the origin from the -Y side.
func NewRig(center math32.Vector3, boundRadius, fovDeg float32) *Rig {
	return &Rig{Radius: InitialRadius(center, boundRadius, fovDeg)}
}

// Update applies one frame of keyboard input. Opposite keys cancel; the
// radius never drops below MinRadius.
func (r *Rig) Update(in engine.Input, dt float32) {
	theta := speed(r.ThetaSpeed, ThetaSpeedDeg)
	phi := speed(r.PhiSpeed, PhiSpeedDeg)
	zoom := speed(r.ZoomSpeed, RadiusSpeed)
	if in.Pressed(engine.KeyRotateLeft) {
		r.ThetaDeg -= theta * dt
	}
	if in.Pressed(engine.KeyRotateRight) {
		r.ThetaDeg += theta * dt
	}
	if in.Pressed(engine.KeyTiltUp) {
		r.PhiDeg += phi * dt
	}
	if in.Pressed(engine.KeyTiltDown) {
		r.PhiDeg -= phi * dt
	}
	if in.Pressed(engine.KeyZoomIn) {
		r.Radius -= zoom * dt
	}
	if in.Pressed(engine.KeyZoomOut) {
		r.Radius += zoom * dt
	}
	r.Radius = math32.Max(r.Radius, MinRadius)
}

func speed(v, def float32) float32 {
	if v != 0 {
		return v
	}
	return def
}

// Position converts the spherical parameters to Cartesian scene
// coordinates. At zero angles the camera sits on the -Y axis.
func (r *Rig) Position() math32.Vector3 {
	theta := math32.DegToRad(r.ThetaDeg)
	phi := math32.DegToRad(r.PhiDeg)
	return math32.Vec3(
		r.Radius*math32.Sin(theta)*math32.Cos(phi),
		-r.Radius*math32.Cos(theta)*math32.Cos(phi),
		r.Radius*math32.Sin(phi),
	)
}

// PitchDeg returns the camera pitch that looks back at the origin.
func (r *Rig) PitchDeg() float32 { return -r.PhiDeg }

// HeadingDeg returns the camera heading that looks back at the origin.
func (r *Rig) HeadingDeg() float32 { return r.ThetaDeg }

// Apply pushes the current pose to the engine.
func (r *Rig) Apply(eng engine.Engine) {
	eng.SetCamera(r.Position(), r.PitchDeg(), r.HeadingDeg())
}
