// Package spatial computes placement transforms for edge primitives.
//
// Edge models are canonically 2 units long, pointing along the local Z axis
// with one end at the local origin. [Solve] computes the position, Z scale,
// and pitch/heading rotation that stretch such a primitive between two
// arbitrary points. [FanOut] spreads parallel multigraph edges around their
// shared axis so they stay visually distinguishable.
//
// The pitch/heading construction is the renderer's documented contract; its
// exact values are pinned by tests. It is an approximation with a known
// instability as the Y delta approaches zero, because heading is computed
// from arctan(dx/dy). [LookAt] provides the well-conditioned quaternion
// alternative for callers that prefer stability over the legacy values.
package spatial

import "cogentcore.org/core/math32"

// Eps substitutes for zero-valued delta components so axis-aligned and
// near-coincident endpoints never produce NaN or infinite angles.
const Eps = 1e-6

// PrimitiveLength is the canonical length of edge models along local Z.
const PrimitiveLength = 2.0

// Transform places an edge primitive between two points.
//
// Applying the transform means: move the primitive's origin to Position,
// scale it by ScaleZ along local Z, rotate by HeadingDeg around the world
// up axis and PitchDeg around the resulting local X axis, then spin by
// SpinDeg around the primitive's own long axis. Spin is zero except for
// fanned-out parallel edges, where it rotates a bent primitive's bow
// without moving its endpoints.
type Transform struct {
	Position   math32.Vector3
	ScaleZ     float32
	PitchDeg   float32
	HeadingDeg float32
	SpinDeg    float32
}

// Solve computes the transform aligning an edge primitive from p0 to p1.
//
// Coincident endpoints are a caller contract violation, but the solver
// recovers rather than failing: any zero delta component is replaced by
// [Eps], which keeps the outputs finite at the cost of a tiny angular error.
// The pitch sign tracks the sign of the Y delta because the heading formula
// is only unambiguous for one hemisphere: dy > 0 yields negative pitch,
// dy < 0 positive.
func Solve(p0, p1 math32.Vector3) Transform {
	d := desingularize(p1.Sub(p0))
	dist := d.Length()

	pitch := math32.Acos(d.Z / dist)
	if d.Y > 0 {
		pitch = -pitch
	}
	heading := -math32.Atan(d.X / d.Y)

	return Transform{
		Position:   p0,
		ScaleZ:     dist / PrimitiveLength,
		PitchDeg:   math32.RadToDeg(pitch),
		HeadingDeg: math32.RadToDeg(heading),
	}
}

// FanOut returns t with a spin offset that spreads parallel edge index out
// of count siblings across arcDeg degrees. Indexes must be in [0, count).
// With the default 360 degree arc, three parallel edges land 120 degrees
// apart around their shared axis.
func FanOut(t Transform, index, count int, arcDeg float32) Transform {
	if count <= 1 {
		return t
	}
	t.SpinDeg += float32(index) / float32(count) * arcDeg
	return t
}

// Midpoint returns the point halfway between p0 and p1, where edge labels
// are anchored.
func Midpoint(p0, p1 math32.Vector3) math32.Vector3 {
	return p0.Add(p1).MulScalar(0.5)
}

// LookAt returns the quaternion rotating the primitive's local Z axis onto
// the direction from p0 to p1. Unlike [Solve] it is continuous in the
// endpoints and has no special case at dy = 0, but it does not reproduce
// the legacy pitch/heading values.
func LookAt(p0, p1 math32.Vector3) math32.Quat {
	d := desingularize(p1.Sub(p0)).Normal()
	var q math32.Quat
	q.SetFromUnitVectors(math32.Vec3(0, 0, 1), d)
	return q
}

// desingularize replaces zero components of a delta vector with Eps.
func desingularize(d math32.Vector3) math32.Vector3 {
	if d.X == 0 {
		d.X = Eps
	}
	if d.Y == 0 {
		d.Y = Eps
	}
	if d.Z == 0 {
		d.Z = Eps
	}
	return d
}
