package softrender

import (
	"cogentcore.org/core/math32"
)

// nearClip is the camera-space depth below which geometry is culled.
const nearClip float32 = 0.1

// hprQuat composes a heading/pitch/spin rotation: heading around the world
// up axis, pitch around the resulting local X axis, spin around the local Z
// axis. This is the orientation contract of [engine.Handle.SetRotation].
func hprQuat(headingDeg, pitchDeg, spinDeg float32) math32.Quat {
	q := math32.NewQuatAxisAngle(math32.Vec3(0, 0, 1), math32.DegToRad(headingDeg))
	q = q.Mul(math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), math32.DegToRad(pitchDeg)))
	q = q.Mul(math32.NewQuatAxisAngle(math32.Vec3(0, 0, 1), math32.DegToRad(spinDeg)))
	return q
}

// axisOf returns the world direction of an oriented object's local Z axis,
// the long axis of the edge primitives.
func axisOf(headingDeg, pitchDeg, spinDeg float32) math32.Vector3 {
	q := hprQuat(headingDeg, pitchDeg, spinDeg)
	return math32.Vec3(0, 0, 1).MulQuat(q)
}

// bowDirOf returns the world direction an edge primitive bows toward: the
// local X axis, which spin rotates around the long axis.
func bowDirOf(headingDeg, pitchDeg, spinDeg float32) math32.Vector3 {
	q := hprQuat(headingDeg, pitchDeg, spinDeg)
	return math32.Vec3(1, 0, 0).MulQuat(q)
}

// viewBasis is the camera's orthonormal frame in scene coordinates.
type viewBasis struct {
	right   math32.Vector3
	up      math32.Vector3
	forward math32.Vector3
}

// newViewBasis derives the frame from the camera's pitch and heading. At
// zero angles the camera looks down +Y with +Z up, matching the spherical
// rig's rest pose on the -Y axis.
func newViewBasis(pitchDeg, headingDeg float32) viewBasis {
	p := math32.DegToRad(pitchDeg)
	h := math32.DegToRad(headingDeg)
	forward := math32.Vec3(
		-math32.Sin(h)*math32.Cos(p),
		math32.Cos(h)*math32.Cos(p),
		math32.Sin(p),
	)
	right := math32.Vec3(math32.Cos(h), math32.Sin(h), 0)
	return viewBasis{right: right, up: right.Cross(forward), forward: forward}
}

// projector maps scene points onto the screen through a pinhole camera.
type projector struct {
	eye   math32.Vector3
	basis viewBasis
	cx    float32
	cy    float32
	// scale is pixels per unit of tangent, (height/2)/tan(fov/2).
	scale float32
}

func newProjector(eye math32.Vector3, pitchDeg, headingDeg, fovDeg float32, width, height int) projector {
	return projector{
		eye:   eye,
		basis: newViewBasis(pitchDeg, headingDeg),
		cx:    float32(width) / 2,
		cy:    float32(height) / 2,
		scale: float32(height) / 2 / math32.Tan(math32.DegToRad(fovDeg)/2),
	}
}

// point projects a scene point. ok is false when the point sits behind the
// near clip plane.
func (p projector) point(v math32.Vector3) (x, y, depth float32, ok bool) {
	d := v.Sub(p.eye)
	depth = d.Dot(p.basis.forward)
	if depth < nearClip {
		return 0, 0, depth, false
	}
	x = p.cx + d.Dot(p.basis.right)/depth*p.scale
	y = p.cy - d.Dot(p.basis.up)/depth*p.scale
	return x, y, depth, true
}

// sizeAt converts a world-space length at the given depth to pixels.
func (p projector) sizeAt(worldSize, depth float32) float32 {
	return worldSize / depth * p.scale
}
