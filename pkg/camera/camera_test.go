package camera

import (
	"testing"

	"cogentcore.org/core/math32"

	"github.com/ekalosak/graph3d/pkg/engine"
	"github.com/ekalosak/graph3d/pkg/engine/enginetest"
)

func TestInitialRadius(t *testing.T) {
	// Centered unit scene, 45 degree fov: (0+1)/tan(45) * 1.75 = 1.75,
	// clamped up to the minimum approach distance.
	if got := InitialRadius(math32.Vector3{}, 1, 45); got != MinRadius {
		t.Errorf("InitialRadius = %v, want clamped to %v", got, MinRadius)
	}

	got := InitialRadius(math32.Vec3(3, 0, 0), 5, 45)
	want := float32(8) / math32.Tan(math32.DegToRad(45)) * 1.75
	if math32.Abs(got-want) > 1e-4 {
		t.Errorf("InitialRadius = %v, want %v", got, want)
	}
}

func TestPositionAtRest(t *testing.T) {
	r := &Rig{Radius: 10}
	if p := r.Position(); p != math32.Vec3(0, -10, 0) {
		t.Errorf("rest position = %v, want (0 -10 0)", p)
	}
	if r.PitchDeg() != 0 || r.HeadingDeg() != 0 {
		t.Errorf("rest orientation = (%v, %v), want (0, 0)", r.PitchDeg(), r.HeadingDeg())
	}
}

// The rig must always look back at the origin: the forward vector implied
// by (pitch, heading) is the negated unit position.
func TestAlwaysPointsAtOrigin(t *testing.T) {
	angles := []struct{ theta, phi float32 }{
		{0, 0}, {30, 0}, {0, 45}, {120, -60}, {-90, 80}, {200, 10},
	}
	for _, a := range angles {
		r := &Rig{Radius: 7, ThetaDeg: a.theta, PhiDeg: a.phi}
		h := math32.DegToRad(r.HeadingDeg())
		p := math32.DegToRad(r.PitchDeg())
		forward := math32.Vec3(
			-math32.Sin(h)*math32.Cos(p),
			math32.Cos(h)*math32.Cos(p),
			math32.Sin(p),
		)
		back := r.Position().Normal().MulScalar(-1)
		if forward.Sub(back).Length() > 1e-4 {
			t.Errorf("theta=%v phi=%v: forward %v != -pos %v", a.theta, a.phi, forward, back)
		}
	}
}

func TestUpdateSpeeds(t *testing.T) {
	eng := enginetest.New()
	r := &Rig{Radius: 10}

	eng.Keys.Down[engine.KeyRotateRight] = true
	r.Update(eng.Input(), 0.5)
	if r.ThetaDeg != ThetaSpeedDeg*0.5 {
		t.Errorf("theta = %v, want %v", r.ThetaDeg, ThetaSpeedDeg*0.5)
	}

	eng.Keys.Down = map[engine.Key]bool{engine.KeyTiltUp: true}
	r2 := &Rig{Radius: 10}
	r2.Update(eng.Input(), 0.25)
	if r2.PhiDeg != PhiSpeedDeg*0.25 {
		t.Errorf("phi = %v, want %v", r2.PhiDeg, PhiSpeedDeg*0.25)
	}

	eng.Keys.Down = map[engine.Key]bool{engine.KeyZoomOut: true}
	r3 := &Rig{Radius: 10}
	r3.Update(eng.Input(), 1)
	if r3.Radius != 10+RadiusSpeed {
		t.Errorf("radius = %v, want %v", r3.Radius, 10+RadiusSpeed)
	}
}

func TestOppositeKeysCancel(t *testing.T) {
	eng := enginetest.New()
	eng.Keys.Down[engine.KeyRotateLeft] = true
	eng.Keys.Down[engine.KeyRotateRight] = true
	r := &Rig{Radius: 10}
	r.Update(eng.Input(), 1)
	if r.ThetaDeg != 0 {
		t.Errorf("theta = %v with both rotate keys held, want 0", r.ThetaDeg)
	}
}

func TestZoomClampsAtMinRadius(t *testing.T) {
	eng := enginetest.New()
	eng.Keys.Down[engine.KeyZoomIn] = true
	r := &Rig{Radius: 5}
	for range 100 {
		r.Update(eng.Input(), 0.1)
	}
	if r.Radius != MinRadius {
		t.Errorf("radius = %v, want clamped at %v", r.Radius, MinRadius)
	}
}

func TestApply(t *testing.T) {
	eng := enginetest.New()
	r := &Rig{Radius: 10, ThetaDeg: 45, PhiDeg: 30}
	r.Apply(eng)
	if eng.CameraSets != 1 {
		t.Fatalf("CameraSets = %d, want 1", eng.CameraSets)
	}
	if eng.CameraPitch != -30 || eng.CameraHeading != 45 {
		t.Errorf("camera orientation = (%v, %v), want (-30, 45)", eng.CameraPitch, eng.CameraHeading)
	}
	if eng.CameraPos != r.Position() {
		t.Errorf("camera pos = %v, want %v", eng.CameraPos, r.Position())
	}
}
