package spatial

import (
	"testing"

	"cogentcore.org/core/math32"
)

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

func checkFinite(t *testing.T, tr Transform) {
	t.Helper()
	for name, f := range map[string]float32{
		"ScaleZ":     tr.ScaleZ,
		"PitchDeg":   tr.PitchDeg,
		"HeadingDeg": tr.HeadingDeg,
		"SpinDeg":    tr.SpinDeg,
	} {
		if !finite(f) {
			t.Errorf("%s = %v, want finite", name, f)
		}
	}
}

func TestSolveScale(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 math32.Vector3
		scale  float32
	}{
		{"unit x", math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), 0.5},
		{"axis z", math32.Vec3(0, 0, 0), math32.Vec3(0, 0, 4), 2},
		{"diagonal", math32.Vec3(0, 0, 0), math32.Vec3(1, 1, 1), math32.Sqrt(3) / 2},
		{"offset", math32.Vec3(1, 2, 3), math32.Vec3(1, 2, 7), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Solve(tt.p0, tt.p1)
			if math32.Abs(tr.ScaleZ-tt.scale) > 1e-5 {
				t.Errorf("ScaleZ = %v, want %v", tr.ScaleZ, tt.scale)
			}
			if tr.ScaleZ <= 0 {
				t.Errorf("ScaleZ = %v, want > 0", tr.ScaleZ)
			}
			if tr.Position != tt.p0 {
				t.Errorf("Position = %v, want %v", tr.Position, tt.p0)
			}
		})
	}
}

func TestSolvePitchSign(t *testing.T) {
	tests := []struct {
		name     string
		p1       math32.Vector3
		negative bool
	}{
		{"dy positive", math32.Vec3(1, 2, 1), true},
		{"dy negative", math32.Vec3(1, -2, 1), false},
		{"dy zero substitutes positive eps", math32.Vec3(1, 0, 1), true},
	}
	p0 := math32.Vec3(0, 0, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Solve(p0, tt.p1)
			if tt.negative && tr.PitchDeg >= 0 {
				t.Errorf("PitchDeg = %v, want < 0", tr.PitchDeg)
			}
			if !tt.negative && tr.PitchDeg < 0 {
				t.Errorf("PitchDeg = %v, want >= 0", tr.PitchDeg)
			}
		})
	}
}

func TestSolveAxisAligned(t *testing.T) {
	// Purely Z-aligned endpoints: x and y deltas are zero and get the
	// epsilon substitution. Everything must stay finite and the residual
	// angles tiny.
	tr := Solve(math32.Vec3(0, 0, 0), math32.Vec3(0, 0, 4))
	checkFinite(t, tr)
	if math32.Abs(tr.ScaleZ-2) > 1e-5 {
		t.Errorf("ScaleZ = %v, want 2", tr.ScaleZ)
	}
	if math32.Abs(tr.PitchDeg) > 0.1 {
		t.Errorf("PitchDeg = %v, want near 0", tr.PitchDeg)
	}
	if math32.Abs(tr.HeadingDeg) > 46 {
		t.Errorf("HeadingDeg = %v, want small", tr.HeadingDeg)
	}
}

func TestSolveDiagonal(t *testing.T) {
	tr := Solve(math32.Vec3(0, 0, 0), math32.Vec3(1, 1, 1))
	if tr.PitchDeg >= 0 {
		t.Errorf("PitchDeg = %v, want < 0 for dy > 0", tr.PitchDeg)
	}
	if math32.Abs(tr.HeadingDeg-(-45)) > 1e-3 {
		t.Errorf("HeadingDeg = %v, want -45", tr.HeadingDeg)
	}
}

func TestSolveDegenerateAxes(t *testing.T) {
	// Any combination of zero delta components must not produce NaN/Inf.
	points := []math32.Vector3{
		math32.Vec3(1, 0, 0),
		math32.Vec3(0, 1, 0),
		math32.Vec3(0, 0, 1),
		math32.Vec3(1, 1, 0),
		math32.Vec3(0, 1, 1),
		math32.Vec3(1, 0, 1),
	}
	for _, p1 := range points {
		tr := Solve(math32.Vec3(0, 0, 0), p1)
		checkFinite(t, tr)
	}
}

func TestSolveCoincident(t *testing.T) {
	// Coincident endpoints violate the caller contract but must recover
	// via epsilon substitution instead of failing.
	p := math32.Vec3(2, 2, 2)
	tr := Solve(p, p)
	checkFinite(t, tr)
	if tr.ScaleZ <= 0 {
		t.Errorf("ScaleZ = %v, want > 0", tr.ScaleZ)
	}
}

func TestFanOut(t *testing.T) {
	base := Solve(math32.Vec3(0, 0, 0), math32.Vec3(1, 1, 1))

	seen := map[float32]bool{}
	for i := range 3 {
		tr := FanOut(base, i, 3, 360)
		if seen[tr.SpinDeg] {
			t.Errorf("duplicate spin %v for index %d", tr.SpinDeg, i)
		}
		seen[tr.SpinDeg] = true
		if tr.SpinDeg < 0 || tr.SpinDeg >= 360 {
			t.Errorf("SpinDeg = %v, want in [0, 360)", tr.SpinDeg)
		}
		// Fan-out only spins; the base alignment must be untouched.
		if tr.PitchDeg != base.PitchDeg || tr.HeadingDeg != base.HeadingDeg {
			t.Errorf("fan-out changed base rotation: %+v", tr)
		}
	}

	// Single edge bundles are passed through unchanged.
	if got := FanOut(base, 0, 1, 360); got != base {
		t.Errorf("FanOut with count 1 = %+v, want unchanged", got)
	}
}

func TestMidpoint(t *testing.T) {
	m := Midpoint(math32.Vec3(0, 0, 0), math32.Vec3(2, 4, 6))
	if m != math32.Vec3(1, 2, 3) {
		t.Errorf("Midpoint = %v, want (1 2 3)", m)
	}
}

func TestLookAtAlignsZ(t *testing.T) {
	p0 := math32.Vec3(0, 0, 0)
	p1 := math32.Vec3(3, -2, 5)
	q := LookAt(p0, p1)

	got := math32.Vec3(0, 0, 1).MulQuat(q)
	want := p1.Sub(p0).Normal()
	if got.Sub(want).Length() > 1e-4 {
		t.Errorf("rotated Z = %v, want %v", got, want)
	}
}
