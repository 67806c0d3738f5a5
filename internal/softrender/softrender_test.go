package softrender

import (
	"testing"

	"cogentcore.org/core/math32"

	"github.com/ekalosak/graph3d/pkg/camera"
	"github.com/ekalosak/graph3d/pkg/engine"
	"github.com/ekalosak/graph3d/pkg/errors"
	"github.com/ekalosak/graph3d/pkg/spatial"
)

func close3(a, b math32.Vector3, tol float32) bool {
	return math32.Abs(a.X-b.X) < tol && math32.Abs(a.Y-b.Y) < tol && math32.Abs(a.Z-b.Z) < tol
}

// The placement solver emits pitch/heading pairs; the backend must rotate
// the edge primitive's local Z onto the same direction the solver aimed at.
func TestRotationMatchesSolver(t *testing.T) {
	pairs := [][2]math32.Vector3{
		{math32.Vec3(0, 0, 0), math32.Vec3(0, 0, 4)},
		{math32.Vec3(0, 0, 0), math32.Vec3(0, 3, 0)},
		{math32.Vec3(0, 0, 0), math32.Vec3(2, 0, 0)},
		{math32.Vec3(0, 0, 0), math32.Vec3(1, 1, 0)},
		{math32.Vec3(1, 2, 3), math32.Vec3(-2, 0.5, -1)},
		{math32.Vec3(0, 0, 0), math32.Vec3(0, -1, 0)},
		{math32.Vec3(-1, -1, -1), math32.Vec3(1, 1, 1)},
	}
	for _, p := range pairs {
		tr := spatial.Solve(p[0], p[1])
		got := axisOf(tr.HeadingDeg, tr.PitchDeg, tr.SpinDeg)
		want := p[1].Sub(p[0]).Normal()
		if !close3(got, want, 2e-3) {
			t.Errorf("axisOf(Solve(%v, %v)) = %v, want %v", p[0], p[1], got, want)
		}
	}
}

func TestSpinPreservesAxis(t *testing.T) {
	base := axisOf(30, -60, 0)
	for _, spin := range []float32{90, 120, 240} {
		if got := axisOf(30, -60, spin); !close3(got, base, 1e-4) {
			t.Errorf("spin %v moved the long axis: %v vs %v", spin, got, base)
		}
	}
	// The bow direction is what spin rotates.
	b0 := bowDirOf(0, 0, 0)
	b180 := bowDirOf(0, 0, 180)
	if !close3(b180, b0.Negate(), 1e-4) {
		t.Errorf("spin 180 bow = %v, want %v", b180, b0.Negate())
	}
}

// The view basis must stay orthonormal and keep the orbit rig's target (the
// origin) straight ahead.
func TestViewBasisTracksOrbit(t *testing.T) {
	for _, angles := range [][2]float32{{0, 0}, {45, 0}, {0, 30}, {-60, 80}, {200, -45}} {
		rig := camera.Rig{Radius: 10, ThetaDeg: angles[0], PhiDeg: angles[1]}
		b := newViewBasis(rig.PitchDeg(), rig.HeadingDeg())

		want := rig.Position().Negate().Normal()
		if !close3(b.forward, want, 1e-4) {
			t.Errorf("theta=%v phi=%v: forward = %v, want %v", angles[0], angles[1], b.forward, want)
		}
		if d := math32.Abs(b.right.Dot(b.forward)); d > 1e-4 {
			t.Errorf("right not orthogonal to forward: %v", d)
		}
		if d := math32.Abs(b.up.Length() - 1); d > 1e-4 {
			t.Errorf("up not unit length: %v", b.up.Length())
		}
	}
}

func TestProjector(t *testing.T) {
	proj := newProjector(math32.Vec3(0, -10, 0), 0, 0, 45, 1280, 800)

	x, y, depth, ok := proj.point(math32.Vector3{})
	if !ok || x != 640 || y != 400 {
		t.Errorf("origin -> (%v, %v, ok=%v), want screen center", x, y, ok)
	}
	if math32.Abs(depth-10) > 1e-4 {
		t.Errorf("depth = %v, want 10", depth)
	}

	if _, _, _, ok := proj.point(math32.Vec3(0, -20, 0)); ok {
		t.Error("point behind the camera projected")
	}

	rx, _, _, _ := proj.point(math32.Vec3(1, 0, 0))
	if rx <= 640 {
		t.Errorf("+X point at x=%v, want right of center", rx)
	}
	_, uy, _, _ := proj.point(math32.Vec3(0, 0, 1))
	if uy >= 400 {
		t.Errorf("+Z point at y=%v, want above center", uy)
	}

	if proj.sizeAt(1, 5) <= proj.sizeAt(1, 10) {
		t.Error("nearer objects should project larger")
	}
}

func TestLoadPrimitive(t *testing.T) {
	e := New(Options{})
	ids := map[string]bool{}
	for _, id := range []engine.PrimitiveID{
		engine.PrimitiveNode,
		engine.PrimitiveEdge,
		engine.PrimitiveEdgeDirected,
		engine.PrimitiveEdgeBent,
		engine.PrimitiveEdgeDirectedBent,
	} {
		h, err := e.LoadPrimitive(id)
		if err != nil {
			t.Fatalf("LoadPrimitive(%s) = %v", id, err)
		}
		if ids[h.ID()] {
			t.Errorf("duplicate handle id %q", h.ID())
		}
		ids[h.ID()] = true
	}
	if _, err := e.LoadPrimitive("torus"); !errors.Is(err, errors.ErrCodeMissingPrimitive) {
		t.Errorf("LoadPrimitive(torus) = %v, want MISSING_PRIMITIVE", err)
	}
}

func TestAddLight(t *testing.T) {
	e := New(Options{})
	for _, l := range []engine.Light{
		{Kind: engine.LightDirectional, HPR: math32.Vec3(0, -20, 0)},
		{Kind: engine.LightAmbient, Intensity: 0.3},
		{Kind: engine.LightPoint},
	} {
		if err := e.AddLight(l); err != nil {
			t.Fatalf("AddLight(%s) = %v", l.Kind, err)
		}
	}
	if err := e.AddLight(engine.Light{Kind: "laser"}); !errors.Is(err, errors.ErrCodeInvalidLight) {
		t.Errorf("AddLight(laser) = %v, want INVALID_LIGHT", err)
	}
}

func TestBounds(t *testing.T) {
	e := New(Options{})
	if c, r := e.Bounds(); c != (math32.Vector3{}) || r != 1 {
		t.Errorf("empty bounds = %v, %v", c, r)
	}

	for _, p := range []math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(0, 0, 4)} {
		h, err := e.LoadPrimitive(engine.PrimitiveNode)
		if err != nil {
			t.Fatal(err)
		}
		h.SetPosition(p)
	}
	center, radius := e.Bounds()
	if !close3(center, math32.Vec3(0, 0, 2), 1e-4) {
		t.Errorf("center = %v, want (0, 0, 2)", center)
	}
	if radius < 2 {
		t.Errorf("radius = %v, want >= 2", radius)
	}
}

func TestLabelAnchoring(t *testing.T) {
	e := New(Options{})
	h, err := e.LoadPrimitive(engine.PrimitiveNode)
	if err != nil {
		t.Fatal(err)
	}
	h.SetPosition(math32.Vec3(1, 2, 3))
	h.SetScale(math32.Vec3(2, 2, 2))

	parented := e.NewLabel(h, "n", math32.Vec4(0, 1, 0, 1)).(*label)
	parented.SetOffset(math32.Vec3(0, 0, 1.1))
	if got := parented.worldPos(); !close3(got, math32.Vec3(1, 2, 5.2), 1e-4) {
		t.Errorf("parented label at %v, want offset scaled by parent", got)
	}

	free := e.NewLabel(nil, "e", math32.Vec4(0, 1, 0, 1)).(*label)
	free.SetOffset(math32.Vec3(5, 6, 7))
	if got := free.worldPos(); got != math32.Vec3(5, 6, 7) {
		t.Errorf("unparented label at %v, want scene coordinates", got)
	}
}

func TestShade(t *testing.T) {
	e := New(Options{})
	e.SetCamera(math32.Vec3(0, -10, 0), 0, 0)
	white := math32.Vec4(1, 1, 1, 1)

	// No lights: material passes through.
	if c := e.shade(white, math32.Vector3{}); c.R < 250 {
		t.Errorf("unlit shade = %v, want full brightness", c)
	}

	if err := e.AddLight(engine.Light{Kind: engine.LightAmbient, Intensity: 0.3}); err != nil {
		t.Fatal(err)
	}
	c := e.shade(white, math32.Vector3{})
	if c.R < 60 || c.R > 100 {
		t.Errorf("ambient 0.3 shade = %v, want about 30%% brightness", c)
	}
	if c.A < 250 {
		t.Errorf("alpha dimmed by shading: %v", c)
	}
}

func TestMouseOrbitInitializesRadius(t *testing.T) {
	e := New(Options{})
	h, err := e.LoadPrimitive(engine.PrimitiveNode)
	if err != nil {
		t.Fatal(err)
	}
	h.SetPosition(math32.Vec3(0, 0, 3))

	e.SetMouseOrbit(true)
	if e.orbit.radius < camera.MinRadius {
		t.Errorf("orbit radius = %v, want at least MinRadius", e.orbit.radius)
	}
}
