package viz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/core/math32"

	"github.com/ekalosak/graph3d/pkg/engine"
	"github.com/ekalosak/graph3d/pkg/engine/enginetest"
	"github.com/ekalosak/graph3d/pkg/errors"
	"github.com/ekalosak/graph3d/pkg/graph"
)

func TestNewBuildsCompleteScene(t *testing.T) {
	eng := enginetest.New()
	g := graph.Frucht()

	app, err := New(eng, g, Options{})
	if err != nil {
		t.Fatalf("New = %v", err)
	}
	want := g.NodeCount() + g.EdgeCount()
	if eng.HandleCount() != want {
		t.Errorf("handles = %d, want %d", eng.HandleCount(), want)
	}
	if len(eng.Lights) != 4 {
		t.Errorf("lights = %d, want default rig of 4", len(eng.Lights))
	}
	if eng.CameraSets == 0 {
		t.Error("camera never placed")
	}
	if app.Context().Scene == nil || app.Context().Camera == nil {
		t.Error("render context incomplete")
	}
}

func TestStateFunctionPeriodAndSync(t *testing.T) {
	eng := enginetest.New()
	g := graph.Frucht()

	var calls int
	red := math32.Vec4(1, 0, 0, 1)
	app, err := New(eng, g, Options{
		StatePeriod: 0.25,
		StateFunc: func(g *graph.Graph, tick int, delay float32) {
			calls++
			for _, n := range g.Nodes() {
				*n.Attrs.Color = red
			}
		},
	})
	if err != nil {
		t.Fatalf("New = %v", err)
	}

	before := eng.HandleCount()
	for range 10 {
		if err := app.Frame(0.1); err != nil {
			t.Fatalf("Frame = %v", err)
		}
	}
	if calls != 4 {
		t.Errorf("state function ran %d times over 1s at period 0.25, want 4", calls)
	}
	if eng.HandleCount() != before {
		t.Errorf("frame loop created handles: %d -> %d", before, eng.HandleCount())
	}
	if eng.Handles[0].Color != red {
		t.Errorf("sync did not propagate color, got %v", eng.Handles[0].Color)
	}
}

func TestKeyboardCamera(t *testing.T) {
	eng := enginetest.New()
	app, err := New(eng, graph.Frucht(), Options{})
	if err != nil {
		t.Fatalf("New = %v", err)
	}

	eng.Keys.Down[engine.KeyRotateRight] = true
	sets := eng.CameraSets
	if err := app.Frame(0.1); err != nil {
		t.Fatalf("Frame = %v", err)
	}
	if eng.CameraSets <= sets {
		t.Error("camera not re-applied on frame")
	}
	if eng.CameraHeading <= 0 {
		t.Errorf("heading = %v after rotate key, want > 0", eng.CameraHeading)
	}
}

func TestMouseModeDelegates(t *testing.T) {
	eng := enginetest.New()
	app, err := New(eng, graph.Frucht(), Options{Mouse: true})
	if err != nil {
		t.Fatalf("New = %v", err)
	}
	if !eng.MouseOrbit {
		t.Error("mouse orbit not enabled")
	}
	if err := app.Frame(0.1); err != nil {
		t.Fatalf("Frame = %v", err)
	}
	if eng.CameraSets != 0 {
		t.Error("keyboard rig should be inactive under mouse control")
	}
}

func TestAxes(t *testing.T) {
	eng := enginetest.New()
	g := graph.Frucht()
	_, err := New(eng, g, Options{Axes: true})
	if err != nil {
		t.Fatalf("New = %v", err)
	}
	want := g.NodeCount() + g.EdgeCount() + 3
	if eng.HandleCount() != want {
		t.Errorf("handles = %d, want %d with axes", eng.HandleCount(), want)
	}
}

func TestOverlay(t *testing.T) {
	eng := enginetest.New()
	app, err := New(eng, graph.Frucht(), Options{})
	if err != nil {
		t.Fatalf("New = %v", err)
	}
	if err := app.Frame(0.1); err != nil {
		t.Fatalf("Frame = %v", err)
	}
	joined := strings.Join(eng.Overlay, "\n")
	for _, want := range []string{"wasd", "camera rotation", "camera position", "time"} {
		if !strings.Contains(joined, want) {
			t.Errorf("overlay missing %q:\n%s", want, joined)
		}
	}

	quiet := enginetest.New()
	app2, err := New(quiet, graph.Frucht(), Options{NoOverlay: true})
	if err != nil {
		t.Fatalf("New = %v", err)
	}
	_ = app2.Frame(0.1)
	if quiet.Overlay != nil {
		t.Errorf("overlay = %v with NoOverlay", quiet.Overlay)
	}
}

func TestInvalidOptions(t *testing.T) {
	eng := enginetest.New()
	if _, err := New(eng, graph.Frucht(), Options{StatePeriod: -1}); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("negative period = %v, want INVALID_OPTION", err)
	}
	if _, err := New(eng, graph.Frucht(), Options{StatePeriod: 0.5}); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("period without state function = %v, want INVALID_OPTION", err)
	}
}

func TestMissingPrimitiveFailsAtNew(t *testing.T) {
	eng := enginetest.New()
	eng.MissingPrimitives[engine.PrimitiveNode] = true
	if _, err := New(eng, graph.Frucht(), Options{}); !errors.Is(err, errors.ErrCodeMissingPrimitive) {
		t.Errorf("New = %v, want MISSING_PRIMITIVE", err)
	}
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph3d.toml")
	err := os.WriteFile(path, []byte(`
state_period = 0.25
autolabel = true

[camera]
theta_speed = 120.0

[colors]
node = [0.1, 0.2, 0.3, 1.0]
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings = %v", err)
	}
	if s.StatePeriod != 0.25 || !s.AutoLabel || s.Camera.ThetaSpeed != 120 {
		t.Errorf("settings = %+v", s)
	}

	var opts Options
	s.apply(&opts)
	if opts.StatePeriod != 0.25 || !opts.AutoLabel {
		t.Errorf("applied options = %+v", opts)
	}
	if opts.NodeColor == nil || *opts.NodeColor != math32.Vec4(0.1, 0.2, 0.3, 1) {
		t.Errorf("node color = %v", opts.NodeColor)
	}
}

func TestLoadSettingsValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[colors]\nnode = [1.0, 0.0]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); !errors.Is(err, errors.ErrCodeInvalidColor) {
		t.Errorf("LoadSettings = %v, want INVALID_COLOR", err)
	}
	if _, err := LoadSettings(filepath.Join(dir, "absent.toml")); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("LoadSettings absent = %v, want INVALID_OPTION", err)
	}
}
