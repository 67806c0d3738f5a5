package viz

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/charmbracelet/log"

	"github.com/ekalosak/graph3d/pkg/anim"
	"github.com/ekalosak/graph3d/pkg/camera"
	"github.com/ekalosak/graph3d/pkg/engine"
	"github.com/ekalosak/graph3d/pkg/graph"
	"github.com/ekalosak/graph3d/pkg/layout"
	"github.com/ekalosak/graph3d/pkg/scene"
)

// keyboardHelp is shown in the overlay under keyboard camera control.
var keyboardHelp = []string{
	"wasd - move camera around",
	"io - zoom in and out",
}

// mouseHelp is shown when the engine's mouse orbit controls are active.
var mouseHelp = []string{
	"mouse1 drag - move",
	"mouse2 drag - zoom",
	"mouse3 drag - rotate",
}

// RenderContext bundles the collaborators a frame touches. Components
// receive it explicitly; there is no global engine or camera.
type RenderContext struct {
	Engine    engine.Engine
	Scene     *scene.Scene
	Camera    *camera.Rig
	Scheduler *anim.Scheduler
	Logger    *log.Logger
}

// App is an assembled visualization, ready to run.
type App struct {
	rc        RenderContext
	g         *graph.Graph
	opts      Options
	stateTask *anim.Task
	watcher   *settingsWatcher
}

// New lays out the graph, builds the scene, and wires the camera and
// scheduler. The engine must have its primitives available; a missing
// primitive or invalid option fails here rather than mid-frame.
func New(eng engine.Engine, g *graph.Graph, opts Options) (*App, error) {
	if err := opts.validateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.SettingsPath != "" {
		s, err := LoadSettings(opts.SettingsPath)
		if err != nil {
			return nil, err
		}
		s.apply(&opts)
	}

	pos, err := layout.Resolve(g, opts.Layout)
	if err != nil {
		return nil, err
	}
	sc, err := scene.Build(eng, g, pos, opts.sceneOptions())
	if err != nil {
		return nil, err
	}
	for _, l := range opts.Lights {
		if err := eng.AddLight(l); err != nil {
			return nil, err
		}
	}
	if opts.Axes {
		if err := addAxes(eng); err != nil {
			return nil, err
		}
	}

	center, radius := eng.Bounds()
	rig := camera.NewRig(center, radius, eng.FieldOfViewDeg())

	app := &App{
		rc: RenderContext{
			Engine:    eng,
			Scene:     sc,
			Camera:    rig,
			Scheduler: anim.NewScheduler(),
			Logger:    opts.Logger,
		},
		g:    g,
		opts: opts,
	}

	if opts.StateFunc != nil {
		task, err := app.rc.Scheduler.Every(opts.StatePeriod, func(tick int, delay float32) error {
			opts.StateFunc(g, tick, delay)
			return sc.SyncAll()
		})
		if err != nil {
			return nil, err
		}
		app.stateTask = task
	}

	if opts.Mouse {
		eng.SetMouseOrbit(true)
	} else {
		rig.Apply(eng)
		app.rc.Scheduler.EveryFrame(func(_ int, dt float32) error {
			rig.Update(eng.Input(), dt)
			rig.Apply(eng)
			return nil
		})
	}

	if !opts.NoOverlay {
		app.rc.Scheduler.EveryFrame(func(_ int, _ float32) error {
			eng.SetOverlay(app.overlayLines())
			return nil
		})
	}

	if opts.SettingsPath != "" {
		w, err := watchSettings(opts.SettingsPath, opts.Logger)
		if err != nil {
			// A watch failure only loses live reload.
			opts.Logger.Warn("settings watch disabled", "err", err)
		} else {
			app.watcher = w
			app.rc.Scheduler.EveryFrame(func(_ int, _ float32) error {
				if s, ok := w.pending(); ok {
					app.applySettings(s)
				}
				return nil
			})
		}
	}

	return app, nil
}

// Context exposes the app's render context, mainly for tests and embedders.
func (a *App) Context() RenderContext { return a.rc }

// Frame advances the app by one frame of dt seconds. Run calls this; tests
// may call it directly against a fake engine.
func (a *App) Frame(dt float32) error {
	return a.rc.Scheduler.Advance(dt)
}

// Run enters the engine's frame loop and blocks until the window closes or
// a frame fails.
func (a *App) Run() error {
	defer func() {
		if a.watcher != nil {
			a.watcher.stop()
		}
	}()
	a.rc.Logger.Info("starting render loop",
		"nodes", a.g.NodeCount(), "edges", a.g.EdgeCount(), "animated", a.opts.StateFunc != nil)
	return a.rc.Engine.Run(a.Frame)
}

// overlayLines builds the diagnostic text: control help, camera pose, and
// elapsed time.
func (a *App) overlayLines() []string {
	help := keyboardHelp
	if a.opts.Mouse {
		help = mouseHelp
	}
	lines := make([]string, 0, len(help)+3)
	lines = append(lines, help...)
	rig := a.rc.Camera
	p := rig.Position()
	lines = append(lines,
		fmt.Sprintf("camera rotation: (%.1f, %.1f)", rig.PitchDeg(), rig.HeadingDeg()),
		fmt.Sprintf("camera position: (%.1f, %.1f, %.1f)", p.X, p.Y, p.Z),
		fmt.Sprintf("time: %.1fs", a.rc.Scheduler.Elapsed()),
	)
	return lines
}

// applySettings pushes a reloaded settings file into the running scene.
func (a *App) applySettings(s Settings) {
	a.rc.Logger.Info("settings reloaded")
	if a.stateTask != nil && s.StatePeriod > 0 {
		if err := a.stateTask.SetPeriod(s.StatePeriod); err != nil {
			a.rc.Logger.Warn("bad state period in settings", "err", err)
		}
	}
	rig := a.rc.Camera
	rig.ThetaSpeed = s.Camera.ThetaSpeed
	rig.PhiSpeed = s.Camera.PhiSpeed
	rig.ZoomSpeed = s.Camera.ZoomSpeed

	if c := s.nodeColor(); c != nil {
		for _, n := range a.g.Nodes() {
			*n.Attrs.Color = *c
		}
	}
	if c := s.edgeColor(); c != nil {
		for _, e := range a.g.Edges() {
			*e.Attrs.Color = *c
		}
	}
	if err := a.rc.Scene.SyncAll(); err != nil {
		a.rc.Logger.Error("sync after settings reload", "err", err)
	}
}

// Axis geometry: blue Z tallest, green Y, red X smallest, all through the
// origin. The rotations reuse the edge primitive's local Z length.
func addAxes(eng engine.Engine) error {
	axes := []struct {
		color   math32.Vector4
		scale   math32.Vector3
		heading float32
		pitch   float32
		spin    float32
	}{
		{math32.Vec4(0, 0, 1, 1), math32.Vec3(1, 1, 1), 0, 0, 0},
		{math32.Vec4(1, 0, 0, 1), math32.Vec3(0.8, 0.8, 1), -90, -90, 0},
		{math32.Vec4(0, 1, 0, 1), math32.Vec3(0.9, 0.9, 1), 0, -90, 0},
	}
	for _, ax := range axes {
		h, err := eng.LoadPrimitive(engine.PrimitiveEdge)
		if err != nil {
			return err
		}
		h.SetColor(ax.color)
		h.SetScale(ax.scale)
		h.SetPosition(math32.Vector3{})
		h.SetRotation(ax.heading, ax.pitch, ax.spin)
	}
	return nil
}
