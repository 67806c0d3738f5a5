// Package softrender is the built-in rendering backend: a software
// perspective projection drawn with ebiten's 2D vector primitives.
//
// It implements the [engine.Engine] contract without any scene-graph
// dependency. Objects are kept in a flat list, projected through a pinhole
// camera each frame, depth-sorted, and painted back to front. Nodes become
// shaded discs, edges stroked lines (bowed for the bent variants, tipped
// for the directed ones), labels screen-space text. It is not a
// photorealistic renderer; it is the smallest engine that honors the
// contract.
package softrender

import (
	stderrors "errors"
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ekalosak/graph3d/pkg/camera"
	"github.com/ekalosak/graph3d/pkg/engine"
	"github.com/ekalosak/graph3d/pkg/errors"
)

const (
	defaultWidth  = 1280
	defaultHeight = 800
	defaultTitle  = "graph3d"

	// fieldOfViewDeg is the vertical field of view.
	fieldOfViewDeg float32 = 45

	// tps is the fixed simulation rate; frame deltas are 1/tps.
	tps = 60
)

// Options configures the window. Zero values fall back to defaults.
type Options struct {
	Width  int
	Height int
	Title  string
}

// Engine is the software-projection backend. Not safe for concurrent use;
// the renderer calls it only from the frame loop's goroutine.
type Engine struct {
	width  int
	height int
	title  string

	seq     int
	objects []*object
	labels  []*label
	lights  []engine.Light

	camPos     math32.Vector3
	camPitch   float32
	camHeading float32

	mouseOrbit bool
	orbit      orbitState

	overlay []string
}

// New creates an engine. The window opens when Run is called.
func New(opts Options) *Engine {
	e := &Engine{
		width:  opts.Width,
		height: opts.Height,
		title:  opts.Title,
	}
	if e.width <= 0 {
		e.width = defaultWidth
	}
	if e.height <= 0 {
		e.height = defaultHeight
	}
	if e.title == "" {
		e.title = defaultTitle
	}
	return e
}

// object is one placed primitive instance.
type object struct {
	prim    engine.PrimitiveID
	id      string
	pos     math32.Vector3
	scale   math32.Vector3
	heading float32
	pitch   float32
	spin    float32
	color   math32.Vector4
}

func (o *object) ID() string                   { return o.id }
func (o *object) SetPosition(p math32.Vector3) { o.pos = p }
func (o *object) SetScale(s math32.Vector3)    { o.scale = s }
func (o *object) SetColor(c math32.Vector4)    { o.color = c }
func (o *object) SetRotation(h, p, spin float32) {
	o.heading, o.pitch, o.spin = h, p, spin
}

// label is a screen-space text object, optionally following a parent.
type label struct {
	parent *object
	text   string
	color  math32.Vector4
	offset math32.Vector3
	scale  float32
}

func (l *label) SetText(s string)           { l.text = s }
func (l *label) SetColor(c math32.Vector4)  { l.color = c }
func (l *label) SetOffset(p math32.Vector3) { l.offset = p }
func (l *label) SetScale(s float32)         { l.scale = s }

// worldPos resolves the label anchor: parent-relative offsets scale with the
// parent, unparented offsets are scene coordinates.
func (l *label) worldPos() math32.Vector3 {
	if l.parent == nil {
		return l.offset
	}
	return l.parent.pos.Add(l.offset.Mul(l.parent.scale))
}

var knownPrimitives = map[engine.PrimitiveID]bool{
	engine.PrimitiveNode:             true,
	engine.PrimitiveEdge:             true,
	engine.PrimitiveEdgeDirected:     true,
	engine.PrimitiveEdgeBent:         true,
	engine.PrimitiveEdgeDirectedBent: true,
}

// LoadPrimitive instantiates a primitive at the origin with unit scale and
// an opaque white material.
func (e *Engine) LoadPrimitive(id engine.PrimitiveID) (engine.Handle, error) {
	if !knownPrimitives[id] {
		return nil, errors.New(errors.ErrCodeMissingPrimitive, "no model for primitive %q", id)
	}
	e.seq++
	o := &object{
		prim:  id,
		id:    fmt.Sprintf("%s#%d", id, e.seq),
		scale: math32.Vec3(1, 1, 1),
		color: math32.Vec4(1, 1, 1, 1),
	}
	e.objects = append(e.objects, o)
	return o, nil
}

// NewLabel creates a text object. Parent handles must come from this engine.
func (e *Engine) NewLabel(parent engine.Handle, text string, color math32.Vector4) engine.Label {
	p, _ := parent.(*object)
	l := &label{parent: p, text: text, color: color, scale: 1}
	e.labels = append(e.labels, l)
	return l
}

// AddLight registers a light with the shading pass.
func (e *Engine) AddLight(l engine.Light) error {
	switch l.Kind {
	case engine.LightDirectional, engine.LightAmbient, engine.LightPoint:
	default:
		return errors.New(errors.ErrCodeInvalidLight, "unsupported light kind %q", l.Kind)
	}
	e.lights = append(e.lights, l)
	return nil
}

// Bounds returns the center and radius of the placed geometry. An empty
// scene reports a unit sphere at the origin.
func (e *Engine) Bounds() (math32.Vector3, float32) {
	if len(e.objects) == 0 {
		return math32.Vector3{}, 1
	}
	box := math32.B3Empty()
	for _, o := range e.objects {
		box.ExpandByPoint(o.pos)
	}
	center := box.Center()
	var radius float32
	for _, o := range e.objects {
		radius = math32.Max(radius, o.pos.Sub(center).Length()+o.scale.Length())
	}
	return center, math32.Max(radius, 1)
}

func (e *Engine) FieldOfViewDeg() float32 { return fieldOfViewDeg }

func (e *Engine) SetCamera(pos math32.Vector3, pitchDeg, headingDeg float32) {
	e.camPos = pos
	e.camPitch = pitchDeg
	e.camHeading = headingDeg
}

// SetMouseOrbit switches to the engine's own orbit controls: left drag
// rotates, the wheel zooms. The orbit starts at the fitted distance.
func (e *Engine) SetMouseOrbit(enabled bool) {
	e.mouseOrbit = enabled
	if enabled && e.orbit.radius == 0 {
		center, radius := e.Bounds()
		e.orbit.radius = camera.InitialRadius(center, radius, fieldOfViewDeg)
	}
}

func (e *Engine) SetOverlay(lines []string) { e.overlay = lines }

func (e *Engine) Input() engine.Input { return keyboard{} }

// keymap binds the abstract camera keys to the physical layout.
var keymap = map[engine.Key]ebiten.Key{
	engine.KeyRotateLeft:  ebiten.KeyA,
	engine.KeyRotateRight: ebiten.KeyD,
	engine.KeyTiltUp:      ebiten.KeyW,
	engine.KeyTiltDown:    ebiten.KeyS,
	engine.KeyZoomIn:      ebiten.KeyI,
	engine.KeyZoomOut:     ebiten.KeyO,
}

type keyboard struct{}

func (keyboard) Pressed(k engine.Key) bool {
	ek, ok := keymap[k]
	return ok && ebiten.IsKeyPressed(ek)
}

// Run opens the window and drives the frame callback at the fixed tick
// rate. A closed window returns nil; a frame error is propagated.
func (e *Engine) Run(frame func(dt float32) error) error {
	ebiten.SetWindowSize(e.width, e.height)
	ebiten.SetWindowTitle(e.title)
	ebiten.SetTPS(tps)
	err := ebiten.RunGame(&game{engine: e, frame: frame})
	if stderrors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// game adapts the engine to ebiten's fixed-step loop.
type game struct {
	engine *Engine
	frame  func(dt float32) error
}

func (g *game) Update() error {
	if g.engine.mouseOrbit {
		g.engine.updateOrbit()
	}
	return g.frame(1.0 / float32(tps))
}

func (g *game) Draw(screen *ebiten.Image) { g.engine.draw(screen) }

func (g *game) Layout(int, int) (int, int) { return g.engine.width, g.engine.height }

// orbitState is the engine-owned spherical camera used under mouse control.
type orbitState struct {
	radius   float32
	thetaDeg float32
	phiDeg   float32
	lastX    int
	lastY    int
	dragging bool
}

// orbit sensitivity, degrees per pixel and units per wheel notch.
const (
	orbitDegPerPx    float32 = 0.4
	orbitZoomPerTick float32 = 1.5
)

func (e *Engine) updateOrbit() {
	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if e.orbit.dragging {
			e.orbit.thetaDeg += float32(x-e.orbit.lastX) * orbitDegPerPx
			e.orbit.phiDeg += float32(y-e.orbit.lastY) * orbitDegPerPx
			e.orbit.phiDeg = math32.Clamp(e.orbit.phiDeg, -89, 89)
		}
		e.orbit.dragging = true
		e.orbit.lastX, e.orbit.lastY = x, y
	} else {
		e.orbit.dragging = false
	}
	_, wheelY := ebiten.Wheel()
	e.orbit.radius = math32.Max(e.orbit.radius-float32(wheelY)*orbitZoomPerTick, camera.MinRadius)

	theta := math32.DegToRad(e.orbit.thetaDeg)
	phi := math32.DegToRad(e.orbit.phiDeg)
	e.camPos = math32.Vec3(
		e.orbit.radius*math32.Sin(theta)*math32.Cos(phi),
		-e.orbit.radius*math32.Cos(theta)*math32.Cos(phi),
		e.orbit.radius*math32.Sin(phi),
	)
	e.camPitch = -e.orbit.phiDeg
	e.camHeading = e.orbit.thetaDeg
}
