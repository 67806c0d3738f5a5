package softrender

import (
	"image/color"
	"sort"

	"cogentcore.org/core/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/ekalosak/graph3d/pkg/engine"
	"github.com/ekalosak/graph3d/pkg/spatial"
)

var background = color.RGBA{R: 12, G: 12, B: 20, A: 255}

var labelFace = text.NewGoXFace(basicfont.Face7x13)

// edgeRadius is the world-space half-thickness of edge primitives at unit
// scale; bowAmount bows bent edges as a fraction of their length.
const (
	edgeRadius float32 = 0.08
	bowAmount  float32 = 0.25
	bowSteps           = 8
)

// drawItem is one paintable piece of the scene with its camera-space depth.
type drawItem struct {
	depth float32
	paint func(dst *ebiten.Image)
}

// draw renders the scene back to front: geometry depth-sorted, then labels,
// then the overlay text.
func (e *Engine) draw(screen *ebiten.Image) {
	screen.Fill(background)
	proj := newProjector(e.camPos, e.camPitch, e.camHeading, fieldOfViewDeg, e.width, e.height)

	items := make([]drawItem, 0, len(e.objects))
	for _, o := range e.objects {
		var it drawItem
		var ok bool
		if o.prim == engine.PrimitiveNode {
			it, ok = e.nodeItem(proj, o)
		} else {
			it, ok = e.edgeItem(proj, o)
		}
		if ok {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].depth > items[j].depth })
	for _, it := range items {
		it.paint(screen)
	}

	for _, l := range e.labels {
		e.paintLabel(screen, proj, l)
	}
	for i, line := range e.overlay {
		ebitenutil.DebugPrintAt(screen, line, 8, 8+16*i)
	}
}

func (e *Engine) nodeItem(proj projector, o *object) (drawItem, bool) {
	x, y, depth, ok := proj.point(o.pos)
	if !ok {
		return drawItem{}, false
	}
	r := proj.sizeAt(0.5*o.scale.X, depth)
	clr := e.shade(o.color, o.pos)
	return drawItem{depth: depth, paint: func(dst *ebiten.Image) {
		vector.DrawFilledCircle(dst, x, y, r, clr, true)
	}}, true
}

func (e *Engine) edgeItem(proj projector, o *object) (drawItem, bool) {
	axis := axisOf(o.heading, o.pitch, o.spin)
	length := o.scale.Z * spatial.PrimitiveLength
	p0 := o.pos
	p1 := o.pos.Add(axis.MulScalar(length))
	mid := spatial.Midpoint(p0, p1)

	_, _, depth, ok := proj.point(mid)
	if !ok {
		return drawItem{}, false
	}
	width := math32.Max(proj.sizeAt(edgeRadius*o.scale.X*2, depth), 1)
	clr := e.shade(o.color, mid)

	var pts []math32.Vector3
	switch o.prim {
	case engine.PrimitiveEdgeBent, engine.PrimitiveEdgeDirectedBent:
		pts = bowPoints(p0, p1, bowDirOf(o.heading, o.pitch, o.spin), length)
	default:
		pts = []math32.Vector3{p0, p1}
	}
	directed := o.prim == engine.PrimitiveEdgeDirected || o.prim == engine.PrimitiveEdgeDirectedBent

	return drawItem{depth: depth, paint: func(dst *ebiten.Image) {
		paintPolyline(dst, proj, pts, width, clr)
		if directed {
			paintArrowhead(dst, proj, pts, width, clr)
		}
	}}, true
}

// bowPoints samples the bowed centerline of a bent edge. The bow bulges
// along the spun local X axis, leaving the endpoints fixed so parallel
// edges fan out around their shared axis.
func bowPoints(p0, p1, bowDir math32.Vector3, length float32) []math32.Vector3 {
	pts := make([]math32.Vector3, 0, bowSteps+1)
	for i := 0; i <= bowSteps; i++ {
		t := float32(i) / bowSteps
		p := p0.Lerp(p1, t)
		p = p.Add(bowDir.MulScalar(bowAmount * length * math32.Sin(math32.Pi*t)))
		pts = append(pts, p)
	}
	return pts
}

func paintPolyline(dst *ebiten.Image, proj projector, pts []math32.Vector3, width float32, clr color.RGBA) {
	for i := 0; i+1 < len(pts); i++ {
		x0, y0, _, ok0 := proj.point(pts[i])
		x1, y1, _, ok1 := proj.point(pts[i+1])
		if !ok0 || !ok1 {
			continue
		}
		vector.StrokeLine(dst, x0, y0, x1, y1, width, clr, true)
	}
}

// paintArrowhead draws two wings at the far endpoint, angled back along the
// final screen-space segment.
func paintArrowhead(dst *ebiten.Image, proj projector, pts []math32.Vector3, width float32, clr color.RGBA) {
	tail := pts[len(pts)-2]
	tip := pts[len(pts)-1]
	x0, y0, _, ok0 := proj.point(tail)
	x1, y1, _, ok1 := proj.point(tip)
	if !ok0 || !ok1 {
		return
	}
	dx, dy := x1-x0, y1-y0
	n := math32.Sqrt(dx*dx + dy*dy)
	if n == 0 {
		return
	}
	dx, dy = dx/n, dy/n
	size := math32.Max(3*width, 6)
	// Wings at 150 degrees off the incoming direction.
	const cosW, sinW = -0.866, 0.5
	wx0 := dx*cosW - dy*sinW
	wy0 := dx*sinW + dy*cosW
	wx1 := dx*cosW + dy*sinW
	wy1 := -dx*sinW + dy*cosW
	vector.StrokeLine(dst, x1, y1, x1+wx0*size, y1+wy0*size, width, clr, true)
	vector.StrokeLine(dst, x1, y1, x1+wx1*size, y1+wy1*size, width, clr, true)
}

func (e *Engine) paintLabel(dst *ebiten.Image, proj projector, l *label) {
	if l.text == "" {
		return
	}
	x, y, _, ok := proj.point(l.worldPos())
	if !ok {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(rgba(l.color))
	text.Draw(dst, l.text, labelFace, op)
}

// shade applies the light rig to a material color with a camera-facing
// normal, a flat approximation that keeps depth readable without real
// surface normals.
func (e *Engine) shade(c math32.Vector4, at math32.Vector3) color.RGBA {
	n := e.camPos.Sub(at)
	if n.Length() == 0 {
		return rgba(c)
	}
	n = n.Normal()

	var intensity float32
	for _, l := range e.lights {
		switch l.Kind {
		case engine.LightAmbient:
			intensity += l.Intensity
		case engine.LightDirectional:
			// Directional lights travel along their local +Y.
			dir := math32.Vec3(0, 1, 0).MulQuat(hprQuat(l.HPR.X, l.HPR.Y, l.HPR.Z))
			intensity += 0.7 * math32.Max(0, n.Dot(dir.Negate()))
		case engine.LightPoint:
			d := l.Pos.Sub(at)
			dist := d.Length()
			if dist > 0 {
				intensity += math32.Max(0, n.Dot(d.Normal())) / (1 + 0.1*dist)
			}
		}
	}
	if len(e.lights) == 0 {
		intensity = 1
	}
	intensity = math32.Clamp(intensity, 0.15, 1)
	return rgba(math32.Vec4(c.X*intensity, c.Y*intensity, c.Z*intensity, c.W))
}

func rgba(c math32.Vector4) color.RGBA {
	conv := func(f float32) uint8 {
		return uint8(math32.Clamp(f, 0, 1) * 254.99)
	}
	return color.RGBA{R: conv(c.X), G: conv(c.Y), B: conv(c.Z), A: conv(c.W)}
}
