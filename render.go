package main

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"golang.org/x/image/colornames"
)

// pixelsPerUnit maps world units on the ground plane to screen pixels.
const pixelsPerUnit = 32

// clipTime is how long a played clip stays listed in the debug overlay.
const clipTime = 1.0

type clip struct {
	entity ecs.Entity
	name   string
	left   float64
}

// Presenter collects the parameters the simulation pushes and keeps the
// most recent clips around for the overlay.
type Presenter struct {
	params map[ecs.Entity]map[string]float64
	clips  []clip
}

func NewPresenter() *Presenter {
	return &Presenter{params: make(map[ecs.Entity]map[string]float64)}
}

func (p *Presenter) SetParam(e ecs.Entity, name string, value float64) {
	m := p.params[e]
	if m == nil {
		m = make(map[string]float64)
		p.params[e] = m
	}
	m[name] = value
}

func (p *Presenter) Play(e ecs.Entity, name string) {
	p.clips = append(p.clips, clip{entity: e, name: name, left: clipTime})
}

// Param returns the last value pushed for name, or def if none was.
func (p *Presenter) Param(e ecs.Entity, name string, def float64) float64 {
	if v, ok := p.params[e][name]; ok {
		return v
	}
	return def
}

// Update ages clips and forgets parameters of destroyed entities.
func (p *Presenter) Update(w *ecs.World, dt float64) {
	kept := p.clips[:0]
	for _, c := range p.clips {
		c.left -= dt
		if c.left > 0 {
			kept = append(kept, c)
		}
	}
	p.clips = kept

	for e := range p.params {
		if e != ecs.NoEntity && !w.IsAlive(e) {
			delete(p.params, e)
		}
	}
}

// Renderer draws the world top-down around the camera.
type Renderer struct {
	Presenter *Presenter
	Debug     bool
}

var (
	normalBackground = color.RGBA{R: 0x3b, G: 0x4a, B: 0x36, A: 0xff}
	spiritBackground = color.RGBA{R: 0x1c, G: 0x17, B: 0x3a, A: 0xff}
)

func (r *Renderer) Draw(screen *ebiten.Image, w *ecs.World, camera ecs.Entity) {
	center := common.Vec3{}
	weight := 0.0
	if cam, ok := ecs.Get(w, camera, component.CameraComponent.Kind()); ok {
		center = cam.Position
		weight = cam.SpiritWeight
	}
	screen.Fill(blend(normalBackground, spiritBackground, weight))

	project := func(p common.Vec3) (float32, float32) {
		x := (p.X-center.X)*pixelsPerUnit + common.BaseWidth/2
		y := (p.Z-center.Z)*pixelsPerUnit + common.BaseHeight/2
		return float32(x), float32(y)
	}

	r.drawWalls(screen, w, project)
	r.drawGates(screen, w, project, weight)
	r.drawPickups(screen, w, project)
	r.drawGhouls(screen, w, project)
	r.drawSpiritBalls(screen, w, project)
	r.drawPlayer(screen, w, project)

	if r.Debug {
		r.drawDebug(screen, w)
	}
}

type projector func(common.Vec3) (float32, float32)

func (r *Renderer) drawWalls(screen *ebiten.Image, w *ecs.World, project projector) {
	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, col *component.Collider, tr *component.Transform) {
		if !col.Static {
			return
		}
		x, y := project(common.V3(tr.Position.X-col.HalfX, 0, tr.Position.Z-col.HalfZ))
		wdt := float32(2 * col.HalfX * pixelsPerUnit)
		hgt := float32(2 * col.HalfZ * pixelsPerUnit)
		vector.FillRect(screen, x, y, wdt, hgt, colornames.Darkslategray, false)
		vector.StrokeRect(screen, x, y, wdt, hgt, 1, colornames.Black, false)
	})
}

func (r *Renderer) drawGates(screen *ebiten.Image, w *ecs.World, project projector, weight float64) {
	ecs.ForEach2(w, component.SeedPlotComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, plot *component.SeedPlot, tr *component.Transform) {
		x, y := project(tr.Position)
		clr := color.Color(colornames.Saddlebrown)
		if plot.Planted {
			clr = colornames.Olivedrab
		}
		vector.FillRect(screen, x-10, y-6, 20, 12, clr, false)
	})

	ecs.ForEach2(w, component.BindweedComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bw *component.Bindweed, tr *component.Transform) {
		x, y := project(tr.Position)
		growth := r.Presenter.Param(e, "growth", 0)
		if bw.Grown {
			growth = 1
		}
		height := float32(8 + 48*growth)
		clr := color.Color(colornames.Seagreen)
		if bw.Growable && !bw.Grown {
			clr = blend(colornames.Seagreen, colornames.Mediumpurple, weight)
		}
		vector.FillRect(screen, x-4, y-height, 8, height, clr, false)
		if bw.Grown {
			tx, ty := project(bw.ClimbTo)
			vector.StrokeLine(screen, x, y-height, tx, ty, 1, colornames.Lightgreen, true)
		}
	})
}

func (r *Renderer) drawPickups(screen *ebiten.Image, w *ecs.World, project projector) {
	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Pickup, tr *component.Transform) {
		x, y := project(tr.Position)
		vector.FillCircle(screen, x, y, 4, colornames.Gold, true)
	})
}

func (r *Renderer) drawSpiritBalls(screen *ebiten.Image, w *ecs.World, project projector) {
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, pr *component.Projectile, tr *component.Transform) {
		x, y := project(tr.Position)
		vector.FillCircle(screen, x, y, float32(pr.Radius*pixelsPerUnit)+1, colornames.Lightcyan, true)
	})
}

func (r *Renderer) drawGhouls(screen *ebiten.Image, w *ecs.World, project projector) {
	ecs.ForEach2(w, component.GhoulTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.GhoulTag, tr *component.Transform) {
		opacity := 1.0
		if vis, ok := ecs.Get(w, e, component.VisibilityComponent.Kind()); ok {
			opacity = vis.Opacity
		}
		if opacity <= 0 {
			return
		}
		base := color.Color(colornames.Indianred)
		if r.Presenter.Param(e, "flash", 0) > 0 {
			base = colornames.White
		}
		x, y := project(tr.Position)
		radius := float32(0.4 * pixelsPerUnit)
		if col, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok && col.Radius > 0 {
			radius = float32(col.Radius * pixelsPerUnit)
		}
		vector.FillCircle(screen, x, y, radius, fade(base, opacity), true)
		fx, fy := project(tr.Position.Add(tr.Forward.Scale(0.6)))
		vector.StrokeLine(screen, x, y, fx, fy, 2, fade(colornames.Black, opacity), true)

		if r.Debug {
			r.drawCone(screen, w, e, tr, project)
		}
	})
}

func (r *Renderer) drawCone(screen *ebiten.Image, w *ecs.World, e ecs.Entity, tr *component.Transform, project projector) {
	per, ok := ecs.Get(w, e, component.PerceptionComponent.Kind())
	if !ok {
		return
	}
	heading := math.Atan2(tr.Forward.Z, tr.Forward.X)
	x, y := project(tr.Position)
	for _, a := range []float64{heading - per.HalfAngle, heading + per.HalfAngle} {
		edge := tr.Position.Add(common.V3(math.Cos(a), 0, math.Sin(a)).Scale(per.Radius))
		ex, ey := project(edge)
		vector.StrokeLine(screen, x, y, ex, ey, 1, colornames.Yellow, false)
	}
	vector.StrokeCircle(screen, x, y, float32(per.Radius*pixelsPerUnit), 1, colornames.Yellow, false)
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, w *ecs.World, project projector) {
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Player, tr *component.Transform) {
		human := color.RGBA{R: 0xe0, G: 0xc0, B: 0x90, A: 0xff}
		fox := color.RGBA{R: 0xf0, G: 0x80, B: 0x30, A: 0xff}
		form := 0.0
		if p.Form == component.FormFox {
			form = 1
		}
		clr := blend(human, fox, r.Presenter.Param(e, "form_blend", form))
		if r.Presenter.Param(e, "flash", 0) > 0 {
			clr = colornames.White
		}
		x, y := project(tr.Position)
		radius := float32(math.Max(p.Radius, 0.3) * pixelsPerUnit)
		vector.FillCircle(screen, x, y, radius, clr, true)
		fx, fy := project(tr.Position.Add(tr.Forward.Scale(0.6)))
		vector.StrokeLine(screen, x, y, fx, fy, 2, colornames.Black, true)
	})
}

func (r *Renderer) drawDebug(screen *ebiten.Image, w *ecs.World) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.1f  FPS: %.1f", ebiten.ActualTPS(), ebiten.ActualFPS()), 10, common.BaseHeight-20)

	y := 120
	ecs.ForEach2(w, component.AIStateComponent.Kind(), component.AIContextComponent.Kind(), func(e ecs.Entity, st *component.AIState, ctx *component.AIContext) {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("ghoul %s: %s step=%d visible=%t", e, st.Current, st.Step, ctx.Visible), 10, y)
		y += 14
	})

	names := make([]string, 0, len(r.Presenter.clips))
	for _, c := range r.Presenter.clips {
		names = append(names, fmt.Sprintf("%s %s", c.entity, c.name))
	}
	sort.Strings(names)
	for _, n := range names {
		ebitenutil.DebugPrintAt(screen, n, 10, y)
		y += 14
	}
}

func blend(a, b color.Color, t float64) color.Color {
	t = common.Clamp01(t)
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	mix := func(x, y uint32) uint8 {
		return uint8(common.Lerp(float64(x>>8), float64(y>>8), t))
	}
	return color.RGBA{R: mix(ar, br), G: mix(ag, bg), B: mix(ab, bb), A: mix(aa, ba)}
}

func fade(c color.Color, opacity float64) color.Color {
	r, g, b, a := c.RGBA()
	o := common.Clamp01(opacity)
	return color.RGBA64{
		R: uint16(float64(r) * o),
		G: uint16(float64(g) * o),
		B: uint16(float64(b) * o),
		A: uint16(float64(a) * o),
	}
}
