package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/port"
)

// Collider tags reported through port.Hit.
const (
	TagWall   = "wall"
	TagPlayer = "player"
	TagGhoul  = "ghoul"
)

const (
	categoryWall uint = 1 << iota
	categoryBody
)

// walkableMargin keeps sampled points this far from any wall.
const walkableMargin = 0.5

// PhysicsSystem mirrors every Collider into a chipmunk space on the ground
// plane (world X maps to space X, world Z to space Y) and answers spatial
// queries against it. It never steps the simulation: positions come from
// the transforms, the space is only used for queries.
type PhysicsSystem struct {
	space    *cp.Space
	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
	tag    string
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    cp.NewSpace(),
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = cp.NewSpace()
	}
	if ps.entities == nil {
		ps.entities = make(map[ecs.Entity]*bodyInfo)
	}
	ps.cleanupEntities(w)
	ps.syncEntities(w)
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.ColliderComponent.Kind()) {
			continue
		}
		ps.removeBodyInfo(info)
		delete(ps.entities, e)
	}
}

func (ps *PhysicsSystem) removeBodyInfo(info *bodyInfo) {
	if info == nil {
		return
	}
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
	}
	if !info.static && info.body != nil {
		ps.space.RemoveBody(info.body)
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, col *component.Collider, tr *component.Transform) {
		info := ps.entities[e]
		if info == nil {
			info = ps.createBodyInfo(e, col, tr)
			if info == nil {
				return
			}
			ps.entities[e] = info
		}
		if info.static {
			return
		}
		pos := toSpace(tr.Position)
		if info.body.Position() == pos {
			return
		}
		// re-adding refreshes the shape's bounds in the spatial index
		ps.space.RemoveShape(info.shape)
		info.body.SetPosition(pos)
		ps.space.AddShape(info.shape)
	})
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, col *component.Collider, tr *component.Transform) *bodyInfo {
	center := toSpace(tr.Position)
	info := &bodyInfo{static: col.Static, tag: col.Tag}

	if col.Static {
		if col.HalfX <= 0 || col.HalfZ <= 0 {
			return nil
		}
		bb := cp.BB{L: center.X - col.HalfX, B: center.Y - col.HalfZ, R: center.X + col.HalfX, T: center.Y + col.HalfZ}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.Filter = cp.ShapeFilter{Group: cp.NO_GROUP, Categories: categoryWall, Mask: cp.ALL_CATEGORIES}
		shape.UserData = e
		ps.space.AddShape(shape)
		if info.tag == "" {
			info.tag = TagWall
		}
		info.body = ps.space.StaticBody
		info.shape = shape
		return info
	}

	if col.Radius <= 0 {
		return nil
	}
	body := ps.space.AddBody(cp.NewKinematicBody())
	body.SetPosition(center)
	shape := cp.NewCircle(body, col.Radius, cp.Vector{})
	shape.Filter = cp.ShapeFilter{Group: cp.NO_GROUP, Categories: categoryBody, Mask: cp.ALL_CATEGORIES}
	shape.UserData = e
	ps.space.AddShape(shape)

	info.body = body
	info.shape = shape
	return info
}

// Raycast returns the first collider struck along dir within maxDist.
// Shapes that contain the origin are skipped, so a body's own collider never
// blocks its rays. A ray starting on a wall's surface still hits the wall.
func (ps *PhysicsSystem) Raycast(origin, dir common.Vec3, maxDist float64) (port.Hit, bool) {
	if ps == nil || ps.space == nil || maxDist <= 0 {
		return port.Hit{}, false
	}
	d := dir.Flat().Normalize()
	if d.Len() == 0 {
		return port.Hit{}, false
	}
	start := toSpace(origin)
	end := toSpace(origin.Add(d.Scale(maxDist)))

	var first *cp.Shape
	var point, normal cp.Vector
	best := 2.0
	ps.space.SegmentQuery(start, end, 0, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, p, n cp.Vector, alpha float64, _ interface{}) {
		if alpha >= best {
			return
		}
		if shape.PointQuery(start).Distance < 0 {
			return
		}
		first, point, normal, best = shape, p, n, alpha
	}, nil)
	if first == nil {
		return port.Hit{}, false
	}

	e, _ := first.UserData.(ecs.Entity)
	hit := port.Hit{
		Point:  fromSpace(point, origin.Y),
		Normal: fromSpace(normal, 0),
		Entity: e,
	}
	if b := ps.entities[e]; b != nil {
		hit.Tag = b.tag
	}
	return hit, true
}

func (ps *PhysicsSystem) SphereOverlap(a, b port.Sphere) bool {
	return port.SpheresOverlap(a, b)
}

// SampleWalkable nudges near out of any wall it lands in or next to.
func (ps *PhysicsSystem) SampleWalkable(near common.Vec3, radius float64) common.Vec3 {
	if ps == nil || ps.space == nil {
		return near
	}
	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: categoryWall}
	q := ps.space.PointQueryNearest(toSpace(near), walkableMargin, filter)
	if q == nil || q.Shape == nil || q.Distance >= walkableMargin {
		return near
	}
	out := q.Point.Add(q.Gradient.Mult(walkableMargin))
	p := fromSpace(out, near.Y)
	if radius > 0 && p.Dist(near) > radius {
		return near
	}
	return p
}

func toSpace(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

func fromSpace(v cp.Vector, y float64) common.Vec3 {
	return common.Vec3{X: v.X, Y: y, Z: v.Y}
}
