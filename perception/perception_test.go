package perception

import (
	"math"
	"testing"

	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/port"
)

// rayStub returns a fixed first hit for every ray.
type rayStub struct {
	port.Nop
	hit   port.Hit
	ok    bool
	calls int
}

func (r *rayStub) Raycast(common.Vec3, common.Vec3, float64) (port.Hit, bool) {
	r.calls++
	return r.hit, r.ok
}

const (
	targetEnt  ecs.Entity = 7
	blockerEnt ecs.Entity = 9
)

func observer() Observer {
	return Observer{Position: common.V3(0, 0, 0), Forward: common.V3(0, 0, 1)}
}

func atAngle(deg, dist float64) common.Vec3 {
	rad := deg * math.Pi / 180
	return common.V3(math.Sin(rad)*dist, 0, math.Cos(rad)*dist)
}

func TestCanSee(t *testing.T) {
	cone := Cone{HalfAngle: 45, Radius: 10}
	clear := &rayStub{hit: port.Hit{Entity: targetEnt}, ok: true}
	blocked := &rayStub{hit: port.Hit{Entity: blockerEnt}, ok: true}
	miss := &rayStub{}

	tests := []struct {
		name    string
		pos     common.Vec3
		spatial port.Spatial
		want    bool
	}{
		{"straight_ahead", common.V3(0, 0, 5), clear, true},
		{"inside_angle", atAngle(30, 5), clear, true},
		{"outside_angle", atAngle(60, 5), clear, false},
		{"behind", common.V3(0, 0, -5), clear, false},
		{"beyond_radius", common.V3(0, 0, 11), clear, false},
		{"exactly_on_radius", common.V3(0, 0, 10), clear, false},
		{"occluded", common.V3(0, 0, 5), blocked, false},
		{"ray_hits_nothing", common.V3(0, 0, 5), miss, false},
		{"no_spatial_service", common.V3(0, 0, 5), nil, true},
		{"same_position", common.V3(0, 0, 0), clear, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CanSee(observer(), cone, Target{Entity: targetEnt, Position: tc.pos}, tc.spatial)
			if got != tc.want {
				t.Fatalf("CanSee = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestConeBoundaryAngleIsExclusive(t *testing.T) {
	obs := observer()
	target := atAngle(30, 5)
	exact := common.AngleBetween(obs.Forward, target)
	if InCone(obs, Cone{HalfAngle: exact, Radius: 10}, target) {
		t.Fatalf("target at exactly the half angle must not be visible")
	}
	if !InCone(obs, Cone{HalfAngle: exact + 0.001, Radius: 10}, target) {
		t.Fatalf("target just inside the half angle should be visible")
	}
}

func TestCanSeeSkipsRaycastOutsideCone(t *testing.T) {
	stub := &rayStub{hit: port.Hit{Entity: targetEnt}, ok: true}
	CanSee(observer(), Cone{HalfAngle: 10, Radius: 10}, Target{Entity: targetEnt, Position: common.V3(5, 0, 0)}, stub)
	if stub.calls != 0 {
		t.Fatalf("raycast issued for a target outside the cone")
	}
	if CanSee(observer(), Cone{HalfAngle: 45, Radius: 10}, Target{Position: common.V3(0, 0, 1)}, stub) {
		t.Fatalf("missing target must never be visible")
	}
}

func TestZeroForwardSeesNothing(t *testing.T) {
	obs := Observer{}
	if InCone(obs, Cone{HalfAngle: 180, Radius: 10}, common.V3(1, 0, 0)) {
		t.Fatalf("observer without a facing should see nothing")
	}
}
