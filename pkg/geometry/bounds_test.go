package geometry

import (
	"testing"

	"github.com/irradiance/pathtracer/pkg/core"
)

func TestBoundingVolumeContains(t *testing.T) {
	b := NewBoundingVolume(core.NewVec3(0, 0, 0), core.NewVec3(2, 2, 2))
	if !b.Contains(core.NewVec3(1, 1, 1)) {
		t.Error("expected center point to be contained")
	}
	if b.Contains(core.NewVec3(3, 0, 0)) {
		t.Error("expected point outside the box to be rejected")
	}
}

func TestBoundingVolumeUnion(t *testing.T) {
	a := NewBoundingVolume(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	b := NewBoundingVolume(core.NewVec3(2, 2, 2), core.NewVec3(1, 1, 1))
	u := a.Union(b)

	if u.Origin != (core.Vec3{X: 0, Y: 0, Z: 0}) {
		t.Errorf("unexpected union origin: %v", u.Origin)
	}
	if u.Max() != (core.Vec3{X: 3, Y: 3, Z: 3}) {
		t.Errorf("unexpected union max: %v", u.Max())
	}
}

func TestBoundingVolumeTransform(t *testing.T) {
	b := NewBoundingVolume(core.NewVec3(-1, -1, -1), core.NewVec3(2, 2, 2))
	transform := core.Translate4(core.NewVec3(5, 0, 0))
	moved := b.Transform(transform)

	if moved.Origin.X != 4 {
		t.Errorf("expected translated origin x=4, got %f", moved.Origin.X)
	}
}
