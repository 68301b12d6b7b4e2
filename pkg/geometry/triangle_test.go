package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/material"
)

func testTriangle() *Triangle {
	return NewTriangle(
		core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0),
		core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0.5, 1),
		material.PBRMaterial{},
	)
}

func TestTriangleIntersectHit(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	tri := testTriangle()

	ray := core.NewRay(core.NewVec3(0, -0.5, -5), core.NewVec3(0, 0, 1))
	hit := tri.Intersect(ray, random)
	if !hit.Hit {
		t.Fatal("expected a hit")
	}
	if math.Abs(hit.Position.Z) > 1e-6 {
		t.Errorf("expected hit at z=0, got %v", hit.Position)
	}
}

func TestTriangleIntersectMiss(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	tri := testTriangle()

	ray := core.NewRay(core.NewVec3(5, 5, -5), core.NewVec3(0, 0, 1))
	hit := tri.Intersect(ray, random)
	if hit.Hit {
		t.Error("expected a miss")
	}
}

func TestTriangleSampleStaysInPlane(t *testing.T) {
	random := rand.New(rand.NewSource(3))
	tri := testTriangle()

	for i := 0; i < 100; i++ {
		p := tri.Sample(random)
		if math.Abs(p.Z) > 1e-9 {
			t.Errorf("sample left the triangle's plane: %v", p)
		}
	}
}
