package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/material"
)

func TestQuadrilateralIntersectHit(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	quad := NewQuadrilateral(
		core.NewVec3(-1, -1, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0),
		material.PBRMaterial{},
	)

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit := quad.Intersect(ray, random)
	if !hit.Hit {
		t.Fatal("expected a hit at the quad's center")
	}
	if math.Abs(hit.UV.X-0.5) > 1e-6 || math.Abs(hit.UV.Y-0.5) > 1e-6 {
		t.Errorf("expected centered UV (0.5,0.5), got %v", hit.UV)
	}
}

func TestQuadrilateralIntersectMissOutsideEdges(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	quad := NewQuadrilateral(
		core.NewVec3(-1, -1, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0),
		material.PBRMaterial{},
	)

	ray := core.NewRay(core.NewVec3(5, 5, -5), core.NewVec3(0, 0, 1))
	hit := quad.Intersect(ray, random)
	if hit.Hit {
		t.Error("expected a miss outside the quad's edges")
	}
}

func TestQuadrilateralArea(t *testing.T) {
	quad := NewQuadrilateral(
		core.NewVec3(0, 0, 0), core.NewVec3(3, 0, 0), core.NewVec3(0, 4, 0),
		material.PBRMaterial{},
	)
	if math.Abs(quad.Area()-12) > 1e-6 {
		t.Errorf("expected area 12, got %f", quad.Area())
	}
}
