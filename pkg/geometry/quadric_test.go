package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/material"
)

// sphereQuadric builds A=B=C=1, J=-r^2, a quadric equivalent to a sphere of
// radius r centered at the origin, clipped to a box large enough to contain it.
func sphereQuadric(radius float64) *Quadric {
	container := NewBoundingVolume(core.NewVec3(-radius, -radius, -radius), core.NewVec3(2*radius, 2*radius, 2*radius))
	return NewQuadric(1, 1, 1, 0, 0, 0, 0, 0, 0, -radius*radius, container, material.PBRMaterial{})
}

func TestQuadricIntersectSphereEquivalent(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	quadric := sphereQuadric(1)

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit := quadric.Intersect(ray, random)
	if !hit.Hit {
		t.Fatal("expected a hit")
	}
	if math.Abs(hit.Depth-4) > 1e-6 {
		t.Errorf("expected depth 4, got %f", hit.Depth)
	}
	if math.Abs(hit.Normal.Length()-1) > 1e-6 {
		t.Errorf("normal not unit length: %v", hit.Normal)
	}
}

func TestQuadricIntersectMiss(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	quadric := sphereQuadric(1)

	ray := core.NewRay(core.NewVec3(5, 5, -5), core.NewVec3(0, 0, 1))
	hit := quadric.Intersect(ray, random)
	if hit.Hit {
		t.Error("expected a miss")
	}
}
