package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/material"
)

func TestSphereIntersectCentered(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, material.PBRMaterial{})

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit := sphere.Intersect(ray, random)
	if !hit.Hit {
		t.Fatal("expected a hit")
	}
	if math.Abs(hit.Depth-4) > 1e-6 {
		t.Errorf("expected depth 4, got %f", hit.Depth)
	}
	if math.Abs(hit.Position.Z-(-1)) > 1e-6 {
		t.Errorf("expected hit at z=-1, got %v", hit.Position)
	}
	if math.Abs(hit.Normal.Length()-1) > 1e-6 {
		t.Errorf("normal not unit length: %v", hit.Normal)
	}
}

func TestSphereIntersectMiss(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, material.PBRMaterial{})

	ray := core.NewRay(core.NewVec3(5, 5, -5), core.NewVec3(0, 0, 1))
	hit := sphere.Intersect(ray, random)
	if hit.Hit {
		t.Error("expected a miss")
	}
}

func TestSphereSampleOnSurface(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	center := core.NewVec3(1, 2, 3)
	sphere := NewSphere(center, 2, material.PBRMaterial{})

	for i := 0; i < 100; i++ {
		p := sphere.Sample(random)
		dist := p.Subtract(center).Length()
		if math.Abs(dist-2) > 1e-6 {
			t.Errorf("sample not on surface: distance %f", dist)
		}
	}
}

func TestSphereArea(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2, material.PBRMaterial{})
	expected := 4 * math.Pi * 4
	if math.Abs(sphere.Area()-expected) > 1e-6 {
		t.Errorf("expected area %f, got %f", expected, sphere.Area())
	}
}
