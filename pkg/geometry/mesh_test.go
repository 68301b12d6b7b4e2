package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/material"
)

func TestMeshInstanceIntersectTranslated(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, material.PBRMaterial{})
	mesh := NewMesh([]Object{sphere})
	instance := NewMeshInstance(mesh, core.Translate4(core.NewVec3(5, 0, 0)))

	ray := core.NewRay(core.NewVec3(5, 0, -5), core.NewVec3(0, 0, 1))
	hit := instance.Intersect(ray, random)
	if !hit.Hit {
		t.Fatal("expected a hit on the translated sphere")
	}
	if math.Abs(hit.Position.X-5) > 1e-6 {
		t.Errorf("expected hit at world x=5, got %v", hit.Position)
	}
	if math.Abs(hit.Normal.Length()-1) > 1e-6 {
		t.Errorf("normal not unit length: %v", hit.Normal)
	}
}

func TestMeshInstanceIntersectNonUniformScaleNormal(t *testing.T) {
	random := rand.New(rand.NewSource(2))
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, material.PBRMaterial{})
	mesh := NewMesh([]Object{sphere})
	// Stretch along X; a ray hitting the +X pole should still report a unit
	// normal pointing in +X despite the anisotropic scale.
	instance := NewMeshInstance(mesh, core.Scale4(core.NewVec3(3, 1, 1)))

	ray := core.NewRay(core.NewVec3(10, 0, 0), core.NewVec3(-1, 0, 0))
	hit := instance.Intersect(ray, random)
	if !hit.Hit {
		t.Fatal("expected a hit")
	}
	if math.Abs(hit.Normal.Length()-1) > 1e-6 {
		t.Errorf("normal not unit length under non-uniform scale: %v", hit.Normal)
	}
	if hit.Normal.Dot(core.NewVec3(1, 0, 0)) < 0.99 {
		t.Errorf("expected normal close to +X, got %v", hit.Normal)
	}
}

func TestMeshInstanceMiss(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, material.PBRMaterial{})
	mesh := NewMesh([]Object{sphere})
	instance := NewMeshInstance(mesh, core.Identity4())

	ray := core.NewRay(core.NewVec3(5, 5, -5), core.NewVec3(0, 0, 1))
	if instance.Intersect(ray, random).Hit {
		t.Error("expected a miss")
	}
}
