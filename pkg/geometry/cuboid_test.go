package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/material"
)

func TestCuboidIntersectFromOutside(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	cuboid := NewCuboid(core.NewVec3(-1, -1, -1), core.NewVec3(2, 2, 2), material.PBRMaterial{})

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit := cuboid.Intersect(ray, random)
	if !hit.Hit {
		t.Fatal("expected a hit")
	}
	if math.Abs(hit.Position.Z-(-1)) > 1e-6 {
		t.Errorf("expected entry face at z=-1, got %v", hit.Position)
	}
	if math.Abs(hit.Normal.Dot(core.NewVec3(0, 0, -1))-1) > 1e-6 {
		t.Errorf("expected normal facing -z, got %v", hit.Normal)
	}
}

func TestCuboidSampleOnSurface(t *testing.T) {
	random := rand.New(rand.NewSource(5))
	origin := core.NewVec3(-1, -1, -1)
	size := core.NewVec3(2, 2, 2)
	cuboid := NewCuboid(origin, size, material.PBRMaterial{})
	max := origin.Add(size)

	for i := 0; i < 200; i++ {
		p := cuboid.Sample(random)
		onFace := false
		for _, v := range []float64{p.X - origin.X, p.X - max.X, p.Y - origin.Y, p.Y - max.Y, p.Z - origin.Z, p.Z - max.Z} {
			if math.Abs(v) < 1e-6 {
				onFace = true
			}
		}
		if !onFace {
			t.Errorf("sample %v not on any face", p)
		}
	}
}
