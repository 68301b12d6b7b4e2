package geometry

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/material"
)

func TestColloidIntersectWithinContainer(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	container := NewCuboid(core.NewVec3(-1, -1, -1), core.NewVec3(2, 2, 2), material.PBRMaterial{})
	colloid := NewColloid(container, 2.0, material.PBRMaterial{Albedo: core.NewVec3(1, 1, 1)})

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hits := 0
	for i := 0; i < 200; i++ {
		hit := colloid.Intersect(ray, random)
		if hit.Hit {
			hits++
			if hit.Position.Z < -1-1e-6 || hit.Position.Z > 1+1e-6 {
				t.Errorf("scatter point left the container: %v", hit.Position)
			}
		}
	}
	if hits == 0 {
		t.Error("expected at least some scattering events over 200 trials")
	}
}

// TestColloidIntersectConcurrent exercises Intersect from many goroutines,
// each with its own *rand.Rand, mirroring pkg/render's per-worker generator
// convention; it only needs to run clean under `go test -race`.
func TestColloidIntersectConcurrent(t *testing.T) {
	container := NewCuboid(core.NewVec3(-1, -1, -1), core.NewVec3(2, 2, 2), material.PBRMaterial{})
	colloid := NewColloid(container, 2.0, material.PBRMaterial{Albedo: core.NewVec3(1, 1, 1)})

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			random := rand.New(rand.NewSource(seed))
			ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
			for i := 0; i < 50; i++ {
				colloid.Intersect(ray, random)
			}
		}(int64(w) + 1)
	}
	wg.Wait()
}
