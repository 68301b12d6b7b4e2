package scene

import (
	"math/rand"
	"testing"

	"github.com/irradiance/pathtracer/pkg/core"
)

func TestCornellBoxCameraInsideSeesWall(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	sc := CornellBox()

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	hit := sc.Intersect(ray, random)
	if !hit.Hit {
		t.Fatal("expected a ray from the box's center to hit a wall")
	}
	if hit.Depth <= 0 || hit.Depth > 2 {
		t.Errorf("expected the back wall within one box half-width, got depth %f", hit.Depth)
	}
}

func TestEveryScenarioHasAtLeastOneEmitter(t *testing.T) {
	scenarios := map[string]func() *Scene{
		"cornell":      CornellBox,
		"single":       SingleSphereScenario,
		"mirror":       MirrorSphereScenario,
		"glass":        GlassSphereScenario,
		"dof":          DOFScenario,
	}
	for name, build := range scenarios {
		sc := build()
		if len(sc.Emitters) == 0 {
			t.Errorf("scenario %q has no emitters", name)
		}
	}
}
