package scene

import (
	"math/rand"
	"testing"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/geometry"
	"github.com/irradiance/pathtracer/pkg/material"
)

func TestRebuildEmittersProbabilitiesSumToOne(t *testing.T) {
	sc := CornellBox()
	if len(sc.Emitters) == 0 {
		t.Fatal("expected the Cornell box to have at least one emitter")
	}
	total := 0.0
	for _, e := range sc.Emitters {
		total += e.Probability
	}
	if total < 0.999 || total > 1.001 {
		t.Errorf("expected emitter probabilities to sum to 1, got %f", total)
	}
}

func TestRebuildEmittersSkipsNonEmissive(t *testing.T) {
	mat := material.PBRMaterial{Albedo: core.NewVec3(1, 1, 1)}
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mat)
	mesh := geometry.NewMesh([]geometry.Object{sphere})
	instance := geometry.NewMeshInstance(mesh, core.Identity4())
	sc := New([]*geometry.MeshInstance{instance}, nil)

	if len(sc.Emitters) != 0 {
		t.Errorf("expected no emitters, got %d", len(sc.Emitters))
	}
}

func TestSceneIntersectFindsNearest(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	near := geometry.NewSphere(core.NewVec3(0, 0, 2), 1, material.PBRMaterial{})
	far := geometry.NewSphere(core.NewVec3(0, 0, 10), 1, material.PBRMaterial{})
	mesh := geometry.NewMesh([]geometry.Object{near, far})
	instance := geometry.NewMeshInstance(mesh, core.Identity4())
	sc := New([]*geometry.MeshInstance{instance}, nil)

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit := sc.Intersect(ray, random)
	if !hit.Hit {
		t.Fatal("expected a hit")
	}
	if hit.Object != near {
		t.Error("expected the nearer sphere to be hit first")
	}
}

func TestSampleEmitterWithNoEmittersReturnsFalse(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	sc := &Scene{}
	if _, ok := sc.SampleEmitter(random); ok {
		t.Error("expected SampleEmitter to report false with no emitters")
	}
}

func TestSampleSkyWithoutSkyboxIsBlack(t *testing.T) {
	sc := &Scene{}
	color := sc.SampleSky(core.NewVec3(0, 0, 1))
	if color != (core.Vec3{}) {
		t.Errorf("expected black with no skybox, got %v", color)
	}
}
