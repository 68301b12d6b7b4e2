// Package scene holds the Scene aggregate: an ordered list of MeshInstances
// plus a precomputed emitter table used by the integrator's next-event
// estimation branch.
package scene

import (
	"math/rand"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/geometry"
)

// Emitter is one entry of the precomputed sampling table: a reference to an
// emissive object, its radiant power proxy, and its normalized sampling
// probability.
type Emitter struct {
	Object      geometry.Object
	Instance    *geometry.MeshInstance // owning instance, for local->world placement
	Power       float64                // area * ||emission||
	Probability float64                // Power / sum(Power), so the table sums to 1
}

// Scene is an ordered collection of MeshInstances plus the emitter table
// derived from them. An optional skybox texture is sampled on ray miss.
type Scene struct {
	Instances []*geometry.MeshInstance
	Emitters  []Emitter
	Skybox    Texture
}

// Texture is the narrow interface the scene needs from pkg/texture, kept
// local to avoid an import cycle (pkg/texture never needs pkg/scene).
type Texture interface {
	Sample(uv core.Vec2, worldPos core.Vec3) core.Vec3
}

// New builds a Scene from instances and rebuilds the emitter table.
func New(instances []*geometry.MeshInstance, skybox Texture) *Scene {
	s := &Scene{Instances: instances, Skybox: skybox}
	s.RebuildEmitters()
	return s
}

// RebuildEmitters rescans every instance's underlying objects for non-zero
// emission and recomputes the normalized sampling table (spec §3's "Scene"
// data model: probability proportional to area * ||emission||). Call this
// whenever the instance list changes; during a frame the table is treated
// as an immutable snapshot.
func (s *Scene) RebuildEmitters() {
	var emitters []Emitter
	total := 0.0

	for _, inst := range s.Instances {
		for _, obj := range inst.Mesh.Objects {
			mat := obj.Material()
			if !mat.IsEmissive() {
				continue
			}
			power := obj.Area() * mat.Emission.Length()
			if power <= 0 {
				continue
			}
			emitters = append(emitters, Emitter{Object: obj, Instance: inst, Power: power})
			total += power
		}
	}

	if total > 0 {
		for i := range emitters {
			emitters[i].Probability = emitters[i].Power / total
		}
	}
	s.Emitters = emitters
}

// Intersect performs a linear scan over every instance and returns the
// nearest hit (spec §4.5: "linear scan over all MeshInstances; nearest by
// depth" — no acceleration structure, per spec's explicit BVH non-goal).
func (s *Scene) Intersect(ray core.Ray, random *rand.Rand) geometry.RayIntersection {
	nearest := geometry.Miss
	for _, inst := range s.Instances {
		hit := inst.Intersect(ray, random)
		if hit.Hit && hit.Depth < nearest.Depth {
			nearest = hit
		}
	}
	return nearest
}

// SampleEmitter draws one emitter from the precomputed CDF and returns it
// along with its probability. Returns (Emitter{}, false) if there are no
// emitters.
func (s *Scene) SampleEmitter(random *rand.Rand) (Emitter, bool) {
	if len(s.Emitters) == 0 {
		return Emitter{}, false
	}
	u := random.Float64()
	cumulative := 0.0
	for _, e := range s.Emitters {
		cumulative += e.Probability
		if u <= cumulative {
			return e, true
		}
	}
	return s.Emitters[len(s.Emitters)-1], true
}

// SampleSky returns the skybox radiance for a miss direction, or black if no
// skybox is configured. The equirectangular mapping is theta=atan2(d.z,d.x),
// phi=acos(-d.y), u=1-(theta+pi)/(2*pi), v=phi/pi (spec §4.5).
func (s *Scene) SampleSky(direction core.Vec3) core.Vec3 {
	if s.Skybox == nil {
		return core.Vec3{}
	}
	u, v := EquirectangularUV(direction)
	return s.Skybox.Sample(core.NewVec2(u, v), direction)
}
