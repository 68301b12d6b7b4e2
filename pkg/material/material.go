// Package material defines the PBRMaterial surface-parameter bundle and the
// BSDF math the integrator evaluates directly against it (spec §3, §4.5).
// Unlike the teacher's polymorphic Material interface (Lambertian/Metal/
// Dielectric/Emissive types dispatched through Scatter/EvaluateBRDF/PDF), the
// spec models a single immutable bundle of parameters with the branching
// logic living in the integrator - see DESIGN.md's Open Question resolution.
package material

import (
	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/texture"
)

// PBRMaterial is an immutable bundle of surface parameters.
type PBRMaterial struct {
	Albedo          core.Vec3 // RGB base color
	Emission        core.Vec3 // RGB radiance emitted; zero means non-emissive
	Metallicity     float64   // 0=dielectric, 1=conductor
	RefractionIndex float64   // relative IOR, > 0
	Roughness       float64   // 0..1
	Anisotropy      float64   // 0..1, reserved
	Transmission    float64   // fraction of non-Fresnel paths that refract vs diffuse
	Texture         texture.Texture // optional, overrides Albedo via UV
}

// IsEmissive reports whether this material terminates a path as a light.
func (m PBRMaterial) IsEmissive() bool {
	return !m.Emission.IsZero()
}

// ResolveAlbedo returns Texture.Sample(uv, worldPos) if a texture is present,
// otherwise the material's flat Albedo (spec §4.5 step 2).
func (m PBRMaterial) ResolveAlbedo(uv core.Vec2, worldPos core.Vec3) core.Vec3 {
	if m.Texture != nil {
		return m.Texture.Sample(uv, worldPos)
	}
	return m.Albedo
}

// clampParam floors a parameter to a small epsilon so downstream GGX/Snell
// math never divides by exactly zero (spec §7: "floor the parameter to a
// small epsilon at entry to the kernel that needs it").
func clampParam(v, eps float64) float64 {
	if v < eps {
		return eps
	}
	return v
}

// EffectiveRoughness floors Roughness so the GGX distribution never
// degenerates into a delta function (spec §4.5, Metal branch).
func (m PBRMaterial) EffectiveRoughness() float64 {
	return clampParam(m.Roughness, 1e-3)
}
