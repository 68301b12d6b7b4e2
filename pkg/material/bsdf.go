package material

import (
	"math"

	"github.com/irradiance/pathtracer/pkg/core"
)

// denomEpsilon guards every division in this file against a near-zero
// denominator (spec §7: "the +epsilon epsilons in divisions prevent
// producing the NaN in the common case").
const denomEpsilon = 1e-3

// Reflect mirrors v about normal n: v - 2*dot(v,n)*n. Grounded on the
// teacher's metal.go reflect helper.
func Reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract applies Snell's law to incident direction v (pointing toward the
// surface) about normal n (pointing against v) with relative index eta =
// n1/n2. ok is false on total internal reflection. Grounded on the teacher's
// dielectric.go refractVector helper, generalized to the spec's entering/
// exiting eta convention.
func Refract(v, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosTheta := math.Min(-v.Dot(n), 1.0)
	sinTheta2 := 1.0 - cosTheta*cosTheta
	k := 1.0 - eta*eta*sinTheta2
	if k < 0 {
		return core.Vec3{}, false
	}
	perp := v.Add(n.Multiply(cosTheta)).Multiply(eta)
	parallel := n.Multiply(-math.Sqrt(k))
	return perp.Add(parallel).Normalize(), true
}

// SchlickFresnel computes the Schlick approximation to Fresnel reflectance:
// F0 + (1-F0)*(1-cosTheta)^5, vectorized over RGB F0.
func SchlickFresnel(f0 core.Vec3, cosTheta float64) core.Vec3 {
	cosTheta = clampUnit(cosTheta)
	factor := math.Pow(1-cosTheta, 5)
	return core.Vec3{
		X: f0.X + (1-f0.X)*factor,
		Y: f0.Y + (1-f0.Y)*factor,
		Z: f0.Z + (1-f0.Z)*factor,
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// nonMetalReflectance is the dielectric base reflectance used to build F0,
// carried over from original_source/main.cpp's NONMETAL_REFLECTANCE.
const nonMetalReflectance = 0.04

// BaseReflectance mixes the non-metal base reflectance with albedo by
// metallicity to produce F0 (spec §4.5 step 5).
func BaseReflectance(albedo core.Vec3, metallicity float64) core.Vec3 {
	base := core.NewVec3(nonMetalReflectance, nonMetalReflectance, nonMetalReflectance)
	return base.Multiply(1 - metallicity).Add(albedo.Multiply(metallicity))
}

// MaxComponent returns the largest of the three channels.
func MaxComponent(v core.Vec3) float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

// GGXDistribution is the GGX/Trowbridge-Reitz normal distribution function D,
// evaluated at the cosine of the angle between the half vector and the
// shading normal.
func GGXDistribution(nDotH, roughness float64) float64 {
	a := roughness * roughness
	a2 := a * a
	nDotH2 := nDotH * nDotH
	denom := nDotH2*(a2-1) + 1
	return a2 / (math.Pi * denom * denom)
}

// schlickBeckmannK is the Schlick-Beckmann remapping of roughness used by
// the direct-lighting Smith geometry term.
func schlickBeckmannK(roughness float64) float64 {
	r := roughness + 1
	return (r * r) / 8
}

// smithG1 is one factor of Smith's shadowing-masking term for a single
// cosine (either n.l or n.v).
func smithG1(cosTheta, k float64) float64 {
	return cosTheta / (cosTheta*(1-k) + k)
}

// SmithGeometry combines shadowing (view) and masking (light) via Smith's
// separable approximation.
func SmithGeometry(nDotV, nDotL, roughness float64) float64 {
	k := schlickBeckmannK(roughness)
	return smithG1(nDotV, k) * smithG1(nDotL, k)
}

// GGXSpecular evaluates (D*G*F)/(4*nDotL*nDotV + eps), the microfacet
// specular term used by both the Metal and Dielectric-reflect branches
// (spec §4.5 step 7).
func GGXSpecular(nDotL, nDotV, nDotH, roughness float64, fresnel core.Vec3) core.Vec3 {
	d := GGXDistribution(nDotH, roughness)
	g := SmithGeometry(nDotV, nDotL, roughness)
	denom := 4*nDotL*nDotV + denomEpsilon
	return fresnel.Multiply(d * g / denom)
}
