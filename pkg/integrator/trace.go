// Package integrator implements the recursive Monte-Carlo path tracer
// (spec §2.7, §4.5): material-branch importance sampling, next-event
// estimation against the scene's emitter table, Beer-Lambert refraction,
// and skybox fallback on miss.
package integrator

import (
	"math"
	"math/rand"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/geometry"
	"github.com/irradiance/pathtracer/pkg/material"
	"github.com/irradiance/pathtracer/pkg/scene"
)

// denomEpsilon guards divisions throughout the branch-probability and NEE
// math (spec §7: "the +epsilon epsilons in divisions prevent producing the
// NaN in the common case").
const denomEpsilon = 1e-3

// Trace estimates radiance along ray, recursing up to bounces times.
// Termination at bounces==0 returns black (spec §4.5).
func Trace(sc *scene.Scene, ray core.Ray, bounces int, random *rand.Rand) core.Vec3 {
	if bounces <= 0 {
		return core.Vec3{}
	}

	hit := sc.Intersect(ray, random)
	if !hit.Hit {
		return sc.SampleSky(ray.Direction)
	}

	if hit.Material.IsEmissive() {
		return hit.Material.Emission
	}

	albedo := hit.Material.ResolveAlbedo(hit.UV, hit.Position)

	normal := hit.Normal
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Negate()
	}

	viewCos := clampUnit(-ray.Direction.Dot(normal))
	f0 := material.BaseReflectance(albedo, hit.Material.Metallicity)
	fresnel := material.SchlickFresnel(f0, viewCos)
	maxFresnel := material.MaxComponent(fresnel)

	metallicity := hit.Material.Metallicity
	transmission := hit.Material.Transmission

	metal := metallicity
	reflect := (1-metallicity)*maxFresnel + metallicity
	refract := (1 - metallicity) * (1 - maxFresnel) * transmission
	diffuse := (1 - metallicity) * (1 - maxFresnel) * (1 - transmission)

	total := metal + reflect + refract + diffuse
	if total < denomEpsilon {
		total = denomEpsilon
	}
	wMetal, wReflect, wRefract, wDiffuse := metal/total, reflect/total, refract/total, diffuse/total

	u := random.Float64()
	var (
		secondary   core.Ray
		absorption  core.Vec3
		branchWeight float64
	)

	roughness := hit.Material.EffectiveRoughness()
	hemisphereSample := rejectedHemisphereSample(normal, random)

	switch {
	case u < wMetal:
		reflected := material.Reflect(ray.Direction, normal)
		direction := reflected.Add(hemisphereSample.Multiply(roughness)).Normalize()
		secondary = core.NewRay(hit.Position.Add(normal.Multiply(denomEpsilon)), direction)
		nDotR := clampUnit(normal.Dot(direction))
		nDotV := viewCos
		nDotH := clampUnit(normal.Dot(reflected.Add(ray.Direction.Negate()).Normalize()))
		specular := material.GGXSpecular(nDotR, nDotV, nDotH, roughness, fresnel)
		absorption = specular.MultiplyVec(albedo)
		branchWeight = wMetal

	case u < wMetal+wReflect:
		reflected := material.Reflect(ray.Direction, normal)
		direction := reflected.Add(hemisphereSample.Multiply(roughness)).Normalize()
		secondary = core.NewRay(hit.Position.Add(normal.Multiply(denomEpsilon)), direction)
		nDotR := clampUnit(normal.Dot(direction))
		nDotV := viewCos
		nDotH := clampUnit(normal.Dot(reflected.Add(ray.Direction.Negate()).Normalize()))
		specular := material.GGXSpecular(nDotR, nDotV, nDotH, roughness, fresnel)
		absorption = specular.MultiplyVec(albedo).Multiply(transmission)
		branchWeight = wReflect

	case u < wMetal+wReflect+wRefract:
		eta := hit.Material.RefractionIndex
		entering := -ray.Direction.Dot(normal) > 0
		if entering {
			eta = 1 / eta
		}
		refracted, ok := material.Refract(ray.Direction, normal, eta)
		if !ok {
			refracted = material.Reflect(ray.Direction, normal)
		}
		direction := refracted.Add(hemisphereSample.Multiply(roughness)).Normalize()
		secondary = core.NewRay(hit.Position.Subtract(normal.Multiply(denomEpsilon)), direction)
		travel := hit.Exit - hit.Depth
		if travel < 0 {
			travel = 0
		}
		absorption = core.NewVec3(
			math.Exp(-albedo.X*travel),
			math.Exp(-albedo.Y*travel),
			math.Exp(-albedo.Z*travel),
		)
		branchWeight = wRefract

	default:
		direction := core.RandomCosineDirection(normal, random)
		secondary = core.NewRay(hit.Position.Add(normal.Multiply(denomEpsilon)), direction)
		absorption = albedo
		branchWeight = wDiffuse
	}

	direct := directLight(sc, hit, normal, albedo, random)

	indirect := Trace(sc, secondary, bounces-1, random).MultiplyVec(absorption).Multiply(1 / (branchWeight + denomEpsilon))

	result := direct.Add(indirect)
	return clampFinite(result)
}

// directLight implements next-event estimation (spec §4.5 step 8): pick an
// emitter by the precomputed CDF, sample a point on it, and add its
// contribution if the shadow ray's nearest hit is indeed that emitter.
func directLight(sc *scene.Scene, hit geometry.RayIntersection, normal, absorption core.Vec3, random *rand.Rand) core.Vec3 {
	emitter, ok := sc.SampleEmitter(random)
	if !ok {
		return core.Vec3{}
	}

	localPoint := emitter.Object.Sample(random)
	lightPoint := emitter.Instance.TransformPoint(localPoint)
	toLight := lightPoint.Subtract(hit.Position)
	distance := toLight.Length()
	if distance < denomEpsilon {
		return core.Vec3{}
	}
	omegaL := toLight.Multiply(1 / distance)

	shadowRay := core.NewRay(hit.Position.Add(normal.Multiply(denomEpsilon)), omegaL)
	shadowHit := sc.Intersect(shadowRay, random)
	if !shadowHit.Hit || shadowHit.Object != emitter.Object {
		return core.Vec3{}
	}

	lightNormal := emitter.Instance.TransformNormal(emitter.Object.NormalAt(localPoint))
	nDotL := clampUnit(normal.Dot(omegaL))
	lightCos := clampUnit(lightNormal.Dot(omegaL.Negate()))
	if lightCos <= 0 {
		return core.Vec3{}
	}

	pdf := (distance * distance) / (lightCos*emitter.Object.Area() + denomEpsilon)
	denom := distance*distance*emitter.Probability*pdf + denomEpsilon

	emission := emitter.Object.Material().Emission
	contribution := emission.Multiply(nDotL * lightCos / denom)
	return contribution.MultiplyVec(absorption)
}

// rejectedHemisphereSample draws a uniform-sphere direction and flips it
// into the hemisphere around normal if it lands in the back half (spec
// §4.5 step 4: "rejecting the back hemisphere of a uniform-sphere draw").
func rejectedHemisphereSample(normal core.Vec3, random *rand.Rand) core.Vec3 {
	sample := core.RandomOnUnitSphere(random)
	if sample.Dot(normal) < 0 {
		sample = sample.Negate()
	}
	return sample
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

// clampFinite zeroes any NaN/+-Inf channel, per spec §7's numerical hygiene.
func clampFinite(v core.Vec3) core.Vec3 {
	return core.NewVec3(sanitize(v.X), sanitize(v.Y), sanitize(v.Z))
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
