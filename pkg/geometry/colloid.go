package geometry

import (
	"math"
	"math/rand"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/material"
)

// Colloid wraps a container Object (any primitive with a well-defined
// entry/exit pair) as a participating medium: density controls the mean
// free path, and the material's Albedo is used as the single-scattering
// absorption color via Beer-Lambert attenuation along the traveled distance.
type Colloid struct {
	Container Object
	Density   float64
	Mat       material.PBRMaterial
}

// NewColloid wraps container as a volumetric scattering medium.
func NewColloid(container Object, density float64, mat material.PBRMaterial) *Colloid {
	return &Colloid{Container: container, Density: density, Mat: mat}
}

// Intersect finds the container's entry/exit pair, then samples an
// exponential free path ell = -(1/density)*ln(U) along the ray from the
// entry point. If the free path lands before the exit, the medium scatters
// there with a random spherical normal and a material whose Albedo has been
// attenuated per channel by exp(-density*travel*albedo) (Beer-Lambert);
// otherwise the ray passes through untouched.
func (c *Colloid) Intersect(ray core.Ray, random *rand.Rand) RayIntersection {
	hit := c.Container.Intersect(ray, random)
	if !hit.Hit {
		return Miss
	}

	entry := hit.Depth
	exit := hit.Exit
	if exit <= entry {
		return Miss
	}

	u := random.Float64()
	for u <= 0 {
		u = random.Float64()
	}
	freePath := -math.Log(u) / c.Density
	if freePath >= exit-entry {
		return Miss
	}

	scatterDepth := entry + freePath
	point := ray.At(scatterDepth)
	normal := core.RandomOnUnitSphere(random)

	albedo := c.Mat.Albedo
	attenuated := c.Mat
	attenuated.Albedo = core.NewVec3(
		math.Exp(-c.Density*freePath*albedo.X),
		math.Exp(-c.Density*freePath*albedo.Y),
		math.Exp(-c.Density*freePath*albedo.Z),
	)

	return RayIntersection{
		Hit:      true,
		Position: point,
		Normal:   normal,
		Material: attenuated,
		Depth:    scatterDepth,
		Exit:     exit,
		UV:       core.NewVec2(0, 0),
		Object:   c,
	}
}

// Sample delegates to the container's surface sampling.
func (c *Colloid) Sample(random *rand.Rand) core.Vec3 {
	return c.Container.Sample(random)
}

// NormalAt delegates to the container; volumetric scattering itself derives
// its normal from Intersect's random draw instead.
func (c *Colloid) NormalAt(point core.Vec3) core.Vec3 {
	return c.Container.NormalAt(point)
}

// Bounds delegates to the container.
func (c *Colloid) Bounds() BoundingVolume {
	return c.Container.Bounds()
}

// Area delegates to the container's surface area.
func (c *Colloid) Area() float64 {
	return c.Container.Area()
}

// Centroid delegates to the container.
func (c *Colloid) Centroid() core.Vec3 {
	return c.Container.Centroid()
}

func (c *Colloid) Material() material.PBRMaterial { return c.Mat }
