package geometry

import (
	"math"
	"math/rand"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/material"
)

// Sphere is the simplest Object variant: center + radius.
type Sphere struct {
	Center core.Vec3
	Radius float64
	Mat    material.PBRMaterial

	area     float64
	centroid core.Vec3
}

// NewSphere builds a Sphere, precomputing area and centroid.
func NewSphere(center core.Vec3, radius float64, mat material.PBRMaterial) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Mat:      mat,
		area:     4 * math.Pi * radius * radius,
		centroid: center,
	}
}

// Intersect solves |o-c+t*d|^2 = r^2 and reports the nearer positive root.
func (s *Sphere) Intersect(ray core.Ray, random *rand.Rand) RayIntersection {
	diff := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	b := 2 * diff.Dot(ray.Direction)
	c := diff.Dot(diff) - s.Radius*s.Radius
	discriminant := b*b - 4*a*c
	if discriminant <= 0 {
		return Miss
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)

	entry := t1
	if entry <= hitEpsilon {
		entry = t2
		if entry <= hitEpsilon {
			return Miss
		}
	}

	point := ray.At(entry)
	normal := point.Subtract(s.Center).Normalize()
	u, v := s.uv(normal)

	exit := t2
	if t1 > hitEpsilon && t2 > hitEpsilon {
		exit = math.Max(t1, t2)
	}

	return RayIntersection{
		Hit:      true,
		Position: point,
		Normal:   normal,
		Material: s.Mat,
		Depth:    entry,
		Exit:     exit,
		UV:       core.NewVec2(u, v),
		Object:   s,
	}
}

// uv maps a unit local-space normal to equirectangular coordinates.
func (s *Sphere) uv(unitNormal core.Vec3) (float64, float64) {
	u := 0.5 + math.Atan2(unitNormal.Z, unitNormal.X)/(2*math.Pi)
	v := 0.5 + math.Asin(clampAsinDomain(unitNormal.Y))/math.Pi
	return u, v
}

func clampAsinDomain(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// Sample draws a uniform point on the sphere's surface.
func (s *Sphere) Sample(random *rand.Rand) core.Vec3 {
	return s.Center.Add(core.RandomOnUnitSphere(random).Multiply(s.Radius))
}

// NormalAt returns the unit outward normal at point (assumed to be on the surface).
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// Bounds returns the sphere's axis-aligned bounding box.
func (s *Sphere) Bounds() BoundingVolume {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return NewBoundingVolume(s.Center.Subtract(r), r.Multiply(2))
}

func (s *Sphere) Area() float64                 { return s.area }
func (s *Sphere) Centroid() core.Vec3           { return s.centroid }
func (s *Sphere) Material() material.PBRMaterial { return s.Mat }
