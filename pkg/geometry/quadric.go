package geometry

import (
	"math"
	"math/rand"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/material"
)

// Quadric is a general second-order implicit surface
//
//	A*x^2 + B*y^2 + C*z^2 + D*xy + E*xz + F*yz + G*x + H*y + I*z + J = 0
//
// where x,y,z (xi,eta,zeta) are offsets from the quadric's centroid, clipped
// to a containing axis-aligned box, matching the original renderer's Quadric
// primitive (used for things like hyperboloids, cones, paraboloids that the
// other primitives can't express).
type Quadric struct {
	A, B, C, D, E, F, G, H, I, J float64
	Container                    BoundingVolume
	Mat                          material.PBRMaterial

	centroid core.Vec3
}

// NewQuadric builds a Quadric clipped to container.
func NewQuadric(a, b, c, d, e, f, g, h, i, j float64, container BoundingVolume, mat material.PBRMaterial) *Quadric {
	return &Quadric{
		A: a, B: b, C: c, D: d, E: e, F: f, G: g, H: h, I: i, J: j,
		Container: container,
		Mat:       mat,
		centroid:  container.Center(),
	}
}

// Intersect substitutes the ray parametrically into the implicit surface
// equation, yielding a quadratic in t, then clips the roots to Container.
// xi,eta,zeta (the equation's x,y,z) are offsets from the quadric's
// centroid, so the ray origin is first re-expressed relative to it.
func (q *Quadric) Intersect(ray core.Ray, random *rand.Rand) RayIntersection {
	d := ray.Direction
	o := ray.Origin.Subtract(q.centroid)

	a := q.A*d.X*d.X + q.B*d.Y*d.Y + q.C*d.Z*d.Z +
		q.D*d.X*d.Y + q.E*d.X*d.Z + q.F*d.Y*d.Z

	b := 2*q.A*o.X*d.X + 2*q.B*o.Y*d.Y + 2*q.C*o.Z*d.Z +
		q.D*(o.X*d.Y+o.Y*d.X) + q.E*(o.X*d.Z+o.Z*d.X) + q.F*(o.Y*d.Z+o.Z*d.Y) +
		q.G*d.X + q.H*d.Y + q.I*d.Z

	c := q.A*o.X*o.X + q.B*o.Y*o.Y + q.C*o.Z*o.Z +
		q.D*o.X*o.Y + q.E*o.X*o.Z + q.F*o.Y*o.Z +
		q.G*o.X + q.H*o.Y + q.I*o.Z + q.J

	if math.Abs(a) < 1e-12 {
		if math.Abs(b) < 1e-12 {
			return Miss
		}
		t := -c / b
		return q.clip(ray, t, t)
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return Miss
	}
	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return q.clip(ray, t1, t2)
}

// clip picks the smallest of t1<=t2 that is both positive and lands inside
// Container, and derives the surface normal from the implicit function's
// gradient at that point.
func (q *Quadric) clip(ray core.Ray, t1, t2 float64) RayIntersection {
	for _, t := range [2]float64{t1, t2} {
		if t <= hitEpsilon {
			continue
		}
		point := ray.At(t)
		if !q.Container.Contains(point) {
			continue
		}
		normal := q.gradient(point)
		if normal.Dot(ray.Direction) > 0 {
			normal = normal.Negate()
		}
		return RayIntersection{
			Hit:      true,
			Position: point,
			Normal:   normal,
			Material: q.Mat,
			Depth:    t,
			Exit:     math.Max(t1, t2),
			UV:       core.NewVec2(0, 0),
			Object:   q,
		}
	}
	return Miss
}

// gradient returns the (unit) gradient of the implicit function at world
// point p, which is normal to the surface there. p is re-expressed relative
// to the centroid first, matching Intersect's xi,eta,zeta convention.
func (q *Quadric) gradient(p core.Vec3) core.Vec3 {
	o := p.Subtract(q.centroid)
	gx := 2*q.A*o.X + q.D*o.Y + q.E*o.Z + q.G
	gy := 2*q.B*o.Y + q.D*o.X + q.F*o.Z + q.H
	gz := 2*q.C*o.Z + q.E*o.X + q.F*o.Y + q.I
	return core.NewVec3(gx, gy, gz).Normalize()
}

// Sample returns the quadric's centroid (the center of Container) on every
// call; it does not draw a random point and the returned point generally
// does not lie on the surface. It is used only for light sampling of
// emissive quadrics.
func (q *Quadric) Sample(random *rand.Rand) core.Vec3 {
	return q.centroid
}

// NormalAt returns the implicit gradient's direction at point.
func (q *Quadric) NormalAt(point core.Vec3) core.Vec3 {
	return q.gradient(point)
}

// Bounds returns the clipping container.
func (q *Quadric) Bounds() BoundingVolume {
	return q.Container
}

// Area approximates the quadric's surface area by its container's surface
// area, since no closed form exists in general.
func (q *Quadric) Area() float64 {
	size := q.Container.Size
	return 2 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

func (q *Quadric) Centroid() core.Vec3            { return q.centroid }
func (q *Quadric) Material() material.PBRMaterial { return q.Mat }
