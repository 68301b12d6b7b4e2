package geometry

import (
	"math"
	"math/rand"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/material"
)

// Triangle is a flat primitive defined by three vertices, with per-vertex
// UVs for texture mapping. Normal is the flat face normal (no vertex
// normal interpolation, matching the original renderer).
type Triangle struct {
	V0, V1, V2    core.Vec3
	UV0, UV1, UV2 core.Vec2
	Mat           material.PBRMaterial

	normal   core.Vec3
	area     float64
	centroid core.Vec3
}

// NewTriangle builds a Triangle, precomputing its flat normal, area and centroid.
func NewTriangle(v0, v1, v2 core.Vec3, uv0, uv1, uv2 core.Vec2, mat material.PBRMaterial) *Triangle {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	cross := edge1.Cross(edge2)
	return &Triangle{
		V0: v0, V1: v1, V2: v2,
		UV0: uv0, UV1: uv1, UV2: uv2,
		Mat:      mat,
		normal:   cross.Normalize(),
		area:     0.5 * cross.Length(),
		centroid: v0.Add(v1).Add(v2).Multiply(1.0 / 3.0),
	}
}

// moellerTrumboreEpsilon guards the edge1 x direction . edge2 denominator,
// matching the original renderer's epsilon of .001f.
const moellerTrumboreEpsilon = 1e-3

// Intersect implements the Moller-Trumbore ray-triangle test.
func (t *Triangle) Intersect(ray core.Ray, random *rand.Rand) RayIntersection {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -moellerTrumboreEpsilon && a < moellerTrumboreEpsilon {
		return Miss
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return Miss
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return Miss
	}

	depth := f * edge2.Dot(q)
	if depth <= hitEpsilon {
		return Miss
	}

	w := 1 - u - v
	uv := t.UV0.Multiply(w).Add(t.UV1.Multiply(u)).Add(t.UV2.Multiply(v))

	normal := t.normal
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Negate()
	}

	return RayIntersection{
		Hit:      true,
		Position: ray.At(depth),
		Normal:   normal,
		Material: t.Mat,
		Depth:    depth,
		Exit:     depth,
		UV:       uv,
		Object:   t,
	}
}

// Sample draws a uniform point on the triangle via barycentric coordinates.
func (t *Triangle) Sample(random *rand.Rand) core.Vec3 {
	r1 := random.Float64()
	r2 := random.Float64()
	sqrtR1 := math.Sqrt(r1)
	u := 1 - sqrtR1
	v := r2 * sqrtR1
	w := 1 - u - v
	return t.V0.Multiply(u).Add(t.V1.Multiply(v)).Add(t.V2.Multiply(w))
}

// NormalAt returns the flat face normal, oriented away from the given point's
// side is not tracked here since Triangle has no "inside"; callers needing a
// ray-facing normal should use the Intersect result instead.
func (t *Triangle) NormalAt(_ core.Vec3) core.Vec3 {
	return t.normal
}

// Bounds returns the triangle's axis-aligned bounding box.
func (t *Triangle) Bounds() BoundingVolume {
	return FromPoints(t.V0, t.V1, t.V2)
}

func (t *Triangle) Area() float64                  { return t.area }
func (t *Triangle) Centroid() core.Vec3            { return t.centroid }
func (t *Triangle) Material() material.PBRMaterial { return t.Mat }
