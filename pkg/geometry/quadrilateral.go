package geometry

import (
	"math/rand"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/material"
)

// Quadrilateral is a planar parallelogram: origin corner plus two edge
// vectors spanning the opposite corners (origin+edge1, origin+edge2,
// origin+edge1+edge2).
type Quadrilateral struct {
	Origin, Edge1, Edge2 core.Vec3
	Mat                  material.PBRMaterial

	normal   core.Vec3
	area     float64
	centroid core.Vec3
}

// NewQuadrilateral builds a Quadrilateral, precomputing its plane normal,
// area and centroid.
func NewQuadrilateral(origin, edge1, edge2 core.Vec3, mat material.PBRMaterial) *Quadrilateral {
	cross := edge1.Cross(edge2)
	return &Quadrilateral{
		Origin: origin, Edge1: edge1, Edge2: edge2,
		Mat:      mat,
		normal:   cross.Normalize(),
		area:     cross.Length(),
		centroid: origin.Add(edge1.Multiply(0.5)).Add(edge2.Multiply(0.5)),
	}
}

// Intersect performs a plane test followed by a reciprocal-cross-product
// barycentric containment test, matching the original renderer's
// Quadrilateral::intersect.
func (q *Quadrilateral) Intersect(ray core.Ray, random *rand.Rand) RayIntersection {
	denom := q.normal.Dot(ray.Direction)
	if denom > -moellerTrumboreEpsilon && denom < moellerTrumboreEpsilon {
		return Miss
	}

	depth := q.normal.Dot(q.Origin.Subtract(ray.Origin)) / denom
	if depth <= hitEpsilon {
		return Miss
	}

	point := ray.At(depth)
	local := point.Subtract(q.Origin)

	m1 := q.Edge1.Cross(local)
	m2 := local.Cross(q.Edge2)
	if m1.Dot(m2) < 0 {
		return Miss
	}

	e1Len2 := q.Edge1.Dot(q.Edge1)
	e2Len2 := q.Edge2.Dot(q.Edge2)
	u := local.Dot(q.Edge1) / e1Len2
	v := local.Dot(q.Edge2) / e2Len2
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return Miss
	}

	normal := q.normal
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Negate()
	}

	return RayIntersection{
		Hit:      true,
		Position: point,
		Normal:   normal,
		Material: q.Mat,
		Depth:    depth,
		Exit:     depth,
		UV:       core.NewVec2(u, v),
		Object:   q,
	}
}

// Sample draws a uniform point on the parallelogram.
func (q *Quadrilateral) Sample(random *rand.Rand) core.Vec3 {
	return q.Origin.Add(q.Edge1.Multiply(random.Float64())).Add(q.Edge2.Multiply(random.Float64()))
}

// NormalAt returns the quadrilateral's flat plane normal.
func (q *Quadrilateral) NormalAt(_ core.Vec3) core.Vec3 {
	return q.normal
}

// Bounds returns the quadrilateral's axis-aligned bounding box.
func (q *Quadrilateral) Bounds() BoundingVolume {
	far := q.Origin.Add(q.Edge1).Add(q.Edge2)
	return FromPoints(q.Origin, q.Origin.Add(q.Edge1), q.Origin.Add(q.Edge2), far)
}

func (q *Quadrilateral) Area() float64                  { return q.area }
func (q *Quadrilateral) Centroid() core.Vec3            { return q.centroid }
func (q *Quadrilateral) Material() material.PBRMaterial { return q.Mat }
