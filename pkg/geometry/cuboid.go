package geometry

import (
	"math"
	"math/rand"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/material"
)

// Cuboid is an axis-aligned box given as an origin corner and a size along
// each axis, matching the original renderer's Cuboid primitive.
type Cuboid struct {
	Origin, Size core.Vec3
	Mat          material.PBRMaterial

	centroid core.Vec3
	area     float64
}

// NewCuboid builds a Cuboid, precomputing its centroid and surface area.
func NewCuboid(origin, size core.Vec3, mat material.PBRMaterial) *Cuboid {
	area := 2 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
	return &Cuboid{
		Origin: origin, Size: size, Mat: mat,
		centroid: origin.Add(size.Multiply(0.5)),
		area:     area,
	}
}

// faceEpsilon is the tolerance used to classify which face a hit point lies
// on, per the original renderer's position-vs-origin+size comparison.
const faceEpsilon = 1e-4

// Intersect performs the slab method against the six axis-aligned faces.
func (c *Cuboid) Intersect(ray core.Ray, random *rand.Rand) RayIntersection {
	max := c.Origin.Add(c.Size)

	tMin, tMax := math.Inf(-1), math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		origin, dir, lo, hi := axisComponents(ray, c.Origin, max, axis)
		if math.Abs(dir) < 1e-12 {
			if origin < lo || origin > hi {
				return Miss
			}
			continue
		}
		t1 := (lo - origin) / dir
		t2 := (hi - origin) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return Miss
		}
	}

	entry := tMin
	if entry <= hitEpsilon {
		entry = tMax
		if entry <= hitEpsilon {
			return Miss
		}
	}

	point := ray.At(entry)
	normal := c.faceNormal(point, max)
	u, v := c.uv(normal)

	return RayIntersection{
		Hit:      true,
		Position: point,
		Normal:   normal,
		Material: c.Mat,
		Depth:    entry,
		Exit:     tMax,
		UV:       core.NewVec2(u, v),
		Object:   c,
	}
}

func axisComponents(ray core.Ray, origin, max core.Vec3, axis int) (o, d, lo, hi float64) {
	switch axis {
	case 0:
		return ray.Origin.X, ray.Direction.X, origin.X, max.X
	case 1:
		return ray.Origin.Y, ray.Direction.Y, origin.Y, max.Y
	default:
		return ray.Origin.Z, ray.Direction.Z, origin.Z, max.Z
	}
}

// faceNormal classifies which of the six faces point lies on by comparing
// each axis against the origin and origin+size planes within faceEpsilon.
func (c *Cuboid) faceNormal(point, max core.Vec3) core.Vec3 {
	switch {
	case math.Abs(point.X-c.Origin.X) < faceEpsilon:
		return core.NewVec3(-1, 0, 0)
	case math.Abs(point.X-max.X) < faceEpsilon:
		return core.NewVec3(1, 0, 0)
	case math.Abs(point.Y-c.Origin.Y) < faceEpsilon:
		return core.NewVec3(0, -1, 0)
	case math.Abs(point.Y-max.Y) < faceEpsilon:
		return core.NewVec3(0, 1, 0)
	case math.Abs(point.Z-c.Origin.Z) < faceEpsilon:
		return core.NewVec3(0, 0, -1)
	default:
		return core.NewVec3(0, 0, 1)
	}
}

// uv derives equirectangular coordinates from the direction between the
// cuboid's centroid and the face normal, matching the original renderer's
// atan2/asin UV derivation for Cuboid.
func (c *Cuboid) uv(normal core.Vec3) (float64, float64) {
	u := 0.5 + math.Atan2(normal.Z, normal.X)/(2*math.Pi)
	v := 0.5 + math.Asin(clampAsinDomain(normal.Y))/math.Pi
	return u, v
}

// Sample draws a uniform point on one of the six faces, weighted by area.
func (c *Cuboid) Sample(random *rand.Rand) core.Vec3 {
	faceAreas := [3]float64{c.Size.Y * c.Size.Z, c.Size.X * c.Size.Z, c.Size.X * c.Size.Y}
	r := random.Float64() * (faceAreas[0] + faceAreas[1] + faceAreas[2])

	side := 0.0
	if random.Float64() < 0.5 {
		side = 1.0
	}

	switch {
	case r < faceAreas[0]:
		x := c.Origin.X + side*c.Size.X
		return core.NewVec3(x, c.Origin.Y+random.Float64()*c.Size.Y, c.Origin.Z+random.Float64()*c.Size.Z)
	case r < faceAreas[0]+faceAreas[1]:
		y := c.Origin.Y + side*c.Size.Y
		return core.NewVec3(c.Origin.X+random.Float64()*c.Size.X, y, c.Origin.Z+random.Float64()*c.Size.Z)
	default:
		z := c.Origin.Z + side*c.Size.Z
		return core.NewVec3(c.Origin.X+random.Float64()*c.Size.X, c.Origin.Y+random.Float64()*c.Size.Y, z)
	}
}

// NormalAt classifies point against the box's six faces.
func (c *Cuboid) NormalAt(point core.Vec3) core.Vec3 {
	return c.faceNormal(point, c.Origin.Add(c.Size))
}

// Bounds returns the cuboid's own axis-aligned bounding box.
func (c *Cuboid) Bounds() BoundingVolume {
	return NewBoundingVolume(c.Origin, c.Size)
}

func (c *Cuboid) Area() float64                  { return c.area }
func (c *Cuboid) Centroid() core.Vec3            { return c.centroid }
func (c *Cuboid) Material() material.PBRMaterial { return c.Mat }
