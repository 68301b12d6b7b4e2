package geometry

import (
	"math"

	"github.com/irradiance/pathtracer/pkg/core"
)

// BoundingVolume is an axis-aligned box stored as an origin and a
// (non-negative) size along each axis, matching the data model's
// "origin + size" convention rather than a min/max pair.
type BoundingVolume struct {
	Origin core.Vec3
	Size   core.Vec3
}

// NewBoundingVolume builds a BoundingVolume from an origin and size.
func NewBoundingVolume(origin, size core.Vec3) BoundingVolume {
	return BoundingVolume{Origin: origin, Size: size}
}

// FromPoints returns the smallest BoundingVolume containing all given points.
func FromPoints(points ...core.Vec3) BoundingVolume {
	if len(points) == 0 {
		return BoundingVolume{}
	}
	min := points[0]
	max := points[0]
	for _, p := range points[1:] {
		min.X, max.X = math.Min(min.X, p.X), math.Max(max.X, p.X)
		min.Y, max.Y = math.Min(min.Y, p.Y), math.Max(max.Y, p.Y)
		min.Z, max.Z = math.Min(min.Z, p.Z), math.Max(max.Z, p.Z)
	}
	return BoundingVolume{Origin: min, Size: max.Subtract(min)}
}

// Max returns the far corner (Origin + Size).
func (b BoundingVolume) Max() core.Vec3 {
	return b.Origin.Add(b.Size)
}

// Contains reports whether point lies within the box (inclusive).
func (b BoundingVolume) Contains(point core.Vec3) bool {
	max := b.Max()
	return point.X >= b.Origin.X && point.X <= max.X &&
		point.Y >= b.Origin.Y && point.Y <= max.Y &&
		point.Z >= b.Origin.Z && point.Z <= max.Z
}

// Intersects reports whether two boxes overlap.
func (b BoundingVolume) Intersects(other BoundingVolume) bool {
	aMax, oMax := b.Max(), other.Max()
	return b.Origin.X <= oMax.X && aMax.X >= other.Origin.X &&
		b.Origin.Y <= oMax.Y && aMax.Y >= other.Origin.Y &&
		b.Origin.Z <= oMax.Z && aMax.Z >= other.Origin.Z
}

// Union returns the smallest box containing both b and other.
func (b BoundingVolume) Union(other BoundingVolume) BoundingVolume {
	bMax, oMax := b.Max(), other.Max()
	min := core.NewVec3(math.Min(b.Origin.X, other.Origin.X), math.Min(b.Origin.Y, other.Origin.Y), math.Min(b.Origin.Z, other.Origin.Z))
	max := core.NewVec3(math.Max(bMax.X, oMax.X), math.Max(bMax.Y, oMax.Y), math.Max(bMax.Z, oMax.Z))
	return BoundingVolume{Origin: min, Size: max.Subtract(min)}
}

// Center returns the box's midpoint.
func (b BoundingVolume) Center() core.Vec3 {
	return b.Origin.Add(b.Size.Multiply(0.5))
}

// Transform returns the axis-aligned box bounding all 8 corners of b after
// being transformed by m; used to compute a MeshInstance's world-space bounds.
func (b BoundingVolume) Transform(m core.Mat4) BoundingVolume {
	max := b.Max()
	corners := [8]core.Vec3{
		{X: b.Origin.X, Y: b.Origin.Y, Z: b.Origin.Z},
		{X: max.X, Y: b.Origin.Y, Z: b.Origin.Z},
		{X: b.Origin.X, Y: max.Y, Z: b.Origin.Z},
		{X: b.Origin.X, Y: b.Origin.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: b.Origin.Z},
		{X: max.X, Y: b.Origin.Y, Z: max.Z},
		{X: b.Origin.X, Y: max.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
	}
	for i, c := range corners {
		corners[i] = m.MulPoint(c)
	}
	return FromPoints(corners[:]...)
}
