// Package geometry implements the primitive library and the Mesh/MeshInstance
// composition described in spec.md §2.2-2.3 and §4.1-4.2.
package geometry

import (
	"math"
	"math/rand"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/material"
)

// hitEpsilon is the minimum positive t accepted as a real intersection, used
// throughout the primitive library to reject self-intersection.
const hitEpsilon = 1e-3

// RayIntersection is the result of Object.Intersect. On a miss, Hit is false
// and Depth is +Inf.
type RayIntersection struct {
	Hit      bool
	Position core.Vec3
	Normal   core.Vec3
	Material material.PBRMaterial
	Depth    float64 // ray parameter t of entry
	Exit     float64 // ray parameter t of far side, for volumes; equal to Depth for flat surfaces
	UV       core.Vec2
	Object   Object
}

// Miss is the canonical non-intersection result.
var Miss = RayIntersection{Hit: false, Depth: math.Inf(1)}

// Object is the polymorphic primitive contract (spec §3 "Object").
// Concrete variants: Sphere, Triangle, Quadrilateral, Cuboid, Quadric, Colloid.
type Object interface {
	// Intersect returns the nearest positive-t hit, in the primitive's own
	// local frame (MeshInstance handles the world<->local transform). random
	// is used by volumetric primitives (Colloid) that scatter probabilistically
	// along the ray; surface primitives ignore it.
	Intersect(ray core.Ray, random *rand.Rand) RayIntersection
	// Sample draws a point on the primitive's surface (or, for volumes, a
	// point used as a light-sampling proxy).
	Sample(random *rand.Rand) core.Vec3
	// NormalAt returns the unit surface normal at a point on the primitive.
	NormalAt(point core.Vec3) core.Vec3
	// Bounds returns the primitive's local-space bounding box.
	Bounds() BoundingVolume
	// Area returns the precomputed surface area.
	Area() float64
	// Centroid returns the precomputed centroid.
	Centroid() core.Vec3
	// Material returns the primitive's surface material.
	Material() material.PBRMaterial
}
