package geometry

import (
	"math/rand"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/material"
)

// Mesh is an immutable collection of Objects sharing one local coordinate
// frame, typically loaded from an OBJ file (see pkg/objloader).
type Mesh struct {
	Objects []Object
	bounds  BoundingVolume
}

// NewMesh builds a Mesh and precomputes its local-space bounds as the union
// of every member object's bounds.
func NewMesh(objects []Object) *Mesh {
	bounds := BoundingVolume{}
	for i, o := range objects {
		if i == 0 {
			bounds = o.Bounds()
			continue
		}
		bounds = bounds.Union(o.Bounds())
	}
	return &Mesh{Objects: objects, bounds: bounds}
}

// Bounds returns the mesh's local-space bounding box.
func (m *Mesh) Bounds() BoundingVolume { return m.bounds }

// MeshInstance places a shared Mesh into the world with its own transform,
// so the same geometry can be reused at multiple positions/orientations/
// scales without duplicating the underlying Objects.
//
// IMPORTANT: when transforming a ray into local space, the origin must be
// transformed as a point (w=1, so translation applies) and the direction as
// a direction (w=0, so translation does not apply). Getting this backwards
// silently reapplies the instance's translation to the direction and
// produces a ray that misses everything.
type MeshInstance struct {
	Mesh        *Mesh
	Transform   core.Mat4
	inverse     core.Mat4
	worldBounds BoundingVolume
}

// NewMeshInstance places mesh into the world via transform.
func NewMeshInstance(mesh *Mesh, transform core.Mat4) *MeshInstance {
	inverse := transform.Inverse()
	return &MeshInstance{
		Mesh:        mesh,
		Transform:   transform,
		inverse:     inverse,
		worldBounds: mesh.Bounds().Transform(transform),
	}
}

// Intersect transforms ray into the mesh's local space, finds the nearest
// hit across every member object, and transforms the result back into world
// space. Depth/Exit remain expressed as ray parameter t, which is invariant
// under the affine transform because the local direction is not
// renormalized. Depth is recomputed as the distance from the world-space
// ray origin to the returned world-space position; Exit is the nearest
// object's own exit t, raised to Depth if smaller. Only the nearest hit is
// kept: exits of other member objects along the ray are not considered.
func (mi *MeshInstance) Intersect(ray core.Ray, random *rand.Rand) RayIntersection {
	localRay := core.Ray{
		Origin:    mi.inverse.MulPoint(ray.Origin),
		Direction: mi.inverse.MulDirection(ray.Direction),
	}

	nearest := Miss
	for _, obj := range mi.Mesh.Objects {
		hit := obj.Intersect(localRay, random)
		if hit.Hit && hit.Depth < nearest.Depth {
			nearest = hit
		}
	}
	if !nearest.Hit {
		return Miss
	}

	worldPosition := mi.Transform.MulPoint(nearest.Position)
	worldNormal := mi.TransformNormal(nearest.Normal)

	depth := worldPosition.Subtract(ray.Origin).Length()
	if ray.Direction.Dot(worldPosition.Subtract(ray.Origin)) < 0 {
		depth = -depth
	}

	exit := nearest.Exit
	if exit < depth {
		exit = depth
	}

	return RayIntersection{
		Hit:      true,
		Position: worldPosition,
		Normal:   worldNormal,
		Material: nearest.Material,
		Depth:    depth,
		Exit:     exit,
		UV:       nearest.UV,
		// Object identifies the underlying primitive that was actually hit
		// (not this instance), so a scene's emitter table - built by scanning
		// the same underlying Objects - can recognize a shadow ray landing
		// back on the light it was sampled from (see pkg/scene.Emitter).
		Object: nearest.Object,
	}
}

// TransformPoint maps a local-space point into world space (spec §4.2's
// per-instance transform), exported so callers that sample a point on a
// specific member object (e.g. light sampling) can place it in the world.
func (mi *MeshInstance) TransformPoint(p core.Vec3) core.Vec3 {
	return mi.Transform.MulPoint(p)
}

// TransformNormal maps a local-space unit normal into world space via the
// transpose-inverse, correct under non-uniform scale (see the MeshInstance
// doc's IMPORTANT note on point-vs-direction transforms).
func (mi *MeshInstance) TransformNormal(n core.Vec3) core.Vec3 {
	return mi.inverse.TransposeUpper3x3().MulDirection(n).Normalize()
}

// Sample draws a point on a uniformly-chosen member object's surface and
// transforms it into world space.
func (mi *MeshInstance) Sample(random *rand.Rand) core.Vec3 {
	if len(mi.Mesh.Objects) == 0 {
		return mi.Transform.MulPoint(core.Vec3{})
	}
	idx := random.Intn(len(mi.Mesh.Objects))
	local := mi.Mesh.Objects[idx].Sample(random)
	return mi.Transform.MulPoint(local)
}

// NormalAt transforms point into local space, asks the nearest member object
// for its normal there, and transforms the normal back into world space.
func (mi *MeshInstance) NormalAt(point core.Vec3) core.Vec3 {
	local := mi.inverse.MulPoint(point)
	var nearestObj Object
	nearestDist := -1.0
	for _, obj := range mi.Mesh.Objects {
		d := obj.Centroid().Subtract(local).LengthSquared()
		if nearestDist < 0 || d < nearestDist {
			nearestDist = d
			nearestObj = obj
		}
	}
	if nearestObj == nil {
		return core.NewVec3(0, 1, 0)
	}
	return mi.TransformNormal(nearestObj.NormalAt(local))
}

// Bounds returns the instance's world-space bounding box.
func (mi *MeshInstance) Bounds() BoundingVolume { return mi.worldBounds }

// Area returns the sum of every member object's local-space surface area;
// the instance transform's scale (uniform or not) is not applied.
func (mi *MeshInstance) Area() float64 {
	total := 0.0
	for _, obj := range mi.Mesh.Objects {
		total += obj.Area()
	}
	return total
}

// Centroid returns the instance's world-space centroid.
func (mi *MeshInstance) Centroid() core.Vec3 {
	return mi.Transform.MulPoint(mi.Mesh.Bounds().Center())
}

// Material returns the material of the mesh's first object, used only when
// a MeshInstance as a whole needs a representative material (e.g. emitter
// table construction for an instance with uniform emission).
func (mi *MeshInstance) Material() material.PBRMaterial {
	if len(mi.Mesh.Objects) == 0 {
		return material.PBRMaterial{}
	}
	return mi.Mesh.Objects[0].Material()
}
