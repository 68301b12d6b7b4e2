package scene

import (
	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/geometry"
	"github.com/irradiance/pathtracer/pkg/material"
)

// quad builds a Quadrilateral from three corner points (an origin corner
// plus its two adjacent corners), matching the literal data in
// original_source/scenes.h's cornell_box(), which lists three points per
// wall rather than an origin+edge-vector pair.
func quad(origin, adjacent1, adjacent2 core.Vec3, mat material.PBRMaterial) *geometry.Quadrilateral {
	return geometry.NewQuadrilateral(origin, adjacent1.Subtract(origin), adjacent2.Subtract(origin), mat)
}

func matte(albedo core.Vec3) material.PBRMaterial {
	return material.PBRMaterial{Albedo: albedo, Roughness: 1}
}

// CornellBox builds the exact Cornell box fixture from
// original_source/scenes.h's cornell_box(): a cube spanning [-1,1]^3 with a
// red left wall, green right wall, white remaining walls, and a small
// emissive quad set just below the ceiling. Left/right/up are as seen by a
// camera at the center looking along +z: the scene is y-down, so the
// ceiling is y=-1, and x=+1 is on the left of the image. This is both the
// default scene and the literal fixture for end-to-end scenario 2 (spec §8).
func CornellBox() *Scene {
	red := matte(core.NewVec3(.75, .25, .25))
	green := matte(core.NewVec3(.25, .75, .25))
	white := matte(core.NewVec3(.75, .75, .75))
	light := material.PBRMaterial{
		Albedo:    core.NewVec3(1, 1, 1),
		Emission:  core.NewVec3(4e1, 4e1, 4e1),
		Roughness: 1,
	}

	objects := []geometry.Object{
		// back wall (z=+1)
		quad(core.NewVec3(1, 1, 1), core.NewVec3(-1, 1, 1), core.NewVec3(1, -1, 1), white),
		// front wall (z=-1)
		quad(core.NewVec3(-1, 1, -1), core.NewVec3(1, 1, -1), core.NewVec3(-1, -1, -1), white),
		// right wall (x=-1)
		quad(core.NewVec3(-1, 1, 1), core.NewVec3(-1, 1, -1), core.NewVec3(-1, -1, 1), green),
		// left wall (x=+1)
		quad(core.NewVec3(1, 1, -1), core.NewVec3(1, 1, 1), core.NewVec3(1, -1, -1), red),
		// floor (y=+1)
		quad(core.NewVec3(-1, 1, -1), core.NewVec3(1, 1, -1), core.NewVec3(-1, 1, 1), white),
		// ceiling (y=-1)
		quad(core.NewVec3(1, -1, 1), core.NewVec3(-1, -1, 1), core.NewVec3(1, -1, -1), white),
		// ceiling light (y=-0.99)
		quad(core.NewVec3(.25, -.99, .25), core.NewVec3(-.25, -.99, .25), core.NewVec3(.25, -.99, -.25), light),
	}

	mesh := geometry.NewMesh(objects)
	instance := geometry.NewMeshInstance(mesh, core.Identity4())
	return New([]*geometry.MeshInstance{instance}, nil)
}

// SingleSphereScenario builds scenario 1's fixture (spec §8): one red
// diffuse sphere at (0,0,5), in front of the default camera, lit by a single
// overhead emissive quad at y=-3 (the scene is y-down). There is no
// enclosing box; every other direction sees empty space.
func SingleSphereScenario() *Scene {
	redDiffuse := material.PBRMaterial{Albedo: core.NewVec3(.8, .05, .05), Roughness: 1}
	lightMat := material.PBRMaterial{Albedo: core.NewVec3(1, 1, 1), Emission: core.NewVec3(4e1, 4e1, 4e1), Roughness: 1}

	sphere := geometry.NewSphere(core.NewVec3(0, 0, 5), 1, redDiffuse)
	overheadLight := quad(core.NewVec3(-1, -3, 4), core.NewVec3(1, -3, 4), core.NewVec3(-1, -3, 6), lightMat)

	mesh := geometry.NewMesh([]geometry.Object{sphere, overheadLight})
	instance := geometry.NewMeshInstance(mesh, core.Identity4())
	return New([]*geometry.MeshInstance{instance}, nil)
}

// MirrorSphereScenario builds scenario 3's fixture: a perfectly specular
// sphere facing a saturated red wall behind the camera, so the sphere's
// reflection picks up that chromaticity. The scene holds only the sphere,
// the red wall at z=-5, one white plane at y=-3 and an emissive quad just
// below it; it is not a closed box.
func MirrorSphereScenario() *Scene {
	mirror := material.PBRMaterial{Albedo: core.NewVec3(1, 1, 1), Metallicity: 1, Roughness: 0}
	red := matte(core.NewVec3(.8, .05, .05))
	white := matte(core.NewVec3(.75, .75, .75))
	lightMat := material.PBRMaterial{Albedo: core.NewVec3(1, 1, 1), Emission: core.NewVec3(4e1, 4e1, 4e1), Roughness: 1}

	sphere := geometry.NewSphere(core.NewVec3(0, 0, 5), 1, mirror)
	behindCameraWall := quad(core.NewVec3(-5, 5, -5), core.NewVec3(5, 5, -5), core.NewVec3(-5, -5, -5), red)
	floor := quad(core.NewVec3(5, -3, -5), core.NewVec3(-5, -3, -5), core.NewVec3(5, -3, 10), white)
	overheadLight := quad(core.NewVec3(-1, -2.9, 4), core.NewVec3(1, -2.9, 4), core.NewVec3(-1, -2.9, 6), lightMat)

	mesh := geometry.NewMesh([]geometry.Object{sphere, behindCameraWall, floor, overheadLight})
	instance := geometry.NewMeshInstance(mesh, core.Identity4())
	return New([]*geometry.MeshInstance{instance}, nil)
}

// GlassSphereScenario builds scenario 4's fixture: a refractive sphere with
// a compact point-light proxy behind it.
func GlassSphereScenario() *Scene {
	glass := material.PBRMaterial{
		Albedo:          core.NewVec3(1, 1, 1),
		RefractionIndex: 1.5,
		Transmission:    1,
		Roughness:       0,
	}
	lightMat := material.PBRMaterial{Albedo: core.NewVec3(1, 1, 1), Emission: core.NewVec3(1e2, 1e2, 1e2), Roughness: 1}

	sphere := geometry.NewSphere(core.NewVec3(0, 0, 5), 1, glass)
	pointLight := geometry.NewSphere(core.NewVec3(0, 0, 10), .05, lightMat)

	mesh := geometry.NewMesh([]geometry.Object{sphere, pointLight})
	instance := geometry.NewMeshInstance(mesh, core.Identity4())
	return New([]*geometry.MeshInstance{instance}, nil)
}

// DOFScenario builds scenario 5's fixture: two spheres at different depths
// to compare edge sharpness under a shallow depth of field.
func DOFScenario() *Scene {
	mat := material.PBRMaterial{Albedo: core.NewVec3(.6, .6, .6), Roughness: .4}
	lightMat := material.PBRMaterial{Albedo: core.NewVec3(1, 1, 1), Emission: core.NewVec3(6e1, 6e1, 6e1), Roughness: 1}

	near := geometry.NewSphere(core.NewVec3(0, 0, 2), .5, mat)
	far := geometry.NewSphere(core.NewVec3(0, 0, 10), .5, mat)
	overheadLight := quad(core.NewVec3(-2, -3, 1), core.NewVec3(2, -3, 1), core.NewVec3(-2, -3, 11), lightMat)

	mesh := geometry.NewMesh([]geometry.Object{near, far, overheadLight})
	instance := geometry.NewMeshInstance(mesh, core.Identity4())
	return New([]*geometry.MeshInstance{instance}, nil)
}
