// Package sceneio loads a scene description (camera start pose + object
// list) from a YAML file, an alternative to the Go-code scene constructors
// in pkg/scene (cornell.go etc.) that lets cmd/irradiance pick a scene
// without recompiling (spec §6's scene selection, supplemented per
// SPEC_FULL.md's DOMAIN STACK).
package sceneio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/irradiance/pathtracer/pkg/camera"
	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/geometry"
	"github.com/irradiance/pathtracer/pkg/material"
	"github.com/irradiance/pathtracer/pkg/objloader"
	"github.com/irradiance/pathtracer/pkg/scene"
	"github.com/irradiance/pathtracer/pkg/texture"
)

// Document is the root of a scene YAML file.
type Document struct {
	Camera  CameraPose `yaml:"camera"`
	Objects []Object   `yaml:"objects"`
	Skybox  string     `yaml:"skybox"`
}

// CameraPose sets the camera's initial state (spec §3's Camera fields).
type CameraPose struct {
	Position [3]float64 `yaml:"position"`
	Yaw      float64    `yaml:"yaw"`
	Pitch    float64    `yaml:"pitch"`
	FOVDeg   float64    `yaml:"fov"`
}

// Object describes one scene primitive. Kind selects which geometry.Object
// constructor runs; unused fields for a given kind are ignored.
type Object struct {
	Kind string `yaml:"kind"` // sphere | quad | cuboid | obj

	Center [3]float64 `yaml:"center"` // sphere
	Radius float64    `yaml:"radius"` // sphere

	Origin [3]float64 `yaml:"origin"` // quad, cuboid
	Edge1  [3]float64 `yaml:"edge1"`  // quad
	Edge2  [3]float64 `yaml:"edge2"`  // quad
	Size   [3]float64 `yaml:"size"`   // cuboid

	Path      [3]float64 `yaml:"-"`
	File      string     `yaml:"file"`      // obj
	Translate [3]float64 `yaml:"translate"` // obj
	Scale     float64    `yaml:"scale"`     // obj, defaults to 1 if zero

	Material MaterialSpec `yaml:"material"`
}

// MaterialSpec mirrors material.PBRMaterial's fields in YAML-friendly form.
type MaterialSpec struct {
	Albedo          [3]float64 `yaml:"albedo"`
	Emission        [3]float64 `yaml:"emission"`
	Metallicity     float64    `yaml:"metallicity"`
	RefractionIndex float64    `yaml:"refraction_index"`
	Roughness       float64    `yaml:"roughness"`
	Transmission    float64    `yaml:"transmission"`
	TexturePath     string     `yaml:"texture"`
}

func (m MaterialSpec) resolve() material.PBRMaterial {
	ior := m.RefractionIndex
	if ior == 0 {
		ior = 1.5
	}
	mat := material.PBRMaterial{
		Albedo:          vec3(m.Albedo),
		Emission:        vec3(m.Emission),
		Metallicity:     m.Metallicity,
		RefractionIndex: ior,
		Roughness:       m.Roughness,
		Transmission:    m.Transmission,
	}
	if m.TexturePath != "" {
		mat.Texture = texture.LoadImage(m.TexturePath)
	}
	return mat
}

func vec3(v [3]float64) core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }

// Load reads path, parses it as a scene Document, and builds the
// corresponding *scene.Scene and a *camera.Camera sized width x height
// and posed per the document (spec §6: a named scene replaces the default
// Cornell box without recompiling).
func Load(path string, width, height int) (*scene.Scene, *camera.Camera, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read scene file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse scene file: %w", err)
	}

	cam := camera.New(width, height)
	cam.Position = vec3(doc.Camera.Position)
	cam.Yaw = doc.Camera.Yaw
	cam.Pitch = doc.Camera.Pitch
	if doc.Camera.FOVDeg != 0 {
		cam.SetFOV(doc.Camera.FOVDeg)
	}
	cam.Dirty = true

	instances := make([]*geometry.MeshInstance, 0, len(doc.Objects))
	for _, obj := range doc.Objects {
		instance, err := buildInstance(obj)
		if err != nil {
			return nil, nil, err
		}
		instances = append(instances, instance)
	}

	var skybox scene.Texture
	if doc.Skybox != "" {
		if img := texture.LoadImage(doc.Skybox); img != nil {
			skybox = img
		}
	}

	return scene.New(instances, skybox), cam, nil
}

func buildInstance(obj Object) (*geometry.MeshInstance, error) {
	mat := obj.Material.resolve()

	switch obj.Kind {
	case "sphere":
		sphere := geometry.NewSphere(vec3(obj.Center), obj.Radius, mat)
		mesh := geometry.NewMesh([]geometry.Object{sphere})
		return geometry.NewMeshInstance(mesh, core.Identity4()), nil

	case "quad":
		quad := geometry.NewQuadrilateral(vec3(obj.Origin), vec3(obj.Edge1), vec3(obj.Edge2), mat)
		mesh := geometry.NewMesh([]geometry.Object{quad})
		return geometry.NewMeshInstance(mesh, core.Identity4()), nil

	case "cuboid":
		cuboid := geometry.NewCuboid(vec3(obj.Origin), vec3(obj.Size), mat)
		mesh := geometry.NewMesh([]geometry.Object{cuboid})
		return geometry.NewMeshInstance(mesh, core.Identity4()), nil

	case "obj":
		mesh, err := objloader.Load(obj.File, mat)
		if err != nil {
			return nil, fmt.Errorf("load obj %q: %w", obj.File, err)
		}
		scale := obj.Scale
		if scale == 0 {
			scale = 1
		}
		transform := core.Translate4(vec3(obj.Translate)).Mul(core.Scale4(core.NewVec3(scale, scale, scale)))
		return geometry.NewMeshInstance(mesh, transform), nil

	default:
		return nil, fmt.Errorf("unknown object kind %q", obj.Kind)
	}
}
