// Package texture provides the sample(u,v,world_pos) -> RGB surface used by
// PBRMaterial.Texture and the skybox lookup, plus its concrete providers.
package texture

import "github.com/irradiance/pathtracer/pkg/core"

// Texture is any provider of a color at a surface location. Image-backed
// textures use (u,v) and ignore worldPos; procedural textures may do the
// opposite.
type Texture interface {
	Sample(uv core.Vec2, worldPos core.Vec3) core.Vec3
}

// Constant is a texture that returns the same color everywhere.
type Constant struct {
	Color core.Vec3
}

// NewConstant creates a constant-color texture.
func NewConstant(color core.Vec3) *Constant {
	return &Constant{Color: color}
}

func (c *Constant) Sample(core.Vec2, core.Vec3) core.Vec3 {
	return c.Color
}
