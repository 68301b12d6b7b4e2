package scene

import (
	"math"

	"github.com/irradiance/pathtracer/pkg/core"
)

// EquirectangularUV maps a (not necessarily normalized) direction to
// equirectangular (u,v) texture coordinates, matching the original
// renderer's compute_skybox_uv_coordinates and spec §4.5's skybox lookup.
// The y-down convention (phi = acos(-d.y)) is intentional and must be kept:
// the source's sky sphere sits at positive y with a y-down world, so this
// is not a sign bug to "fix".
func EquirectangularUV(direction core.Vec3) (u, v float64) {
	d := direction.Normalize()
	theta := math.Atan2(d.Z, d.X)
	phi := math.Acos(clamp(-d.Y, -1, 1))
	u = 1 - (theta+math.Pi)/(2*math.Pi)
	v = phi / math.Pi
	return u, v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
