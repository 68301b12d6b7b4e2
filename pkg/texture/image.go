package texture

import (
	"math"

	"github.com/irradiance/pathtracer/pkg/core"
)

// Image provides color from a decoded 2D image, row-major top-to-bottom.
type Image struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Pixels[y*Width+x]
}

// NewImage wraps a decoded pixel buffer as a texture.
func NewImage(width, height int, pixels []core.Vec3) *Image {
	return &Image{Width: width, Height: height, Pixels: pixels}
}

// Sample uses bilinear filtering on wrapped UV coordinates. V=0 is the
// bottom of the image, V=1 the top, matching the renderer's UV convention.
func (t *Image) Sample(uv core.Vec2, _ core.Vec3) core.Vec3 {
	u := wrapUnit(uv.X)
	v := wrapUnit(uv.Y)

	fx := u*float64(t.Width) - 0.5
	fy := (1 - v) * float64(t.Height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	x1 := x0 + 1
	y1 := y0 + 1

	tx := fx - float64(x0)
	ty := fy - float64(y0)

	c00 := t.at(x0, y0)
	c10 := t.at(x1, y0)
	c01 := t.at(x0, y1)
	c11 := t.at(x1, y1)

	top := c00.Multiply(1 - tx).Add(c10.Multiply(tx))
	bottom := c01.Multiply(1 - tx).Add(c11.Multiply(tx))
	return top.Multiply(1 - ty).Add(bottom.Multiply(ty))
}

func (t *Image) at(x, y int) core.Vec3 {
	x = clampInt(x, 0, t.Width-1)
	y = clampInt(y, 0, t.Height-1)
	return t.Pixels[y*t.Width+x]
}

func wrapUnit(v float64) float64 {
	v -= math.Floor(v)
	if v < 0 {
		v += 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
