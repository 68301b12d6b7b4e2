// Package camera implements the thin-lens Camera (spec §2.6, §4.4): a state
// vector that generates one primary ray per pixel via inverse projection,
// plus per-sample jitter and optional depth-of-field lens warp.
package camera

import (
	"math"
	"math/rand"

	"github.com/irradiance/pathtracer/pkg/core"
)

const (
	// MinPitch/MaxPitch clamp pitch to avoid gimbal degeneracy at the poles
	// (spec §3 "pitch clamped to +-80deg").
	MinPitch = -80 * math.Pi / 180
	MaxPitch = 80 * math.Pi / 180
	// MinFOV/MaxFOV clamp field of view (spec §3 "fov (10deg-170deg)").
	MinFOV = 10.0
	MaxFOV = 170.0
	// sampleJitterMagnitude is the per-sample direction-noise cube's
	// half-width (each component is drawn from [-m, m]), carried over from original_source/main.cpp's SAMPLE_JITTER.
	sampleJitterMagnitude = 1e-3
	// epsilon floors aperture radius and focal distance (spec §4.4 guard).
	epsilon = 1e-3
	near    = 0.1
	far     = 1000.0
)

// Camera holds position/orientation/lens state and the precomputed
// per-pixel ray directions, regenerated only when Dirty is set.
type Camera struct {
	Position core.Vec3
	Yaw      float64
	Pitch    float64
	FOVDeg   float64

	ApertureRadius float64
	FocalDistance  float64
	DOFEnabled     bool

	ISO          float64
	ShutterSpeed float64

	Width, Height int
	Dirty         bool

	rayDirections []core.Vec3 // world-space, normalized base directions, one per pixel
}

// New builds a Camera for the given framebuffer resolution with reasonable
// defaults, already dirty so the first frame builds its rays.
func New(width, height int) *Camera {
	return &Camera{
		Position:       core.Vec3{},
		Yaw:            0,
		Pitch:          0,
		FOVDeg:         60,
		ApertureRadius: epsilon,
		FocalDistance:  1,
		ISO:            100,
		ShutterSpeed:   1,
		Width:          width,
		Height:         height,
		Dirty:          true,
	}
}

// Direction returns the unit look direction implied by yaw/pitch (spec
// §4.4: normalize(cos(pitch)*sin(yaw), sin(pitch), cos(pitch)*cos(yaw))).
func (c *Camera) Direction() core.Vec3 {
	cp, sp := math.Cos(c.Pitch), math.Sin(c.Pitch)
	sy, cy := math.Sin(c.Yaw), math.Cos(c.Yaw)
	return core.NewVec3(cp*sy, sp, cp*cy).Normalize()
}

// Up is the fixed world-up vector used to derive Right.
var Up = core.NewVec3(0, 1, 0)

// Right returns the unit right vector, normalize(direction x worldUp).
func (c *Camera) Right() core.Vec3 {
	return c.Direction().Cross(Up).Normalize()
}

// SetYawPitch applies a pointer-drag delta, clamps pitch, and marks dirty.
func (c *Camera) SetYawPitch(yaw, pitch float64) {
	c.Yaw = yaw
	c.Pitch = clampFloat(pitch, MinPitch, MaxPitch)
	c.Dirty = true
}

// Translate moves the camera by delta in world space and marks dirty.
func (c *Camera) Translate(delta core.Vec3) {
	c.Position = c.Position.Add(delta)
	c.Dirty = true
}

// SetFOV sets field of view in degrees, clamped to [MinFOV,MaxFOV], and
// marks dirty.
func (c *Camera) SetFOV(deg float64) {
	c.FOVDeg = clampFloat(deg, MinFOV, MaxFOV)
	c.Dirty = true
}

// SetAperture sets the aperture radius, floored at epsilon, and marks dirty.
func (c *Camera) SetAperture(radius float64) {
	c.ApertureRadius = math.Max(radius, epsilon)
	c.Dirty = true
}

// SetFocalDistance sets the focal distance, floored at epsilon, and marks
// dirty.
func (c *Camera) SetFocalDistance(distance float64) {
	c.FocalDistance = math.Max(distance, epsilon)
	c.Dirty = true
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RebuildRays regenerates the per-pixel base ray directions via inverse
// projection (spec §4.4), then clears Dirty. Call this once per frame when
// Dirty is set, before dispatching the pixel kernel.
func (c *Camera) RebuildRays() {
	aspect := float64(c.Width) / float64(c.Height)
	projection := core.Perspective4(c.FOVDeg*math.Pi/180, aspect, near, far)
	view := core.LookAt4(c.Position, c.Position.Add(c.Direction()), Up)
	invProjection := projection.Inverse()
	invView := view.Inverse()

	directions := make([]core.Vec3, c.Width*c.Height)
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			ndcX := 2*float64(x)/float64(c.Width) - 1
			ndcY := 2*float64(y)/float64(c.Height) - 1

			clip := core.Vec4{X: ndcX, Y: ndcY, Z: 1, W: 1}
			viewSpace := invProjection.MulVec4(clip)
			if viewSpace.W != 0 {
				viewSpace.X /= viewSpace.W
				viewSpace.Y /= viewSpace.W
				viewSpace.Z /= viewSpace.W
			}

			worldDir := invView.MulDirection(core.NewVec3(viewSpace.X, viewSpace.Y, viewSpace.Z)).Normalize()
			directions[y*c.Width+x] = worldDir
		}
	}
	c.rayDirections = directions
	c.Dirty = false
}

// BaseDirection returns the precomputed, un-jittered ray direction for
// pixel (x,y). RebuildRays must have been called at least once.
func (c *Camera) BaseDirection(x, y int) core.Vec3 {
	return c.rayDirections[y*c.Width+x]
}

// PrimaryRay forms one jittered (and, if DOFEnabled, lens-warped) primary
// ray for pixel (x,y), using random for the per-sample jitter and aperture
// disk sample (spec §4.4).
func (c *Camera) PrimaryRay(x, y int, random *rand.Rand) core.Ray {
	baseDirection := c.BaseDirection(x, y)

	jitter := core.JitterCube(sampleJitterMagnitude, random)
	direction := baseDirection.Add(jitter).Normalize()

	if !c.DOFEnabled {
		return core.NewRay(c.Position, direction)
	}

	disk := core.RandomOnDisk(c.ApertureRadius, random)
	right := c.Right()
	up := right.Cross(c.Direction()).Normalize()

	jitteredOrigin := c.Position.Add(right.Multiply(disk.X)).Add(up.Multiply(disk.Y))
	focalPoint := c.Position.Add(direction.Multiply(c.FocalDistance))
	lensDirection := focalPoint.Subtract(jitteredOrigin).Normalize()

	return core.NewRay(jitteredOrigin, lensDirection)
}
