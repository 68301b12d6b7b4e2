// Package render drives the render loop: camera update, ray regeneration on
// camera-dirty, parallel pixel dispatch, and the dirty/last-dirty state
// machine that governs buffer resets (spec §2.9, §4.7, §4.8).
package render

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/irradiance/pathtracer/pkg/camera"
	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/integrator"
	"github.com/irradiance/pathtracer/pkg/present"
	"github.com/irradiance/pathtracer/pkg/scene"
)

// Config bundles the per-frame render parameters sourced from the CLI/TUI
// (spec §6: -bounces, -samples).
type Config struct {
	Bounces int
	Samples int
}

// Loop owns the frame buffers and the "was dirty last frame" bit needed to
// detect the dirty-to-clean edge transition (spec §4.7).
type Loop struct {
	Camera  *camera.Camera
	Scene   *scene.Scene
	Buffers *present.Buffers
	Config  Config
	Logger  core.Logger

	wasDirty     bool
	frameCounter int64
}

// New builds a Loop for camera/scene at camera's resolution.
func New(cam *camera.Camera, sc *scene.Scene, cfg Config, logger core.Logger) *Loop {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Loop{
		Camera:   cam,
		Scene:    sc,
		Buffers:  present.NewBuffers(cam.Width, cam.Height),
		Config:   cfg,
		Logger:   logger,
		wasDirty: true,
	}
}

// Frame advances the render loop by one frame: rebuilds primary rays if the
// camera is dirty, dispatches the pixel kernel in parallel, and returns the
// buffer that should be presented this frame (spec §4.7's three regimes).
func (l *Loop) Frame(ctx context.Context) ([]core.Vec3, error) {
	isDirty := l.Camera.Dirty
	if isDirty {
		l.Camera.RebuildRays()
	}

	l.frameCounter++
	if err := l.renderPixels(ctx); err != nil {
		return nil, err
	}

	l.Buffers.PushHistory(l.Buffers.Staging)

	switch {
	case isDirty:
		l.wasDirty = true
		return l.Buffers.HistoryMean(), nil
	case l.wasDirty:
		l.Buffers.SettleEdge()
		l.wasDirty = false
		return l.Buffers.Present(), nil
	default:
		return l.Buffers.CommitClean(), nil
	}
}

// renderPixels dispatches one goroutine per CPU, each owning a disjoint
// contiguous row range, via errgroup.Group (spec §4.8: "no locks are
// needed; no tile is required" — ownership here is by row range rather
// than by index, which preserves the same disjoint-write guarantee).
func (l *Loop) renderPixels(ctx context.Context) error {
	height := l.Camera.Height
	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}
	rowsPerWorker := (height + workers - 1) / workers

	group, _ := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > height {
			endRow = height
		}
		if startRow >= endRow {
			continue
		}
		group.Go(func() error {
			// Fold the frame counter into the seed so successive clean
			// frames draw different samples instead of reproducing the
			// same image bit-for-bit - otherwise accumulation would
			// average identical frames and never reduce variance.
			seed := l.frameCounter*9781 + int64(startRow) + 1
			random := rand.New(rand.NewSource(seed))
			l.renderRowRange(startRow, endRow, random)
			return nil
		})
	}
	return group.Wait()
}

func (l *Loop) renderRowRange(startRow, endRow int, random *rand.Rand) {
	width := l.Camera.Width
	for y := startRow; y < endRow; y++ {
		for x := 0; x < width; x++ {
			sum := core.Vec3{}
			for s := 0; s < l.Config.Samples; s++ {
				ray := l.Camera.PrimaryRay(x, y, random)
				radiance := integrator.Trace(l.Scene, ray, l.Config.Bounces, random)
				sum = sum.Add(present.ToneMap(radiance, l.Camera.ISO))
			}
			mean := sum.Multiply(1 / float64(l.Config.Samples))
			l.Buffers.Staging[y*width+x] = mean
		}
	}
}
