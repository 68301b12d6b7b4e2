// Command irradiance is the batch/offline CLI entry point: it renders a
// fixed number of captures of the default scene (or of a YAML scene given
// with -scene=path) to PNG files and exits
// (spec §6). Flags are parsed by hand rather than via the standard flag
// package because malformed numeric values must be silently ignored,
// keeping the previous default, per spec §6/§7.
package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/irradiance/pathtracer/pkg/camera"
	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/render"
	"github.com/irradiance/pathtracer/pkg/scene"
	"github.com/irradiance/pathtracer/pkg/sceneio"
)

// config mirrors spec §6's recognized CLI options and defaults.
type config struct {
	width, height int
	bounces       int
	samples       int
	captures      int
}

func defaultConfig() config {
	return config{width: 500, height: 500, bounces: 2, samples: 5, captures: 1}
}

// parseArgs reads os.Args[1:] for "-name=value" tokens, grounded on
// original_source/utility.h's parse_int: a malformed or unrecognized token
// is silently ignored and the existing default is kept, rather than
// aborting the program as the standard flag package would.
func parseArgs(args []string, logger core.Logger) config {
	cfg := defaultConfig()
	for _, arg := range args {
		name, value, ok := strings.Cut(strings.TrimPrefix(arg, "-"), "=")
		if !ok || name == "scene" {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		switch name {
		case "width":
			cfg.width = n
		case "height":
			cfg.height = n
		case "bounces":
			cfg.bounces = n
		case "samples":
			cfg.samples = n
		case "captures":
			cfg.captures = n
		}
	}
	return cfg
}

// scenePath extracts "-scene=path.yaml" from args, if present, leaving the
// numeric-option parsing in parseArgs unaffected.
func scenePath(args []string) string {
	for _, arg := range args {
		name, value, ok := strings.Cut(strings.TrimPrefix(arg, "-"), "=")
		if ok && name == "scene" {
			return value
		}
	}
	return ""
}

func main() {
	logger := core.NewDefaultLogger()
	cfg := parseArgs(os.Args[1:], logger)

	var (
		cam *camera.Camera
		sc  *scene.Scene
	)
	if path := scenePath(os.Args[1:]); path != "" {
		loaded, loadedCam, err := sceneio.Load(path, cfg.width, cfg.height)
		if err != nil {
			logger.Printf("load scene %q failed, falling back to Cornell box: %v", path, err)
		} else {
			sc, cam = loaded, loadedCam
		}
	}
	if sc == nil {
		cam = camera.New(cfg.width, cfg.height)
		cam.Position = core.NewVec3(0, 0, -3)
		sc = scene.CornellBox()
	}

	loop := render.New(cam, sc, render.Config{Bounces: cfg.bounces, Samples: cfg.samples}, logger)

	ctx := context.Background()
	for i := 0; i < cfg.captures; i++ {
		pixels, err := loop.Frame(ctx)
		if err != nil {
			logger.Printf("render frame %d failed: %v", i, err)
			os.Exit(1)
		}
		// Hold the camera clean across captures so later frames accumulate.
		cam.Dirty = false

		name := fmt.Sprintf("%d.png", time.Now().Unix())
		if err := writePNG(name, cfg.width, cfg.height, pixels); err != nil {
			logger.Printf("write capture %q failed: %v", name, err)
			os.Exit(1)
		}
		logger.Printf("wrote %s (%d/%d)", name, i+1, cfg.captures)
	}
}

// writePNG encodes pixels (already tone-mapped to [0,1]) as an 8-bit PNG.
// The presented buffer, not the raw accumulator, is what gets written, so a
// screenshot always matches what would be shown on screen (spec §9's noted
// pre/post-tonemap inconsistency is resolved here in favor of post-tonemap).
func writePNG(name string, width, height int, pixels []core.Vec3) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := pixels[y*width+x]
			img.Set(x, y, color.RGBA{
				R: to8(c.X),
				G: to8(c.Y),
				B: to8(c.Z),
				A: 255,
			})
		}
	}

	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}

func to8(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}
