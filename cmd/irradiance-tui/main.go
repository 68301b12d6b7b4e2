// Command irradiance-tui is the interactive terminal front end (spec §6):
// it hosts an ultraviolet terminal session, drives pkg/render.Loop every
// frame, and presents the accumulator as half-block terminal cells with a
// lipgloss-styled HUD overlay. Mouse drag orbits the camera, the scroll
// wheel adjusts focal distance, and keys step aperture/ISO/FOV, toggle
// depth of field, move the camera, and save a screenshot.
package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/lucasb-eyer/go-colorful"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/irradiance/pathtracer/pkg/camera"
	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/render"
	"github.com/irradiance/pathtracer/pkg/scene"
)

const targetFPS = 30

// movementSpeed is the base camera translation per movement key press; the
// "speed modifier" key (spec §6) toggles multiplying it by speedBoost.
const (
	movementSpeed = 0.05
	speedBoost    = 10
	dragSpeed     = 0.01
	wheelStep     = 0.1
	fovStep       = 0.9 // SetFOV(fov*fovStep) / SetFOV(fov/fovStep)
	apertureStep  = 1.25
	isoStep       = 2.0
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "irradiance-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	// Framebuffer resolution is double the terminal rows (half-block
	// vertical doubling) and the same as terminal columns.
	width, height := cols, rows*2
	cam := camera.New(width, height)
	cam.Position = core.NewVec3(0, 0, -3)
	sc := scene.CornellBox()
	loop := render.New(cam, sc, render.Config{Bounces: 2, Samples: 2}, core.NewDefaultLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	var (
		mouseDown           bool
		lastMouseX, lastMouseY int
		hudVisible          = true
		speedHeld           bool
	)

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				cols, rows = ev.Width, ev.Height
				width, height = cols, rows*2
				term.Erase()
				term.Resize(cols, rows)
				cam.Width, cam.Height = width, height
				loop.Buffers.Resize(width, height)
				cam.Dirty = true

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("q"):
					cancel()
				case ev.MatchString("?"):
					hudVisible = !hudVisible
				case ev.MatchString("w"), ev.MatchString("up"):
					cam.Translate(cam.Direction().Multiply(stepSpeed(speedHeld)))
				case ev.MatchString("s"), ev.MatchString("down"):
					cam.Translate(cam.Direction().Multiply(-stepSpeed(speedHeld)))
				case ev.MatchString("a"), ev.MatchString("left"):
					cam.Translate(cam.Right().Multiply(-stepSpeed(speedHeld)))
				case ev.MatchString("d"), ev.MatchString("right"):
					cam.Translate(cam.Right().Multiply(stepSpeed(speedHeld)))
				case ev.MatchString("tab"):
					speedHeld = !speedHeld
				case ev.MatchString("f"):
					cam.DOFEnabled = !cam.DOFEnabled
					cam.Dirty = true
				case ev.MatchString("["):
					cam.SetAperture(cam.ApertureRadius / apertureStep)
				case ev.MatchString("]"):
					cam.SetAperture(cam.ApertureRadius * apertureStep)
				case ev.MatchString("-"):
					cam.SetFOV(cam.FOVDeg / fovStep)
				case ev.MatchString("="), ev.MatchString("+"):
					cam.SetFOV(cam.FOVDeg * fovStep)
				case ev.MatchString("i"):
					cam.ISO /= isoStep
				case ev.MatchString("o"):
					cam.ISO *= isoStep
				case ev.MatchString("p"):
					if err := screenshot(loop); err != nil {
						loop.Logger.Printf("screenshot failed: %v", err)
					}
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := float64(ev.X-lastMouseX) * dragSpeed
					dy := float64(ev.Y-lastMouseY) * dragSpeed
					cam.SetYawPitch(cam.Yaw+dx, cam.Pitch-dy)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					cam.SetFocalDistance(cam.FocalDistance + wheelStep)
				case uv.MouseWheelDown:
					cam.SetFocalDistance(cam.FocalDistance - wheelStep)
				}
			}
		}
	}()

	frameDuration := time.Second / targetFPS
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		start := time.Now()

		pixels, err := loop.Frame(ctx)
		if err != nil {
			return fmt.Errorf("render frame: %w", err)
		}

		draw := renderHalfBlocks(pixels, width, height)
		if hudVisible {
			draw += "\r\n" + hud(cam, loop)
		}
		fmt.Fprint(os.Stdout, "\x1b[H"+draw)

		if elapsed := time.Since(start); elapsed < frameDuration {
			time.Sleep(frameDuration - elapsed)
		}
	}
}

func stepSpeed(boosted bool) float64 {
	if boosted {
		return movementSpeed * speedBoost
	}
	return movementSpeed
}

// renderHalfBlocks downsamples the float accumulator into terminal rows
// using the upper-half-block trick (each terminal row draws two framebuffer
// rows via distinct foreground/background colors), converting through
// go-colorful for precise linear-to-sRGB rounding before quantizing to the
// terminal's 24-bit color escape codes.
func renderHalfBlocks(pixels []core.Vec3, width, height int) string {
	var b strings.Builder
	rows := height / 2
	for row := 0; row < rows; row++ {
		topY := row * 2
		botY := topY + 1
		for x := 0; x < width; x++ {
			top := pixels[topY*width+x]
			bot := pixels[botY*width+x]
			tr, tg, tb := toSRGB255(top)
			br, bg, bb := toSRGB255(bot)
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb)
		}
		b.WriteString("\x1b[0m\r\n")
	}
	return b.String()
}

// toSRGB255 treats the tone-mapped pixel (already [0,1]-ish after
// present.ToneMap) as linear RGB and rounds it through go-colorful's
// gamma-correct conversion rather than a naive *255 cast.
func toSRGB255(c core.Vec3) (uint8, uint8, uint8) {
	linear := colorful.LinearRgb(clamp01(c.X), clamp01(c.Y), clamp01(c.Z))
	r, g, b := linear.Clamped().RGB255()
	return r, g, b
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// hud renders a one-line status bar (exposure/camera readout) styled with
// lipgloss, per spec §6's on-screen readout of current camera/exposure state.
func hud(cam *camera.Camera, loop *render.Loop) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	text := fmt.Sprintf(
		"pos=(%.2f,%.2f,%.2f) yaw=%.1f pitch=%.1f fov=%.0f iso=%.0f dof=%v aperture=%.3f focal=%.2f samples=%d",
		cam.Position.X, cam.Position.Y, cam.Position.Z,
		cam.Yaw*180/math.Pi, cam.Pitch*180/math.Pi, cam.FOVDeg,
		cam.ISO, cam.DOFEnabled, cam.ApertureRadius, cam.FocalDistance,
		loop.Config.Samples,
	)
	return style.Render(text)
}

// screenshot saves the accumulated image (Buffers.Present: accumulator
// divided by accumulated frames) as a PNG named by the current unix
// timestamp (spec §6's "screenshot" key). While the camera is moving the
// screen shows the history mean instead, which is not what gets saved.
func screenshot(loop *render.Loop) error {
	width, height := loop.Camera.Width, loop.Camera.Height
	img := imageFromPixels(loop.Buffers.Present(), width, height)

	name := fmt.Sprintf("%d.png", time.Now().Unix())
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}

func imageFromPixels(pixels []core.Vec3, width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b := toSRGB255(pixels[y*width+x])
			img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
