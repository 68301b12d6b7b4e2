// Package present implements the temporal accumulation buffers and
// tone-mapping described in spec §2.8, §4.6-4.7: a running sum over clean
// frames, a short history ring used while the camera is dirty, Reinhard
// tone-mapping, and gamma correction.
package present

import (
	"math"

	"github.com/irradiance/pathtracer/pkg/core"
)

// HistoryLength is the fixed history-ring length K, carried over from
// original_source/main.cpp's FRAME_HISTORY constant.
const HistoryLength = 5

// Gamma is the output gamma-correction exponent's reciprocal base.
const Gamma = 2.2

// isoBase is the reference ISO used for exposure scaling (spec §4.6's
// "ISO/ISO_base"); chosen to match the default Camera.ISO in pkg/camera.
const isoBase = 100.0

// Buffers holds the three equal-size pixel arrays from spec §3's "Frame
// buffers": accumulator (sum of tone-mapped color over clean frames),
// staging (most recent frame's tone-mapped color), and a history ring of
// the last HistoryLength frames used while dirty.
type Buffers struct {
	Width, Height int

	Accumulator      []core.Vec3
	Staging          []core.Vec3
	AccumulatedFrames int

	history     [][]core.Vec3 // ring of up to HistoryLength frames
	historyNext int
}

// NewBuffers allocates all three buffers for the given resolution.
func NewBuffers(width, height int) *Buffers {
	return &Buffers{
		Width:             width,
		Height:            height,
		Accumulator:       make([]core.Vec3, width*height),
		Staging:           make([]core.Vec3, width*height),
		AccumulatedFrames: 1,
	}
}

// Resize reallocates all buffers for a new resolution (spec §6's terminal
// resize handling) and resets accumulation, since pixels no longer line up
// with the previous frame's.
func (b *Buffers) Resize(width, height int) {
	b.Width = width
	b.Height = height
	b.Accumulator = make([]core.Vec3, width*height)
	b.Staging = make([]core.Vec3, width*height)
	b.AccumulatedFrames = 1
	b.ResetHistory()
}

// ToneMap applies ISO exposure scaling, Reinhard tone-mapping (c/(1+c)),
// and gamma correction to a linear radiance sample (spec §4.6).
func ToneMap(color core.Vec3, iso float64) core.Vec3 {
	exposed := color.Multiply(iso / isoBase)
	reinhard := core.NewVec3(
		exposed.X/(1+exposed.X),
		exposed.Y/(1+exposed.Y),
		exposed.Z/(1+exposed.Z),
	)
	return core.NewVec3(
		math.Pow(math.Max(reinhard.X, 0), 1/Gamma),
		math.Pow(math.Max(reinhard.Y, 0), 1/Gamma),
		math.Pow(math.Max(reinhard.Z, 0), 1/Gamma),
	)
}

// PushHistory appends frame (the just-rendered staging buffer) to the
// history ring, evicting the oldest entry once full. Called every frame
// regardless of dirty state (spec §4.7: "the history ring is appended
// every frame").
func (b *Buffers) PushHistory(frame []core.Vec3) {
	snapshot := append([]core.Vec3(nil), frame...)
	if len(b.history) < HistoryLength {
		b.history = append(b.history, snapshot)
		return
	}
	b.history[b.historyNext] = snapshot
	b.historyNext = (b.historyNext + 1) % HistoryLength
}

// ResetHistory empties the ring, used at the dirty-to-clean edge transition.
func (b *Buffers) ResetHistory() {
	b.history = nil
	b.historyNext = 0
}

// HistoryMean returns the per-pixel arithmetic mean of every frame
// currently in the ring (spec §4.7's dirty-frame display rule, and §8's
// "arithmetic mean of the last K staging frames").
func (b *Buffers) HistoryMean() []core.Vec3 {
	out := make([]core.Vec3, b.Width*b.Height)
	if len(b.history) == 0 {
		return out
	}
	inv := 1.0 / float64(len(b.history))
	for _, frame := range b.history {
		for i, c := range frame {
			out[i] = out[i].Add(c)
		}
	}
	for i := range out {
		out[i] = out[i].Multiply(inv)
	}
	return out
}

// CommitClean adds staging into the accumulator and returns
// accumulator/accumulated_frames (spec §4.7's "clean and was-clean" regime).
func (b *Buffers) CommitClean() []core.Vec3 {
	for i, c := range b.Staging {
		b.Accumulator[i] = b.Accumulator[i].Add(c)
	}
	b.AccumulatedFrames++
	return b.Present()
}

// Present returns accumulator/accumulated_frames without mutating state.
func (b *Buffers) Present() []core.Vec3 {
	out := make([]core.Vec3, len(b.Accumulator))
	inv := 1.0 / float64(b.AccumulatedFrames)
	for i, c := range b.Accumulator {
		out[i] = c.Multiply(inv)
	}
	return out
}

// SettleEdge implements the dirty-to-clean edge transition (spec §4.7):
// copy staging into the accumulator, zero staging, reset
// accumulated_frames to 1, and reset the history ring.
func (b *Buffers) SettleEdge() {
	copy(b.Accumulator, b.Staging)
	for i := range b.Staging {
		b.Staging[i] = core.Vec3{}
	}
	b.AccumulatedFrames = 1
	b.ResetHistory()
}
