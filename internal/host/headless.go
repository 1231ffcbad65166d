// Package host drives a document from a desktop window or from a
// ticker without one.
package host

import (
	"context"
	"fmt"
	"image"
	"math"
	"time"

	"statue-viewer/internal/dom"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks int
}

// FrameFunc receives every element image presented on a tick.
type FrameFunc func(tick int, frame *image.NRGBA)

// RunHeadless drives doc without a window. Each tick moves the pointer
// along SweepPath, runs one animation frame and hands the presented
// images to onFrame. It stops after cfg.Ticks ticks, or when ctx is
// done, in which case it returns ctx.Err().
func RunHeadless(ctx context.Context, doc *dom.Document, cfg HeadlessConfig, onFrame FrameFunc) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("host: invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	w, h := doc.Viewport()
	for tick := 0; cfg.Ticks <= 0 || tick < cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			x, y := SweepPath(tick, cfg.Ticks, w, h)
			doc.DispatchPointerMove(x, y)
			doc.RunFrame(now)
			if onFrame != nil {
				for _, e := range doc.Elements() {
					onFrame(tick, e.Present())
				}
			}
		}
	}
	return nil
}

// sweepPeriod is the path length in ticks when the run is unbounded.
const sweepPeriod = 240

// SweepPath is the scripted pointer position at tick of a run of total
// ticks: left to right across the viewport while bobbing around the
// middle row.
func SweepPath(tick, total, w, h int) (x, y float64) {
	if total <= 1 {
		total = sweepPeriod
	}
	f := float64(tick%total) / float64(total-1)
	x = f * float64(w)
	y = float64(h)/2 + float64(h)/4*math.Sin(2*math.Pi*f)
	return x, y
}
