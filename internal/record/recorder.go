// Package record writes presented frames to disk as WebP images.
package record

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// Config controls a recording run.
type Config struct {
	OutputDir string
	Workers   int
	// Progress is how often a status line is printed; 0 disables it.
	Progress time.Duration
}

// Frame is one presented image.
type Frame struct {
	Index      int
	Image      *image.NRGBA
	PixelRatio float64
}

// Result holds the outcome of encoding one frame.
type Result struct {
	Index      int
	File       string
	PixelRatio float64
	Success    bool
	Error      string
}

// Recorder encodes frames on a worker pool.
type Recorder struct {
	cfg   Config
	queue chan Frame
	wg    sync.WaitGroup
	done  chan struct{}
	start time.Time

	submitted atomic.Int64
	encoded   atomic.Int64

	mu      sync.Mutex
	results []Result
	closed  bool
}

// New creates the output directory and starts the workers.
func New(cfg Config) (*Recorder, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}

	r := &Recorder{
		cfg:   cfg,
		queue: make(chan Frame, cfg.Workers*2),
		done:  make(chan struct{}),
		start: time.Now(),
	}
	for w := 0; w < cfg.Workers; w++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for f := range r.queue {
				res := r.encode(f)
				r.mu.Lock()
				r.results = append(r.results, res)
				r.mu.Unlock()
				r.encoded.Add(1)
			}
		}()
	}
	if cfg.Progress > 0 {
		go r.report()
	}
	return r, nil
}

func (r *Recorder) report() {
	ticker := time.NewTicker(r.cfg.Progress)
	defer ticker.Stop()
	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			p := r.encoded.Load()
			if p > 0 {
				rate := float64(p) / time.Since(r.start).Seconds()
				fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, r.submitted.Load(), rate)
			}
		}
	}
}

// Submit queues f for encoding. It blocks while the queue is full and
// must not be called after Close.
func (r *Recorder) Submit(f Frame) {
	r.submitted.Add(1)
	r.queue <- f
}

// Close waits for queued frames and returns their results ordered by
// frame index.
func (r *Recorder) Close() []Result {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return r.sorted()
	}
	r.closed = true
	r.mu.Unlock()

	close(r.queue)
	r.wg.Wait()
	close(r.done)
	return r.sorted()
}

func (r *Recorder) sorted() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Result, len(r.results))
	copy(out, r.results)
	sortResults(out)
	return out
}

// FrameFile is the file name of frame i relative to the output directory.
func FrameFile(i int) string {
	return fmt.Sprintf("frame-%05d.webp", i)
}

func (r *Recorder) encode(f Frame) Result {
	res := Result{Index: f.Index, File: FrameFile(f.Index), PixelRatio: f.PixelRatio}
	if f.Image == nil {
		res.Error = "no image"
		return res
	}

	out, err := os.Create(filepath.Join(r.cfg.OutputDir, res.File))
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if err := writeWebP(out, f.Image); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Success = true
	return res
}

// writeWebP encodes img to w and closes it, reporting a failed close.
func writeWebP(w io.WriteCloser, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		w.Close()
		return fmt.Errorf("WebP encode: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}
