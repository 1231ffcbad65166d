package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"statue-viewer/internal/config"
	"statue-viewer/internal/dom"
	"statue-viewer/internal/host"
	"statue-viewer/internal/loader"
	"statue-viewer/internal/record"
	"statue-viewer/internal/session"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	dataDir := flag.String("data", "", "Base directory for relative paths (default: auto-detect)")
	model := flag.String("model", "", "Model BMD file (default: assets/statue.bmd)")
	tex := flag.String("texture", "", "Texture image (default: assets/statue.jpg)")
	decoder := flag.String("decoder", "", "Decoder key file for v15 models (default: assets/decoder.key)")
	width := flag.Int("width", 0, "Viewport width (default: 960)")
	height := flag.Int("height", 0, "Viewport height (default: 540)")
	headless := flag.Bool("headless", false, "Run without a window and record frames")
	hz := flag.Int("hz", 0, "Headless tick rate (default: 60)")
	ticks := flag.Int("ticks", 0, "Headless frame count (default: 120)")
	outputDir := flag.String("output", "", "Headless output directory (default: frames)")
	workers := flag.Int("workers", 0, "Number of encoder goroutines (default: NumCPU)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		DataDir:     *dataDir,
		ModelPath:   *model,
		TexturePath: *tex,
		DecoderKey:  *decoder,
		OutputDir:   *outputDir,
		Width:       *width,
		Height:      *height,
		Hz:          *hz,
		Ticks:       *ticks,
		Workers:     *workers,
	})

	logger := log.New(os.Stderr, "", log.LstdFlags)
	doc := dom.NewDocument(cfg.Width, cfg.Height)
	sess := session.New(doc, session.Config{
		ModelPath:   cfg.ModelPath,
		TexturePath: cfg.TexturePath,
	}, loader.NewAssets(cfg.DecoderKey), logger)

	fmt.Printf("Model:   %s\n", cfg.ModelPath)
	fmt.Printf("Texture: %s\n", cfg.TexturePath)
	fmt.Printf("Viewport: %dx%d\n", cfg.Width, cfg.Height)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	sess.Start(ctx)

	if !*headless {
		if err := host.RunWindow(ctx, doc, "Statue", sess.Close); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	os.Exit(runHeadless(ctx, cfg, doc, sess))
}

func runHeadless(ctx context.Context, cfg config.Config, doc *dom.Document, sess *session.Session) int {
	rec, err := record.New(record.Config{
		OutputDir: cfg.OutputDir,
		Workers:   cfg.Workers,
		Progress:  2 * time.Second,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("Frames: %d at %d Hz, Workers: %d\n", cfg.Ticks, cfg.Hz, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	runErr := host.RunHeadless(ctx, doc, host.HeadlessConfig{Hz: cfg.Hz, Ticks: cfg.Ticks},
		func(tick int, frame *image.NRGBA) {
			rec.Submit(record.Frame{Index: tick, Image: frame, PixelRatio: sess.Surface().PixelRatio()})
		})
	sess.Close()
	results := rec.Close()

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Stopped: %v\n", runErr)
	}

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
			if failed <= 20 {
				fmt.Printf("  frame %d: %s\n", r.Index, r.Error)
			}
		}
	}
	fmt.Printf("Recorded: %d/%d\n", len(results)-failed, len(results))

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := record.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		return 1
	}
	return 0
}
