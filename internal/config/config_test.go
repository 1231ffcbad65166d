package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.json")
	data := `{"model": "models/statue.bmd", "width": 640, "hz": 30}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ModelPath != "models/statue.bmd" || cfg.Width != 640 || cfg.Hz != 30 || cfg.Height != 0 {
		t.Fatalf("Load = %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("Load of a missing file succeeded")
	}
	bad := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(bad, []byte("{"), 0644)
	if _, err := Load(bad); err == nil {
		t.Fatal("Load of malformed JSON succeeded")
	}
}

func TestResolveDefaults(t *testing.T) {
	base := t.TempDir()
	cfg := Config{BaseDir: base}
	cfg.Resolve(Flags{})

	want := Config{
		BaseDir:     base,
		ModelPath:   filepath.Join(base, "assets", "statue.bmd"),
		TexturePath: filepath.Join(base, "assets", "statue.jpg"),
		DecoderKey:  filepath.Join(base, "assets", "decoder.key"),
		OutputDir:   filepath.Join(base, "frames"),
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Hz:          DefaultHz,
		Ticks:       DefaultTicks,
		Workers:     runtime.NumCPU(),
	}
	if cfg != want {
		t.Fatalf("Resolve = %+v\nwant %+v", cfg, want)
	}
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	base := t.TempDir()
	abs := filepath.Join(t.TempDir(), "other.bmd")
	cfg := Config{
		BaseDir:     base,
		ModelPath:   "file.bmd",
		TexturePath: "tex/marble.png",
		Width:       320,
		Height:      200,
		Workers:     2,
	}
	cfg.Resolve(Flags{ModelPath: abs, Width: 800, Ticks: 9, OutputDir: "out"})

	if cfg.ModelPath != abs {
		t.Errorf("ModelPath = %q; want absolute flag value", cfg.ModelPath)
	}
	if cfg.TexturePath != filepath.Join(base, "tex", "marble.png") {
		t.Errorf("TexturePath = %q", cfg.TexturePath)
	}
	if cfg.OutputDir != filepath.Join(base, "out") {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Width != 800 || cfg.Height != 200 || cfg.Ticks != 9 || cfg.Workers != 2 {
		t.Errorf("settings = %+v", cfg)
	}
}
