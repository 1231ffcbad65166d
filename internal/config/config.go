package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds asset paths and viewer settings.
type Config struct {
	// Paths
	BaseDir     string `json:"base_dir"`
	ModelPath   string `json:"model"`
	TexturePath string `json:"texture"`
	DecoderKey  string `json:"decoder_key"`
	OutputDir   string `json:"output_dir"`

	// Viewport
	Width  int `json:"width"`
	Height int `json:"height"`

	// Headless recording
	Hz      int `json:"hz"`
	Ticks   int `json:"ticks"`
	Workers int `json:"workers"`
}

// Defaults used by Resolve.
const (
	DefaultWidth  = 960
	DefaultHeight = 540
	DefaultHz     = 60
	DefaultTicks  = 120
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DataDir     string
	ModelPath   string
	TexturePath string
	DecoderKey  string
	OutputDir   string
	Width       int
	Height      int
	Hz          int
	Ticks       int
	Workers     int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	override(&c.BaseDir, flags.DataDir)
	override(&c.ModelPath, flags.ModelPath)
	override(&c.TexturePath, flags.TexturePath)
	override(&c.DecoderKey, flags.DecoderKey)
	override(&c.OutputDir, flags.OutputDir)
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Hz > 0 {
		c.Hz = flags.Hz
	}
	if flags.Ticks > 0 {
		c.Ticks = flags.Ticks
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.BaseDir == "" {
		c.BaseDir = detectBaseDir()
	}

	// Resolve relative paths against base dir
	c.ModelPath = resolvePath(c.BaseDir, c.ModelPath, filepath.Join("assets", "statue.bmd"))
	c.TexturePath = resolvePath(c.BaseDir, c.TexturePath, filepath.Join("assets", "statue.jpg"))
	c.DecoderKey = resolvePath(c.BaseDir, c.DecoderKey, filepath.Join("assets", "decoder.key"))
	c.OutputDir = resolvePath(c.BaseDir, c.OutputDir, "frames")

	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Hz <= 0 {
		c.Hz = DefaultHz
	}
	if c.Ticks <= 0 {
		c.Ticks = DefaultTicks
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func resolvePath(base, p, def string) string {
	if p == "" {
		p = def
	}
	if filepath.IsAbs(p) || base == "" {
		return p
	}
	return filepath.Join(base, p)
}

func detectBaseDir() string {
	// Try relative to executable
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir), filepath.Join(dir, "..", "..")} {
			if _, err := os.Stat(filepath.Join(base, "assets")); err == nil {
				return base
			}
		}
	}

	cwd, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(cwd, "assets")); err == nil {
		return cwd
	}
	return ""
}
