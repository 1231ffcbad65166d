// Package session runs one interactive statue scene: it builds the
// scene and its surface, loads the model and texture in the background,
// animates the lights every frame and follows the pointer.
package session

import (
	"context"
	"image"
	"io"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"statue-viewer/internal/dom"
	"statue-viewer/internal/loader"
	"statue-viewer/internal/raster"
	"statue-viewer/internal/scene"
	"statue-viewer/internal/surface"
	"statue-viewer/internal/texture"
)

// Camera and surface setup.
const (
	CameraFOV       = 40
	CameraNear      = 0.1
	CameraFar       = 1000
	InitialRatio    = 0.3
	ModelScale      = 0.05
	materialMetal   = 0.5
	materialRough   = 0.3
	materialReflect = 0.5
)

var (
	cameraPosition = mgl64.Vec3{0, 0, 20}
	modelOffset    = mgl64.Vec3{0, -3, 0}
)

// SurfaceOptions are the renderer options every session surface uses.
var SurfaceOptions = raster.Options{
	Antialias:       false,
	PowerPreference: raster.HighPerformance,
	Precision:       raster.PrecisionLow,
	Shadows:         true,
}

// Assets loads the model and its texture.
type Assets interface {
	LoadModel(ctx context.Context, path string) (*scene.Group, error)
	LoadTexture(ctx context.Context, path string) (*image.NRGBA, error)
}

// Config names the assets a session shows.
type Config struct {
	ModelPath   string
	TexturePath string
}

// Session owns the scene for its lifetime. All methods must be called
// from the goroutine that drives the document.
type Session struct {
	doc    *dom.Document
	assets Assets
	cfg    Config
	log    *log.Logger

	scene   *scene.Scene
	camera  *scene.Camera
	surface *surface.Surface
	rig     *Rig
	texture *texture.Texture
	model   *scene.Group

	modelTask   *loader.Task[*scene.Group]
	textureTask *loader.Task[*image.NRGBA]

	ctx      context.Context
	cancel   context.CancelFunc
	listener dom.ListenerID
	frame    dom.FrameID
	frames   int
	started  bool
	alive    bool
}

// New builds the scene, camera, lights and surface, and attaches the
// surface to doc. A nil logger discards diagnostics.
func New(doc *dom.Document, cfg Config, assets Assets, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	w, h := doc.Viewport()

	cam := scene.NewPerspectiveCamera(CameraFOV, float64(max(w, 1))/float64(max(h, 1)), CameraNear, CameraFar)
	cam.Position = cameraPosition
	cam.LookAt(mgl64.Vec3{})

	s := &Session{
		doc:     doc,
		assets:  assets,
		cfg:     cfg,
		log:     logger,
		scene:   scene.New(),
		camera:  cam,
		surface: surface.New(w, h, SurfaceOptions, InitialRatio),
		rig:     NewRig(),
		texture: texture.New(texture.SRGB),
		alive:   true,
	}
	s.rig.AddTo(s.scene)
	doc.Attach(s.surface)
	return s
}

// Start registers the pointer listener, begins both asset loads and
// requests the first frame. Calling it again is a no-op.
func (s *Session) Start(ctx context.Context) {
	if s.started || !s.alive {
		return
	}
	s.started = true
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.listener = s.doc.AddPointerListener(s.onPointerMove)
	s.modelTask = loader.Start(s.ctx, func(ctx context.Context) (*scene.Group, error) {
		return s.assets.LoadModel(ctx, s.cfg.ModelPath)
	})
	s.textureTask = loader.Start(s.ctx, func(ctx context.Context) (*image.NRGBA, error) {
		return s.assets.LoadTexture(ctx, s.cfg.TexturePath)
	})
	s.frame = s.doc.RequestAnimationFrame(s.animate)
}

// Close removes the listener and surface Start and New added, drops the
// pending frame and abandons unfinished loads. It is idempotent.
func (s *Session) Close() {
	if !s.alive {
		return
	}
	s.alive = false
	if s.started {
		s.doc.RemovePointerListener(s.listener)
		s.doc.CancelAnimationFrame(s.frame)
		s.cancel()
	}
	s.doc.Detach(s.surface)
	s.log.Printf("session: closed after %d frames", s.frames)
}

// Alive reports whether Close has not been called.
func (s *Session) Alive() bool { return s.alive }

// Scene returns the scene root.
func (s *Session) Scene() *scene.Scene { return s.scene }

// Surface returns the render surface.
func (s *Session) Surface() *surface.Surface { return s.surface }

// Rig returns the lights.
func (s *Session) Rig() *Rig { return s.rig }

// Model returns the attached model, or nil before it has loaded.
func (s *Session) Model() *scene.Group { return s.model }

// Texture returns the texture shared by every model mesh.
func (s *Session) Texture() *texture.Texture { return s.texture }

// Frames returns the number of animation frames run.
func (s *Session) Frames() int { return s.frames }

func (s *Session) animate(time.Time) {
	if !s.alive {
		return
	}
	s.poll()
	s.rig.Advance()
	if s.model != nil {
		s.model.Transform().Rotation[1] += ModelSpin
	}
	s.render()
	s.frames++
	s.frame = s.doc.RequestAnimationFrame(s.animate)
}

// poll applies loads that finished since the last frame.
func (s *Session) poll() {
	if s.modelTask != nil {
		if res, ok := s.modelTask.Poll(); ok {
			s.modelTask = nil
			s.onModelLoaded(res.Value, res.Err)
		}
	}
	if s.textureTask != nil {
		if res, ok := s.textureTask.Poll(); ok {
			s.textureTask = nil
			s.onTextureLoaded(res.Value, res.Err)
		}
	}
}

func (s *Session) onModelLoaded(g *scene.Group, err error) {
	if !s.alive {
		return
	}
	if err != nil {
		s.log.Printf("session: load model %s: %v", s.cfg.ModelPath, err)
		return
	}
	if s.model != nil || g == nil {
		return
	}

	g.Meshes(func(m *scene.Mesh) {
		m.CastShadow = false
		m.ReceiveShadow = true
		mat := scene.NewStandardMaterial()
		mat.Metalness = materialMetal
		mat.Roughness = materialRough
		mat.Reflectivity = materialReflect
		mat.Map = s.texture
		m.Material = mat
	})
	tr := g.Transform()
	tr.Scale = mgl64.Vec3{ModelScale, ModelScale, ModelScale}
	tr.Position = modelOffset

	s.scene.Add(g)
	s.model = g
}

func (s *Session) onTextureLoaded(img *image.NRGBA, err error) {
	if !s.alive {
		return
	}
	if err != nil {
		s.log.Printf("session: load texture %s: %v", s.cfg.TexturePath, err)
		return
	}
	s.texture.Set(img)
	s.render()
}

func (s *Session) onPointerMove(ev dom.PointerEvent) {
	if !s.alive {
		return
	}
	w, h := s.doc.Viewport()
	s.surface.SetPixelRatio(ResolutionScale(ev.X, w))
	s.rig.FollowPointer(ev.X, ev.Y, w, h)
	// Redraw now as well as on the next frame.
	s.render()
}

func (s *Session) render() {
	s.surface.Render(s.scene, s.camera)
}
