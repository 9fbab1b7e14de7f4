package viewer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"rotor-viewer/core/scene"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultFrameInterval paces Run at roughly a 60 Hz display refresh.
const DefaultFrameInterval = time.Second / 60

// ErrNotLoaded is returned when the model has not finished loading.
var ErrNotLoaded = errors.New("model not loaded")

// Options configures a Viewer.
type Options struct {
	Settings       RendererSettings
	Renderer       Renderer
	Width          int
	Height         int
	PixelRatio     float64
	EnvironmentURL string
	Fetcher        Fetcher
	Model          ModelLoader
	Overrides      map[string]scene.Override
	Logger         *zap.Logger
}

// LoadResult is the outcome of both loads once they have settled.
type LoadResult struct {
	Parts          scene.Parts
	Report         *scene.Report
	EnvironmentErr error
	ModelErr       error
}

// Viewer is the headless counterpart of the page's viewer bootstrap.
type Viewer struct {
	settings  RendererSettings
	renderer  Renderer
	scene     *Scene
	camera    *Camera
	controls  *OrbitControls
	envURL    string
	fetcher   Fetcher
	loader    ModelLoader
	overrides map[string]scene.Override
	logger    *zap.Logger

	wg     sync.WaitGroup
	mu     sync.Mutex
	result LoadResult

	// view guards camera and controls between Run and callers on other goroutines.
	view sync.Mutex
}

// New builds the renderer, scene, camera and controls.
func New(opts Options) *Viewer {
	if opts.Renderer == nil {
		opts.Renderer = NewHeadlessRenderer(opts.Settings)
	}
	if opts.PixelRatio <= 0 {
		opts.PixelRatio = 1
	}
	if opts.EnvironmentURL == "" {
		opts.EnvironmentURL = EnvironmentURL
	}
	if opts.Fetcher == nil {
		opts.Fetcher = NewHTTPFetcher(30 * time.Second)
	}
	if opts.Overrides == nil {
		opts.Overrides = scene.RotorOverrides
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	opts.Renderer.SetSize(opts.Width, opts.Height)
	opts.Renderer.SetPixelRatio(opts.PixelRatio)

	surface := Surface{Width: opts.Width, Height: opts.Height}
	camera := NewCamera(DefaultFOV, surface.Aspect(), DefaultNear, DefaultFar)
	controls := NewOrbitControls(camera)
	controls.EnableDamping = true

	return &Viewer{
		settings:  opts.Settings,
		renderer:  opts.Renderer,
		scene:     &Scene{},
		camera:    camera,
		controls:  controls,
		envURL:    opts.EnvironmentURL,
		fetcher:   opts.Fetcher,
		loader:    opts.Model,
		overrides: opts.Overrides,
		logger:    opts.Logger,
	}
}

// Settings returns the renderer settings.
func (v *Viewer) Settings() RendererSettings { return v.settings }

// Scene returns the scene.
func (v *Viewer) Scene() *Scene { return v.scene }

// Camera returns a snapshot of the camera.
func (v *Viewer) Camera() Camera {
	v.view.Lock()
	defer v.view.Unlock()
	return *v.camera
}

// DampingEnabled reports whether the orbit controls are damped.
func (v *Viewer) DampingEnabled() bool {
	v.view.Lock()
	defer v.view.Unlock()
	return v.controls.EnableDamping
}

// Rotate queues an orbit of the camera; the next frame starts applying it.
func (v *Viewer) Rotate(theta, phi float64) {
	v.view.Lock()
	v.controls.Rotate(theta, phi)
	v.view.Unlock()
}

// Pan queues a translation of the camera and its target.
func (v *Viewer) Pan(offset r3.Vec) {
	v.view.Lock()
	v.controls.Pan(offset)
	v.view.Unlock()
}

// Dolly queues a change of distance to the target.
func (v *Viewer) Dolly(factor float64) {
	v.view.Lock()
	v.controls.Dolly(factor)
	v.view.Unlock()
}

// Start issues both loads, as the page does on startup.
func (v *Viewer) Start(ctx context.Context) {
	v.LoadEnvironment(ctx)
	v.LoadModel(ctx)
}

// LoadEnvironment fetches the environment HDR in the background. A failure is logged
// and reported by Wait; the scene renders without environment lighting.
func (v *Viewer) LoadEnvironment(ctx context.Context) {
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()

		data, err := v.fetcher.Fetch(ctx, v.envURL)
		if err != nil {
			v.logger.Error("Failed to load environment", zap.String("url", v.envURL), zap.Error(err))
			v.mu.Lock()
			v.result.EnvironmentErr = err
			v.mu.Unlock()
			return
		}

		v.scene.SetEnvironment(&Environment{
			URL:     v.envURL,
			Mapping: MappingEquirectReflect,
			Size:    len(data),
			Data:    data,
		})
		v.logger.Debug("Environment loaded", zap.String("url", v.envURL), zap.Int("bytes", len(data)))
	}()
}

// LoadModel loads and configures the model in the background. A failure is logged and
// reported by Wait; there is no retry.
func (v *Viewer) LoadModel(ctx context.Context) {
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()

		res, err := v.loadModel(ctx)
		v.mu.Lock()
		defer v.mu.Unlock()
		if err != nil {
			v.logger.Error("An error happened loading the model", zap.Error(err))
			v.result.ModelErr = err
			return
		}
		v.result.Parts = res.Parts
		v.result.Report = &res.Report
	}()
}

func (v *Viewer) loadModel(ctx context.Context) (*scene.Result, error) {
	if v.loader == nil {
		return nil, fmt.Errorf("no model source configured: %w", ErrNotLoaded)
	}
	model, err := v.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	res, err := scene.Configure(model, v.overrides)
	if err != nil {
		return nil, err
	}
	v.scene.Add(model)

	for _, name := range res.Report.Found {
		v.logger.Info("Component loaded", zap.String("part", name))
	}
	if len(res.Report.Missing) > 0 {
		v.logger.Debug("Parts not present in model", zap.Strings("missing", res.Report.Missing))
	}
	return res, nil
}

// Wait blocks until both loads have settled or ctx is done.
func (v *Viewer) Wait(ctx context.Context) (*LoadResult, error) {
	done := make(chan struct{})
	go func() {
		v.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	res := v.result
	return &res, nil
}

// Parts returns the collected parts, or ErrNotLoaded before the model has loaded.
func (v *Viewer) Parts() (scene.Parts, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.result.Parts == nil {
		return nil, ErrNotLoaded
	}
	return v.result.Parts, nil
}

// Resize updates the camera aspect ratio and the rendering surface. It is safe to
// call while Run is active.
func (v *Viewer) Resize(width, height int) {
	v.view.Lock()
	defer v.view.Unlock()
	v.camera.Aspect = Surface{Width: width, Height: height}.Aspect()
	v.camera.UpdateProjectionMatrix()
	v.renderer.SetSize(width, height)
}

// Frame runs one tick of the redraw loop.
func (v *Viewer) Frame() error {
	v.view.Lock()
	defer v.view.Unlock()
	v.controls.Update()
	return v.renderer.Render(v.scene, v.camera)
}

// Run drives the redraw loop every interval until ctx is cancelled. A render error
// stops the loop.
func (v *Viewer) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := v.Frame(); err != nil {
				return fmt.Errorf("render failed: %w", err)
			}
		}
	}
}
