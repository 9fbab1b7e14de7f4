package viewer

import (
	"sync"

	"rotor-viewer/core/scene"
)

// Environment is the image-based lighting attached to a scene.
type Environment struct {
	URL     string `json:"url"`
	Mapping string `json:"mapping"`
	Size    int    `json:"size"`
	Data    []byte `json:"-"`
}

// Scene holds what the renderer draws. Loads write to it from their own goroutines.
type Scene struct {
	mu          sync.RWMutex
	environment *Environment
	model       *scene.Model
}

// SetEnvironment attaches image-based lighting.
func (s *Scene) SetEnvironment(env *Environment) {
	s.mu.Lock()
	s.environment = env
	s.mu.Unlock()
}

// Environment returns the attached lighting, or nil.
func (s *Scene) Environment() *Environment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.environment
}

// Add puts a configured model into the scene.
func (s *Scene) Add(m *scene.Model) {
	s.mu.Lock()
	s.model = m
	s.mu.Unlock()
}

// Model returns the model in the scene, or nil.
func (s *Scene) Model() *scene.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// Renderer draws a scene from a camera onto a surface.
type Renderer interface {
	// SetSize resizes the drawing surface.
	SetSize(width, height int)
	// SetPixelRatio sets the device pixel ratio.
	SetPixelRatio(ratio float64)
	// Render draws one frame.
	Render(s *Scene, c *Camera) error
}

// Frame describes one frame drawn by HeadlessRenderer.
type Frame struct {
	Width          int
	Height         int
	Meshes         int
	HasEnvironment bool
	Aspect         float64
}

// HeadlessRenderer records frames instead of drawing them.
type HeadlessRenderer struct {
	Settings RendererSettings

	mu      sync.Mutex
	surface Surface
	frames  int
	last    Frame
}

// NewHeadlessRenderer creates a renderer with the given settings.
func NewHeadlessRenderer(settings RendererSettings) *HeadlessRenderer {
	return &HeadlessRenderer{Settings: settings, surface: Surface{PixelRatio: 1}}
}

// SetSize implements Renderer.
func (r *HeadlessRenderer) SetSize(width, height int) {
	r.mu.Lock()
	r.surface.Width, r.surface.Height = width, height
	r.mu.Unlock()
}

// SetPixelRatio implements Renderer.
func (r *HeadlessRenderer) SetPixelRatio(ratio float64) {
	r.mu.Lock()
	r.surface.PixelRatio = ratio
	r.mu.Unlock()
}

// Render implements Renderer.
func (r *HeadlessRenderer) Render(s *Scene, c *Camera) error {
	f := Frame{HasEnvironment: s.Environment() != nil, Aspect: c.Aspect}
	if m := s.Model(); m != nil {
		f.Meshes = len(m.Root.Meshes())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	f.Width, f.Height = r.surface.Width, r.surface.Height
	r.frames++
	r.last = f
	return nil
}

// Size returns the current surface.
func (r *HeadlessRenderer) Size() Surface {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.surface
}

// Frames returns how many frames were rendered.
func (r *HeadlessRenderer) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// LastFrame returns the most recent frame.
func (r *HeadlessRenderer) LastFrame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
