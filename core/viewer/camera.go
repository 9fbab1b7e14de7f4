package viewer

import (
	"math"

	"rotor-viewer/core/scene"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera defaults.
const (
	DefaultFOV  = 75.0
	DefaultNear = 0.1
	DefaultFar  = 1000.0
)

// DefaultCameraPosition is where the camera starts.
var DefaultCameraPosition = r3.Vec{X: 0, Y: 0, Z: 5}

// Camera is a perspective camera.
type Camera struct {
	FOV      float64
	Aspect   float64
	Near     float64
	Far      float64
	Position r3.Vec

	projection scene.Mat4
}

// NewCamera creates a perspective camera and computes its projection.
func NewCamera(fov, aspect, near, far float64) *Camera {
	c := &Camera{FOV: fov, Aspect: aspect, Near: near, Far: far, Position: DefaultCameraPosition}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix recomputes the projection after FOV, Aspect, Near or Far change.
func (c *Camera) UpdateProjectionMatrix() {
	f := 1 / math.Tan(c.FOV*math.Pi/360)
	nf := 1 / (c.Near - c.Far)
	c.projection = scene.Mat4{
		f / c.Aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (c.Far + c.Near) * nf, -1,
		0, 0, 2 * c.Far * c.Near * nf, 0,
	}
}

// Projection returns the current projection matrix.
func (c Camera) Projection() scene.Mat4 {
	return c.projection
}

// Surface is the size of the rendering surface in CSS pixels.
type Surface struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	PixelRatio float64 `json:"pixel_ratio"`
}

// Aspect returns width / height, or 1 for a zero height.
func (s Surface) Aspect() float64 {
	if s.Height == 0 {
		return 1
	}
	return float64(s.Width) / float64(s.Height)
}
