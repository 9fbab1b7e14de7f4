package viewer

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultDampingFactor is the fraction of the pending motion applied per update.
const DefaultDampingFactor = 0.05

const controlsEPS = 0.000001

// OrbitControls orbits a camera around a target point.
//
// Input (Rotate, Pan, Dolly) only queues motion; Update applies it. With damping on,
// each Update applies DampingFactor of the queued motion and keeps the rest, so the
// camera glides to a stop over several frames.
type OrbitControls struct {
	Camera        *Camera
	Target        r3.Vec
	EnableDamping bool
	DampingFactor float64
	MinDistance   float64
	MaxDistance   float64

	deltaTheta float64
	deltaPhi   float64
	pan        r3.Vec
	scale      float64
}

// NewOrbitControls attaches controls to camera, looking at the origin.
func NewOrbitControls(camera *Camera) *OrbitControls {
	return &OrbitControls{
		Camera:        camera,
		DampingFactor: DefaultDampingFactor,
		MaxDistance:   math.Inf(1),
		scale:         1,
	}
}

// Rotate queues an orbit by theta radians around the vertical axis and phi radians
// toward the poles.
func (o *OrbitControls) Rotate(theta, phi float64) {
	o.deltaTheta += theta
	o.deltaPhi += phi
}

// Pan queues a translation of both camera and target.
func (o *OrbitControls) Pan(offset r3.Vec) {
	o.pan = r3.Add(o.pan, offset)
}

// Dolly queues a change of distance to the target; factors above 1 move away.
func (o *OrbitControls) Dolly(factor float64) {
	if factor > 0 {
		o.scale *= factor
	}
}

// Pending reports whether queued motion remains.
func (o *OrbitControls) Pending() bool {
	return math.Abs(o.deltaTheta) > controlsEPS || math.Abs(o.deltaPhi) > controlsEPS ||
		r3.Norm(o.pan) > controlsEPS || math.Abs(o.scale-1) > controlsEPS
}

// Update applies queued motion to the camera and reports whether the camera moved.
// With nothing queued the camera is left untouched.
func (o *OrbitControls) Update() bool {
	if !o.Pending() {
		return false
	}
	before := o.Camera.Position

	offset := r3.Sub(o.Camera.Position, o.Target)
	radius := r3.Norm(offset)
	theta := math.Atan2(offset.X, offset.Z)
	phi := 0.0
	if radius > 0 {
		phi = math.Acos(math.Max(-1, math.Min(1, offset.Y/radius)))
	}

	factor := 1.0
	if o.EnableDamping {
		factor = o.DampingFactor
	}
	theta += o.deltaTheta * factor
	phi += o.deltaPhi * factor
	phi = math.Max(controlsEPS, math.Min(math.Pi-controlsEPS, phi))

	radius *= o.scale
	radius = math.Max(o.MinDistance, math.Min(o.MaxDistance, radius))

	o.Target = r3.Add(o.Target, r3.Scale(factor, o.pan))

	sinPhi := math.Sin(phi)
	offset = r3.Vec{
		X: radius * sinPhi * math.Sin(theta),
		Y: radius * math.Cos(phi),
		Z: radius * sinPhi * math.Cos(theta),
	}
	o.Camera.Position = r3.Add(o.Target, offset)

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
		o.pan = r3.Scale(1-o.DampingFactor, o.pan)
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
		o.pan = r3.Vec{}
	}
	o.scale = 1

	return r3.Norm(r3.Sub(before, o.Camera.Position)) > controlsEPS
}
