package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mat4 is an affine 4x4 matrix stored in column-major order, as in glTF.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

// Compose builds a matrix from a translation, a unit quaternion (x, y, z, w) and a scale.
func Compose(t r3.Vec, q [4]float64, s r3.Vec) Mat4 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	return Mat4{
		(1 - (yy + zz)) * s.X, (xy + wz) * s.X, (xz - wy) * s.X, 0,
		(xy - wz) * s.Y, (1 - (xx + zz)) * s.Y, (yz + wx) * s.Y, 0,
		(xz + wy) * s.Z, (yz - wx) * s.Z, (1 - (xx + yy)) * s.Z, 0,
		t.X, t.Y, t.Z, 1,
	}
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * o[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// Apply transforms the point p.
func (m Mat4) Apply(p r3.Vec) r3.Vec {
	return r3.Vec{
		X: m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		Z: m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// corners returns the eight vertices of b.
func corners(b r3.Box) [8]r3.Vec {
	return [8]r3.Vec{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// Bounds accumulates an axis-aligned bounding box.
type Bounds struct {
	Box   r3.Box
	empty bool
}

// EmptyBounds returns a box containing nothing.
func EmptyBounds() Bounds {
	return Bounds{empty: true}
}

// Empty reports whether no point was added.
func (b Bounds) Empty() bool {
	return b.empty
}

// Expand grows the box to contain p.
func (b *Bounds) Expand(p r3.Vec) {
	if b.empty {
		b.Box = r3.Box{Min: p, Max: p}
		b.empty = false
		return
	}
	b.Box.Min = r3.Vec{X: math.Min(b.Box.Min.X, p.X), Y: math.Min(b.Box.Min.Y, p.Y), Z: math.Min(b.Box.Min.Z, p.Z)}
	b.Box.Max = r3.Vec{X: math.Max(b.Box.Max.X, p.X), Y: math.Max(b.Box.Max.Y, p.Y), Z: math.Max(b.Box.Max.Z, p.Z)}
}

// Center returns the midpoint of the box.
func (b Bounds) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Box.Min, b.Box.Max))
}

// Size returns the box extents.
func (b Bounds) Size() r3.Vec {
	return r3.Sub(b.Box.Max, b.Box.Min)
}

// MaxDimension returns the largest of the three extents.
func (b Bounds) MaxDimension() float64 {
	s := b.Size()
	return math.Max(s.X, math.Max(s.Y, s.Z))
}

// BoundsOf computes the world-space bounding box of every mesh below root, with each
// mesh's local box transformed by its world matrix.
func BoundsOf(root *Node) Bounds {
	out := EmptyBounds()
	root.Traverse(func(n *Node) {
		if !n.IsMesh() {
			return
		}
		world := n.WorldMatrix()
		for _, c := range corners(n.LocalBounds) {
			out.Expand(world.Apply(c))
		}
	})
	return out
}
