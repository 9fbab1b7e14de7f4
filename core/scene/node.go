package scene

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Kind distinguishes renderable mesh nodes from plain transform nodes.
type Kind int

const (
	// KindGroup is a node that only carries a transform and children.
	KindGroup Kind = iota
	// KindMesh is a node carrying geometry and a material.
	KindMesh
)

// String returns the kind name used in reports.
func (k Kind) String() string {
	if k == KindMesh {
		return "mesh"
	}
	return "group"
}

// Color is a linear RGB color.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Hex converts a 0xRRGGBB literal to a Color.
func Hex(v uint32) Color {
	return Color{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

// Material holds the material properties the viewer adjusts.
type Material struct {
	// Index is the glTF material index, -1 for the default material or a clone not yet exported.
	Index int `json:"index"`
	// Name is the glTF material name.
	Name string `json:"name"`
	// Metalness is the PBR metallic factor.
	Metalness float64 `json:"metalness"`
	// Roughness is the PBR roughness factor.
	Roughness float64 `json:"roughness"`
	// Emissive is the emissive color.
	Emissive Color `json:"emissive"`
	// EmissiveIntensity scales Emissive.
	EmissiveIntensity float64 `json:"emissive_intensity"`

	origin int
	dirty  bool
}

// Clone returns a detached copy of the material. The copy keeps a reference to the
// glTF material it was derived from so that export can copy its remaining properties.
func (m *Material) Clone() *Material {
	c := *m
	c.origin = m.Index
	c.Index = -1
	return &c
}

// Node is a scene graph node.
type Node struct {
	Name string
	Kind Kind

	Translation r3.Vec
	// Rotation is a unit quaternion in (x, y, z, w) order.
	Rotation [4]float64
	Scale    r3.Vec
	// Matrix replaces Translation/Rotation/Scale when the source node used a matrix.
	Matrix *[16]float64

	Parent   *Node
	Children []*Node

	// Material and LocalBounds are set on mesh nodes only.
	Material    *Material
	LocalBounds r3.Box

	CastShadow    bool
	ReceiveShadow bool

	source    int
	mesh      int
	primitive int
}

// NewGroup creates a group node with an identity transform.
func NewGroup(name string) *Node {
	return &Node{
		Name:     name,
		Kind:     KindGroup,
		Rotation: [4]float64{0, 0, 0, 1},
		Scale:    r3.Vec{X: 1, Y: 1, Z: 1},
		source:   -1,
		mesh:     -1,
	}
}

// NewMesh creates a mesh node with an identity transform.
func NewMesh(name string, material *Material, bounds r3.Box) *Node {
	n := NewGroup(name)
	n.Kind = KindMesh
	n.Material = material
	n.LocalBounds = bounds
	return n
}

// IsMesh reports whether the node carries geometry.
func (n *Node) IsMesh() bool {
	return n.Kind == KindMesh
}

// Add attaches child to n.
func (n *Node) Add(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Traverse calls fn for n and all of its descendants in depth-first order.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Traverse(fn)
	}
}

// Meshes returns every mesh node below and including n.
func (n *Node) Meshes() []*Node {
	var out []*Node
	n.Traverse(func(c *Node) {
		if c.IsMesh() {
			out = append(out, c)
		}
	})
	return out
}

// LocalMatrix returns the node's transform relative to its parent.
func (n *Node) LocalMatrix() Mat4 {
	if n.Matrix != nil {
		return Mat4(*n.Matrix)
	}
	return Compose(n.Translation, n.Rotation, n.Scale)
}

// WorldMatrix returns the node's transform relative to the root of its hierarchy,
// including the root's own transform.
func (n *Node) WorldMatrix() Mat4 {
	m := n.LocalMatrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}
