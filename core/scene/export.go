package scene

import (
	"fmt"
	"io"
	"slices"

	"github.com/qmuntal/gltf"
)

// RootNodeName names the node that carries the normalization transform in exported files.
const RootNodeName = "RotorRoot"

// Bake writes the configured state into the underlying document: the normalization
// transform becomes a new root node and changed or cloned materials are written back.
// Baking happens once; later calls are no-ops.
func (m *Model) Bake() {
	if m.baked {
		return
	}
	m.baked = true
	doc := m.doc

	meshUsers := make(map[int]int)
	for _, n := range doc.Nodes {
		if n.Mesh != nil {
			meshUsers[int(*n.Mesh)]++
		}
	}

	for _, mat := range m.Materials {
		if !mat.dirty {
			continue
		}
		if mat.Index < 0 {
			mat.Index = len(doc.Materials)
			doc.Materials = append(doc.Materials, baseMaterial(doc, mat.origin))
		}
		writeMaterial(doc, doc.Materials[mat.Index], mat)
	}

	m.Root.Traverse(func(n *Node) {
		if !n.IsMesh() || n.Material == nil || n.Material.Index < 0 || n.mesh < 0 {
			return
		}
		prim := doc.Meshes[n.mesh].Primitives[n.primitive]
		if prim.Material != nil && *prim.Material == n.Material.Index {
			return
		}

		if meshUsers[n.mesh] > 1 {
			src := sourceOf(n)
			if src >= 0 {
				meshUsers[n.mesh]--
				n.mesh = cloneMesh(doc, n.mesh)
				meshUsers[n.mesh] = 1
				doc.Nodes[src].Mesh = gltf.Index(n.mesh)
				syncSiblings(n, n.mesh)
			}
		}
		doc.Meshes[n.mesh].Primitives[n.primitive].Material = gltf.Index(n.Material.Index)
	})

	root := &gltf.Node{
		Name:        RootNodeName,
		Matrix:      [16]float64(Identity()),
		Translation: [3]float64{m.Root.Translation.X, m.Root.Translation.Y, m.Root.Translation.Z},
		Rotation:    m.Root.Rotation,
		Scale:       [3]float64{m.Root.Scale.X, m.Root.Scale.Y, m.Root.Scale.Z},
	}
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = int(*doc.Scene)
	}
	gs := doc.Scenes[sceneIdx]
	root.Children = slices.Clone(gs.Nodes)
	doc.Nodes = append(doc.Nodes, root)
	gs.Nodes = []int{len(doc.Nodes) - 1}

	if slices.ContainsFunc(m.Materials, func(mat *Material) bool { return mat.dirty && mat.EmissiveIntensity != 1 }) &&
		!slices.Contains(doc.ExtensionsUsed, ExtEmissiveStrength) {
		doc.ExtensionsUsed = append(doc.ExtensionsUsed, ExtEmissiveStrength)
	}
}

// Export bakes the model and writes it as GLB.
func (m *Model) Export(w io.Writer) error {
	m.Bake()
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(m.doc); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return nil
}

func baseMaterial(doc *gltf.Document, origin int) *gltf.Material {
	if origin < 0 || origin >= len(doc.Materials) {
		return &gltf.Material{}
	}
	c := *doc.Materials[origin]
	if c.PBRMetallicRoughness != nil {
		pbr := *c.PBRMetallicRoughness
		c.PBRMetallicRoughness = &pbr
	}
	if c.Extensions != nil {
		ext := make(gltf.Extensions, len(c.Extensions))
		for k, v := range c.Extensions {
			ext[k] = v
		}
		c.Extensions = ext
	}
	return &c
}

func writeMaterial(doc *gltf.Document, gm *gltf.Material, mat *Material) {
	if gm.PBRMetallicRoughness == nil {
		gm.PBRMetallicRoughness = &gltf.PBRMetallicRoughness{}
	}
	gm.PBRMetallicRoughness.MetallicFactor = gltf.Float(mat.Metalness)
	gm.PBRMetallicRoughness.RoughnessFactor = gltf.Float(mat.Roughness)
	gm.EmissiveFactor = [3]float64{mat.Emissive.R, mat.Emissive.G, mat.Emissive.B}

	if mat.EmissiveIntensity == 1 {
		delete(gm.Extensions, ExtEmissiveStrength)
		return
	}
	if gm.Extensions == nil {
		gm.Extensions = make(gltf.Extensions)
	}
	gm.Extensions[ExtEmissiveStrength] = map[string]any{"emissiveStrength": mat.EmissiveIntensity}
}

func cloneMesh(doc *gltf.Document, idx int) int {
	src := doc.Meshes[idx]
	c := *src
	c.Primitives = make([]*gltf.Primitive, len(src.Primitives))
	for i, p := range src.Primitives {
		pc := *p
		c.Primitives[i] = &pc
	}
	doc.Meshes = append(doc.Meshes, &c)
	return len(doc.Meshes) - 1
}

// sourceOf returns the glTF node a mesh node was built from. Primitive children of a
// multi-primitive mesh belong to their parent's glTF node.
func sourceOf(n *Node) int {
	if n.source >= 0 {
		return n.source
	}
	if n.Parent != nil {
		return n.Parent.source
	}
	return -1
}

// syncSiblings points the other primitives of a multi-primitive mesh at the cloned mesh.
func syncSiblings(n *Node, mesh int) {
	if n.source >= 0 || n.Parent == nil {
		return
	}
	for _, s := range n.Parent.Children {
		if s.IsMesh() && s.source < 0 {
			s.mesh = mesh
		}
	}
}
