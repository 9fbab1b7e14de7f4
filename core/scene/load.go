package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"gonum.org/v1/gonum/spatial/r3"
)

// ExtEmissiveStrength is the glTF extension carrying the emissive intensity.
const ExtEmissiveStrength = "KHR_materials_emissive_strength"

var (
	// ErrNoScene is returned when the document has no scene to load.
	ErrNoScene = errors.New("document has no scene")
	// ErrEmptyBounds is returned when the model has no measurable extent.
	ErrEmptyBounds = errors.New("model has empty bounds")
)

// Model is a loaded scene graph together with the document it was built from.
type Model struct {
	// Root is the scene group; the normalization transform is applied to it.
	Root *Node
	// Materials lists every material referenced by a mesh node, clones included.
	Materials []*Material

	doc      *gltf.Document
	baked    bool
	defaults *Material
}

// Document returns the underlying glTF document.
func (m *Model) Document() *gltf.Document {
	return m.doc
}

// Open loads a .glb or .gltf file.
func Open(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model %s: %w", path, err)
	}
	return FromDocument(doc)
}

// Decode reads a GLB or self-contained glTF stream.
func Decode(r io.Reader) (*Model, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	return FromDocument(doc)
}

// FromDocument builds the scene graph of the document's default scene.
func FromDocument(doc *gltf.Document) (*Model, error) {
	if len(doc.Scenes) == 0 {
		return nil, ErrNoScene
	}
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = int(*doc.Scene)
	}
	if sceneIdx < 0 || sceneIdx >= len(doc.Scenes) {
		return nil, fmt.Errorf("scene index %d out of range: %w", sceneIdx, ErrNoScene)
	}
	gs := doc.Scenes[sceneIdx]

	b := &builder{
		doc:       doc,
		names:     newNameRegistry(),
		materials: make(map[int]*Material),
		model:     &Model{doc: doc},
	}

	// The scene name is registered first, then node names, then mesh names, matching
	// the loader.
	rootName := ""
	if gs.Name != "" {
		rootName = b.names.unique(gs.Name)
	}
	root := NewGroup(rootName)
	b.model.Root = root

	nodeNames := make(map[int]string)
	for _, idx := range gs.Nodes {
		if err := b.registerNames(int(idx), nodeNames, 0); err != nil {
			return nil, err
		}
	}
	for _, idx := range gs.Nodes {
		n, err := b.buildNode(int(idx), nodeNames)
		if err != nil {
			return nil, err
		}
		root.Add(n)
	}
	return b.model, nil
}

type builder struct {
	doc       *gltf.Document
	names     *nameRegistry
	materials map[int]*Material
	model     *Model
}

func (b *builder) registerNames(idx int, out map[int]string, depth int) error {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return fmt.Errorf("node index %d out of range", idx)
	}
	if depth > len(b.doc.Nodes) {
		return fmt.Errorf("node %d is part of a cycle", idx)
	}
	gn := b.doc.Nodes[idx]
	if gn.Name != "" {
		out[idx] = b.names.unique(gn.Name)
	}
	for _, c := range gn.Children {
		if err := b.registerNames(int(c), out, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) buildNode(idx int, nodeNames map[int]string) (*Node, error) {
	gn := b.doc.Nodes[idx]

	var n *Node
	if gn.Mesh != nil {
		meshIdx := int(*gn.Mesh)
		if meshIdx < 0 || meshIdx >= len(b.doc.Meshes) {
			return nil, fmt.Errorf("node %d references missing mesh %d", idx, meshIdx)
		}
		meshes, err := b.buildPrimitives(meshIdx)
		if err != nil {
			return nil, err
		}
		switch len(meshes) {
		case 0:
			n = NewGroup("")
		case 1:
			n = meshes[0]
		default:
			n = NewGroup("")
			for _, m := range meshes {
				n.Add(m)
			}
		}
	} else {
		n = NewGroup("")
	}

	if name, ok := nodeNames[idx]; ok {
		n.Name = name
	}
	n.source = idx
	applyTransform(n, gn)

	for _, c := range gn.Children {
		child, err := b.buildNode(int(c), nodeNames)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

func (b *builder) buildPrimitives(meshIdx int) ([]*Node, error) {
	gm := b.doc.Meshes[meshIdx]
	base := gm.Name
	if base == "" {
		base = "mesh_" + strconv.Itoa(meshIdx)
	}

	out := make([]*Node, 0, len(gm.Primitives))
	for i, prim := range gm.Primitives {
		bounds, err := b.primitiveBounds(prim)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", gm.Name, i, err)
		}
		mat := b.material(prim.Material)
		n := NewMesh(b.names.unique(base), mat, bounds)
		n.mesh = meshIdx
		n.primitive = i
		out = append(out, n)
	}
	return out, nil
}

func (b *builder) primitiveBounds(prim *gltf.Primitive) (r3.Box, error) {
	idx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return r3.Box{}, nil
	}
	if int(idx) < 0 || int(idx) >= len(b.doc.Accessors) {
		return r3.Box{}, fmt.Errorf("position accessor %d out of range", idx)
	}
	acc := b.doc.Accessors[idx]
	if len(acc.Min) >= 3 && len(acc.Max) >= 3 {
		return r3.Box{
			Min: r3.Vec{X: float64(acc.Min[0]), Y: float64(acc.Min[1]), Z: float64(acc.Min[2])},
			Max: r3.Vec{X: float64(acc.Max[0]), Y: float64(acc.Max[1]), Z: float64(acc.Max[2])},
		}, nil
	}

	// min/max are required for POSITION but some exporters omit them.
	positions, err := modeler.ReadPosition(b.doc, acc, nil)
	if err != nil {
		return r3.Box{}, fmt.Errorf("failed to read positions: %w", err)
	}
	bounds := EmptyBounds()
	for _, p := range positions {
		bounds.Expand(r3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])})
	}
	return bounds.Box, nil
}

func (b *builder) material(ref *int) *Material {
	if ref == nil {
		if b.model.defaults == nil {
			b.model.defaults = &Material{Index: -1, origin: -1, Metalness: 1, Roughness: 1, EmissiveIntensity: 1}
			b.model.Materials = append(b.model.Materials, b.model.defaults)
		}
		return b.model.defaults
	}
	idx := *ref
	if m, ok := b.materials[idx]; ok {
		return m
	}
	m := &Material{Index: idx, origin: idx, Metalness: 1, Roughness: 1, EmissiveIntensity: 1}
	if idx >= 0 && idx < len(b.doc.Materials) {
		gm := b.doc.Materials[idx]
		m.Name = gm.Name
		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			if pbr.MetallicFactor != nil {
				m.Metalness = float64(*pbr.MetallicFactor)
			}
			if pbr.RoughnessFactor != nil {
				m.Roughness = float64(*pbr.RoughnessFactor)
			}
		}
		m.Emissive = Color{R: float64(gm.EmissiveFactor[0]), G: float64(gm.EmissiveFactor[1]), B: float64(gm.EmissiveFactor[2])}
		if s, ok := emissiveStrength(gm.Extensions); ok {
			m.EmissiveIntensity = s
		}
	}
	b.materials[idx] = m
	b.model.Materials = append(b.model.Materials, m)
	return m
}

func emissiveStrength(ext gltf.Extensions) (float64, bool) {
	raw, ok := ext[ExtEmissiveStrength]
	if !ok {
		return 0, false
	}
	var v struct {
		EmissiveStrength *float64 `json:"emissiveStrength"`
	}
	switch e := raw.(type) {
	case json.RawMessage:
		if err := json.Unmarshal(e, &v); err != nil {
			return 0, false
		}
	case map[string]any:
		f, ok := e["emissiveStrength"].(float64)
		return f, ok
	default:
		return 0, false
	}
	if v.EmissiveStrength == nil {
		return 1, true
	}
	return *v.EmissiveStrength, true
}

func applyTransform(n *Node, gn *gltf.Node) {
	zero := [16]float64{}
	if gn.Matrix != zero && gn.Matrix != [16]float64(Identity()) {
		m := gn.Matrix
		n.Matrix = &m
		return
	}
	n.Translation = r3.Vec{X: gn.Translation[0], Y: gn.Translation[1], Z: gn.Translation[2]}
	if gn.Rotation != [4]float64{} {
		n.Rotation = gn.Rotation
	}
	if gn.Scale != [3]float64{} {
		n.Scale = r3.Vec{X: gn.Scale[0], Y: gn.Scale[1], Z: gn.Scale[2]}
	}
}
