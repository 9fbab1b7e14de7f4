package scene_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"rotor-viewer/core/scene"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/require"
)

type primSpec struct {
	min, max [3]float64
	material *int
}

type nodeSpec struct {
	name        string
	mesh        string
	prims       []primSpec
	translation []float64
	rotation    []float64
	scale       []float64
	children    []nodeSpec
}

func mat(i int) *int { return &i }

func box(minX, minY, minZ, maxX, maxY, maxZ float64) primSpec {
	return primSpec{min: [3]float64{minX, minY, minZ}, max: [3]float64{maxX, maxY, maxZ}}
}

func (p primSpec) with(material int) primSpec {
	p.material = mat(material)
	return p
}

// docJSON renders a minimal glTF document. Accessors have no buffer view, which glTF
// treats as zero-filled data; only their min/max matter to the scene graph.
type docJSON struct {
	accessors []map[string]any
	meshes    []map[string]any
	nodes     []map[string]any
}

func (d *docJSON) add(n nodeSpec) int {
	node := map[string]any{}
	if n.name != "" {
		node["name"] = n.name
	}
	if n.translation != nil {
		node["translation"] = n.translation
	}
	if n.rotation != nil {
		node["rotation"] = n.rotation
	}
	if n.scale != nil {
		node["scale"] = n.scale
	}
	if len(n.prims) > 0 {
		prims := make([]map[string]any, 0, len(n.prims))
		for _, p := range n.prims {
			d.accessors = append(d.accessors, map[string]any{
				"componentType": 5126,
				"count":         2,
				"type":          "VEC3",
				"min":           p.min[:],
				"max":           p.max[:],
			})
			prim := map[string]any{"attributes": map[string]any{"POSITION": len(d.accessors) - 1}}
			if p.material != nil {
				prim["material"] = *p.material
			}
			prims = append(prims, prim)
		}
		mesh := map[string]any{"primitives": prims}
		if n.mesh != "" {
			mesh["name"] = n.mesh
		}
		d.meshes = append(d.meshes, mesh)
		node["mesh"] = len(d.meshes) - 1
	}
	idx := len(d.nodes)
	d.nodes = append(d.nodes, node)

	var children []int
	for _, c := range n.children {
		children = append(children, d.add(c))
	}
	if len(children) > 0 {
		d.nodes[idx]["children"] = children
	}
	return idx
}

func buildDoc(t *testing.T, materials []map[string]any, roots ...nodeSpec) *gltf.Document {
	t.Helper()
	d := &docJSON{}
	var rootIdx []int
	for _, r := range roots {
		rootIdx = append(rootIdx, d.add(r))
	}
	raw := map[string]any{
		"asset":  map[string]any{"version": "2.0"},
		"scene":  0,
		"scenes": []map[string]any{{"name": "Scene", "nodes": rootIdx}},
		"nodes":  d.nodes,
	}
	if len(d.meshes) > 0 {
		raw["meshes"] = d.meshes
		raw["accessors"] = d.accessors
	}
	if len(materials) > 0 {
		raw["materials"] = materials
	}
	b, err := json.Marshal(raw)
	require.NoError(t, err)

	doc := new(gltf.Document)
	require.NoError(t, gltf.NewDecoder(bytes.NewReader(b)).Decode(doc))
	return doc
}

func pbr(name string, metal, rough float64) map[string]any {
	return map[string]any{
		"name": name,
		"pbrMetallicRoughness": map[string]any{
			"metallicFactor":  metal,
			"roughnessFactor": rough,
		},
	}
}

// rotorDoc is a rotor-like model: every part has its own material, plus an unlisted
// housing mesh.
func rotorDoc(t *testing.T) *gltf.Document {
	return buildDoc(t,
		[]map[string]any{
			pbr("shaft", 0.3, 0.6),
			pbr("rotor", 0.4, 0.5),
			pbr("rotor_detail", 0.2, 0.9),
			pbr("surface", 0.5, 0.5),
			pbr("surface_detail", 0.6, 0.4),
			pbr("arrows", 0, 1),
			pbr("housing", 0.7, 0.3),
		},
		nodeSpec{name: "Shaft002", mesh: "Cylinder.002", prims: []primSpec{box(-0.1, -0.1, -2, 0.1, 0.1, 2).with(0)}},
		nodeSpec{name: "Rotor", mesh: "Rotor.006", translation: []float64{0, 0, 1},
			prims: []primSpec{box(-1, -1, -0.5, 1, 1, 0.5).with(1), box(-1, -1, -0.5, 1, 1, 0.5).with(2)}},
		nodeSpec{name: "Stator", mesh: "Surface.001",
			prims: []primSpec{box(-1.5, -1.5, -1, 1.5, 1.5, 1).with(3), box(-1.5, -1.5, -1, 1.5, 1.5, 1).with(4)}},
		nodeSpec{name: "Arrows", mesh: "Arrows", prims: []primSpec{box(0, 0, 0, 0.5, 0.5, 0.5).with(5)}},
		nodeSpec{name: "Housing", mesh: "Housing", prims: []primSpec{box(-2, -2, -2, 2, 2, 2).with(6)}},
	)
}

func loadModel(t *testing.T, doc *gltf.Document) *scene.Model {
	t.Helper()
	m, err := scene.FromDocument(doc)
	require.NoError(t, err)
	return m
}

func findMesh(root *scene.Node, name string) *scene.Node {
	var out *scene.Node
	root.Traverse(func(n *scene.Node) {
		if n.IsMesh() && n.Name == name {
			out = n
		}
	})
	return out
}
