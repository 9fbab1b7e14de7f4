package scene_test

import (
	"bytes"
	"math"
	"testing"

	"rotor-viewer/core/scene"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const eps = 1e-9

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Rotor.006", "Rotor006"},
		{"Surface 001", "Surface_001"},
		{"a[b]:c/d", "abcd"},
		{"Arrows", "Arrows"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, scene.SanitizeName(tt.in))
		})
	}
}

func TestFromDocument_Naming(t *testing.T) {
	m := loadModel(t, rotorDoc(t))

	var meshes []string
	for _, n := range m.Root.Meshes() {
		meshes = append(meshes, n.Name)
	}
	assert.Equal(t, []string{"Shaft002", "Rotor006", "Rotor006_1", "Surface001", "Surface001_1", "Arrows", "Housing"}, meshes)

	rotor := findMesh(m.Root, "Rotor006")
	require.NotNil(t, rotor)
	assert.Equal(t, "Rotor", rotor.Parent.Name)
	assert.Equal(t, scene.KindGroup, rotor.Parent.Kind)
}

func TestFromDocument_SceneNameIsRegistered(t *testing.T) {
	m := loadModel(t, buildDoc(t, nil,
		nodeSpec{name: "Scene", mesh: "Body", prims: []primSpec{box(0, 0, 0, 1, 1, 1)}},
	))

	assert.Equal(t, "Scene", m.Root.Name)
	meshes := m.Root.Meshes()
	require.Len(t, meshes, 1)
	assert.Equal(t, "Scene_1", meshes[0].Name)
}

func TestFromDocument_NoScene(t *testing.T) {
	_, err := scene.FromDocument(&gltf.Document{})
	assert.ErrorIs(t, err, scene.ErrNoScene)
}

func TestFromDocument_DefaultMaterial(t *testing.T) {
	doc := buildDoc(t, nil,
		nodeSpec{name: "A", mesh: "A", prims: []primSpec{box(0, 0, 0, 1, 1, 1)}},
		nodeSpec{name: "B", mesh: "B", prims: []primSpec{box(0, 0, 0, 1, 1, 1)}},
	)
	m := loadModel(t, doc)

	a, b := findMesh(m.Root, "A"), findMesh(m.Root, "B")
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Same(t, a.Material, b.Material)
	assert.Equal(t, 1.0, a.Material.Metalness)
	assert.Equal(t, 1.0, a.Material.Roughness)
}

func TestBoundsOf_Transforms(t *testing.T) {
	// 90 degrees about Z maps the x extent onto y.
	s := math.Sqrt2 / 2
	doc := buildDoc(t, nil,
		nodeSpec{name: "Parent", translation: []float64{10, 0, 0}, scale: []float64{2, 2, 2},
			children: []nodeSpec{
				{name: "Bar", mesh: "Bar", rotation: []float64{0, 0, s, s}, prims: []primSpec{box(0, 0, 0, 1, 0.5, 0.25)}},
			}},
	)
	m := loadModel(t, doc)

	b := scene.BoundsOf(m.Root)
	require.False(t, b.Empty())
	assert.InDelta(t, 9, b.Box.Min.X, eps)
	assert.InDelta(t, 10, b.Box.Max.X, eps)
	assert.InDelta(t, 0, b.Box.Min.Y, eps)
	assert.InDelta(t, 2, b.Box.Max.Y, eps)
	assert.InDelta(t, 0.5, b.Box.Max.Z, eps)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		min  [3]float64
		max  [3]float64
	}{
		{"tall", [3]float64{1, 1, 1}, [3]float64{3, 5, 2}},
		{"wide", [3]float64{-10, 0, 0}, [3]float64{30, 1, 1}},
		{"deep", [3]float64{0, 0, -0.01}, [3]float64{0.001, 0.002, 0.02}},
		{"cube", [3]float64{-1, -1, -1}, [3]float64{1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := buildDoc(t, nil, nodeSpec{name: "Part", mesh: "Part",
				prims: []primSpec{{min: tt.min, max: tt.max}}})
			m := loadModel(t, doc)

			size := r3.Sub(r3.Vec{X: tt.max[0], Y: tt.max[1], Z: tt.max[2]}, r3.Vec{X: tt.min[0], Y: tt.min[1], Z: tt.min[2]})
			maxDim := math.Max(size.X, math.Max(size.Y, size.Z))

			norm, err := scene.Normalize(m.Root, scene.TargetSize)
			require.NoError(t, err)
			assert.InDelta(t, scene.TargetSize, maxDim*norm.Scale, eps)

			after := scene.BoundsOf(m.Root)
			assert.InDelta(t, scene.TargetSize, after.MaxDimension(), 1e-9)
			center := after.Center()
			assert.InDelta(t, 0, center.X, 1e-9)
			assert.InDelta(t, 0, center.Y, 1e-9)
			assert.InDelta(t, 0, center.Z, 1e-9)
		})
	}
}

func TestNormalize_EmptyBounds(t *testing.T) {
	t.Run("NoMeshes", func(t *testing.T) {
		m := loadModel(t, buildDoc(t, nil, nodeSpec{name: "Empty"}))
		_, err := scene.Normalize(m.Root, scene.TargetSize)
		assert.ErrorIs(t, err, scene.ErrEmptyBounds)
	})

	t.Run("Point", func(t *testing.T) {
		m := loadModel(t, buildDoc(t, nil, nodeSpec{name: "P", mesh: "P", prims: []primSpec{box(1, 1, 1, 1, 1, 1)}}))
		_, err := scene.Normalize(m.Root, scene.TargetSize)
		assert.ErrorIs(t, err, scene.ErrEmptyBounds)
	})
}

func TestConfigure_Overrides(t *testing.T) {
	m := loadModel(t, rotorDoc(t))

	res, err := scene.Configure(m, scene.RotorOverrides)
	require.NoError(t, err)

	assert.ElementsMatch(t, scene.PartNames, res.Report.Found)
	assert.Empty(t, res.Report.Missing)
	assert.Equal(t, []string{"Shaft002", "Rotor006", "Surface001", "Arrows"}, res.Report.Overridden)
	assert.InDelta(t, 0.75, res.Report.Normalization.Scale, eps)

	shaft := res.Parts["Shaft002"].Material
	assert.Equal(t, 1.0, shaft.Metalness)
	assert.Equal(t, 0.2, shaft.Roughness)

	rotor := res.Parts["Rotor006"].Material
	assert.Equal(t, 0.8, rotor.Metalness)
	assert.Equal(t, 0.15, rotor.Roughness)

	surface := res.Parts["Surface001"].Material
	assert.Equal(t, 0.1, surface.Metalness)
	assert.Equal(t, 0.8, surface.Roughness)

	arrows := res.Parts["Arrows"].Material
	assert.Equal(t, scene.Color{R: 1, G: 1, B: 0}, arrows.Emissive)
	assert.Equal(t, 0.5, arrows.EmissiveIntensity)
	// Arrows keeps its authored PBR values.
	assert.Equal(t, 0.0, arrows.Metalness)
	assert.Equal(t, 1.0, arrows.Roughness)

	// Preserved parts and unlisted meshes keep their loaded values.
	unchanged := map[string][2]float64{
		"Rotor006_1":   {0.2, 0.9},
		"Surface001_1": {0.6, 0.4},
		"Housing":      {0.7, 0.3},
	}
	for name, want := range unchanged {
		n := findMesh(m.Root, name)
		require.NotNil(t, n, name)
		assert.Equal(t, want[0], n.Material.Metalness, name)
		assert.Equal(t, want[1], n.Material.Roughness, name)
		assert.Equal(t, scene.Color{}, n.Material.Emissive, name)
		assert.Equal(t, 1.0, n.Material.EmissiveIntensity, name)
	}

	for _, n := range m.Root.Meshes() {
		assert.True(t, n.CastShadow, n.Name)
		assert.True(t, n.ReceiveShadow, n.Name)
	}
}

func TestConfigure_MissingPartsAreSkipped(t *testing.T) {
	doc := buildDoc(t, []map[string]any{pbr("arrows", 0, 1), pbr("other", 0.5, 0.5)},
		nodeSpec{name: "Arrows", mesh: "Arrows", prims: []primSpec{box(0, 0, 0, 1, 1, 1).with(0)}},
		nodeSpec{name: "Other", mesh: "Other", prims: []primSpec{box(0, 0, 0, 1, 1, 1).with(1)}},
	)
	m := loadModel(t, doc)

	res, err := scene.Configure(m, scene.RotorOverrides)
	require.NoError(t, err)
	assert.Equal(t, []string{"Arrows"}, res.Report.Found)
	assert.Equal(t, []string{"Shaft002", "Rotor006", "Surface001", "Surface001_1", "Rotor006_1"}, res.Report.Missing)
	assert.Equal(t, []string{"Arrows"}, res.Report.Overridden)
	assert.Len(t, res.Parts, 1)

	other := findMesh(m.Root, "Other")
	assert.Equal(t, 0.5, other.Material.Metalness)
}

func TestConfigure_SharedMaterialIsCloned(t *testing.T) {
	doc := buildDoc(t, []map[string]any{pbr("steel", 0.5, 0.5)},
		nodeSpec{name: "Shaft002", mesh: "Shaft", prims: []primSpec{box(0, 0, 0, 1, 1, 1).with(0)}},
		nodeSpec{name: "Bolt", mesh: "Bolt", prims: []primSpec{box(0, 0, 0, 1, 1, 1).with(0)}},
	)
	m := loadModel(t, doc)

	res, err := scene.Configure(m, scene.RotorOverrides)
	require.NoError(t, err)

	shaft := res.Parts["Shaft002"]
	bolt := findMesh(m.Root, "Bolt")
	assert.NotSame(t, shaft.Material, bolt.Material)
	assert.Equal(t, 1.0, shaft.Material.Metalness)
	assert.Equal(t, 0.5, bolt.Material.Metalness)
	assert.Equal(t, 0.5, bolt.Material.Roughness)
}

func TestConfigure_NonMeshNamesIgnored(t *testing.T) {
	doc := buildDoc(t, nil,
		nodeSpec{name: "Shaft002", children: []nodeSpec{
			{name: "Inner", mesh: "Inner", prims: []primSpec{box(0, 0, 0, 1, 1, 1)}},
		}},
	)
	m := loadModel(t, doc)

	res, err := scene.Configure(m, scene.RotorOverrides)
	require.NoError(t, err)
	assert.NotContains(t, res.Parts, "Shaft002")
}

func TestExport_RoundTrip(t *testing.T) {
	m := loadModel(t, rotorDoc(t))
	_, err := scene.Configure(m, scene.RotorOverrides)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.Export(&buf))

	doc := new(gltf.Document)
	require.NoError(t, gltf.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(doc))
	require.Len(t, doc.Scenes[0].Nodes, 1)
	root := doc.Nodes[doc.Scenes[0].Nodes[0]]
	assert.Equal(t, scene.RootNodeName, root.Name)
	assert.InDelta(t, 0.75, root.Scale[0], eps)
	assert.Contains(t, doc.ExtensionsUsed, scene.ExtEmissiveStrength)

	reloaded, err := scene.FromDocument(doc)
	require.NoError(t, err)

	// The exported file renders at the normalized size without further processing.
	b := scene.BoundsOf(reloaded.Root)
	assert.InDelta(t, scene.TargetSize, b.MaxDimension(), 1e-9)

	shaft := findMesh(reloaded.Root, "Shaft002")
	require.NotNil(t, shaft)
	assert.Equal(t, 1.0, shaft.Material.Metalness)
	assert.Equal(t, 0.2, shaft.Material.Roughness)

	arrows := findMesh(reloaded.Root, "Arrows")
	require.NotNil(t, arrows)
	assert.Equal(t, 0.5, arrows.Material.EmissiveIntensity)
	assert.Equal(t, scene.Color{R: 1, G: 1, B: 0}, arrows.Material.Emissive)

	housing := findMesh(reloaded.Root, "Housing")
	require.NotNil(t, housing)
	assert.Equal(t, 0.7, housing.Material.Metalness)
}

func TestHex(t *testing.T) {
	assert.Equal(t, scene.Color{R: 1, G: 1, B: 0}, scene.Hex(0xffff00))
	assert.Equal(t, scene.Color{}, scene.Hex(0))
}
