package scene

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// TargetSize is the length the longest bounding-box dimension is scaled to.
const TargetSize = 3.0

// PartNames lists the rotor parts picked out of the loaded model.
var PartNames = []string{
	"Shaft002",
	"Rotor006",
	"Surface001",
	"Surface001_1",
	"Rotor006_1",
	"Arrows",
}

// Override is a set of material values written onto a part. Nil fields are left alone.
type Override struct {
	Metalness         *float64 `json:"metalness,omitempty"`
	Roughness         *float64 `json:"roughness,omitempty"`
	Emissive          *Color   `json:"emissive,omitempty"`
	EmissiveIntensity *float64 `json:"emissive_intensity,omitempty"`
}

// IsZero reports whether the override changes nothing.
func (o Override) IsZero() bool {
	return o.Metalness == nil && o.Roughness == nil && o.Emissive == nil && o.EmissiveIntensity == nil
}

func value[T any](v T) *T {
	return &v
}

// RotorOverrides holds the material values of the rotor parts.
// Rotor006_1 and Surface001_1 keep their authored materials.
var RotorOverrides = map[string]Override{
	"Shaft002":   {Metalness: value(1.0), Roughness: value(0.2)},
	"Rotor006":   {Metalness: value(0.8), Roughness: value(0.15)},
	"Surface001": {Metalness: value(0.1), Roughness: value(0.8)},
	"Arrows":     {Emissive: value(Hex(0xffff00)), EmissiveIntensity: value(0.5)},
}

// Parts maps a part name to the mesh node it was found on.
type Parts map[string]*Node

// Normalization describes the transform applied by Normalize.
type Normalization struct {
	Scale  float64 `json:"scale"`
	Offset r3.Vec  `json:"offset"`
	Before r3.Box  `json:"before"`
	After  r3.Box  `json:"after"`
}

// Normalize scales root uniformly so that the longest dimension of its bounding box
// equals target, then translates it so the bounding-box center sits at the origin.
func Normalize(root *Node, target float64) (Normalization, error) {
	box := BoundsOf(root)
	maxDim := box.MaxDimension()
	if box.Empty() || maxDim <= 0 {
		return Normalization{}, ErrEmptyBounds
	}

	scale := target / maxDim
	root.Scale = r3.Vec{X: scale, Y: scale, Z: scale}

	center := BoundsOf(root).Center()
	root.Translation = r3.Sub(root.Translation, center)

	return Normalization{
		Scale:  scale,
		Offset: root.Translation,
		Before: box.Box,
		After:  BoundsOf(root).Box,
	}, nil
}

// EnableShadows turns on shadow casting and receiving for every mesh below root.
func EnableShadows(root *Node) {
	root.Traverse(func(n *Node) {
		if n.IsMesh() {
			n.CastShadow = true
			n.ReceiveShadow = true
		}
	})
}

// CollectParts scans the mesh nodes below root and keeps the ones whose name is in
// names. When a name occurs more than once the last node wins.
func CollectParts(root *Node, names []string) Parts {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	parts := make(Parts)
	root.Traverse(func(n *Node) {
		if !n.IsMesh() {
			return
		}
		if _, ok := wanted[n.Name]; ok {
			parts[n.Name] = n
		}
	})
	return parts
}

// ApplyOverrides writes each override onto the material of the matching part and
// returns the names that were changed, in the order of PartNames. Parts missing from
// parts are skipped. A material that is also used by another mesh is cloned first so
// the other mesh keeps its loaded values.
func (m *Model) ApplyOverrides(parts Parts, overrides map[string]Override) []string {
	users := make(map[*Material]int)
	m.Root.Traverse(func(n *Node) {
		if n.IsMesh() && n.Material != nil {
			users[n.Material]++
		}
	})

	var applied []string
	for _, name := range orderedNames(overrides) {
		o := overrides[name]
		node, ok := parts[name]
		if !ok || o.IsZero() || node.Material == nil {
			continue
		}

		mat := node.Material
		if users[mat] > 1 {
			users[mat]--
			mat = mat.Clone()
			users[mat] = 1
			node.Material = mat
			m.Materials = append(m.Materials, mat)
		}

		if o.Metalness != nil {
			mat.Metalness = *o.Metalness
		}
		if o.Roughness != nil {
			mat.Roughness = *o.Roughness
		}
		if o.Emissive != nil {
			mat.Emissive = *o.Emissive
		}
		if o.EmissiveIntensity != nil {
			mat.EmissiveIntensity = *o.EmissiveIntensity
		}
		mat.dirty = true
		applied = append(applied, name)
	}
	return applied
}

// orderedNames returns the override keys with PartNames first, then any others sorted.
func orderedNames(overrides map[string]Override) []string {
	out := make([]string, 0, len(overrides))
	seen := make(map[string]struct{}, len(overrides))
	for _, n := range PartNames {
		if _, ok := overrides[n]; ok {
			out = append(out, n)
			seen[n] = struct{}{}
		}
	}
	var rest []string
	for n := range overrides {
		if _, ok := seen[n]; !ok {
			rest = append(rest, n)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// PartInfo is the inspection view of a collected part.
type PartInfo struct {
	Name          string   `json:"name"`
	CastShadow    bool     `json:"cast_shadow"`
	ReceiveShadow bool     `json:"receive_shadow"`
	Material      Material `json:"material"`
}

// Report summarizes a configuration run.
type Report struct {
	Normalization Normalization       `json:"normalization"`
	Meshes        int                 `json:"meshes"`
	Found         []string            `json:"found"`
	Missing       []string            `json:"missing"`
	Overridden    []string            `json:"overridden"`
	Parts         map[string]PartInfo `json:"parts"`
}

// Result is returned by Configure. Parts is the inspection hook onto the live nodes.
type Result struct {
	Parts  Parts
	Report Report
}

// Configure normalizes the model, enables shadows, collects the rotor parts and applies
// overrides to the parts that were found.
func Configure(m *Model, overrides map[string]Override) (*Result, error) {
	norm, err := Normalize(m.Root, TargetSize)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize model: %w", err)
	}
	EnableShadows(m.Root)

	parts := CollectParts(m.Root, PartNames)
	applied := m.ApplyOverrides(parts, overrides)

	report := Report{
		Normalization: norm,
		Meshes:        len(m.Root.Meshes()),
		Overridden:    applied,
		Parts:         make(map[string]PartInfo, len(parts)),
	}
	for _, name := range PartNames {
		node, ok := parts[name]
		if !ok {
			report.Missing = append(report.Missing, name)
			continue
		}
		report.Found = append(report.Found, name)
		info := PartInfo{Name: name, CastShadow: node.CastShadow, ReceiveShadow: node.ReceiveShadow}
		if node.Material != nil {
			info.Material = *node.Material
		}
		report.Parts[name] = info
	}

	return &Result{Parts: parts, Report: report}, nil
}
