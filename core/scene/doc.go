// Package scene provides the scene graph used to configure the rotor model.
//
// A Model is built from a glTF 2.0 document (GLB or self-contained glTF) and mirrors
// the object hierarchy produced by the browser viewer's loader, so that names and
// transforms seen on the server match what the page works with.
//
// # Naming
//
// Node and mesh names pass through the same sanitizer and unique-name registry as the
// web loader: whitespace becomes '_', the characters "[ ] . : /" are removed and a
// repeated name gets a numeric suffix ("Rotor006", "Rotor006_1", ...). A node with a
// single-primitive mesh becomes one mesh node carrying the node's name; a mesh with
// several primitives becomes a group with one mesh child per primitive.
//
// # Configuration
//
// Configure runs the model-configuration routine of the viewer:
//   - Normalize: scales the model so its longest bounding-box dimension equals
//     TargetSize and moves the bounding-box center to the origin.
//   - EnableShadows: turns on shadow casting and receiving on every mesh node.
//   - CollectParts: finds the named rotor parts among the mesh nodes.
//   - ApplyOverrides: writes the literal material values for the parts that were found.
//
// # Export
//
// Export writes the configured model back to GLB. The normalization transform is
// carried by a new root node and overridden materials are written into the document.
//
// # Usage
//
//	model, err := scene.Open("public/rotor.glb")
//	if err != nil {
//	    return err
//	}
//	result, err := scene.Configure(model, scene.RotorOverrides)
//	fmt.Println(result.Report.Found)
package scene
