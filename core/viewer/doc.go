// Package viewer runs the rotor viewer bootstrap without a browser.
//
// It performs the same sequence as the page script (public/js/rotor.js) so the server
// can load, configure and inspect the model exactly as the page does:
//
//  1. New: builds the renderer settings, the scene, a perspective camera at (0, 0, 5)
//     and damped orbit controls.
//  2. LoadEnvironment: fetches the environment HDR in the background and attaches it
//     to the scene with equirectangular reflection mapping.
//  3. LoadModel: loads the glTF asset in the background and runs scene.Configure on it.
//  4. Resize: updates the camera aspect ratio and the render surface.
//  5. Run: the redraw loop. Each tick updates the controls' damping and renders the
//     scene from the camera. The loop stops when its context is cancelled.
//
// The two loads are independent, as on the page. Wait joins them and returns a
// LoadResult holding the collected parts and each load's error.
//
// # Rendering
//
// Rendering is delegated to a Renderer. HeadlessRenderer records frames and the
// surface size, which is all the server needs; the page uses WebGL.
package viewer
