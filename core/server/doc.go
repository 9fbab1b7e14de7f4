// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines where the
// server listens and which directories it serves:
//   - PublicDir at the site root (page scripts, styles, rotor.glb)
//   - ThreeDir/build at /build and ThreeDir/examples/jsm at /jsm
//   - ViewsDir for the home and rotor view templates
//
// The port comes from SERVER_PORT and defaults to 3050.
package server
