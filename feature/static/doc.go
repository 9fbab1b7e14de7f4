// Package static serves the page's assets from three directories:
//
//   - the public directory at / (scripts, styles and the model)
//   - node_modules/three/build at /build
//   - node_modules/three/examples/jsm at /jsm
//
// Paths are resolved against the working directory. Requests for files that do not
// exist fall through to the next route, ending in Fiber's default 404.
//
// This feature must be registered after views so that GET / renders the home view even
// when the public directory has an index file.
package static
