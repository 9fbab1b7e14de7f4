// Package rotor serves the configured rotor model.
//
// The Service loads the model from disk or from the storage bucket, runs the scene
// configuration (normalization, shadows, part overrides) and keeps the baked GLB in a
// TTL cache. Concurrent requests on a cold cache share one load through singleflight.
// The environment HDR is downloaded once and kept in a ristretto cache.
//
// Every fresh configuration is recorded in the model_loads table when a database is
// connected.
//
// # HTTP Endpoints
//
// Mounted under /api:
//
//   - GET /rotor/parts : configuration report (found and missing parts, materials).
//   - GET /rotor/model.glb : the configured model.
//   - GET /rotor/environment.hdr : the cached environment map.
//   - GET /rotor/loads?limit=20 : load history, newest first.
//   - POST /rotor/refresh : reload the model from its source.
package rotor
