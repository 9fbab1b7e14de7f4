// Package integrity provides system health checks.
//
// It validates what the rotor viewer needs to serve its pages, as opposed to the
// rotor package which configures the model itself.
//
// # Checks Provided
//
//   - Layout: the views, the public directory, the rendering library modules the page
//     imports (three.module.js, OrbitControls, GLTFLoader, RGBELoader) and, when storage
//     is disabled, the model file.
//   - Storage: the bucket and the model object, when storage is enabled.
//   - Schema: the model_loads table, when a database is connected.
//
// Fixing creates missing directories, the bucket and the table. Missing files are
// reported but never created.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks (supports ?fix=true).
//   - GET /integrity/layout : Runs the layout check (supports ?fix=true).
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
//   - GET /integrity/schema : Runs the schema check (supports ?fix=true).
package integrity
