package static_test

import (
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rotor-viewer/core/server"
	"rotor-viewer/feature/static"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	root := t.TempDir()
	cfg := server.Config{
		PublicDir: filepath.Join(root, "public"),
		ThreeDir:  filepath.Join(root, "node_modules", "three"),
	}
	writeFile(t, filepath.Join(cfg.PublicDir, "css", "style.css"), "body{margin:0}")
	writeFile(t, filepath.Join(cfg.PublicDir, "rotor.glb"), "glTF")
	writeFile(t, filepath.Join(cfg.BuildDir(), "three.module.js"), "export const REVISION = '1';")
	writeFile(t, filepath.Join(cfg.JsmDir(), "controls", "OrbitControls.js"), "export class OrbitControls {}")

	app := fiber.New()
	require.NoError(t, static.NewFeature(cfg).Load(app))
	return app
}

func TestStatic(t *testing.T) {
	app := setupTestApp(t)

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/css/style.css", 200, "body{margin:0}"},
		{"/rotor.glb", 200, "glTF"},
		{"/build/three.module.js", 200, "export const REVISION = '1';"},
		{"/jsm/controls/OrbitControls.js", 200, "export class OrbitControls {}"},
		{"/missing.js", 404, ""},
		{"/build/missing.js", 404, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.body != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.body, string(body))
			}
		})
	}
}

func TestStatic_ContentType(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/build/three.module.js", nil))
	require.NoError(t, err)
	assert.Contains(t, resp.Header.Get("Content-Type"), "javascript")
}

func TestMounts(t *testing.T) {
	mounts := static.Mounts(server.Config{PublicDir: "public", ThreeDir: "node_modules/three"})
	require.Len(t, mounts, 3)
	assert.Equal(t, static.Mount{Prefix: "/", Dir: "public"}, mounts[0])
	assert.Equal(t, static.Mount{Prefix: "/build", Dir: filepath.Join("node_modules", "three", "build")}, mounts[1])
	assert.Equal(t, static.Mount{Prefix: "/jsm", Dir: filepath.Join("node_modules", "three", "examples", "jsm")}, mounts[2])
}

func TestRotorScript_ClonesSharedMaterials(t *testing.T) {
	app := fiber.New()
	require.NoError(t, static.NewFeature(server.Config{PublicDir: filepath.Join("..", "..", "public")}).Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/js/rotor.js", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	script := string(body)
	clone := strings.Index(script, "part.material = part.material.clone();")
	apply := strings.Index(script, "applyOverride(part.material, override);")
	require.NotEqual(t, -1, clone)
	require.NotEqual(t, -1, apply)
	assert.Less(t, clone, apply)
}
