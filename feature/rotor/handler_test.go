package rotor_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"rotor-viewer/core/middleware/rayid"
	"rotor-viewer/core/viewer"
	"rotor-viewer/feature/rotor"
	"rotor-viewer/feature/rotor/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T, opts rotor.Options) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(rayid.New())
	rotor.NewHandler(newService(t, opts)).RegisterRoutes(app)
	return app
}

func TestHandleParts(t *testing.T) {
	app := setupTestApp(t, rotor.Options{CacheTTL: time.Minute})

	resp, err := app.Test(httptest.NewRequest("GET", "/rotor/parts", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Found   []string                  `json:"found"`
		Missing []string                  `json:"missing"`
		Parts   map[string]map[string]any `json:"parts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Found, 6)
	assert.Empty(t, body.Missing)
	assert.Contains(t, body.Parts, "Arrows")
}

func TestHandleModel(t *testing.T) {
	app := setupTestApp(t, rotor.Options{CacheTTL: time.Minute})

	resp, err := app.Test(httptest.NewRequest("GET", "/rotor/model.glb", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, rotor.ContentTypeGLB, resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("Last-Modified"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "glTF", string(data[:4]))
}

func TestHandleModel_Error(t *testing.T) {
	app := setupTestApp(t, rotor.Options{Loader: viewer.FileLoader{Path: "testdata/absent.glb"}})

	resp, err := app.Test(httptest.NewRequest("GET", "/rotor/model.glb", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])
}

func TestHandleEnvironment(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		app := setupTestApp(t, rotor.Options{})
		resp, err := app.Test(httptest.NewRequest("GET", "/rotor/environment.hdr", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, rotor.ContentTypeHDR, resp.Header.Get("Content-Type"))
	})

	t.Run("Upstream Down", func(t *testing.T) {
		fetcher := viewer.FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
			return nil, errors.New("connection refused")
		})
		app := setupTestApp(t, rotor.Options{Fetcher: fetcher})
		resp, err := app.Test(httptest.NewRequest("GET", "/rotor/environment.hdr", nil))
		require.NoError(t, err)
		assert.Equal(t, 502, resp.StatusCode)
	})
}

func TestHandleLoads(t *testing.T) {
	db := memoryDB(t)
	app := setupTestApp(t, rotor.Options{CacheTTL: time.Minute, DB: db})

	req := httptest.NewRequest("GET", "/rotor/model.glb", nil)
	req.Header.Set(rayid.Header, "ray-handler")
	_, err := app.Test(req)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/rotor/loads?limit=5", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var loads []models.ModelLoad
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loads))
	require.Len(t, loads, 1)
	assert.Equal(t, "ray-handler", loads[0].RayID)

	resp, err = app.Test(httptest.NewRequest("GET", "/rotor/loads?limit=0", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleLoads_Disabled(t *testing.T) {
	app := setupTestApp(t, rotor.Options{})

	resp, err := app.Test(httptest.NewRequest("GET", "/rotor/loads", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestHandleRefresh(t *testing.T) {
	loader := &countingLoader{inner: viewer.FileLoader{Path: testModel}}
	app := setupTestApp(t, rotor.Options{Loader: loader, CacheTTL: time.Hour})

	_, err := app.Test(httptest.NewRequest("GET", "/rotor/parts", nil))
	require.NoError(t, err)
	resp, err := app.Test(httptest.NewRequest("POST", "/rotor/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.EqualValues(t, 2, loader.calls.Load())
}
