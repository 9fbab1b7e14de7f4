package server_test

import (
	"path/filepath"
	"testing"
	"time"

	"rotor-viewer/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		port    string
		wantErr bool
	}{
		{"Default", "3050", false},
		{"Low", "1", false},
		{"High", "65535", false},
		{"Zero", "0", true},
		{"TooHigh", "70000", true},
		{"NotNumeric", "http", true},
		{"Empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := server.Config{Port: tt.port}.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Paths(t *testing.T) {
	c := server.Config{Port: "3050", ThreeDir: "node_modules/three"}

	assert.Equal(t, ":3050", c.Addr())
	assert.Equal(t, filepath.Join("node_modules", "three", "build"), c.BuildDir())
	assert.Equal(t, filepath.Join("node_modules", "three", "examples", "jsm"), c.JsmDir())
}

func TestConfig_ShutdownTimeout(t *testing.T) {
	assert.Equal(t, 10*time.Second, server.Config{}.ShutdownTimeout())
	assert.Equal(t, 3*time.Second, server.Config{ShutdownTimeoutSeconds: 3}.ShutdownTimeout())
}
