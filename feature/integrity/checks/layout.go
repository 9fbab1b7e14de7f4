package checks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LayoutEntry is a path the server needs on disk.
type LayoutEntry struct {
	Path string `json:"path"`
	Dir  bool   `json:"dir"`
}

// LayoutPaths holds the directories the layout is derived from.
type LayoutPaths struct {
	ViewsDir  string
	PublicDir string
	BuildDir  string
	JsmDir    string
	// ModelPath is checked only when set.
	ModelPath string
}

// RequiredLayout lists the files and directories the pages load.
func RequiredLayout(p LayoutPaths) []LayoutEntry {
	entries := []LayoutEntry{
		{Path: p.ViewsDir, Dir: true},
		{Path: filepath.Join(p.ViewsDir, "home.html")},
		{Path: filepath.Join(p.ViewsDir, "rotor.html")},
		{Path: p.PublicDir, Dir: true},
		{Path: filepath.Join(p.BuildDir, "three.module.js")},
		{Path: filepath.Join(p.JsmDir, "controls", "OrbitControls.js")},
		{Path: filepath.Join(p.JsmDir, "loaders", "GLTFLoader.js")},
		{Path: filepath.Join(p.JsmDir, "loaders", "RGBELoader.js")},
	}
	if p.ModelPath != "" {
		entries = append(entries, LayoutEntry{Path: p.ModelPath})
	}
	return entries
}

// CheckLayout returns the entries that are missing or have the wrong type.
func CheckLayout(entries []LayoutEntry) ([]LayoutEntry, error) {
	missing := []LayoutEntry{}
	for _, e := range entries {
		info, err := os.Stat(e.Path)
		if errors.Is(err, os.ErrNotExist) {
			missing = append(missing, e)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", e.Path, err)
		}
		if info.IsDir() != e.Dir {
			missing = append(missing, e)
		}
	}
	return missing, nil
}

// FixLayout creates the missing directories. Missing files cannot be created and are
// returned.
func FixLayout(missing []LayoutEntry, logger *zap.Logger) ([]LayoutEntry, error) {
	remaining := []LayoutEntry{}
	for _, e := range missing {
		if !e.Dir {
			remaining = append(remaining, e)
			continue
		}
		if err := os.MkdirAll(e.Path, 0o755); err != nil {
			logger.Error("Failed to create directory", zap.String("path", e.Path), zap.Error(err))
			return nil, err
		}
		logger.Info("Created missing directory", zap.String("path", e.Path))
	}
	return remaining, nil
}
