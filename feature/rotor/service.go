package rotor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"rotor-viewer/core/scene"
	"rotor-viewer/core/viewer"
	"rotor-viewer/feature/rotor/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrHistoryDisabled is returned by Loads when no database is connected.
var ErrHistoryDisabled = errors.New("load history is disabled")

// Options configures a Service.
type Options struct {
	// Loader reads the raw model.
	Loader viewer.ModelLoader
	// Source describes Loader in logs and history.
	Source string
	// EnvironmentURL is the HDR served by Environment.
	EnvironmentURL string
	// Fetcher downloads the environment.
	Fetcher viewer.Fetcher
	// CacheTTL is how long a configured model is served before it is rebuilt.
	CacheTTL time.Duration
	// CacheMaxBytes caps the environment cache.
	CacheMaxBytes int64
	// DB stores the load history. Nil disables it.
	DB     *gorm.DB
	Logger *zap.Logger
}

// Service configures the rotor model and serves it with its environment.
type Service struct {
	loader viewer.ModelLoader
	source string
	envURL string
	ttl    time.Duration
	models *modelCache
	env    *environmentCache
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new rotor service.
func NewService(opts Options) (*Service, error) {
	if opts.Loader == nil {
		return nil, errors.New("model loader is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.EnvironmentURL == "" {
		opts.EnvironmentURL = viewer.EnvironmentURL
	}
	if opts.Fetcher == nil {
		opts.Fetcher = viewer.NewHTTPFetcher(30 * time.Second)
	}

	env, err := newEnvironmentCache(opts.CacheMaxBytes, opts.Fetcher)
	if err != nil {
		return nil, fmt.Errorf("failed to create environment cache: %w", err)
	}

	return &Service{
		loader: opts.Loader,
		source: opts.Source,
		envURL: opts.EnvironmentURL,
		ttl:    opts.CacheTTL,
		models: &modelCache{},
		env:    env,
		db:     opts.DB,
		logger: opts.Logger,
	}, nil
}

// Source describes where the model is read from.
func (s *Service) Source() string {
	return s.source
}

// Model returns the configured model, configuring it when the cache is cold or stale.
// Each fresh configuration is recorded in the load history under rayID.
func (s *Service) Model(ctx context.Context, rayID string) (*Configured, error) {
	return s.models.getOrBuild(ctx, func(ctx context.Context) (*Configured, error) {
		configured, err := s.configure(ctx)
		if err != nil {
			return nil, err
		}
		s.record(ctx, rayID, configured)
		return configured, nil
	})
}

// Report returns the configuration report of the current model.
func (s *Service) Report(ctx context.Context, rayID string) (*scene.Report, error) {
	configured, err := s.Model(ctx, rayID)
	if err != nil {
		return nil, err
	}
	return &configured.Report, nil
}

// Refresh drops the cached model and configures it again.
func (s *Service) Refresh(ctx context.Context, rayID string) (*Configured, error) {
	s.models.invalidate()
	return s.Model(ctx, rayID)
}

// Environment returns the environment map bytes, downloading them once.
func (s *Service) Environment(ctx context.Context) ([]byte, error) {
	data, err := s.env.get(ctx, s.envURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch environment %s: %w", s.envURL, err)
	}
	return data, nil
}

// Loads returns the most recent model loads, newest first.
func (s *Service) Loads(ctx context.Context, limit int) ([]models.ModelLoad, error) {
	if s.db == nil {
		return nil, ErrHistoryDisabled
	}
	var loads []models.ModelLoad
	err := s.db.WithContext(ctx).Order("loaded_at DESC").Order("id DESC").Limit(limit).Find(&loads).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list model loads: %w", err)
	}
	return loads, nil
}

// Close releases the environment cache.
func (s *Service) Close() {
	s.env.close()
}

func (s *Service) configure(ctx context.Context) (*Configured, error) {
	start := time.Now()
	m, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load model from %s: %w", s.source, err)
	}

	result, err := scene.Configure(m, scene.RotorOverrides)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := m.Export(&buf); err != nil {
		return nil, err
	}

	report := result.Report
	if len(report.Missing) > 0 {
		s.logger.Debug("Parts not found in model", zap.Strings("missing", report.Missing))
	}
	s.logger.Info("Model configured",
		zap.String("source", s.source),
		zap.Float64("scale", report.Normalization.Scale),
		zap.Int("meshes", report.Meshes),
		zap.Int("bytes", buf.Len()),
		zap.Duration("duration", time.Since(start)),
	)

	return &Configured{
		GLB:    buf.Bytes(),
		Report: report,
		Source: s.source,
		Built:  time.Now(),
		TTL:    s.ttl,
	}, nil
}

func (s *Service) record(ctx context.Context, rayID string, c *Configured) {
	if s.db == nil {
		return
	}
	load := models.ModelLoad{
		RayID:        rayID,
		Source:       c.Source,
		Scale:        c.Report.Normalization.Scale,
		PartsFound:   models.JoinParts(c.Report.Found),
		PartsMissing: models.JoinParts(c.Report.Missing),
		LoadedAt:     c.Built,
	}
	if err := s.db.WithContext(ctx).Create(&load).Error; err != nil {
		s.logger.Warn("Failed to record model load", zap.Error(err))
	}
}
