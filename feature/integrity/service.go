package integrity

import (
	"context"
	"errors"

	"rotor-viewer/core/server"
	"rotor-viewer/core/storage"
	"rotor-viewer/core/viewer"
	"rotor-viewer/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageDisabled is returned by the storage checks when no bucket is configured.
var ErrStorageDisabled = errors.New("storage is disabled")

// Options configures a Service.
type Options struct {
	Server  server.Config
	Viewer  viewer.Config
	Storage storage.Config
	// Client is nil when storage is disabled.
	Client storage.Client
	// DB is nil when the database is unavailable.
	DB     *gorm.DB
	Logger *zap.Logger
}

// Service handles integrity checks.
type Service struct {
	layout []checks.LayoutEntry
	client storage.Client
	store  storage.Config
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	paths := checks.LayoutPaths{
		ViewsDir:  opts.Server.ViewsDir,
		PublicDir: opts.Server.PublicDir,
		BuildDir:  opts.Server.BuildDir(),
		JsmDir:    opts.Server.JsmDir(),
	}
	client := opts.Client
	if !opts.Storage.Enabled || client == nil {
		paths.ModelPath = opts.Viewer.ModelPath
		client = nil
	}
	return &Service{
		layout: checks.RequiredLayout(paths),
		client: client,
		store:  opts.Storage,
		db:     opts.DB,
		logger: opts.Logger,
	}
}

// CheckLayout returns the missing files and directories.
func (s *Service) CheckLayout() ([]checks.LayoutEntry, error) {
	return checks.CheckLayout(s.layout)
}

// FixLayout creates the missing directories and returns what is still missing.
func (s *Service) FixLayout(missing []checks.LayoutEntry) ([]checks.LayoutEntry, error) {
	return checks.FixLayout(missing, s.logger)
}

// StorageEnabled reports whether the model is read from a bucket.
func (s *Service) StorageEnabled() bool {
	return s.client != nil
}

// CheckStorage reports on the model bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	return checks.CheckStorage(ctx, s.client, s.store.Bucket, s.store.ModelObject)
}

// FixStorage creates the bucket when it is missing.
func (s *Service) FixStorage(ctx context.Context, report *checks.StorageReport) error {
	if s.client == nil {
		return ErrStorageDisabled
	}
	return checks.FixStorage(ctx, s.client, report, s.store.Region, s.logger)
}

// CheckSchema verifies the load history table.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// FixSchema migrates the load history table.
func (s *Service) FixSchema() error {
	return checks.FixSchema(s.db)
}

// Section is the outcome of one check in a Report.
type Section struct {
	Status  string `json:"status"` // "ok", "missing", "error", "skipped"
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Report is the combined result of all checks.
type Report struct {
	Layout  Section `json:"layout"`
	Storage Section `json:"storage"`
	Schema  Section `json:"schema"`
}

// Healthy reports whether every check passed or was skipped.
func (r *Report) Healthy() bool {
	for _, s := range []Section{r.Layout, r.Storage, r.Schema} {
		if s.Status != "ok" && s.Status != "skipped" {
			return false
		}
	}
	return true
}

// Run performs all checks, fixing what can be fixed when fix is set.
func (s *Service) Run(ctx context.Context, fix bool) *Report {
	return &Report{
		Layout:  s.runLayout(fix),
		Storage: s.runStorage(ctx, fix),
		Schema:  s.runSchema(fix),
	}
}

func (s *Service) runLayout(fix bool) Section {
	missing, err := s.CheckLayout()
	if err != nil {
		return Section{Status: "error", Error: err.Error()}
	}
	if len(missing) > 0 && fix {
		if missing, err = s.FixLayout(missing); err != nil {
			return Section{Status: "error", Error: err.Error(), Details: missing}
		}
	}
	if len(missing) > 0 {
		s.logger.Warn("Missing layout entries", zap.Int("count", len(missing)))
		return Section{Status: "missing", Details: missing}
	}
	return Section{Status: "ok"}
}

func (s *Service) runStorage(ctx context.Context, fix bool) Section {
	if !s.StorageEnabled() {
		return Section{Status: "skipped"}
	}
	report, err := s.CheckStorage(ctx)
	if err != nil {
		return Section{Status: "error", Error: err.Error()}
	}
	if !report.BucketExists && fix {
		if err := s.FixStorage(ctx, report); err != nil {
			return Section{Status: "error", Error: err.Error(), Details: report}
		}
	}
	if !report.BucketExists || !report.ObjectExists {
		return Section{Status: "missing", Details: report}
	}
	return Section{Status: "ok", Details: report}
}

func (s *Service) runSchema(fix bool) Section {
	if s.db == nil {
		return Section{Status: "skipped"}
	}
	report, err := s.CheckSchema()
	if err != nil {
		return Section{Status: "error", Error: err.Error()}
	}
	if report.Status != "ok" && fix {
		if err := s.FixSchema(); err != nil {
			return Section{Status: "error", Error: err.Error(), Details: report}
		}
		if report, err = s.CheckSchema(); err != nil {
			return Section{Status: "error", Error: err.Error()}
		}
	}
	if report.Status != "ok" {
		return Section{Status: "error", Details: report}
	}
	return Section{Status: "ok", Details: report}
}
