package health

import (
	"context"
	"fmt"
	"time"

	"member-api/core/database"
	"member-api/core/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	StatusOK        = "ok"
	StatusUnhealthy = "unhealthy"
	StatusSkipped   = "skipped"
)

// checkTimeout bounds each dependency check.
const checkTimeout = 5 * time.Second

// CheckReport is the outcome of one dependency check.
type CheckReport struct {
	Status         string              `json:"status"`
	Error          string              `json:"error,omitempty"`
	MissingColumns map[string][]string `json:"missingColumns,omitempty"`
	Bucket         string              `json:"bucket,omitempty"`
}

// Report is the health document.
type Report struct {
	Status    string      `json:"status"`
	ChecksRun int         `json:"checksRun"`
	Database  CheckReport `json:"database"`
	Storage   CheckReport `json:"storage"`
}

// Healthy reports whether no check failed.
func (r *Report) Healthy() bool {
	return r.Status == StatusOK
}

// Service runs the health checks.
type Service struct {
	db     *gorm.DB
	store  storage.Client
	bucket string
	models []any
	logger *zap.Logger
}

// NewService creates a health service. models are the GORM models whose
// tables must exist with every declared column. A nil store skips the
// storage check.
func NewService(db *gorm.DB, store storage.Client, bucket string, models []any, logger *zap.Logger) *Service {
	return &Service{db: db, store: store, bucket: bucket, models: models, logger: logger}
}

// Check runs the database and storage checks concurrently.
func (s *Service) Check(ctx context.Context) *Report {
	report := &Report{Status: StatusOK}

	var g errgroup.Group
	g.Go(func() error {
		report.Database = s.checkDatabase(ctx)
		return nil
	})
	g.Go(func() error {
		report.Storage = s.checkStorage(ctx)
		return nil
	})
	_ = g.Wait()

	for _, c := range []CheckReport{report.Database, report.Storage} {
		if c.Status == StatusSkipped {
			continue
		}
		report.ChecksRun++
		if c.Status != StatusOK {
			report.Status = StatusUnhealthy
		}
	}
	return report
}

func (s *Service) checkDatabase(ctx context.Context) CheckReport {
	if s.db == nil {
		return CheckReport{Status: StatusUnhealthy, Error: "database is not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err != nil {
		return s.unhealthy("database", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return s.unhealthy("database", err)
	}

	missing, err := database.MissingColumns(s.db.WithContext(ctx), s.models...)
	if err != nil {
		return s.unhealthy("database", err)
	}
	if len(missing) > 0 {
		s.logger.Warn("Database schema is behind the models", zap.Any("missing_columns", missing))
		return CheckReport{Status: StatusUnhealthy, Error: "schema is missing columns", MissingColumns: missing}
	}
	return CheckReport{Status: StatusOK}
}

func (s *Service) checkStorage(ctx context.Context) CheckReport {
	if s.store == nil {
		return CheckReport{Status: StatusSkipped}
	}
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	exists, err := s.store.BucketExists(ctx, s.bucket)
	if err != nil {
		r := s.unhealthy("storage", err)
		r.Bucket = s.bucket
		return r
	}
	if !exists {
		return CheckReport{Status: StatusUnhealthy, Bucket: s.bucket, Error: fmt.Sprintf("bucket %s does not exist", s.bucket)}
	}
	return CheckReport{Status: StatusOK, Bucket: s.bucket}
}

func (s *Service) unhealthy(check string, err error) CheckReport {
	s.logger.Error("Health check failed", zap.String("check", check), zap.Error(err))
	return CheckReport{Status: StatusUnhealthy, Error: err.Error()}
}
