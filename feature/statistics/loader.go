package statistics

import (
	"member-api/core/metrics"
	"member-api/feature/member"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the statistics feature.
func NewFeature(db *gorm.DB, cfg Config, metricsManager *metrics.Manager, logger *zap.Logger) *Feature {
	svc := NewService(db, member.NewRepository(db), DefaultGroupResolver{PublicGroupID: cfg.PublicGroupID}, cfg, metricsManager, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "statistics"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service.db != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
