package statistics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"member-api/feature/statistics/models"

	"gorm.io/gorm"
)

// Repository reads statistics records.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a statistics repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// inScope restricts a query to the record of one member and scope.
func inScope(db *gorm.DB, userID int64, scope Scope) *gorm.DB {
	db = db.Where("user_id = ?", userID)
	if scope.Private() {
		return db.Where("group_id = ? AND is_private = ?", *scope.GroupID, true)
	}
	return db.Where("is_private = ?", false)
}

func preloadStats(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Develop.Items", byID).
		Preload("Design.Items", byID).
		Preload("DataScience.Srm.ChallengeDetails", byID).
		Preload("DataScience.Srm.Divisions", byID).
		Preload("DataScience.Marathon").
		Preload("Copilot")
}

func preloadHistory(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Develop", byID).
		Preload("DataScience", byID)
}

// FindStats loads the statistics record of a member in a scope with all of
// its blocks and items. It returns nil when no record exists.
func (r *Repository) FindStats(ctx context.Context, userID int64, scope Scope) (*models.MemberStats, error) {
	return findStats(r.db.WithContext(ctx), userID, scope)
}

func findStats(db *gorm.DB, userID int64, scope Scope) (*models.MemberStats, error) {
	var stats models.MemberStats
	err := preloadStats(inScope(db, userID, scope)).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load member stats for %d: %w", userID, err)
	}
	return &stats, nil
}

// FindHistory loads the history record of a member in a scope. It returns
// nil when no record exists.
func (r *Repository) FindHistory(ctx context.Context, userID int64, scope Scope) (*models.MemberHistoryStats, error) {
	return findHistory(r.db.WithContext(ctx), userID, scope)
}

func findHistory(db *gorm.DB, userID int64, scope Scope) (*models.MemberHistoryStats, error) {
	var history models.MemberHistoryStats
	err := preloadHistory(inScope(db, userID, scope)).First(&history).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load member history stats for %d: %w", userID, err)
	}
	return &history, nil
}

// FindDistributions returns the distribution rows whose track and sub track
// contain the given values, compared in upper case. Empty filters match all.
func (r *Repository) FindDistributions(ctx context.Context, track, subTrack string) ([]models.DistributionStats, error) {
	db := r.db.WithContext(ctx)
	if track != "" {
		db = db.Where("UPPER(track) LIKE ?", "%"+strings.ToUpper(track)+"%")
	}
	if subTrack != "" {
		db = db.Where("UPPER(sub_track) LIKE ?", "%"+strings.ToUpper(subTrack)+"%")
	}

	var rows []models.DistributionStats
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load distribution stats: %w", err)
	}
	return rows, nil
}
