package member

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"member-api/core/apperror"
	"member-api/feature/member/models"

	"gorm.io/gorm"
)

// Repository reads and writes member rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a member repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByHandle loads a member by case-insensitive handle with its max rating
// and addresses. An unknown handle is a NotFound error.
func (r *Repository) GetByHandle(ctx context.Context, handle string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Preload("MaxRating").
		Preload("Addresses", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("handle_lower = ?", strings.ToLower(strings.TrimSpace(handle))).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound(`Member with handle: "%s" doesn't exist`, handle)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load member %s: %w", handle, err)
	}
	return &member, nil
}

// UpdatePhotoURL sets the member photo and stamps the actor.
func (r *Repository) UpdatePhotoURL(ctx context.Context, userID int64, url, actor string) error {
	res := r.db.WithContext(ctx).Model(&models.Member{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"photo_url":  url,
			"updated_by": actor,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update photo of member %d: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Member %d not found", userID)
	}
	return nil
}
