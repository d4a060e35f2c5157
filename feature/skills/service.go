package skills

import (
	"context"
	"errors"
	"fmt"
	"time"

	"member-api/core/apperror"
	"member-api/core/authz"
	"member-api/core/validation"
	"member-api/feature/member"
	"member-api/feature/skills/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SkillPayload is the body of member skill create and update.
type SkillPayload struct {
	SkillID       *string  `json:"skillId" validate:"required,uuid"`
	DisplayModeID *string  `json:"displayModeId" validate:"omitempty,uuid"`
	Levels        []string `json:"levels" validate:"omitempty,dive,uuid"`
}

// NamedDocument is an id and name pair.
type NamedDocument struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LevelDocument is a claimed skill level.
type LevelDocument struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SkillDocument is one skill of a member.
type SkillDocument struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    NamedDocument   `json:"category"`
	DisplayMode *NamedDocument  `json:"displayMode,omitempty"`
	Levels      []LevelDocument `json:"levels,omitempty"`
}

// Service handles member skills.
type Service struct {
	db      *gorm.DB
	members member.Lookup
	logger  *zap.Logger
}

// NewService creates a new skills service.
func NewService(db *gorm.DB, members member.Lookup, logger *zap.Logger) *Service {
	return &Service{db: db, members: members, logger: logger}
}

// GetMemberSkills lists the skills of a member.
func (s *Service) GetMemberSkills(ctx context.Context, handle string) ([]SkillDocument, error) {
	m, err := s.members.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	return s.list(s.db.WithContext(ctx), m.UserID)
}

func (s *Service) list(db *gorm.DB, userID int64) ([]SkillDocument, error) {
	var rows []models.MemberSkill
	err := db.
		Preload("Skill.Category").
		Preload("DisplayMode").
		Preload("Levels", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Levels.SkillLevel").
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load member skills for %d: %w", userID, err)
	}
	return BuildMemberSkills(rows), nil
}

// BuildMemberSkills converts member skill rows to response documents.
func BuildMemberSkills(rows []models.MemberSkill) []SkillDocument {
	docs := make([]SkillDocument, 0, len(rows))
	for _, row := range rows {
		doc := SkillDocument{
			ID:       row.Skill.ID,
			Name:     row.Skill.Name,
			Category: NamedDocument{ID: row.Skill.Category.ID, Name: row.Skill.Category.Name},
		}
		if row.DisplayMode != nil {
			doc.DisplayMode = &NamedDocument{ID: row.DisplayMode.ID, Name: row.DisplayMode.Name}
		}
		for _, lvl := range row.Levels {
			doc.Levels = append(doc.Levels, LevelDocument{
				ID:          lvl.SkillLevel.ID,
				Name:        lvl.SkillLevel.Name,
				Description: lvl.SkillLevel.Description,
			})
		}
		docs = append(docs, doc)
	}
	return docs
}

// checkReferences verifies the display mode and levels of a payload exist.
func checkReferences(tx *gorm.DB, p *SkillPayload) error {
	if p.DisplayModeID != nil {
		var count int64
		if err := tx.Model(&models.DisplayMode{}).Where("id = ?", *p.DisplayModeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperror.BadRequest("Display mode %s does not exist", *p.DisplayModeID)
		}
	}
	if len(p.Levels) > 0 {
		var count int64
		if err := tx.Model(&models.SkillLevel{}).Where("id IN ?", p.Levels).Count(&count).Error; err != nil {
			return err
		}
		if count < int64(len(p.Levels)) {
			return apperror.BadRequest("Please make sure skill level exists")
		}
	}
	return nil
}

func newLevels(memberSkillID string, levels []string, actor string, now time.Time) []models.MemberSkillLevel {
	rows := make([]models.MemberSkillLevel, 0, len(levels))
	for _, id := range levels {
		rows = append(rows, models.MemberSkillLevel{
			MemberSkillID: memberSkillID,
			SkillLevelID:  id,
			CreatedAt:     now,
			UpdatedAt:     now,
			CreatedBy:     actor,
		})
	}
	return rows
}

// CreateMemberSkill adds a skill to a member and returns the member's skills.
func (s *Service) CreateMemberSkill(ctx context.Context, identity *authz.Identity, handle string, body []byte) ([]SkillDocument, error) {
	m, err := s.members.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageMember(identity, m.HandleLower) {
		return nil, apperror.Forbidden("You are not allowed to update the member skills.")
	}
	var payload SkillPayload
	if err := validation.DecodeAndValidate(body, &payload); err != nil {
		return nil, err
	}

	var docs []SkillDocument
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.MemberSkill{}).Where("user_id = ? AND skill_id = ?", m.UserID, *payload.SkillID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperror.BadRequest("This member skill exists")
		}
		var skills int64
		if err := tx.Model(&models.Skill{}).Where("id = ?", *payload.SkillID).Count(&skills).Error; err != nil {
			return err
		}
		if skills == 0 {
			return apperror.BadRequest("Skill %s does not exist", *payload.SkillID)
		}
		if err := checkReferences(tx, &payload); err != nil {
			return err
		}

		now := time.Now().UTC()
		actor := identity.Actor()
		row := models.MemberSkill{
			ID:            uuid.NewString(),
			UserID:        m.UserID,
			SkillID:       *payload.SkillID,
			DisplayModeID: payload.DisplayModeID,
			CreatedAt:     now,
			UpdatedAt:     now,
			CreatedBy:     actor,
		}
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return err
		}
		if len(payload.Levels) > 0 {
			levels := newLevels(row.ID, payload.Levels, actor, now)
			if err := tx.Omit(clause.Associations).Create(&levels).Error; err != nil {
				return err
			}
		}

		docs, err = s.list(tx, m.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Member skill created",
		zap.String("handle", m.Handle),
		zap.String("skill_id", *payload.SkillID),
		zap.String("actor", identity.Actor()),
	)
	return docs, nil
}

// UpdateMemberSkill changes the display mode of a member skill and, when
// levels are given, replaces its levels.
func (s *Service) UpdateMemberSkill(ctx context.Context, identity *authz.Identity, handle string, body []byte) ([]SkillDocument, error) {
	m, err := s.members.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageMember(identity, m.HandleLower) {
		return nil, apperror.Forbidden("You are not allowed to update the member skills.")
	}
	var payload SkillPayload
	if err := validation.DecodeAndValidate(body, &payload); err != nil {
		return nil, err
	}

	var docs []SkillDocument
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.MemberSkill
		err := tx.Where("user_id = ? AND skill_id = ?", m.UserID, *payload.SkillID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Member skill not found")
		}
		if err != nil {
			return err
		}
		if err := checkReferences(tx, &payload); err != nil {
			return err
		}

		now := time.Now().UTC()
		actor := identity.Actor()
		updates := map[string]any{"updated_by": actor, "updated_at": now}
		if payload.DisplayModeID != nil {
			updates["display_mode_id"] = *payload.DisplayModeID
		}
		if err := tx.Model(&models.MemberSkill{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return err
		}

		if len(payload.Levels) > 0 {
			if err := tx.Where("member_skill_id = ?", existing.ID).Delete(&models.MemberSkillLevel{}).Error; err != nil {
				return err
			}
			levels := newLevels(existing.ID, payload.Levels, actor, now)
			for i := range levels {
				levels[i].UpdatedBy = &actor
			}
			if err := tx.Omit(clause.Associations).Create(&levels).Error; err != nil {
				return err
			}
		}

		docs, err = s.list(tx, m.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Member skill updated",
		zap.String("handle", m.Handle),
		zap.String("skill_id", *payload.SkillID),
		zap.String("actor", identity.Actor()),
	)
	return docs, nil
}
