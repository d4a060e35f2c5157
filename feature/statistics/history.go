package statistics

import (
	"context"

	"member-api/core/apperror"
	"member-api/core/authz"
	"member-api/core/reconcile"
	"member-api/core/utils"
	"member-api/core/validation"
	memberModels "member-api/feature/member/models"
	"member-api/feature/statistics/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetHistoryStats returns the rating history of a member for each readable
// group.
func (s *Service) GetHistoryStats(ctx context.Context, identity *authz.Identity, handle, groupIDs, fields string) ([]Document, error) {
	selected, err := utils.ParseCommaSeparated(fields, HistoryStatsFields)
	if err != nil {
		return nil, err
	}
	m, err := s.members.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	groups, err := s.groups.AllowedGroups(ctx, identity, m, groupIDs)
	if err != nil {
		return nil, err
	}

	records, err := readGroups(ctx, groups, func(ctx context.Context, groupID int64) (*models.MemberHistoryStats, error) {
		return s.repo.FindHistory(ctx, m.UserID, s.scopeFor(groupID))
	})
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(records))
	for _, rec := range records {
		docs = append(docs, s.historyDocument(m, rec, selected))
	}
	if !authz.CanManageMember(identity, m.HandleLower) {
		redact(docs, s.cfg.SecureFieldList())
	}
	return docs, nil
}

func (s *Service) historyDocument(m *memberModels.Member, history *models.MemberHistoryStats, fields []string) Document {
	history.GroupID = s.publicGroup(history.GroupID)
	return BuildStatsHistoryResponse(m, history, fields)
}

// CreateHistoryStats creates the history record of a member with its
// entries. Client ids on entries are ignored.
func (s *Service) CreateHistoryStats(ctx context.Context, identity *authz.Identity, handle string, body []byte) (Document, error) {
	m, err := s.members.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageMember(identity, m.HandleLower) {
		return nil, apperror.Forbidden("You are not allowed to create the member history statistics.")
	}
	var payload HistoryPayload
	if err := validation.DecodeAndValidate(body, &payload); err != nil {
		return nil, err
	}
	scope, err := scopeOf(payload.GroupID, payload.IsPrivate)
	if err != nil {
		return nil, err
	}

	var saved *models.MemberHistoryStats
	var summary map[string]reconcile.Summary
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findHistory(tx, m.UserID, scope)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.BadRequest("Member history statistics already exist")
		}

		w := newWriter(tx, identity.Actor())
		rec := models.MemberHistoryStats{
			UserID:    m.UserID,
			GroupID:   scope.GroupID,
			IsPrivate: scope.Private(),
			Audit:     models.Audit{CreatedAt: w.now, UpdatedAt: w.now, CreatedBy: w.actor},
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		if err := w.applyHistory(ctx, &rec, &payload, true); err != nil {
			return err
		}

		summary = w.summary
		saved, err = findHistory(tx, m.UserID, scope)
		return err
	})
	if err != nil {
		return nil, s.failed("createHistoryStats", err)
	}

	s.recorded(summary)
	s.logger.Info("Member history stats created",
		zap.String("handle", m.Handle),
		zap.Int64p("group_id", scope.GroupID),
		zap.Int("develop", len(saved.Develop)),
		zap.Int("data_science", len(saved.DataScience)),
		zap.String("actor", identity.Actor()),
	)
	return s.historyDocument(m, saved, nil), nil
}

// UpdateHistoryStats reconciles the history entries of a member with the
// payload in one transaction.
func (s *Service) UpdateHistoryStats(ctx context.Context, identity *authz.Identity, handle string, body []byte) (Document, error) {
	m, err := s.members.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageMember(identity, m.HandleLower) {
		return nil, apperror.Forbidden("You are not allowed to update the member history statistics.")
	}
	var payload HistoryPayload
	if err := validation.DecodeAndValidate(body, &payload); err != nil {
		return nil, err
	}
	scope, err := scopeOf(payload.GroupID, payload.IsPrivate)
	if err != nil {
		return nil, err
	}

	var saved *models.MemberHistoryStats
	var summary map[string]reconcile.Summary
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		history, err := findHistory(tx, m.UserID, scope)
		if err != nil {
			return err
		}
		if history == nil {
			return apperror.NotFound("Member history statistics not found")
		}

		w := newWriter(tx, identity.Actor())
		err = tx.Model(&models.MemberHistoryStats{}).Where("id = ?", history.ID).
			Updates(map[string]any{"updated_by": w.actor, "updated_at": w.now}).Error
		if err != nil {
			return err
		}
		if err := w.applyHistory(ctx, history, &payload, false); err != nil {
			return err
		}

		summary = w.summary
		saved, err = findHistory(tx, m.UserID, scope)
		return err
	})
	if err != nil {
		return nil, s.failed("updateHistoryStats", err)
	}

	s.recorded(summary)
	s.logger.Info("Member history stats updated",
		zap.String("handle", m.Handle),
		zap.Int64p("group_id", scope.GroupID),
		zap.Any("changes", summary),
		zap.String("actor", identity.Actor()),
	)
	return s.historyDocument(m, saved, nil), nil
}
