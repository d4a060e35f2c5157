package statistics

import (
	"context"
	"errors"
	"sort"

	"member-api/core/apperror"
	"member-api/core/authz"
	"member-api/core/metrics"
	"member-api/core/reconcile"
	"member-api/core/utils"
	"member-api/core/validation"
	"member-api/feature/member"
	memberModels "member-api/feature/member/models"
	"member-api/feature/statistics/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Selectable top-level fields of the statistics documents.
var (
	MemberStatsFields = []string{
		"userId", "groupId", "handle", "handleLower", "maxRating", "challenges", "wins",
		"DEVELOP", "DESIGN", "DATA_SCIENCE", "COPILOT",
		"createdAt", "updatedAt", "createdBy", "updatedBy",
	}
	HistoryStatsFields = []string{
		"userId", "groupId", "handle", "handleLower", "DEVELOP", "DATA_SCIENCE",
		"createdAt", "updatedAt", "createdBy", "updatedBy",
	}
	DistributionFields = []string{
		"track", "subTrack", "distribution", "createdAt", "updatedAt", "createdBy", "updatedBy",
	}
)

// groupReadLimit bounds concurrent per-group reads of one request.
const groupReadLimit = 4

// Service handles member statistics.
type Service struct {
	db      *gorm.DB
	repo    *Repository
	members member.Lookup
	groups  GroupResolver
	cfg     Config
	metrics *metrics.Manager
	logger  *zap.Logger
}

// NewService creates a new statistics service.
func NewService(db *gorm.DB, members member.Lookup, groups GroupResolver, cfg Config, metricsManager *metrics.Manager, logger *zap.Logger) *Service {
	return &Service{
		db:      db,
		repo:    NewRepository(db),
		members: members,
		groups:  groups,
		cfg:     cfg,
		metrics: metricsManager,
		logger:  logger,
	}
}

func (s *Service) scopeFor(groupID int64) Scope {
	if groupID == s.cfg.PublicGroupID {
		return Scope{}
	}
	id := groupID
	return Scope{GroupID: &id}
}

// publicGroup reports public records under the configured public group id.
func (s *Service) publicGroup(groupID *int64) *int64 {
	if groupID != nil {
		return groupID
	}
	id := s.cfg.PublicGroupID
	return &id
}

// readGroups loads one record per group concurrently. Missing records are
// skipped and the result keeps the order of groups.
func readGroups[T any](ctx context.Context, groups []int64, read func(ctx context.Context, groupID int64) (*T, error)) ([]*T, error) {
	results := make([]*T, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(groupReadLimit)
	for i, groupID := range groups {
		i, groupID := i, groupID
		g.Go(func() error {
			rec, err := read(gctx, groupID)
			results[i] = rec
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	found := make([]*T, 0, len(results))
	for _, r := range results {
		if r != nil {
			found = append(found, r)
		}
	}
	return found, nil
}

// GetMemberStats returns the statistics of a member for each readable group.
func (s *Service) GetMemberStats(ctx context.Context, identity *authz.Identity, handle, groupIDs, fields string) ([]Document, error) {
	selected, err := utils.ParseCommaSeparated(fields, MemberStatsFields)
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

	records, err := readGroups(ctx, groups, func(ctx context.Context, groupID int64) (*models.MemberStats, error) {
		return s.repo.FindStats(ctx, m.UserID, s.scopeFor(groupID))
	})
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(records))
	for _, rec := range records {
		docs = append(docs, s.statsDocument(m, rec, selected))
	}
	if !authz.CanManageMember(identity, m.HandleLower) {
		redact(docs, s.cfg.SecureFieldList())
	}
	return docs, nil
}

func (s *Service) statsDocument(m *memberModels.Member, stats *models.MemberStats, fields []string) Document {
	stats.GroupID = s.publicGroup(stats.GroupID)
	return BuildStatsResponse(m, stats, fields)
}

// CreateMemberStats creates the statistics record of a member with all of
// its blocks. Client ids on nested items are ignored.
func (s *Service) CreateMemberStats(ctx context.Context, identity *authz.Identity, handle string, body []byte) (Document, error) {
	m, err := s.members.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageMember(identity, m.HandleLower) {
		return nil, apperror.Forbidden("You are not allowed to create the member statistics.")
	}
	var payload MemberStatsPayload
	if err := validation.DecodeAndValidate(body, &payload); err != nil {
		return nil, err
	}
	scope, err := scopeOf(payload.GroupID, payload.IsPrivate)
	if err != nil {
		return nil, err
	}

	var saved *models.MemberStats
	var summary map[string]reconcile.Summary
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findStats(tx, m.UserID, scope)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.BadRequest("Member statistics already exist")
		}

		w := newWriter(tx, identity.Actor())
		rec := models.MemberStats{
			UserID:         m.UserID,
			GroupID:        scope.GroupID,
			IsPrivate:      scope.Private(),
			Challenges:     payload.Challenges,
			Wins:           payload.Wins,
			MemberRatingID: payload.MaxRatingID,
			Audit:          models.Audit{CreatedAt: w.now, UpdatedAt: w.now, CreatedBy: w.actor},
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		if err := w.applyStats(ctx, &rec, &payload, true); err != nil {
			return err
		}

		summary = w.summary
		saved, err = findStats(tx, m.UserID, scope)
		return err
	})
	if err != nil {
		return nil, s.failed("createMemberStats", err)
	}

	s.recorded(summary)
	s.logger.Info("Member stats created",
		zap.String("handle", m.Handle),
		zap.Int64p("group_id", scope.GroupID),
		zap.Int64("stats_id", saved.ID),
		zap.String("actor", identity.Actor()),
	)
	return s.statsDocument(m, saved, nil), nil
}

// UpdateMemberStats reconciles the statistics record of a member with the
// payload in one transaction. Blocks are updated in place or created when
// missing; item collections present in the payload replace the stored ones.
func (s *Service) UpdateMemberStats(ctx context.Context, identity *authz.Identity, handle string, body []byte) (Document, error) {
	m, err := s.members.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageMember(identity, m.HandleLower) {
		return nil, apperror.Forbidden("You are not allowed to update the member statistics.")
	}
	var payload MemberStatsPayload
	if err := validation.DecodeAndValidate(body, &payload); err != nil {
		return nil, err
	}
	scope, err := scopeOf(payload.GroupID, payload.IsPrivate)
	if err != nil {
		return nil, err
	}

	var saved *models.MemberStats
	var summary map[string]reconcile.Summary
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stats, err := findStats(tx, m.UserID, scope)
		if err != nil {
			return err
		}
		if stats == nil {
			return apperror.NotFound("Member statistics not found")
		}

		w := newWriter(tx, identity.Actor())
		cols := columnSet{}
		setValue(cols, "challenges", payload.Challenges)
		setValue(cols, "wins", payload.Wins)
		setValue(cols, "member_rating_id", payload.MaxRatingID)
		cols["updated_by"] = w.actor
		cols["updated_at"] = w.now
		if err := tx.Model(&models.MemberStats{}).Where("id = ?", stats.ID).Updates(map[string]any(cols)).Error; err != nil {
			return err
		}
		if err := w.applyStats(ctx, stats, &payload, false); err != nil {
			return err
		}

		summary = w.summary
		saved, err = findStats(tx, m.UserID, scope)
		return err
	})
	if err != nil {
		return nil, s.failed("updateMemberStats", err)
	}

	s.recorded(summary)
	s.logger.Info("Member stats updated",
		zap.String("handle", m.Handle),
		zap.Int64p("group_id", scope.GroupID),
		zap.Int64("stats_id", saved.ID),
		zap.Any("changes", summary),
		zap.String("actor", identity.Actor()),
	)
	return s.statsDocument(m, saved, nil), nil
}

// failed maps reconcile errors to request errors. Only errors that are not
// request errors count as reconcile failures.
func (s *Service) failed(operation string, err error) error {
	err = reconcileError(err)
	var requestErr *apperror.Error
	if !errors.As(err, &requestErr) {
		s.metrics.RecordReconcileFailure(operation)
	}
	return err
}

func (s *Service) recorded(summary map[string]reconcile.Summary) {
	collections := make([]string, 0, len(summary))
	for c := range summary {
		collections = append(collections, c)
	}
	sort.Strings(collections)
	for _, c := range collections {
		s.metrics.RecordReconcile(c, summary[c])
	}
}
