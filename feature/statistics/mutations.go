package statistics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"member-api/core/apperror"
	"member-api/core/reconcile"
	"member-api/feature/statistics/models"

	"gorm.io/gorm"
)

// Reconciled collection names, used in errors, logs and metrics.
const (
	collectionDevelopItems     = "develop.items"
	collectionDesignItems      = "design.items"
	collectionChallengeDetails = "dataScience.srm.challengeDetails"
	collectionDivisions        = "dataScience.srm.divisions"
	collectionDevelopHistory   = "history.develop"
	collectionDataSciHistory   = "history.dataScience"
)

// rowMutator applies reconcile actions to the child rows of type M owned by
// one parent, inside a transaction.
type rowMutator[M, P any] struct {
	tx           *gorm.DB
	parentColumn string
	parentID     int64
	actor        string
	now          time.Time
	columns      func(P) (map[string]any, error)
}

func (m *rowMutator[M, P]) Delete(ctx context.Context, ids []int64) error {
	return m.tx.WithContext(ctx).
		Where(m.parentColumn+" = ? AND id IN ?", m.parentID, ids).
		Delete(new(M)).Error
}

func (m *rowMutator[M, P]) Update(ctx context.Context, id int64, item P) error {
	cols, err := m.columns(item)
	if err != nil {
		return err
	}
	cols["updated_by"] = m.actor
	cols["updated_at"] = m.now

	res := m.tx.WithContext(ctx).Model(new(M)).
		Where("id = ? AND "+m.parentColumn+" = ?", id, m.parentID).
		Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return reconcile.ErrRowNotFound
	}
	return nil
}

func (m *rowMutator[M, P]) Insert(ctx context.Context, item P) error {
	cols, err := m.columns(item)
	if err != nil {
		return err
	}
	cols[m.parentColumn] = m.parentID
	cols["created_by"] = m.actor
	cols["created_at"] = m.now
	cols["updated_at"] = m.now
	return m.tx.WithContext(ctx).Model(new(M)).Create(cols).Error
}

// writer performs the writes of one create or update request. All writes go
// through the same transaction and share one timestamp.
type writer struct {
	tx      *gorm.DB
	actor   string
	now     time.Time
	summary map[string]reconcile.Summary
}

func newWriter(tx *gorm.DB, actor string) *writer {
	return &writer{
		tx:      tx,
		actor:   actor,
		now:     time.Now().UTC(),
		summary: map[string]reconcile.Summary{},
	}
}

// reconcileRows brings the children of parentID in line with desired. When
// fresh is set the parent was created by this request and client ids are
// ignored, so every desired item is inserted. Callers only get here when the
// enclosing block is in the payload, so a nil desired slice clears the rows.
func reconcileRows[M, P any](
	ctx context.Context,
	w *writer,
	collection string,
	parentColumn string,
	parentID int64,
	existingIDs []int64,
	desired []P,
	key reconcile.KeyFunc[P],
	cols func(P) (map[string]any, error),
	fresh bool,
) error {
	if fresh {
		key = func(P) *int64 { return nil }
	}
	mutator := &rowMutator[M, P]{
		tx:           w.tx,
		parentColumn: parentColumn,
		parentID:     parentID,
		actor:        w.actor,
		now:          w.now,
		columns:      cols,
	}
	summary, err := reconcile.Reconcile(ctx, collection, existingIDs, desired, key, mutator)
	if err != nil {
		return err
	}
	w.summary[collection] = w.summary[collection].Add(summary)
	return nil
}

// upsertBlock updates the singular block row existingID, or creates it under
// parentID when existingID is nil. It returns the block id and whether the
// row was created.
func upsertBlock[M any](ctx context.Context, w *writer, parentColumn string, parentID int64, existingID *int64, cols map[string]any) (int64, bool, error) {
	db := w.tx.WithContext(ctx)
	if existingID != nil {
		cols["updated_by"] = w.actor
		cols["updated_at"] = w.now
		if err := db.Model(new(M)).Where("id = ?", *existingID).Updates(cols).Error; err != nil {
			return 0, false, err
		}
		return *existingID, false, nil
	}

	cols[parentColumn] = parentID
	cols["created_by"] = w.actor
	cols["created_at"] = w.now
	cols["updated_at"] = w.now
	if err := db.Model(new(M)).Create(cols).Error; err != nil {
		return 0, false, err
	}

	var ids []int64
	if err := db.Model(new(M)).Where(parentColumn+" = ?", parentID).Pluck("id", &ids).Error; err != nil {
		return 0, false, err
	}
	if len(ids) != 1 {
		return 0, false, fmt.Errorf("expected one row under %s %d, found %d", parentColumn, parentID, len(ids))
	}
	return ids[0], true, nil
}

// reconcileError maps engine errors to domain errors. Other errors pass
// through unchanged.
func reconcileError(err error) error {
	switch {
	case errors.Is(err, reconcile.ErrRowNotFound):
		return apperror.NotFound("%s", err.Error())
	case errors.Is(err, reconcile.ErrDuplicateKey):
		return apperror.BadRequest("%s", err.Error())
	default:
		return err
	}
}

func itemKey(p StatsItemPayload) *int64                     { return p.ID }
func challengeDetailKey(p SrmChallengeDetailPayload) *int64 { return p.ID }
func divisionKey(p SrmDivisionPayload) *int64               { return p.ID }
func developHistoryKey(p DevelopHistoryPayload) *int64      { return p.ID }
func dataSciHistoryKey(p DataScienceHistoryPayload) *int64  { return p.ID }

func idsOf[T any](rows []T, id func(T) int64) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, id(r))
	}
	return ids
}

// applyStats writes the blocks of a statistics payload under stats. Blocks
// missing from the payload are left alone. When fresh is set the record was
// created by this request.
func (w *writer) applyStats(ctx context.Context, stats *models.MemberStats, p *MemberStatsPayload, fresh bool) error {
	if err := w.applyDevelop(ctx, stats, p.Develop, fresh); err != nil {
		return err
	}
	if err := w.applyDesign(ctx, stats, p.Design, fresh); err != nil {
		return err
	}
	if err := w.applyDataScience(ctx, stats, p.DataScience, fresh); err != nil {
		return err
	}
	return w.applyCopilot(ctx, stats, p.Copilot)
}

func (w *writer) applyDevelop(ctx context.Context, stats *models.MemberStats, p *TrackPayload, fresh bool) error {
	if p == nil {
		return nil
	}
	cols, err := p.columns()
	if err != nil {
		return err
	}

	var existingID *int64
	var itemIDs []int64
	if d := stats.Develop; d != nil {
		existingID = &d.ID
		itemIDs = idsOf(d.Items, func(i models.MemberDevelopStatsItem) int64 { return i.ID })
	}
	id, created, err := upsertBlock[models.MemberDevelopStats](ctx, w, "member_stats_id", stats.ID, existingID, cols)
	if err != nil {
		return fmt.Errorf("develop: %w", err)
	}
	return reconcileRows[models.MemberDevelopStatsItem](ctx, w, collectionDevelopItems, "develop_stats_id",
		id, itemIDs, p.Items, itemKey, StatsItemPayload.columns, fresh || created)
}

func (w *writer) applyDesign(ctx context.Context, stats *models.MemberStats, p *TrackPayload, fresh bool) error {
	if p == nil {
		return nil
	}
	cols, err := p.columns()
	if err != nil {
		return err
	}

	var existingID *int64
	var itemIDs []int64
	if d := stats.Design; d != nil {
		existingID = &d.ID
		itemIDs = idsOf(d.Items, func(i models.MemberDesignStatsItem) int64 { return i.ID })
	}
	id, created, err := upsertBlock[models.MemberDesignStats](ctx, w, "member_stats_id", stats.ID, existingID, cols)
	if err != nil {
		return fmt.Errorf("design: %w", err)
	}
	return reconcileRows[models.MemberDesignStatsItem](ctx, w, collectionDesignItems, "design_stats_id",
		id, itemIDs, p.Items, itemKey, StatsItemPayload.columns, fresh || created)
}

func (w *writer) applyDataScience(ctx context.Context, stats *models.MemberStats, p *DataSciencePayload, fresh bool) error {
	if p == nil {
		return nil
	}
	cols, err := p.columns()
	if err != nil {
		return err
	}

	var existingID *int64
	var srm *models.MemberSrmStats
	var marathon *models.MemberMarathonStats
	if d := stats.DataScience; d != nil {
		existingID = &d.ID
		srm, marathon = d.Srm, d.Marathon
	}
	dsID, created, err := upsertBlock[models.MemberDataScienceStats](ctx, w, "member_stats_id", stats.ID, existingID, cols)
	if err != nil {
		return fmt.Errorf("dataScience: %w", err)
	}
	fresh = fresh || created

	if p.SRM != nil {
		srmCols, err := p.SRM.columns()
		if err != nil {
			return err
		}
		var srmExisting *int64
		var detailIDs, divisionIDs []int64
		if srm != nil {
			srmExisting = &srm.ID
			detailIDs = idsOf(srm.ChallengeDetails, func(d models.MemberSrmChallengeDetail) int64 { return d.ID })
			divisionIDs = idsOf(srm.Divisions, func(d models.MemberSrmDivisionDetail) int64 { return d.ID })
		}
		srmID, srmCreated, err := upsertBlock[models.MemberSrmStats](ctx, w, "data_science_stats_id", dsID, srmExisting, srmCols)
		if err != nil {
			return fmt.Errorf("dataScience.srm: %w", err)
		}
		err = reconcileRows[models.MemberSrmChallengeDetail](ctx, w, collectionChallengeDetails, "srm_stats_id",
			srmID, detailIDs, p.SRM.ChallengeDetails, challengeDetailKey, SrmChallengeDetailPayload.columns, fresh || srmCreated)
		if err != nil {
			return err
		}
		err = reconcileRows[models.MemberSrmDivisionDetail](ctx, w, collectionDivisions, "srm_stats_id",
			srmID, divisionIDs, p.SRM.Divisions, divisionKey, SrmDivisionPayload.columns, fresh || srmCreated)
		if err != nil {
			return err
		}
	}

	if p.Marathon != nil {
		mmCols, err := p.Marathon.columns()
		if err != nil {
			return err
		}
		var mmExisting *int64
		if marathon != nil {
			mmExisting = &marathon.ID
		}
		if _, _, err := upsertBlock[models.MemberMarathonStats](ctx, w, "data_science_stats_id", dsID, mmExisting, mmCols); err != nil {
			return fmt.Errorf("dataScience.marathon: %w", err)
		}
	}
	return nil
}

func (w *writer) applyCopilot(ctx context.Context, stats *models.MemberStats, p *CopilotPayload) error {
	if p == nil {
		return nil
	}
	cols, err := p.columns()
	if err != nil {
		return err
	}
	var existingID *int64
	if stats.Copilot != nil {
		existingID = &stats.Copilot.ID
	}
	if _, _, err := upsertBlock[models.MemberCopilotStats](ctx, w, "member_stats_id", stats.ID, existingID, cols); err != nil {
		return fmt.Errorf("copilot: %w", err)
	}
	return nil
}

// applyHistory reconciles the history entries of a payload under history.
func (w *writer) applyHistory(ctx context.Context, history *models.MemberHistoryStats, p *HistoryPayload, fresh bool) error {
	developIDs := idsOf(history.Develop, func(h models.MemberDevelopHistoryStats) int64 { return h.ID })
	err := reconcileRows[models.MemberDevelopHistoryStats](ctx, w, collectionDevelopHistory, "history_stats_id",
		history.ID, developIDs, p.Develop, developHistoryKey, DevelopHistoryPayload.columns, fresh)
	if err != nil {
		return err
	}
	dsIDs := idsOf(history.DataScience, func(h models.MemberDataScienceHistoryStats) int64 { return h.ID })
	return reconcileRows[models.MemberDataScienceHistoryStats](ctx, w, collectionDataSciHistory, "history_stats_id",
		history.ID, dsIDs, p.DataScience, dataSciHistoryKey, DataScienceHistoryPayload.columns, fresh)
}
