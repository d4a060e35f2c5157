package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineItem struct {
	ID         *int64
	Name       string
	Challenges int
}

func itemKey(i lineItem) *int64 { return i.ID }

func id(v int64) *int64 { return &v }

// memoryMutator applies actions to an in-memory table and records call order.
type memoryMutator struct {
	rows   map[int64]lineItem
	order  []int64
	nextID int64
	calls  []ActionType
	failOn ActionType
}

func newMemoryMutator(items ...lineItem) *memoryMutator {
	m := &memoryMutator{rows: map[int64]lineItem{}, nextID: 100}
	for _, item := range items {
		m.rows[*item.ID] = item
		m.order = append(m.order, *item.ID)
	}
	return m
}

func (m *memoryMutator) ids() []int64 {
	out := []int64{}
	for _, id := range m.order {
		if _, ok := m.rows[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func (m *memoryMutator) Delete(_ context.Context, ids []int64) error {
	m.calls = append(m.calls, ActionDelete)
	if m.failOn == ActionDelete {
		return errors.New("delete failed")
	}
	for _, id := range ids {
		delete(m.rows, id)
	}
	return nil
}

func (m *memoryMutator) Update(_ context.Context, id int64, item lineItem) error {
	m.calls = append(m.calls, ActionUpdate)
	if m.failOn == ActionUpdate {
		return errors.New("update failed")
	}
	if _, ok := m.rows[id]; !ok {
		return ErrRowNotFound
	}
	item.ID = &id
	m.rows[id] = item
	return nil
}

func (m *memoryMutator) Insert(_ context.Context, item lineItem) error {
	m.calls = append(m.calls, ActionInsert)
	if m.failOn == ActionInsert {
		return errors.New("insert failed")
	}
	m.nextID++
	newID := m.nextID
	item.ID = &newID
	m.rows[newID] = item
	m.order = append(m.order, newID)
	return nil
}

func TestBuildPlan(t *testing.T) {
	t.Run("Classifies actions", func(t *testing.T) {
		desired := []lineItem{
			{ID: id(10), Name: "updated"},
			{Name: "new"},
		}

		plan, err := BuildPlan("develop.items", []int64{10, 20}, desired, itemKey)
		require.NoError(t, err)

		assert.Equal(t, []int64{20}, plan.Deletes)
		require.Len(t, plan.Updates, 1)
		assert.Equal(t, int64(10), plan.Updates[0].ID)
		assert.Equal(t, ActionUpdate, plan.Updates[0].Type)
		require.Len(t, plan.Inserts, 1)
		assert.Equal(t, "new", plan.Inserts[0].Item.Name)
		assert.Equal(t, Summary{Deleted: 1, Updated: 1, Inserted: 1}, plan.Summary)
		assert.Equal(t, 3, plan.Summary.Total())
	})

	t.Run("Empty desired deletes everything", func(t *testing.T) {
		plan, err := BuildPlan("design.items", []int64{1, 2, 3}, []lineItem{}, itemKey)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3}, plan.Deletes)
		assert.Empty(t, plan.Updates)
		assert.Empty(t, plan.Inserts)
	})

	t.Run("Items without id never match existing rows", func(t *testing.T) {
		desired := []lineItem{{Name: "same as 1"}}
		plan, err := BuildPlan("design.items", []int64{1}, desired, itemKey)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, plan.Deletes)
		assert.Len(t, plan.Inserts, 1)
	})

	t.Run("Duplicate id rejected", func(t *testing.T) {
		desired := []lineItem{{ID: id(5)}, {ID: id(5)}}
		plan, err := BuildPlan("develop.items", []int64{5}, desired, itemKey)
		assert.ErrorIs(t, err, ErrDuplicateKey)
		assert.Nil(t, plan)
	})

	t.Run("Payload order preserved", func(t *testing.T) {
		desired := []lineItem{{Name: "b"}, {ID: id(2)}, {Name: "a"}, {ID: id(1)}}
		plan, err := BuildPlan("history.develop", []int64{1, 2}, desired, itemKey)
		require.NoError(t, err)
		assert.Equal(t, int64(2), plan.Updates[0].ID)
		assert.Equal(t, int64(1), plan.Updates[1].ID)
		assert.Equal(t, "b", plan.Inserts[0].Item.Name)
		assert.Equal(t, "a", plan.Inserts[1].Item.Name)
	})
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletion by absence", func(t *testing.T) {
		m := newMemoryMutator(lineItem{ID: id(10), Name: "old"}, lineItem{ID: id(20), Name: "gone"})

		summary, err := Reconcile(ctx, "develop.items", m.ids(), []lineItem{{ID: id(10), Name: "fresh", Challenges: 4}}, itemKey, m)
		require.NoError(t, err)

		assert.Equal(t, Summary{Deleted: 1, Updated: 1}, summary)
		assert.Equal(t, []int64{10}, m.ids())
		assert.Equal(t, "fresh", m.rows[10].Name)
		assert.Equal(t, 4, m.rows[10].Challenges)
	})

	t.Run("Insert without id", func(t *testing.T) {
		m := newMemoryMutator()

		summary, err := Reconcile(ctx, "design.items", m.ids(), []lineItem{{Name: "SRM", Challenges: 2}}, itemKey, m)
		require.NoError(t, err)

		assert.Equal(t, Summary{Inserted: 1}, summary)
		require.Len(t, m.ids(), 1)
		row := m.rows[m.ids()[0]]
		assert.NotNil(t, row.ID)
		assert.Equal(t, "SRM", row.Name)
	})

	t.Run("Idempotent second pass", func(t *testing.T) {
		m := newMemoryMutator()
		_, err := Reconcile(ctx, "develop.items", m.ids(), []lineItem{{Name: "a"}, {Name: "b"}}, itemKey, m)
		require.NoError(t, err)

		var echoed []lineItem
		for _, rowID := range m.ids() {
			echoed = append(echoed, m.rows[rowID])
		}
		before := m.ids()

		summary, err := Reconcile(ctx, "develop.items", m.ids(), echoed, itemKey, m)
		require.NoError(t, err)
		assert.Equal(t, Summary{Updated: 2}, summary)
		assert.Equal(t, before, m.ids())
	})

	t.Run("Deletes run first", func(t *testing.T) {
		m := newMemoryMutator(lineItem{ID: id(1)}, lineItem{ID: id(2)})
		_, err := Reconcile(ctx, "develop.items", m.ids(), []lineItem{{Name: "x"}, {ID: id(2)}}, itemKey, m)
		require.NoError(t, err)
		assert.Equal(t, []ActionType{ActionDelete, ActionUpdate, ActionInsert}, m.calls)
	})

	t.Run("Update of unknown id fails", func(t *testing.T) {
		m := newMemoryMutator(lineItem{ID: id(1)})
		summary, err := Reconcile(ctx, "develop.items", m.ids(), []lineItem{{ID: id(99)}}, itemKey, m)
		assert.ErrorIs(t, err, ErrRowNotFound)
		assert.Equal(t, 1, summary.Deleted)
		assert.Zero(t, summary.Updated)
	})

	t.Run("Stops at first failure", func(t *testing.T) {
		m := newMemoryMutator(lineItem{ID: id(1)})
		m.failOn = ActionUpdate
		_, err := Reconcile(ctx, "develop.items", m.ids(), []lineItem{{ID: id(1)}, {Name: "never"}}, itemKey, m)
		assert.ErrorContains(t, err, "develop.items: failed to update 1")
		assert.NotContains(t, m.calls, ActionInsert)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		m := newMemoryMutator()
		_, err := Reconcile(cctx, "develop.items", nil, []lineItem{{Name: "x"}}, itemKey, m)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, m.calls)
	})
}

func TestSummaryAdd(t *testing.T) {
	a := Summary{Deleted: 1, Updated: 2}
	b := Summary{Updated: 1, Inserted: 3}
	assert.Equal(t, Summary{Deleted: 1, Updated: 3, Inserted: 3}, a.Add(b))
}
