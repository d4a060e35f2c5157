package reconcile

import (
	"context"
	"fmt"
)

// BuildPlan diffs the persisted identifiers of a collection against the
// desired items. Items whose key is nil are inserts, items with a key are
// updates, and persisted identifiers not named by any desired item are
// deletes. A key repeated in the desired items fails with ErrDuplicateKey.
func BuildPlan[T any](collection string, existingIDs []int64, desired []T, key KeyFunc[T]) (*Plan[T], error) {
	plan := &Plan[T]{
		Collection: collection,
		Deletes:    []int64{},
		Updates:    []Action[T]{},
		Inserts:    []Action[T]{},
	}

	desiredByID := make(map[int64]T, len(desired))
	for _, item := range desired {
		id := key(item)
		if id == nil {
			plan.Inserts = append(plan.Inserts, Action[T]{Type: ActionInsert, Item: item})
			continue
		}
		if _, dup := desiredByID[*id]; dup {
			return nil, fmt.Errorf("%s: %w: %d", collection, ErrDuplicateKey, *id)
		}
		desiredByID[*id] = item
		plan.Updates = append(plan.Updates, Action[T]{Type: ActionUpdate, ID: *id, Item: item})
	}

	seen := make(map[int64]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, keep := desiredByID[id]; !keep {
			plan.Deletes = append(plan.Deletes, id)
		}
	}

	plan.Summary = Summary{
		Deleted:  len(plan.Deletes),
		Updated:  len(plan.Updates),
		Inserted: len(plan.Inserts),
	}
	return plan, nil
}

// ApplyPlan executes a plan through the mutator: deletes first as one batch,
// then updates, then inserts. It stops at the first failure and returns the
// counts executed so far; rolling back is the caller's transaction's job.
func ApplyPlan[T any](ctx context.Context, plan *Plan[T], mutator Mutator[T]) (Summary, error) {
	var done Summary

	if len(plan.Deletes) > 0 {
		if err := mutator.Delete(ctx, plan.Deletes); err != nil {
			return done, fmt.Errorf("%s: failed to delete %v: %w", plan.Collection, plan.Deletes, err)
		}
		done.Deleted = len(plan.Deletes)
	}

	for _, action := range plan.Updates {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if err := mutator.Update(ctx, action.ID, action.Item); err != nil {
			return done, fmt.Errorf("%s: failed to update %d: %w", plan.Collection, action.ID, err)
		}
		done.Updated++
	}

	for _, action := range plan.Inserts {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if err := mutator.Insert(ctx, action.Item); err != nil {
			return done, fmt.Errorf("%s: failed to insert: %w", plan.Collection, err)
		}
		done.Inserted++
	}

	return done, nil
}

// Reconcile is a convenience wrapper that plans and applies in one call.
func Reconcile[T any](
	ctx context.Context,
	collection string,
	existingIDs []int64,
	desired []T,
	key KeyFunc[T],
	mutator Mutator[T],
) (Summary, error) {
	plan, err := BuildPlan(collection, existingIDs, desired, key)
	if err != nil {
		return Summary{}, err
	}
	return ApplyPlan(ctx, plan, mutator)
}
