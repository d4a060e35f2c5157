// Package reconcile synchronizes a persisted child collection with a desired
// collection submitted by a client.
//
// The diff is keyed by identifier:
//
//   - a persisted identifier that no desired item names is deleted
//   - a desired item with an identifier updates that row
//   - a desired item without an identifier is inserted
//
// Items without an identifier are never matched against persisted rows by
// content. Deletes run first, as a single batch, followed by updates and then
// inserts.
//
// # Architecture
//
// BuildPlan is pure and computes a Plan. ApplyPlan hands each action to a
// Mutator, which owns the storage side (parent scoping, audit stamps and the
// transaction). Collections belonging to one request share a transaction, so
// the first failing action aborts all of them.
//
// # Usage Example
//
//	err := db.Transaction(func(tx *gorm.DB) error {
//	    _, err := reconcile.Reconcile(ctx, "develop.items", existingIDs, items,
//	        func(i ItemPayload) *int64 { return i.ID },
//	        newItemMutator(tx, parentID, actor))
//	    return err
//	})
package reconcile
