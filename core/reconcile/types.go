package reconcile

import (
	"context"
	"errors"
)

var (
	// ErrDuplicateKey is returned when a desired collection repeats an identifier.
	ErrDuplicateKey = errors.New("duplicate identifier in collection")
	// ErrRowNotFound is returned by mutators when an update matches no row
	// under the parent record.
	ErrRowNotFound = errors.New("row not found")
)

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionDelete removes a persisted item missing from the desired collection.
	ActionDelete ActionType = "delete"
	// ActionUpdate overwrites a persisted item with the desired attributes.
	ActionUpdate ActionType = "update"
	// ActionInsert creates an item that carries no identifier.
	ActionInsert ActionType = "insert"
)

// Action represents a planned mutation of a single item.
type Action[T any] struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// ID is the persisted identifier. Zero for inserts.
	ID int64 `json:"id,omitempty"`

	// Item is the desired state. Empty for deletes.
	Item T `json:"-"`
}

// Plan contains the actions needed to turn a persisted collection into the
// desired one.
type Plan[T any] struct {
	// Collection names the reconciled collection (e.g. "develop.items").
	Collection string `json:"collection"`

	// Deletes lists persisted identifiers absent from the desired collection,
	// in persisted order.
	Deletes []int64 `json:"deletes"`

	// Updates lists desired items carrying an identifier, in payload order.
	Updates []Action[T] `json:"updates"`

	// Inserts lists desired items without an identifier, in payload order.
	Inserts []Action[T] `json:"inserts"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate counts for a plan or an applied plan.
type Summary struct {
	Deleted  int `json:"deleted"`
	Updated  int `json:"updated"`
	Inserted int `json:"inserted"`
}

// Total returns the number of mutations.
func (s Summary) Total() int {
	return s.Deleted + s.Updated + s.Inserted
}

// Add returns the sum of two summaries.
func (s Summary) Add(o Summary) Summary {
	return Summary{
		Deleted:  s.Deleted + o.Deleted,
		Updated:  s.Updated + o.Updated,
		Inserted: s.Inserted + o.Inserted,
	}
}

// Mutator applies planned actions to storage. Implementations are bound to a
// parent record and a transaction; the engine never touches storage directly.
type Mutator[T any] interface {
	// Delete removes the items with the given identifiers.
	Delete(ctx context.Context, ids []int64) error
	// Update overwrites the item with the given identifier. It returns
	// ErrRowNotFound when no such item belongs to the parent.
	Update(ctx context.Context, id int64, item T) error
	// Insert attaches a new item to the parent.
	Insert(ctx context.Context, item T) error
}

// KeyFunc extracts the optional identifier of a desired item.
type KeyFunc[T any] func(item T) *int64
