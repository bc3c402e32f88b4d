// internal/draft/store.go

// Package draft implements the persisted form store: one durable record per
// wizard session, merged on every successful step save and cleared on final
// submission. Corrupt persisted data is treated as an absent draft, never as
// a failure.
package draft

import (
	"context"

	"loan-wizard/internal/models"
)

// Store is the load/merge/clear contract shared by all backends.
type Store interface {
	// Load returns the last persisted draft, or an empty draft if none
	// exists or the persisted representation is unreadable.
	Load(ctx context.Context) (models.Draft, error)

	// Merge shallow-merges the non-nil fields of partial into the current
	// draft, removes the named drop fields, persists the result
	// synchronously and returns the new draft.
	Merge(ctx context.Context, partial models.Draft, drops ...models.Field) (models.Draft, error)

	// Clear erases the persisted draft entirely.
	Clear(ctx context.Context) error
}
