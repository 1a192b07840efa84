package repository

import (
	"context"

	"hestia-ledger-api/pkg/addr"
)

// Slot is the raw content of one storage slot: the record's kind tag, its
// versioned binary payload, and a per-slot version counter used for
// write-conflict detection. The derived address is the sole unit of
// concurrency control.
type Slot struct {
	Kind    string
	Data    []byte
	Version int64
}

// ReadTx is a consistent read view over the slot space.
type ReadTx interface {
	// Get returns the slot at the derived address, or nil if it is empty.
	Get(a addr.Address) (*Slot, error)
}

// Tx is a read-write transaction. Writes are staged and become visible only
// when the enclosing Update commits.
type Tx interface {
	ReadTx

	// Put stages a write of data under the given kind.
	Put(a addr.Address, kind string, data []byte) error

	// Delete stages removal of the slot.
	Delete(a addr.Address) error
}

// SlotStore persists records at derived addresses. Update runs fn inside one
// transaction: every staged write commits together or not at all, and a
// non-nil error from fn rolls everything back. Writers are serialized, which
// is what makes each operation single-shot and conflict-free per slot.
type SlotStore interface {
	// View runs fn with a read-only view.
	View(ctx context.Context, fn func(ReadTx) error) error

	// Update runs fn inside an atomic read-write transaction.
	Update(ctx context.Context, fn func(Tx) error) error

	// Close releases the underlying resources.
	Close() error
}
