package repository

import (
	"context"
	"sync"

	"hestia-ledger-api/pkg/addr"
)

// MemorySlotStore is an in-memory SlotStore. Use it for tests or
// single-instance deployments without a database file. Writers are serialized
// by a mutex and staged writes apply only when the Update callback succeeds,
// preserving the same all-or-nothing commit as the SQLite store.
type MemorySlotStore struct {
	mu    sync.RWMutex
	slots map[addr.Address]Slot
}

// NewMemorySlotStore creates an empty in-memory slot store.
func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{slots: make(map[addr.Address]Slot)}
}

// View runs fn with a read-only view.
func (s *MemorySlotStore) View(ctx context.Context, fn func(ReadTx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&memoryTx{store: s})
}

// Update runs fn with staged writes that commit only on success.
func (s *MemorySlotStore) Update(ctx context.Context, fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{
		store:   s,
		writes:  make(map[addr.Address]Slot),
		deletes: make(map[addr.Address]bool),
	}
	if err := fn(tx); err != nil {
		return err
	}

	for a := range tx.deletes {
		delete(s.slots, a)
	}
	for a, slot := range tx.writes {
		s.slots[a] = slot
	}
	return nil
}

// Close is a no-op for the memory store.
func (s *MemorySlotStore) Close() error {
	return nil
}

type memoryTx struct {
	store   *MemorySlotStore
	writes  map[addr.Address]Slot
	deletes map[addr.Address]bool
}

func (t *memoryTx) Get(a addr.Address) (*Slot, error) {
	if t.deletes[a] {
		return nil, nil
	}
	if slot, ok := t.writes[a]; ok {
		out := cloneSlot(slot)
		return &out, nil
	}
	slot, ok := t.store.slots[a]
	if !ok {
		return nil, nil
	}
	out := cloneSlot(slot)
	return &out, nil
}

func (t *memoryTx) Put(a addr.Address, kind string, data []byte) error {
	version := int64(1)
	if prev, ok := t.writes[a]; ok {
		version = prev.Version + 1
	} else if prev, ok := t.store.slots[a]; ok && !t.deletes[a] {
		version = prev.Version + 1
	}
	delete(t.deletes, a)
	t.writes[a] = cloneSlot(Slot{Kind: kind, Data: data, Version: version})
	return nil
}

func (t *memoryTx) Delete(a addr.Address) error {
	delete(t.writes, a)
	t.deletes[a] = true
	return nil
}

func cloneSlot(s Slot) Slot {
	data := make([]byte, len(s.Data))
	copy(data, s.Data)
	return Slot{Kind: s.Kind, Data: data, Version: s.Version}
}

// Ensure MemorySlotStore implements SlotStore
var _ SlotStore = (*MemorySlotStore)(nil)
