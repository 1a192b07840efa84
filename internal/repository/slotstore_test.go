package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"hestia-ledger-api/pkg/addr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both implementations must behave identically; every test runs against each.
func stores(t *testing.T) map[string]SlotStore {
	t.Helper()

	sqlite, err := NewSQLiteSlotStore(filepath.Join(t.TempDir(), "slots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	memory := NewMemorySlotStore()
	t.Cleanup(func() { memory.Close() })

	return map[string]SlotStore{
		"sqlite": sqlite,
		"memory": memory,
	}
}

func TestSlotStorePutGet(t *testing.T) {
	ctx := context.Background()
	a := addr.Address("aa11")

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Update(ctx, func(tx Tx) error {
				return tx.Put(a, "thing", []byte{1, 2, 3})
			})
			require.NoError(t, err)

			err = store.View(ctx, func(tx ReadTx) error {
				slot, err := tx.Get(a)
				require.NoError(t, err)
				require.NotNil(t, slot)
				assert.Equal(t, "thing", slot.Kind)
				assert.Equal(t, []byte{1, 2, 3}, slot.Data)
				assert.Equal(t, int64(1), slot.Version)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestSlotStoreVersionIncrements(t *testing.T) {
	ctx := context.Background()
	a := addr.Address("bb22")

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				err := store.Update(ctx, func(tx Tx) error {
					return tx.Put(a, "thing", []byte{byte(i)})
				})
				require.NoError(t, err)
			}

			err := store.View(ctx, func(tx ReadTx) error {
				slot, err := tx.Get(a)
				require.NoError(t, err)
				require.NotNil(t, slot)
				assert.Equal(t, int64(3), slot.Version)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestSlotStoreRollback(t *testing.T) {
	ctx := context.Background()
	kept := addr.Address("cc33")
	doomed := addr.Address("dd44")
	boom := errors.New("boom")

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Update(ctx, func(tx Tx) error {
				return tx.Put(kept, "thing", []byte("kept"))
			})
			require.NoError(t, err)

			err = store.Update(ctx, func(tx Tx) error {
				if err := tx.Put(doomed, "thing", []byte("doomed")); err != nil {
					return err
				}
				if err := tx.Put(kept, "thing", []byte("overwritten")); err != nil {
					return err
				}
				if err := tx.Delete(kept); err != nil {
					return err
				}
				return boom
			})
			require.ErrorIs(t, err, boom)

			err = store.View(ctx, func(tx ReadTx) error {
				slot, err := tx.Get(kept)
				require.NoError(t, err)
				require.NotNil(t, slot, "failed update must not delete")
				assert.Equal(t, []byte("kept"), slot.Data)

				slot, err = tx.Get(doomed)
				require.NoError(t, err)
				assert.Nil(t, slot, "failed update must not create")
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestSlotStoreReadYourWrites(t *testing.T) {
	ctx := context.Background()
	a := addr.Address("ee55")

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Update(ctx, func(tx Tx) error {
				if err := tx.Put(a, "thing", []byte("staged")); err != nil {
					return err
				}
				slot, err := tx.Get(a)
				require.NoError(t, err)
				require.NotNil(t, slot, "a staged write is visible inside its own update")
				assert.Equal(t, []byte("staged"), slot.Data)

				if err := tx.Delete(a); err != nil {
					return err
				}
				slot, err = tx.Get(a)
				require.NoError(t, err)
				assert.Nil(t, slot, "a staged delete is visible inside its own update")
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestSlotStoreDelete(t *testing.T) {
	ctx := context.Background()
	a := addr.Address("ff66")

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Update(ctx, func(tx Tx) error {
				return tx.Put(a, "thing", []byte("x"))
			})
			require.NoError(t, err)

			err = store.Update(ctx, func(tx Tx) error {
				return tx.Delete(a)
			})
			require.NoError(t, err)

			err = store.View(ctx, func(tx ReadTx) error {
				slot, err := tx.Get(a)
				require.NoError(t, err)
				assert.Nil(t, slot)
				return nil
			})
			require.NoError(t, err)
		})
	}
}
