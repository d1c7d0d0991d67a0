// ABOUTME: Tests for the badger snapshot store
// ABOUTME: Covers roundtrip, newest-wins ordering, and history pruning
package cache

import (
	"fmt"
	"testing"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countSnapshots(count *int) func(txn *badger.Txn) error {
	return func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = snapshotPrefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.ValidForPrefix(snapshotPrefix); it.Next() {
			*count++
		}
		return nil
	}
}

func openTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	store, err := OpenSnapshotStore(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLatestEmptyStore(t *testing.T) {
	store := openTestStore(t)
	assert.Nil(t, store.Latest())
}

func TestSaveAndLatest(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Save([]byte(`{"networkStrength":42}`)))
	assert.Equal(t, []byte(`{"networkStrength":42}`), store.Latest())
}

func TestLatestReturnsNewest(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save([]byte(fmt.Sprintf(`{"rev":%d}`, i))))
	}
	assert.Equal(t, []byte(`{"rev":2}`), store.Latest())
}

func TestPruneKeepsHistoryBounded(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < snapshotHistory+5; i++ {
		require.NoError(t, store.Save([]byte(fmt.Sprintf(`{"rev":%d}`, i))))
	}

	var count int
	err := store.db.View(countSnapshots(&count))
	require.NoError(t, err)
	assert.LessOrEqual(t, count, snapshotHistory)

	// Newest survives pruning
	assert.Equal(t, []byte(fmt.Sprintf(`{"rev":%d}`, snapshotHistory+4)), store.Latest())
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenSnapshotStore(dir, nil)
	require.NoError(t, err)
	require.NoError(t, store.Save([]byte(`{"rev":1}`)))
	require.NoError(t, store.Close())

	reopened, err := OpenSnapshotStore(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, []byte(`{"rev":1}`), reopened.Latest())
}
