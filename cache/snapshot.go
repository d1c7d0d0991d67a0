// ABOUTME: Badger-backed snapshot store for the last rendered dashboard
// ABOUTME: Blobs live under time-ordered ulid keys, pruned to a short history
package cache

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const snapshotHistory = 10

var snapshotPrefix = []byte("snapshot/")

// SnapshotStore persists serialized dashboard snapshots so a cached view
// can be painted before the first store round trip.
type SnapshotStore struct {
	db     *badger.DB
	logger *zap.Logger
}

func OpenSnapshotStore(dir string, logger *zap.Logger) (*SnapshotStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}
	return &SnapshotStore{db: db, logger: logger}, nil
}

// Save appends a snapshot blob and prunes old revisions.
func (s *SnapshotStore) Save(blob []byte) error {
	key := append(append([]byte{}, snapshotPrefix...), []byte(ulid.Make().String())...)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, blob)
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	s.prune()
	return nil
}

// Latest returns the newest snapshot blob, or nil when none exists. Read
// failures degrade to nil; a missing snapshot only costs the initial paint.
func (s *SnapshotStore) Latest() []byte {
	var blob []byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = snapshotPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		// Seek past the prefix range, then step back into it
		seek := append(append([]byte{}, snapshotPrefix...), 0xff)
		for it.Seek(seek); it.ValidForPrefix(snapshotPrefix); it.Next() {
			var err error
			blob, err = it.Item().ValueCopy(nil)
			return err
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("failed to read latest snapshot", zap.Error(err))
		return nil
	}
	return blob
}

// prune deletes all but the newest snapshotHistory revisions.
func (s *SnapshotStore) prune() {
	err := s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = snapshotPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		var keys [][]byte
		for it.Rewind(); it.ValidForPrefix(snapshotPrefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		if len(keys) <= snapshotHistory {
			return nil
		}
		for _, key := range keys[:len(keys)-snapshotHistory] {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("failed to prune snapshot history", zap.Error(err))
	}
}

func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
