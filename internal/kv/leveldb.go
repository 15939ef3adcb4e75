package kv

import (
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// leveldbStore backs a fixture with a goleveldb database directory.
type leveldbStore struct {
	db   *leveldb.DB
	sync bool
}

// OpenLevelDB creates a fresh LevelDB-backed store at path.
// LevelDB stores are directories, not single files; the whole directory is
// removed first so the store starts empty.
//
// Numeric-sync mode maps to synced writes; without it the engine is allowed
// to buffer (NoSync). Either way the logical record set is identical.
func OpenLevelDB(path string, opts Options) (Store, error) {
	if err := truncate(path); err != nil {
		return nil, err
	}

	db, err := leveldb.OpenFile(path, &opt.Options{
		BlockSize:      opts.blockSize(),
		NoSync:         !opts.NumericSync,
		ErrorIfExist:   true,
		ErrorIfMissing: false,
	})
	if err != nil {
		return nil, fmt.Errorf("open leveldb store: %w", err)
	}

	return &leveldbStore{db: db, sync: opts.NumericSync}, nil
}

func (s *leveldbStore) Store(key, value []byte) error {
	if err := s.db.Put(key, value, &opt.WriteOptions{Sync: s.sync}); err != nil {
		return fmt.Errorf("store key %q: %w", key, err)
	}
	return nil
}

func (s *leveldbStore) Count() (uint64, error) {
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()

	var count uint64
	for iter.Next() {
		count++
	}
	if err := iter.Error(); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

func (s *leveldbStore) Close() error {
	return s.db.Close()
}
