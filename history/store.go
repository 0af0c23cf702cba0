// Package history persists per-test duration records between driver runs.
// Records are keyed by a configurable prefix plus the test's path relative
// to the repository root; everything else about the schema belongs to the
// executor adapters that write results.
package history

import (
	"strconv"

	badger "github.com/dgraph-io/badger/v2"
	"github.com/pkg/errors"
	"github.com/runtests/runtests/model"
)

// DefaultPrefix partitions duration records from anything else adapters
// keep in the same store.
const DefaultPrefix = "test-"

type Store struct {
	db     *badger.DB
	prefix []byte
}

// Open opens the duration store at dirPath. An empty path opens an
// in-memory store, which tests use.
func Open(dirPath, prefix string) (*Store, error) {
	var badgerOpts badger.Options
	if dirPath == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		badgerOpts = badger.DefaultOptions(dirPath).WithSyncWrites(false).WithTruncate(true)
	}
	badgerOpts = badgerOpts.WithLogger(nil)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, errors.WithMessage(err, "could not open history store")
	}

	return &Store{
		db:     db,
		prefix: []byte(prefix),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) key(test string) []byte {
	key := make([]byte, 0, len(s.prefix)+len(test))
	key = append(key, s.prefix...)
	return append(key, test...)
}

// PutDuration records the last observed duration for a test.
func (s *Store) PutDuration(test string, seconds float64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key(test), []byte(strconv.FormatFloat(seconds, 'f', -1, 64)))
	})
}

// Duration returns the recorded duration for a single test. The second
// return value is false when the test has no history.
func (s *Store) Duration(test string) (float64, bool, error) {
	var seconds float64
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(test))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		seconds, err = strconv.ParseFloat(string(val), 64)
		if err != nil {
			return errors.WithMessagef(err, "corrupt duration record for %s", test)
		}
		found = true
		return nil
	})
	return seconds, found, err
}

// Durations streams every duration record under the store prefix, in key
// order, to fn. Iteration stops on the first error fn returns.
func (s *Store) Durations(fn func(model.DurationRecord) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(s.prefix); it.ValidForPrefix(s.prefix); it.Next() {
			item := it.Item()
			test := string(item.Key()[len(s.prefix):])
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			seconds, err := strconv.ParseFloat(string(val), 64)
			if err != nil {
				return errors.WithMessagef(err, "corrupt duration record for %s", test)
			}
			if err := fn(model.DurationRecord{Test: test, Seconds: seconds}); err != nil {
				return err
			}
		}
		return nil
	})
}

// Prune deletes every record whose test the exists callback rejects. All
// deletions ride a single transaction committed only after the full scan,
// so a failing delete leaves the store untouched. The deleted callback, if
// non-nil, observes each removed test path. Returns the number of records
// removed.
func (s *Store) Prune(exists func(test string) bool, deleted func(test string)) (int, error) {
	txn := s.db.NewTransaction(true)
	defer txn.Discard()

	removed := 0
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	for it.Seek(s.prefix); it.ValidForPrefix(s.prefix); it.Next() {
		key := it.Item().KeyCopy(nil)
		test := string(key[len(s.prefix):])
		if exists(test) {
			continue
		}
		if err := txn.Delete(key); err != nil {
			it.Close()
			return removed, errors.WithMessagef(err, "could not delete record for %s", test)
		}
		removed++
		if deleted != nil {
			deleted(test)
		}
	}
	it.Close()

	if err := txn.Commit(); err != nil {
		return removed, errors.WithMessage(err, "could not commit prune transaction")
	}
	return removed, nil
}
