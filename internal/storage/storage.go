package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const keyOptions = "options"

// Options holds the engine settings the UCI front end persists between
// runs.
type Options struct {
	HashMB       int           `json:"hash_mb"`
	MoveOverhead time.Duration `json:"move_overhead"`
	LastUsed     time.Time     `json:"last_used"`
}

// DefaultOptions returns the out-of-the-box settings.
func DefaultOptions() *Options {
	return &Options{
		HashMB:       64,
		MoveOverhead: 30 * time.Millisecond,
	}
}

// Store wraps a badger database holding the engine options.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the options database under the platform data
// directory.
func Open() (*Store, error) {
	dbDir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dbDir)
}

// OpenAt opens a store at an explicit directory. Tests use this with a
// temp dir.
func OpenAt(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveOptions writes the options, stamping LastUsed.
func (s *Store) SaveOptions(opts *Options) error {
	opts.LastUsed = time.Now()

	data, err := json.Marshal(opts)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyOptions), data)
	})
}

// LoadOptions reads the stored options, falling back to defaults when
// nothing has been saved yet.
func (s *Store) LoadOptions() (*Options, error) {
	opts := DefaultOptions()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyOptions))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, opts)
		})
	})

	return opts, err
}
