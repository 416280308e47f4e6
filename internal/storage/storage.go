package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const keyPrefix = "session/"

var ErrNotFound = errors.New("snapshot not found")

// Snapshot is everything needed to rebuild a game: the position it started
// from and the moves played since, in UCI form.
type Snapshot struct {
	ID         string    `json:"id"`
	InitialFEN string    `json:"initial_fen"`
	Moves      []string  `json:"moves"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Store wraps BadgerDB for session persistence
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store in dir
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return open(opts)
}

// OpenInMemory opens a store that lives only as long as the process
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func key(id string) []byte {
	return []byte(keyPrefix + id)
}

// Save writes snap, stamping UpdatedAt
func (s *Store) Save(snap Snapshot) error {
	if snap.ID == "" {
		return errors.New("snapshot has no id")
	}
	snap.UpdatedAt = time.Now()

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(snap.ID), data)
	})
}

// Load returns the snapshot stored under id, or ErrNotFound
func (s *Store) Load(id string) (Snapshot, error) {
	var snap Snapshot

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})

	return snap, err
}

// Delete removes id; deleting a missing snapshot is not an error
func (s *Store) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(id))
	})
}

// List returns every stored snapshot in key order
func (s *Store) List() ([]Snapshot, error) {
	var snaps []Snapshot

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var snap Snapshot
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &snap)
			})
			if err != nil {
				return err
			}
			snaps = append(snaps, snap)
		}
		return nil
	})

	return snaps, err
}
