// Package storage persists engine state between runs on top of BadgerDB:
// the last-used option values and a history of bench results. The engine
// works fine without it; callers treat open failures as a disabled store.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	keyOptions      = "options"
	keyBenchHistory = "bench_history"
)

// maxBenchHistory bounds the number of retained bench records.
const maxBenchHistory = 100

// BenchRecord is one bench run.
type BenchRecord struct {
	Nodes   uint64    `json:"nodes"`
	Nps     uint64    `json:"nps"`
	Version string    `json:"version"`
	RunAt   time.Time `json:"run_at"`
}

// Store wraps the badger database.
type Store struct {
	db *badger.DB
}

// Open opens the database in the default data directory.
func Open() (*Store, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dir)
}

// OpenAt opens the database in a specific directory.
func OpenAt(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open option store: %w", err)
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

// SaveOptions persists the current option values.
func (s *Store) SaveOptions(values map[string]int) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyOptions), data)
	})
}

// LoadOptions returns the persisted option values; an empty map when none
// were saved yet.
func (s *Store) LoadOptions() (map[string]int, error) {
	values := make(map[string]int)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyOptions))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &values)
		})
	})

	return values, err
}

// RecordBench appends a bench result, trimming the history to its cap.
func (s *Store) RecordBench(record BenchRecord) error {
	history, err := s.BenchHistory()
	if err != nil {
		return err
	}

	history = append(history, record)
	if len(history) > maxBenchHistory {
		history = history[len(history)-maxBenchHistory:]
	}

	data, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyBenchHistory), data)
	})
}

// BenchHistory returns the recorded bench runs, oldest first.
func (s *Store) BenchHistory() ([]BenchRecord, error) {
	var history []BenchRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyBenchHistory))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &history)
		})
	})

	return history, err
}
