// Package store implements the persistent preferences store, on top of a
// bbolt database.
package store

import (
	"fmt"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
	"src.jfeed.sh/pkg/logutil"
	"src.jfeed.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("store")

// Functions run in one transaction when a database is opened, keyed by a
// description used in error messages.
var initDB = map[string]func(*bolt.Tx) error{}

// DBStore is a storedefs.Prefs backed by a database, which must be closed
// after use.
type DBStore interface {
	storedefs.Prefs
	Close() error
}

type dbStore struct {
	db    *bolt.DB
	waits sync.WaitGroup
}

func dbWithDefaultOptions(dbname string) (*bolt.DB, error) {
	return bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
}

// NewStore opens the database at the given path, creating it if needed.
func NewStore(dbname string) (DBStore, error) {
	db, err := dbWithDefaultOptions(dbname)
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a DBStore from an open database, initializing the
// buckets it needs.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Debug("initializing store", zap.String("path", db.Path()))
	st := &dbStore{db: db}
	st.waits.Add(1)
	defer st.waits.Done()
	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// Close waits for outstanding operations and closes the database.
func (s *dbStore) Close() error {
	if s.db == nil {
		return nil
	}
	s.waits.Wait()
	return s.db.Close()
}
