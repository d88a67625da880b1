package store

import (
	bolt "go.etcd.io/bbolt"
	"src.jfeed.sh/pkg/store/storedefs"
)

const bucketPrefs = "prefs"

func init() {
	initDB["initialize preferences bucket"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPrefs))
		return err
	}
}

// Get gets the value of a preference.
func (s *dbStore) Get(key string) (string, error) {
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketPrefs)).Get([]byte(key))
		if v == nil {
			return storedefs.ErrNoKey
		}
		value = string(v)
		return nil
	})
	return value, err
}

// Put sets the value of a preference.
func (s *dbStore) Put(key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketPrefs)).Put([]byte(key), []byte(value))
	})
}

// Remove deletes a preference.
func (s *dbStore) Remove(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketPrefs)).Delete([]byte(key))
	})
}

// Keys returns the keys of all preferences, in byte order.
func (s *dbStore) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketPrefs)).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Flush syncs the database file to disk.
func (s *dbStore) Flush() error {
	return s.db.Sync()
}
