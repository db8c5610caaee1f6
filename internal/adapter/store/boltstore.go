package store

import (
	"encoding/json"
	"fmt"
	"os"

	"go.etcd.io/bbolt"

	"bookbot/internal/domain"
)

var (
	bucketSnapshots = []byte("snapshots")
	bucketMappings  = []byte("mappings")
	bucketRegistry  = []byte("registry")
	keyRegistry     = []byte("indices")
)

// BoltStore keeps every index snapshot, mapping and the registry in a
// single bbolt database file. Alternative to FileStore for setups that
// prefer one file over a directory of them.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (creating if needed) the database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketSnapshots, bucketMappings, bucketRegistry} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) SaveIndex(name string, data *domain.IndexData) error {
	blob, err := encodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", name, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSnapshots).Put([]byte(name), blob)
	})
}

func (s *BoltStore) LoadIndex(name string) (*domain.IndexData, error) {
	var data *domain.IndexData
	err := s.db.View(func(tx *bbolt.Tx) error {
		blob := tx.Bucket(bucketSnapshots).Get([]byte(name))
		if blob == nil {
			return fmt.Errorf("snapshot %s: %w", name, os.ErrNotExist)
		}
		var err error
		data, err = decodeSnapshot(blob)
		return err
	})
	return data, err
}

func (s *BoltStore) SaveMapping(name string, mapping domain.Mapping) error {
	blob, err := json.Marshal(mapping)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMappings).Put([]byte(name), blob)
	})
}

func (s *BoltStore) LoadMapping(name string) (domain.Mapping, error) {
	mapping := domain.Mapping{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		blob := tx.Bucket(bucketMappings).Get([]byte(name))
		if blob == nil {
			return nil
		}
		return json.Unmarshal(blob, &mapping)
	})
	if err != nil {
		return nil, err
	}
	return mapping, nil
}

func (s *BoltStore) SaveRegistry(names []string) error {
	blob, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRegistry).Put(keyRegistry, blob)
	})
}

func (s *BoltStore) LoadRegistry() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		blob := tx.Bucket(bucketRegistry).Get(keyRegistry)
		if blob == nil {
			return nil
		}
		return json.Unmarshal(blob, &names)
	})
	return names, err
}

func (s *BoltStore) DeleteIndex(name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketSnapshots).Delete([]byte(name)); err != nil {
			return err
		}
		return tx.Bucket(bucketMappings).Delete([]byte(name))
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
