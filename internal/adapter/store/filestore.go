package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bookbot/internal/domain"
)

const registryFile = "indices.json"

// FileStore is the default snapshot backend: per data directory, one
// binary snapshot per index (<name>.idx), one JSON mapping per index
// (<name>_mapping.json), and one JSON registry (indices.json) listing all
// index names.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed and returns a store
// over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) indexPath(name string) string {
	return filepath.Join(s.dir, name+".idx")
}

func (s *FileStore) mappingPath(name string) string {
	return filepath.Join(s.dir, name+"_mapping.json")
}

func (s *FileStore) SaveIndex(name string, data *domain.IndexData) error {
	blob, err := encodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", name, err)
	}
	return os.WriteFile(s.indexPath(name), blob, 0o644)
}

func (s *FileStore) LoadIndex(name string) (*domain.IndexData, error) {
	blob, err := os.ReadFile(s.indexPath(name))
	if err != nil {
		return nil, err
	}
	data, err := decodeSnapshot(blob)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", name, err)
	}
	return data, nil
}

func (s *FileStore) SaveMapping(name string, mapping domain.Mapping) error {
	blob, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.mappingPath(name), blob, 0o644)
}

func (s *FileStore) LoadMapping(name string) (domain.Mapping, error) {
	blob, err := os.ReadFile(s.mappingPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Mapping{}, nil
		}
		return nil, err
	}
	var mapping domain.Mapping
	if err := json.Unmarshal(blob, &mapping); err != nil {
		return nil, err
	}
	return mapping, nil
}

func (s *FileStore) SaveRegistry(names []string) error {
	blob, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, registryFile), blob, 0o644)
}

func (s *FileStore) LoadRegistry() ([]string, error) {
	blob, err := os.ReadFile(filepath.Join(s.dir, registryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(blob, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (s *FileStore) DeleteIndex(name string) error {
	for _, path := range []string{s.indexPath(name), s.mappingPath(name)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
