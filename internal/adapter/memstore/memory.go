// Package memstore provides an in-memory SnapshotStore, used in tests and
// for ephemeral runs where nothing should touch the disk.
package memstore

import (
	"fmt"
	"os"
	"sync"

	"bookbot/internal/domain"
)

type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]*domain.IndexData
	mappings  map[string]domain.Mapping
	registry  []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]*domain.IndexData),
		mappings:  make(map[string]domain.Mapping),
	}
}

func (s *MemoryStore) SaveIndex(name string, data *domain.IndexData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[name] = data
	return nil
}

func (s *MemoryStore) LoadIndex(name string) (*domain.IndexData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.snapshots[name]
	if !ok {
		return nil, fmt.Errorf("snapshot %s: %w", name, os.ErrNotExist)
	}
	return data, nil
}

func (s *MemoryStore) SaveMapping(name string, mapping domain.Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings[name] = mapping
	return nil
}

func (s *MemoryStore) LoadMapping(name string) (domain.Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mapping, ok := s.mappings[name]
	if !ok {
		return domain.Mapping{}, nil
	}
	return mapping, nil
}

func (s *MemoryStore) SaveRegistry(names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = append([]string(nil), names...)
	return nil
}

func (s *MemoryStore) LoadRegistry() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.registry...), nil
}

func (s *MemoryStore) DeleteIndex(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, name)
	delete(s.mappings, name)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
