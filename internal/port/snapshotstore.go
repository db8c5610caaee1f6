package port

import "bookbot/internal/domain"

// SnapshotStore persists full per-index snapshots plus the registry of
// known index names. Every mutation rewrites the whole snapshot of the
// affected index; there is no incremental persistence.
type SnapshotStore interface {
	SaveIndex(name string, data *domain.IndexData) error

	// LoadIndex returns an error wrapping os.ErrNotExist when no snapshot
	// exists for the name.
	LoadIndex(name string) (*domain.IndexData, error)

	SaveMapping(name string, mapping domain.Mapping) error

	// LoadMapping returns an empty mapping when none is stored.
	LoadMapping(name string) (domain.Mapping, error)

	SaveRegistry(names []string) error

	LoadRegistry() ([]string, error)

	// DeleteIndex removes the snapshot and mapping, tolerating absence.
	DeleteIndex(name string) error

	Close() error
}
