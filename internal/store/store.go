// Package store holds the dataset the map currently displays. Nothing is
// written to disk; a restart regenerates from the configured seed.
package store

import (
	"sync"
	"time"

	"github.com/intelligrit/salesmap/internal/mockdata"
	"github.com/intelligrit/salesmap/internal/model"
)

// Source produces datasets on demand.
type Source interface {
	Generate() model.RegionDataset
	Next() model.RegionDataset
	Seed() uint64
}

var _ Source = (*mockdata.Generator)(nil)

// Snapshot is a dataset plus the metadata describing where it came from.
type Snapshot struct {
	Dataset     model.RegionDataset `json:"regions"`
	Seed        uint64              `json:"seed"`
	GeneratedAt string              `json:"generated_at"`
	Version     uint64              `json:"version"`
}

// Store manages the current dataset in memory.
type Store struct {
	mu     sync.RWMutex
	src    Source
	now    func() time.Time
	latest Snapshot
}

// New creates a store and fills it from src.
func New(src Source) *Store {
	s := &Store{src: src, now: time.Now}
	s.latest = s.snapshot(src.Generate(), src.Seed(), 1)
	return s
}

// Dataset returns the current dataset. Callers must not modify it.
func (s *Store) Dataset() model.RegionDataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest.Dataset
}

// Snapshot returns the current dataset with its metadata.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Refresh replaces the dataset with one generated from the next seed.
func (s *Store) Refresh() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds := s.src.Next()
	s.latest = s.snapshot(ds, s.src.Seed(), s.latest.Version+1)
	return s.latest
}

// Replace installs an externally supplied dataset.
func (s *Store) Replace(ds model.RegionDataset) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = s.snapshot(ds, 0, s.latest.Version+1)
	return s.latest
}

func (s *Store) snapshot(ds model.RegionDataset, seed, version uint64) Snapshot {
	return Snapshot{
		Dataset:     ds,
		Seed:        seed,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Version:     version,
	}
}
