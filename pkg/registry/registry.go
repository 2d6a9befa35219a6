// Package registry owns committed buildings. The engine proposes
// instances; the registry stores them and serves the read-only obstacle
// snapshot consumed by subsequent placements.
package registry

import (
	"sort"
	"sync"

	"github.com/EVAnunit1307/citysync/pkg/building"
	"github.com/EVAnunit1307/citysync/pkg/placement"
)

// Registry stores committed building instances.
type Registry interface {
	// Add commits a building.
	Add(b building.Instance) error
	// Remove deletes a building by id. Unknown ids are a no-op.
	Remove(id string) error
	// All returns every committed building.
	All() ([]building.Instance, error)
	// Obstacles returns the collision snapshot of every committed building.
	Obstacles() ([]placement.Obstacle, error)
	// Close releases any backing resources.
	Close() error
}

// Memory is an in-process Registry. Safe for concurrent use.
type Memory struct {
	mu        sync.RWMutex
	buildings map[string]building.Instance
}

// NewMemory creates an empty in-memory registry.
func NewMemory() *Memory {
	return &Memory{buildings: map[string]building.Instance{}}
}

// Add commits a building.
func (m *Memory) Add(b building.Instance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buildings[b.ID] = b
	return nil
}

// Remove deletes a building by id.
func (m *Memory) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.buildings, id)
	return nil
}

// All returns every committed building, ordered by id for stable output.
func (m *Memory) All() ([]building.Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]building.Instance, 0, len(m.buildings))
	for _, b := range m.buildings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Obstacles returns the collision snapshot of every committed building.
func (m *Memory) Obstacles() ([]placement.Obstacle, error) {
	all, err := m.All()
	if err != nil {
		return nil, err
	}
	out := make([]placement.Obstacle, len(all))
	for i, b := range all {
		out[i] = placement.ObstacleOf(b)
	}
	return out, nil
}

// Close is a no-op for the in-memory registry.
func (m *Memory) Close() error {
	return nil
}
