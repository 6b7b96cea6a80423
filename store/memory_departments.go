package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"civictrack-be/models"
)

// MemoryDepartmentStore is an in-memory DepartmentStore.
type MemoryDepartmentStore struct {
	mu    sync.RWMutex
	depts map[primitive.ObjectID]models.Department
}

func NewMemoryDepartmentStore() *MemoryDepartmentStore {
	return &MemoryDepartmentStore{depts: map[primitive.ObjectID]models.Department{}}
}

func (s *MemoryDepartmentStore) Insert(_ context.Context, dept *models.Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dept.ID.IsZero() {
		dept.ID = primitive.NewObjectID()
	}
	s.depts[dept.ID] = *dept
	return nil
}

func (s *MemoryDepartmentStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dept, ok := s.depts[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := dept
	return &out, nil
}

func (s *MemoryDepartmentStore) FindByName(_ context.Context, name string) (*models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, dept := range s.depts {
		if dept.Name == name {
			out := dept
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryDepartmentStore) List(_ context.Context) ([]models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Department{}
	for _, dept := range s.depts {
		out = append(out, dept)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}
