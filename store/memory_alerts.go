package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"civictrack-be/models"
)

// MemoryAlertStore is an in-memory AlertStore.
type MemoryAlertStore struct {
	mu     sync.RWMutex
	alerts map[primitive.ObjectID]models.Alert
}

func NewMemoryAlertStore() *MemoryAlertStore {
	return &MemoryAlertStore{alerts: map[primitive.ObjectID]models.Alert{}}
}

func cloneAlert(src models.Alert) models.Alert {
	dst := src
	if src.EndDate != nil {
		t := *src.EndDate
		dst.EndDate = &t
	}
	if src.CreatedBy != nil {
		id := *src.CreatedBy
		dst.CreatedBy = &id
	}
	return dst
}

func (s *MemoryAlertStore) Insert(_ context.Context, alert *models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if alert.ID.IsZero() {
		alert.ID = primitive.NewObjectID()
	}
	s.alerts[alert.ID] = cloneAlert(*alert)
	return nil
}

func (s *MemoryAlertStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alert, ok := s.alerts[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneAlert(alert)
	return &out, nil
}

func (s *MemoryAlertStore) Replace(_ context.Context, alert *models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.alerts[alert.ID]; !ok {
		return ErrNotFound
	}
	s.alerts[alert.ID] = cloneAlert(*alert)
	return nil
}

func (s *MemoryAlertStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.alerts[id]; !ok {
		return ErrNotFound
	}
	delete(s.alerts, id)
	return nil
}

func (s *MemoryAlertStore) FindAll(_ context.Context) ([]models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Alert{}
	for _, alert := range s.alerts {
		out = append(out, cloneAlert(alert))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}
