package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"civictrack-be/models"
)

// MemoryIssueStore is an in-memory IssueStore. It backs the service test
// suites and lets the server run without a database for local development.
type MemoryIssueStore struct {
	mu     sync.RWMutex
	issues map[primitive.ObjectID]models.Issue
}

func NewMemoryIssueStore() *MemoryIssueStore {
	return &MemoryIssueStore{issues: map[primitive.ObjectID]models.Issue{}}
}

func cloneIssue(src models.Issue) models.Issue {
	dst := src
	if src.GeoLocation != nil {
		geo := *src.GeoLocation
		if src.GeoLocation.Accuracy != nil {
			acc := *src.GeoLocation.Accuracy
			geo.Accuracy = &acc
		}
		dst.GeoLocation = &geo
	}
	dst.EvidenceUrls = append([]string(nil), src.EvidenceUrls...)
	dst.ResolutionEvidence = append([]string(nil), src.ResolutionEvidence...)
	dst.DepartmentUpdates = append([]models.DepartmentUpdate(nil), src.DepartmentUpdates...)
	if src.CreatedBy != nil {
		id := *src.CreatedBy
		dst.CreatedBy = &id
	}
	if src.ForwardedTo != nil {
		id := *src.ForwardedTo
		dst.ForwardedTo = &id
	}
	if src.Rating != nil {
		r := *src.Rating
		dst.Rating = &r
	}
	if src.ReviewedAt != nil {
		t := *src.ReviewedAt
		dst.ReviewedAt = &t
	}
	return dst
}

func (s *MemoryIssueStore) Insert(_ context.Context, issue *models.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if issue.ID.IsZero() {
		issue.ID = primitive.NewObjectID()
	}
	s.issues[issue.ID] = cloneIssue(*issue)
	return nil
}

func (s *MemoryIssueStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	issue, ok := s.issues[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneIssue(issue)
	return &out, nil
}

func (s *MemoryIssueStore) Replace(_ context.Context, issue *models.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.issues[issue.ID]; !ok {
		return ErrNotFound
	}
	s.issues[issue.ID] = cloneIssue(*issue)
	return nil
}

func (s *MemoryIssueStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.issues[id]; !ok {
		return ErrNotFound
	}
	delete(s.issues, id)
	return nil
}

func (s *MemoryIssueStore) FindAll(_ context.Context) ([]models.Issue, error) {
	return s.filter(func(models.Issue) bool { return true }), nil
}

func (s *MemoryIssueStore) FindByDepartment(_ context.Context, deptID primitive.ObjectID) ([]models.Issue, error) {
	return s.filter(func(i models.Issue) bool {
		return i.ForwardedTo != nil && *i.ForwardedTo == deptID
	}), nil
}

func (s *MemoryIssueStore) FindByCreator(_ context.Context, userID primitive.ObjectID) ([]models.Issue, error) {
	return s.filter(func(i models.Issue) bool {
		return i.CreatedBy != nil && *i.CreatedBy == userID
	}), nil
}

func (s *MemoryIssueStore) filter(keep func(models.Issue) bool) []models.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Issue{}
	for _, issue := range s.issues {
		if keep(issue) {
			out = append(out, cloneIssue(issue))
		}
	}
	sort.Slice(out, func(a, b int) bool {
		ta, tb := out[a].CreatedAt, out[b].CreatedAt
		if ta.Equal(tb) {
			return out[a].ID.Hex() > out[b].ID.Hex()
		}
		return ta.After(tb)
	})
	return out
}
