package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"civictrack-be/models"
	"civictrack-be/store"
)

// DepartmentService is the department directory: lookup and creation of
// departments by id or name.
type DepartmentService struct {
	departments store.DepartmentStore
	now         func() time.Time
}

func NewDepartmentService(departments store.DepartmentStore) *DepartmentService {
	return &DepartmentService{departments: departments, now: time.Now}
}

// Create registers a new department. Admin only; names are unique.
func (s *DepartmentService) Create(ctx context.Context, name, description string, principal *models.Principal) (*models.Department, error) {
	if principal == nil || principal.Role != models.RoleAdmin {
		return nil, permissionErr("admin access only")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("name", "name is required")
	}

	if _, err := s.departments.FindByName(ctx, name); err == nil {
		return nil, conflictErr("department %q already exists", name)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	now := s.now()
	dept := &models.Department{
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.departments.Insert(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

// CreateOrFind returns the department with the given name, creating it
// when absent. Used by routing and by seed tooling.
func (s *DepartmentService) CreateOrFind(ctx context.Context, name string, principal *models.Principal) (*models.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("name", "name is required")
	}
	dept, err := s.departments.FindByName(ctx, name)
	if err == nil {
		return dept, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return s.Create(ctx, name, "", principal)
}

// GetByID looks up a department.
func (s *DepartmentService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error) {
	dept, err := s.departments.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFoundErr("department not found")
	}
	if err != nil {
		return nil, err
	}
	return dept, nil
}

// List returns all departments ordered by name.
func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	return s.departments.List(ctx)
}
