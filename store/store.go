package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"civictrack-be/models"
)

// ErrNotFound is returned by every store when the requested record does
// not exist. Services translate it into their own not-found error.
var ErrNotFound = errors.New("record not found")

// IssueStore is the keyed persistence collaborator for issues. Find
// methods returning slices order newest-first.
type IssueStore interface {
	Insert(ctx context.Context, issue *models.Issue) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Issue, error)
	Replace(ctx context.Context, issue *models.Issue) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindAll(ctx context.Context) ([]models.Issue, error)
	FindByDepartment(ctx context.Context, deptID primitive.ObjectID) ([]models.Issue, error)
	FindByCreator(ctx context.Context, userID primitive.ObjectID) ([]models.Issue, error)
}

// DepartmentStore persists departments. Names are unique.
type DepartmentStore interface {
	Insert(ctx context.Context, dept *models.Department) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error)
	FindByName(ctx context.Context, name string) (*models.Department, error)
	List(ctx context.Context) ([]models.Department, error)
}

// UserStore persists user accounts. Emails are unique.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByRole(ctx context.Context, role models.Role) ([]models.User, error)
	Replace(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AlertStore persists announcement banners.
type AlertStore interface {
	Insert(ctx context.Context, alert *models.Alert) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Alert, error)
	Replace(ctx context.Context, alert *models.Alert) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindAll(ctx context.Context) ([]models.Alert, error)
}
