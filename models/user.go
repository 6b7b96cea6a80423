package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleCitizen    Role = "citizen"
	RoleDepartment Role = "department"
	RoleAdmin      Role = "admin"
)

type User struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name       string              `bson:"name" json:"name"`
	Email      string              `bson:"email" json:"email"`
	Password   string              `bson:"password,omitempty" json:"-"`
	Role       Role                `bson:"role" json:"role"`
	Department *primitive.ObjectID `bson:"department,omitempty" json:"department,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}

// Principal is the authenticated identity every service operation receives.
// The transport layer resolves it from the session token; the services
// trust it as already authenticated. A nil Principal means unauthenticated
// system intake.
type Principal struct {
	ID         primitive.ObjectID
	Role       Role
	Department *primitive.ObjectID
}

// PrincipalFor builds a Principal from a stored user.
func PrincipalFor(u *User) *Principal {
	return &Principal{ID: u.ID, Role: u.Role, Department: u.Department}
}
