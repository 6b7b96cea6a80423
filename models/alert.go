package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AlertType enum
type AlertType string

const (
	AlertInfo      AlertType = "info"
	AlertWarning   AlertType = "warning"
	AlertEmergency AlertType = "emergency"
)

// Alert is an admin-published announcement banner shown to citizens.
type Alert struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title     string              `bson:"title" json:"title"`
	Message   string              `bson:"message" json:"message"`
	Type      AlertType           `bson:"type" json:"type"`
	IsActive  bool                `bson:"isActive" json:"isActive"`
	EndDate   *time.Time          `bson:"endDate,omitempty" json:"endDate,omitempty"`
	CreatedBy *primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// ActiveAt reports whether the alert should currently be displayed.
func (a Alert) ActiveAt(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	return a.EndDate == nil || a.EndDate.After(now)
}
