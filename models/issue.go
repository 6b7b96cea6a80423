package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueSeverity enum
type IssueSeverity string

const (
	SeverityLow      IssueSeverity = "low"
	SeverityMedium   IssueSeverity = "medium"
	SeverityHigh     IssueSeverity = "high"
	SeverityCritical IssueSeverity = "critical"
)

// IssueRecurrence enum
type IssueRecurrence string

const (
	RecurrenceNew       IssueRecurrence = "new"
	RecurrenceRecurring IssueRecurrence = "recurring"
	RecurrenceOngoing   IssueRecurrence = "ongoing"
)

// IssueStatus enum
type IssueStatus string

const (
	StatusPending   IssueStatus = "pending"
	StatusInReview  IssueStatus = "in_review"
	StatusForwarded IssueStatus = "forwarded"
	StatusCompleted IssueStatus = "completed"
	StatusReopened  IssueStatus = "reopened"
)

// ContactMethod enum
type ContactMethod string

const (
	ContactPhone ContactMethod = "phone"
	ContactEmail ContactMethod = "email"
	ContactNone  ContactMethod = "none"
)

// GeoSource enum
type GeoSource string

const (
	GeoDeviceLocation GeoSource = "device_location"
	GeoMapClick       GeoSource = "map_click"
	GeoManual         GeoSource = "manual"
	GeoSearch         GeoSource = "search"
)

// ParseSeverity normalizes and validates a severity value.
func ParseSeverity(s string) (IssueSeverity, bool) {
	switch IssueSeverity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityLow:
		return SeverityLow, true
	case SeverityMedium:
		return SeverityMedium, true
	case SeverityHigh:
		return SeverityHigh, true
	case SeverityCritical:
		return SeverityCritical, true
	}
	return "", false
}

// ParseRecurrence normalizes and validates a recurrence value.
func ParseRecurrence(s string) (IssueRecurrence, bool) {
	switch IssueRecurrence(strings.ToLower(strings.TrimSpace(s))) {
	case RecurrenceNew:
		return RecurrenceNew, true
	case RecurrenceRecurring:
		return RecurrenceRecurring, true
	case RecurrenceOngoing:
		return RecurrenceOngoing, true
	}
	return "", false
}

// ParseGeoSource validates a geo source value.
func ParseGeoSource(s string) (GeoSource, bool) {
	switch GeoSource(strings.ToLower(strings.TrimSpace(s))) {
	case GeoDeviceLocation:
		return GeoDeviceLocation, true
	case GeoMapClick:
		return GeoMapClick, true
	case GeoManual:
		return GeoManual, true
	case GeoSearch:
		return GeoSearch, true
	}
	return "", false
}

// ParseContactMethod validates a preferred contact method value.
func ParseContactMethod(s string) (ContactMethod, bool) {
	switch ContactMethod(strings.ToLower(strings.TrimSpace(s))) {
	case ContactPhone:
		return ContactPhone, true
	case ContactEmail:
		return ContactEmail, true
	case ContactNone:
		return ContactNone, true
	}
	return "", false
}

// GeoLocation holds precise coordinates for an issue. Latitude and longitude
// are always present together; a record either has both or no geoLocation at all.
type GeoLocation struct {
	Latitude  float64   `bson:"latitude" json:"latitude"`
	Longitude float64   `bson:"longitude" json:"longitude"`
	Accuracy  *float64  `bson:"accuracy,omitempty" json:"accuracy,omitempty"`
	Source    GeoSource `bson:"source" json:"source"`
}

// DepartmentUpdate is a single entry in the append-only issue timeline.
type DepartmentUpdate struct {
	Text       string              `bson:"text" json:"text"`
	Status     IssueStatus         `bson:"status" json:"status"`
	AddedBy    *primitive.ObjectID `bson:"addedBy,omitempty" json:"addedBy,omitempty"`
	Department *primitive.ObjectID `bson:"department,omitempty" json:"department,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
}

// Issue represents a civic issue reported by a citizen and tracked through
// its lifecycle.
type Issue struct {
	ID                     primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	IssueType              string              `bson:"issueType" json:"issueType"`
	Location               string              `bson:"location" json:"location"`
	Landmark               string              `bson:"landmark,omitempty" json:"landmark,omitempty"`
	GeoLocation            *GeoLocation        `bson:"geoLocation,omitempty" json:"geoLocation,omitempty"`
	Severity               IssueSeverity       `bson:"severity" json:"severity"`
	Description            string              `bson:"description" json:"description"`
	Impact                 string              `bson:"impact,omitempty" json:"impact,omitempty"`
	Recurrence             IssueRecurrence     `bson:"recurrence" json:"recurrence"`
	EvidenceUrls           []string            `bson:"evidenceUrls" json:"evidenceUrls"`
	ResolutionEvidence     []string            `bson:"resolutionEvidence" json:"resolutionEvidence"`
	ContactName            string              `bson:"contactName,omitempty" json:"contactName,omitempty"`
	ContactPhone           string              `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	ContactEmail           string              `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
	PreferredContactMethod ContactMethod       `bson:"preferredContactMethod" json:"preferredContactMethod"`
	Status                 IssueStatus         `bson:"status" json:"status"`
	Summary                string              `bson:"summary" json:"summary"`
	CreatedBy              *primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	ForwardedTo            *primitive.ObjectID `bson:"forwardedTo,omitempty" json:"forwardedTo,omitempty"`
	DepartmentUpdates      []DepartmentUpdate  `bson:"departmentUpdates" json:"departmentUpdates"`
	Rating                 *int                `bson:"rating,omitempty" json:"rating,omitempty"`
	Review                 string              `bson:"review,omitempty" json:"review,omitempty"`
	ReviewedAt             *time.Time          `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	CreatedAt              time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// PublicID is the short reference shown to citizens, derived from the
// record id: "CV-" plus the last six hex characters, uppercased.
func (i Issue) PublicID() string {
	hex := i.ID.Hex()
	return "CV-" + strings.ToUpper(hex[len(hex)-6:])
}

// OwnedBy reports whether the issue was filed by the given user.
func (i Issue) OwnedBy(userID primitive.ObjectID) bool {
	return i.CreatedBy != nil && *i.CreatedBy == userID
}

// ForwardedToDept reports whether the issue is currently assigned to the
// given department.
func (i Issue) ForwardedToDept(deptID primitive.ObjectID) bool {
	return i.ForwardedTo != nil && *i.ForwardedTo == deptID
}
