package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"civictrack-be/models"
	"civictrack-be/store"
)

// Admin status changes and department status changes draw from different
// target sets; forwarding is the only way into the forwarded status.
var adminStatusTargets = map[models.IssueStatus]bool{
	models.StatusPending:   true,
	models.StatusInReview:  true,
	models.StatusForwarded: true,
	models.StatusCompleted: true,
}

var departmentStatusTargets = map[models.IssueStatus]bool{
	models.StatusPending:   true,
	models.StatusInReview:  true,
	models.StatusCompleted: true,
	models.StatusReopened:  true,
}

// IssueService orchestrates the issue lifecycle: creation, status
// transitions, department forwarding, timeline appends, resolution
// evidence, rating and reopening. All collaborators are injected; the
// service holds no global state beyond its per-record locks.
type IssueService struct {
	issues      store.IssueStore
	departments store.DepartmentStore
	now         func() time.Time

	mu    sync.Mutex
	locks map[primitive.ObjectID]*sync.Mutex
}

func NewIssueService(issues store.IssueStore, departments store.DepartmentStore) *IssueService {
	return &IssueService{
		issues:      issues,
		departments: departments,
		now:         time.Now,
		locks:       map[primitive.ObjectID]*sync.Mutex{},
	}
}

// lockIssue serializes read-modify-write cycles per record so concurrent
// updates cannot interleave into an inconsistent status/timeline pair.
func (s *IssueService) lockIssue(id primitive.ObjectID) func() {
	s.mu.Lock()
	m, ok := s.locks[id]
	if !ok {
		m = &sync.Mutex{}
		s.locks[id] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (s *IssueService) load(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	issue, err := s.issues.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFoundErr("issue not found")
	}
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// CreateIssueInput carries the fields of a new issue report. The same
// shape is produced by the free-text extractor; either way it passes
// through full validation here.
type CreateIssueInput struct {
	IssueType              string   `json:"issueType"`
	Location               string   `json:"location"`
	Landmark               string   `json:"landmark,omitempty"`
	Severity               string   `json:"severity"`
	Description            string   `json:"description"`
	Impact                 string   `json:"impact,omitempty"`
	Recurrence             string   `json:"recurrence,omitempty"`
	Latitude               *float64 `json:"latitude,omitempty"`
	Longitude              *float64 `json:"longitude,omitempty"`
	Accuracy               *float64 `json:"accuracy,omitempty"`
	GeoSource              string   `json:"geoSource,omitempty"`
	EvidenceUrls           []string `json:"evidenceUrls,omitempty"`
	ContactName            string   `json:"contactName,omitempty"`
	ContactPhone           string   `json:"contactPhone,omitempty"`
	ContactEmail           string   `json:"contactEmail,omitempty"`
	PreferredContactMethod string   `json:"preferredContactMethod,omitempty"`
}

// Create validates and files a new issue. Severity and recurrence are
// case-normalized; an invalid value is rejected, never coerced. The sole
// defaulting exception is recurrence, which becomes "new" when absent.
// The summary is computed once here and never regenerated.
func (s *IssueService) Create(ctx context.Context, input CreateIssueInput, principal *models.Principal) (*models.Issue, error) {
	if err := Allowed(principal, ActionCreateIssue, nil); err != nil {
		return nil, err
	}

	for field, value := range map[string]string{
		"issueType":   input.IssueType,
		"location":    input.Location,
		"severity":    input.Severity,
		"description": input.Description,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, validationErr(field, "missing required field")
		}
	}

	severity, ok := models.ParseSeverity(input.Severity)
	if !ok {
		return nil, validationErr("severity", "invalid severity %q", input.Severity)
	}

	recurrence := models.RecurrenceNew
	if strings.TrimSpace(input.Recurrence) != "" {
		recurrence, ok = models.ParseRecurrence(input.Recurrence)
		if !ok {
			return nil, validationErr("recurrence", "invalid recurrence %q", input.Recurrence)
		}
	}

	contactMethod := models.ContactNone
	if strings.TrimSpace(input.PreferredContactMethod) != "" {
		contactMethod, ok = models.ParseContactMethod(input.PreferredContactMethod)
		if !ok {
			return nil, validationErr("preferredContactMethod", "invalid contact method %q", input.PreferredContactMethod)
		}
	}

	if len(input.EvidenceUrls) > 3 {
		return nil, validationErr("evidenceUrls", "at most 3 evidence attachments allowed")
	}

	geo, err := parseGeo(input)
	if err != nil {
		return nil, err
	}

	now := s.now()
	issue := &models.Issue{
		IssueType:              strings.TrimSpace(input.IssueType),
		Location:               strings.TrimSpace(input.Location),
		Landmark:               strings.TrimSpace(input.Landmark),
		GeoLocation:            geo,
		Severity:               severity,
		Description:            input.Description,
		Impact:                 strings.TrimSpace(input.Impact),
		Recurrence:             recurrence,
		EvidenceUrls:           append([]string{}, input.EvidenceUrls...),
		ResolutionEvidence:     []string{},
		ContactName:            strings.TrimSpace(input.ContactName),
		ContactPhone:           strings.TrimSpace(input.ContactPhone),
		ContactEmail:           strings.TrimSpace(input.ContactEmail),
		PreferredContactMethod: contactMethod,
		Status:                 models.StatusPending,
		DepartmentUpdates:      []models.DepartmentUpdate{},
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if principal != nil {
		id := principal.ID
		issue.CreatedBy = &id
	}
	issue.Summary = BuildSummary(issue)

	if err := s.issues.Insert(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

func parseGeo(input CreateIssueInput) (*models.GeoLocation, error) {
	if input.Latitude == nil && input.Longitude == nil {
		return nil, nil
	}
	if input.Latitude == nil || input.Longitude == nil {
		return nil, validationErr("geoLocation", "latitude and longitude must be provided together")
	}

	source := models.GeoManual
	if strings.TrimSpace(input.GeoSource) != "" {
		parsed, ok := models.ParseGeoSource(input.GeoSource)
		if !ok {
			return nil, validationErr("geoLocation.source", "invalid geo source %q", input.GeoSource)
		}
		source = parsed
	}

	return &models.GeoLocation{
		Latitude:  *input.Latitude,
		Longitude: *input.Longitude,
		Accuracy:  input.Accuracy,
		Source:    source,
	}, nil
}

// ListForRole returns the issues visible to the principal: admins see all,
// department officers see issues forwarded to their department, citizens
// see their own reports. Always ordered newest-first.
func (s *IssueService) ListForRole(ctx context.Context, principal *models.Principal) ([]models.Issue, error) {
	if principal == nil {
		return nil, permissionErr("authentication required")
	}

	switch principal.Role {
	case models.RoleAdmin:
		if err := Allowed(principal, ActionViewAsAdmin, nil); err != nil {
			return nil, err
		}
		return s.issues.FindAll(ctx)
	case models.RoleDepartment:
		if err := Allowed(principal, ActionViewAsDepartment, nil); err != nil {
			return nil, err
		}
		return s.issues.FindByDepartment(ctx, *principal.Department)
	case models.RoleCitizen:
		if err := Allowed(principal, ActionViewAsCitizen, nil); err != nil {
			return nil, err
		}
		return s.issues.FindByCreator(ctx, principal.ID)
	default:
		return nil, permissionErr("unknown role %q", principal.Role)
	}
}

// UpdateStatusInput carries an admin status change and/or department
// assignment. At least one must be present.
type UpdateStatusInput struct {
	Status      string `json:"status,omitempty"`
	ForwardedTo string `json:"forwardedTo,omitempty"`
}

// UpdateStatus is the admin transition: an explicit status change, a
// forward to a department, or both in one request. Forwarding without an
// explicit status re-triages the issue into the new department's queue by
// resetting it to pending.
func (s *IssueService) UpdateStatus(ctx context.Context, id primitive.ObjectID, input UpdateStatusInput, principal *models.Principal) (*models.Issue, error) {
	if err := Allowed(principal, ActionUpdateStatus, nil); err != nil {
		return nil, err
	}
	if input.Status == "" && input.ForwardedTo == "" {
		return nil, validationErr("status", "provide a status or a department to forward to")
	}

	unlock := s.lockIssue(id)
	defer unlock()

	issue, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != "" {
		target := models.IssueStatus(strings.ToLower(input.Status))
		if !adminStatusTargets[target] {
			return nil, validationErr("status", "invalid status %q", input.Status)
		}
		// Admin status changes act on the active lifecycle; a reopened
		// issue goes back through the department, or gets re-forwarded.
		if issue.Status == models.StatusReopened {
			return nil, conflictErr("cannot change status of a reopened issue directly; forward it or let the department act")
		}
		if target == models.StatusForwarded && issue.ForwardedTo == nil && input.ForwardedTo == "" {
			return nil, conflictErr("cannot mark forwarded without an assigned department")
		}
		issue.Status = target
	}

	if input.ForwardedTo != "" {
		deptID, err := primitive.ObjectIDFromHex(input.ForwardedTo)
		if err != nil {
			return nil, validationErr("forwardedTo", "invalid department id")
		}
		dept, err := s.departments.FindByID(ctx, deptID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, validationErr("forwardedTo", "department not found")
		}
		if err != nil {
			return nil, err
		}
		issue.ForwardedTo = &dept.ID
		if input.Status == "" {
			issue.Status = models.StatusPending
		}
	}

	issue.UpdatedAt = s.now()
	if err := s.issues.Replace(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// DepartmentUpdateInput carries a department officer's update: a status
// change, a timeline comment, resolution evidence, or a combination.
type DepartmentUpdateInput struct {
	Status             string   `json:"status,omitempty"`
	Comment            string   `json:"comment,omitempty"`
	ResolutionEvidence []string `json:"resolutionEvidence,omitempty"`
}

// DepartmentUpdate applies an officer's update to an issue forwarded to
// their department. A comment appends a timeline entry; a status change
// updates the top-level status; both happen atomically under the record
// lock. Resolution evidence is only accepted in the same request that
// transitions the issue to completed.
func (s *IssueService) DepartmentUpdate(ctx context.Context, id primitive.ObjectID, input DepartmentUpdateInput, principal *models.Principal) (*models.Issue, error) {
	// Role gate first so a non-department caller gets a permission error
	// even for an unknown issue.
	if err := Allowed(principal, ActionViewAsDepartment, nil); err != nil {
		return nil, err
	}
	if input.Comment == "" && input.Status == "" {
		return nil, validationErr("comment", "provide at least a comment or a status update")
	}

	unlock := s.lockIssue(id)
	defer unlock()

	issue, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Allowed(principal, ActionDepartmentUpdate, issue); err != nil {
		return nil, err
	}

	var target models.IssueStatus
	if input.Status != "" {
		target = models.IssueStatus(strings.ToLower(input.Status))
		if !departmentStatusTargets[target] {
			return nil, validationErr("status", "invalid status %q", input.Status)
		}
	}

	if len(input.ResolutionEvidence) > 0 && target != models.StatusCompleted {
		return nil, conflictErr("resolution evidence is only accepted when completing the issue")
	}

	if target != "" {
		issue.Status = target
	}
	if target == models.StatusCompleted {
		issue.ResolutionEvidence = append(issue.ResolutionEvidence, input.ResolutionEvidence...)
	}

	if input.Comment != "" {
		entryStatus := issue.Status
		if target != "" {
			entryStatus = target
		}
		addedBy := principal.ID
		issue.DepartmentUpdates = append(issue.DepartmentUpdates, models.DepartmentUpdate{
			Text:       input.Comment,
			Status:     entryStatus,
			AddedBy:    &addedBy,
			Department: principal.Department,
			CreatedAt:  s.now(),
		})
	}

	issue.UpdatedAt = s.now()
	if err := s.issues.Replace(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// Reopen moves a completed issue back into active handling. Only the
// reporting citizen or an admin may reopen, a non-empty reason is
// required, and the rating cycle resets so a later re-completion can be
// rated afresh.
func (s *IssueService) Reopen(ctx context.Context, id primitive.ObjectID, comment string, principal *models.Principal) (*models.Issue, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, validationErr("comment", "a reason is required to reopen an issue")
	}

	unlock := s.lockIssue(id)
	defer unlock()

	issue, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Allowed(principal, ActionReopen, issue); err != nil {
		return nil, err
	}
	if issue.Status != models.StatusCompleted {
		return nil, conflictErr("only a completed issue can be reopened")
	}

	issue.Status = models.StatusReopened
	issue.Rating = nil
	issue.Review = ""
	issue.ReviewedAt = nil

	addedBy := principal.ID
	issue.DepartmentUpdates = append(issue.DepartmentUpdates, models.DepartmentUpdate{
		Text:       "Issue reopened: " + comment,
		Status:     models.StatusReopened,
		AddedBy:    &addedBy,
		Department: issue.ForwardedTo,
		CreatedAt:  s.now(),
	})

	issue.UpdatedAt = s.now()
	if err := s.issues.Replace(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// Rate records the citizen's satisfaction rating on a completed issue.
// Restricted to the reporting citizen or an admin; a record is rated at
// most once per completion cycle.
func (s *IssueService) Rate(ctx context.Context, id primitive.ObjectID, rating int, review string, principal *models.Principal) (*models.Issue, error) {
	if rating < 1 || rating > 5 {
		return nil, validationErr("rating", "rating must be between 1 and 5")
	}

	unlock := s.lockIssue(id)
	defer unlock()

	issue, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Allowed(principal, ActionRate, issue); err != nil {
		return nil, err
	}
	if issue.Status != models.StatusCompleted {
		return nil, conflictErr("only a completed issue can be rated")
	}
	if issue.Rating != nil {
		return nil, conflictErr("issue has already been rated")
	}

	now := s.now()
	issue.Rating = &rating
	issue.Review = review
	issue.ReviewedAt = &now

	issue.UpdatedAt = now
	if err := s.issues.Replace(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// Delete removes an issue entirely. Admin only.
func (s *IssueService) Delete(ctx context.Context, id primitive.ObjectID, principal *models.Principal) error {
	if err := Allowed(principal, ActionDelete, nil); err != nil {
		return err
	}

	unlock := s.lockIssue(id)
	defer unlock()

	err := s.issues.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return notFoundErr("issue not found")
	}
	return err
}
