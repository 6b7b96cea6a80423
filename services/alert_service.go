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

// AlertService manages admin-published announcement banners.
type AlertService struct {
	alerts store.AlertStore
	now    func() time.Time
}

func NewAlertService(alerts store.AlertStore) *AlertService {
	return &AlertService{alerts: alerts, now: time.Now}
}

// CreateAlertInput carries a new announcement.
type CreateAlertInput struct {
	Title   string     `json:"title"`
	Message string     `json:"message"`
	Type    string     `json:"type,omitempty"`
	EndDate *time.Time `json:"endDate,omitempty"`
}

func parseAlertType(s string) (models.AlertType, bool) {
	switch models.AlertType(strings.ToLower(strings.TrimSpace(s))) {
	case models.AlertInfo:
		return models.AlertInfo, true
	case models.AlertWarning:
		return models.AlertWarning, true
	case models.AlertEmergency:
		return models.AlertEmergency, true
	}
	return "", false
}

func (s *AlertService) Create(ctx context.Context, input CreateAlertInput, principal *models.Principal) (*models.Alert, error) {
	if principal == nil || principal.Role != models.RoleAdmin {
		return nil, permissionErr("admin access only")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, validationErr("title", "title is required")
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, validationErr("message", "message is required")
	}

	alertType := models.AlertInfo
	if strings.TrimSpace(input.Type) != "" {
		parsed, ok := parseAlertType(input.Type)
		if !ok {
			return nil, validationErr("type", "invalid alert type %q", input.Type)
		}
		alertType = parsed
	}

	now := s.now()
	createdBy := principal.ID
	alert := &models.Alert{
		Title:     strings.TrimSpace(input.Title),
		Message:   strings.TrimSpace(input.Message),
		Type:      alertType,
		IsActive:  true,
		EndDate:   input.EndDate,
		CreatedBy: &createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.alerts.Insert(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// UpdateAlertInput carries a partial alert update; nil fields are left
// unchanged.
type UpdateAlertInput struct {
	Title    *string    `json:"title,omitempty"`
	Message  *string    `json:"message,omitempty"`
	Type     *string    `json:"type,omitempty"`
	IsActive *bool      `json:"isActive,omitempty"`
	EndDate  *time.Time `json:"endDate,omitempty"`
}

func (s *AlertService) Update(ctx context.Context, id primitive.ObjectID, input UpdateAlertInput, principal *models.Principal) (*models.Alert, error) {
	if principal == nil || principal.Role != models.RoleAdmin {
		return nil, permissionErr("admin access only")
	}

	alert, err := s.alerts.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFoundErr("alert not found")
	}
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		alert.Title = strings.TrimSpace(*input.Title)
	}
	if input.Message != nil {
		alert.Message = strings.TrimSpace(*input.Message)
	}
	if input.Type != nil {
		parsed, ok := parseAlertType(*input.Type)
		if !ok {
			return nil, validationErr("type", "invalid alert type %q", *input.Type)
		}
		alert.Type = parsed
	}
	if input.IsActive != nil {
		alert.IsActive = *input.IsActive
	}
	if input.EndDate != nil {
		alert.EndDate = input.EndDate
	}

	alert.UpdatedAt = s.now()
	if err := s.alerts.Replace(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *AlertService) Delete(ctx context.Context, id primitive.ObjectID, principal *models.Principal) error {
	if principal == nil || principal.Role != models.RoleAdmin {
		return permissionErr("admin access only")
	}
	err := s.alerts.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return notFoundErr("alert not found")
	}
	return err
}

// List returns every alert, newest first. Admin only.
func (s *AlertService) List(ctx context.Context, principal *models.Principal) ([]models.Alert, error) {
	if principal == nil || principal.Role != models.RoleAdmin {
		return nil, permissionErr("admin access only")
	}
	return s.alerts.FindAll(ctx)
}

// ListActive returns alerts that should currently be displayed. Public.
func (s *AlertService) ListActive(ctx context.Context) ([]models.Alert, error) {
	all, err := s.alerts.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	active := []models.Alert{}
	for _, alert := range all {
		if alert.ActiveAt(now) {
			active = append(active, alert)
		}
	}
	return active, nil
}
