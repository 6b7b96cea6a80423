package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"civictrack-be/models"
	"civictrack-be/store"
)

func newAlertService(now time.Time) *AlertService {
	svc := NewAlertService(store.NewMemoryAlertStore())
	svc.now = func() time.Time { return now }
	return svc
}

func TestAlertCreate(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newAlertService(now)
	ctx := context.Background()
	admin := adminPrincipal()

	alert, err := svc.Create(ctx, CreateAlertInput{Title: " Water cut ", Message: "Supply off 2-5pm", Type: "WARNING"}, admin)
	require.NoError(t, err)
	assert.Equal(t, "Water cut", alert.Title)
	assert.Equal(t, models.AlertWarning, alert.Type)
	assert.True(t, alert.IsActive)
	require.NotNil(t, alert.CreatedBy)
	assert.Equal(t, admin.ID, *alert.CreatedBy)

	// Type defaults to info.
	plain, err := svc.Create(ctx, CreateAlertInput{Title: "Notice", Message: "Office closed"}, admin)
	require.NoError(t, err)
	assert.Equal(t, models.AlertInfo, plain.Type)

	_, err = svc.Create(ctx, CreateAlertInput{Message: "no title"}, admin)
	assert.True(t, IsKind(err, KindValidation))
	_, err = svc.Create(ctx, CreateAlertInput{Title: "no message"}, admin)
	assert.True(t, IsKind(err, KindValidation))
	_, err = svc.Create(ctx, CreateAlertInput{Title: "t", Message: "m", Type: "panic"}, admin)
	assert.True(t, IsKind(err, KindValidation))

	_, err = svc.Create(ctx, CreateAlertInput{Title: "t", Message: "m"}, citizenPrincipal(primitive.NewObjectID()))
	assert.True(t, IsKind(err, KindPermission))
}

func TestAlertUpdate(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newAlertService(now)
	ctx := context.Background()
	admin := adminPrincipal()

	alert, err := svc.Create(ctx, CreateAlertInput{Title: "Notice", Message: "Office closed"}, admin)
	require.NoError(t, err)

	title := "Updated notice"
	inactive := false
	updated, err := svc.Update(ctx, alert.ID, UpdateAlertInput{Title: &title, IsActive: &inactive}, admin)
	require.NoError(t, err)
	assert.Equal(t, "Updated notice", updated.Title)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Office closed", updated.Message, "untouched fields survive")

	bad := "shouting"
	_, err = svc.Update(ctx, alert.ID, UpdateAlertInput{Type: &bad}, admin)
	assert.True(t, IsKind(err, KindValidation))

	_, err = svc.Update(ctx, primitive.NewObjectID(), UpdateAlertInput{Title: &title}, admin)
	assert.True(t, IsKind(err, KindNotFound))

	_, err = svc.Update(ctx, alert.ID, UpdateAlertInput{Title: &title}, nil)
	assert.True(t, IsKind(err, KindPermission))
}

func TestAlertDelete(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newAlertService(now)
	ctx := context.Background()
	admin := adminPrincipal()

	alert, err := svc.Create(ctx, CreateAlertInput{Title: "t", Message: "m"}, admin)
	require.NoError(t, err)

	err = svc.Delete(ctx, alert.ID, citizenPrincipal(primitive.NewObjectID()))
	assert.True(t, IsKind(err, KindPermission))

	require.NoError(t, svc.Delete(ctx, alert.ID, admin))
	err = svc.Delete(ctx, alert.ID, admin)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestAlertListActive(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newAlertService(now)
	ctx := context.Background()
	admin := adminPrincipal()

	current, err := svc.Create(ctx, CreateAlertInput{Title: "Current", Message: "m"}, admin)
	require.NoError(t, err)

	expired := now.Add(-time.Hour)
	_, err = svc.Create(ctx, CreateAlertInput{Title: "Expired", Message: "m", EndDate: &expired}, admin)
	require.NoError(t, err)

	off, err := svc.Create(ctx, CreateAlertInput{Title: "Disabled", Message: "m"}, admin)
	require.NoError(t, err)
	inactive := false
	_, err = svc.Update(ctx, off.ID, UpdateAlertInput{IsActive: &inactive}, admin)
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, current.ID, active[0].ID)

	// Admin listing still returns everything.
	all, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.List(ctx, nil)
	assert.True(t, IsKind(err, KindPermission))
}
