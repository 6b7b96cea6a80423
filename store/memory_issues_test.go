package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"civictrack-be/models"
)

func TestMemoryIssueStoreRoundTrip(t *testing.T) {
	s := NewMemoryIssueStore()
	ctx := context.Background()

	issue := &models.Issue{IssueType: "Pothole", Status: models.StatusPending}
	require.NoError(t, s.Insert(ctx, issue))
	assert.False(t, issue.ID.IsZero(), "insert assigns an id")

	got, err := s.FindByID(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pothole", got.IssueType)

	// The stored record is isolated from later mutation of the returned copy.
	got.IssueType = "Streetlight outage"
	again, err := s.FindByID(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pothole", again.IssueType)

	_, err = s.FindByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryIssueStoreReplaceAndDelete(t *testing.T) {
	s := NewMemoryIssueStore()
	ctx := context.Background()

	issue := &models.Issue{IssueType: "Pothole"}
	require.NoError(t, s.Insert(ctx, issue))

	issue.Status = models.StatusInReview
	require.NoError(t, s.Replace(ctx, issue))
	got, err := s.FindByID(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInReview, got.Status)

	ghost := &models.Issue{ID: primitive.NewObjectID()}
	assert.ErrorIs(t, s.Replace(ctx, ghost), ErrNotFound)

	require.NoError(t, s.Delete(ctx, issue.ID))
	assert.ErrorIs(t, s.Delete(ctx, issue.ID), ErrNotFound)
}

func TestMemoryIssueStoreQueries(t *testing.T) {
	s := NewMemoryIssueStore()
	ctx := context.Background()

	citizen := primitive.NewObjectID()
	dept := primitive.NewObjectID()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	older := &models.Issue{IssueType: "Pothole", CreatedBy: &citizen, CreatedAt: base}
	newer := &models.Issue{IssueType: "Garbage overflow", ForwardedTo: &dept, CreatedAt: base.Add(time.Minute)}
	require.NoError(t, s.Insert(ctx, older))
	require.NoError(t, s.Insert(ctx, newer))

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID, "newest first")

	forDept, err := s.FindByDepartment(ctx, dept)
	require.NoError(t, err)
	require.Len(t, forDept, 1)
	assert.Equal(t, newer.ID, forDept[0].ID)

	mine, err := s.FindByCreator(ctx, citizen)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, older.ID, mine[0].ID)

	none, err := s.FindByCreator(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, none)
}
