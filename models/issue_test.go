package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPublicID(t *testing.T) {
	id, err := primitive.ObjectIDFromHex("64a1b2c3d4e5f6a7b8c9dcba")
	require.NoError(t, err)

	issue := Issue{ID: id}
	assert.Equal(t, "CV-C9DCBA", issue.PublicID())
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want IssueSeverity
		ok   bool
	}{
		{"low", SeverityLow, true},
		{"HIGH", SeverityHigh, true},
		{" Critical ", SeverityCritical, true},
		{"medium", SeverityMedium, true},
		{"urgent", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseSeverity(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseRecurrence(t *testing.T) {
	got, ok := ParseRecurrence("ONGOING")
	assert.True(t, ok)
	assert.Equal(t, RecurrenceOngoing, got)

	_, ok = ParseRecurrence("weekly")
	assert.False(t, ok)
}

func TestParseGeoSource(t *testing.T) {
	got, ok := ParseGeoSource("Map_Click")
	assert.True(t, ok)
	assert.Equal(t, GeoMapClick, got)

	_, ok = ParseGeoSource("gps")
	assert.False(t, ok)
}

func TestOwnership(t *testing.T) {
	owner := primitive.NewObjectID()
	dept := primitive.NewObjectID()

	issue := Issue{CreatedBy: &owner, ForwardedTo: &dept}
	assert.True(t, issue.OwnedBy(owner))
	assert.False(t, issue.OwnedBy(primitive.NewObjectID()))
	assert.True(t, issue.ForwardedToDept(dept))
	assert.False(t, issue.ForwardedToDept(primitive.NewObjectID()))

	anonymous := Issue{}
	assert.False(t, anonymous.OwnedBy(owner))
	assert.False(t, anonymous.ForwardedToDept(dept))
}
