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

type issueFixture struct {
	svc     *IssueService
	issues  *store.MemoryIssueStore
	depts   *store.MemoryDepartmentStore
	admin   *models.Principal
	citizen *models.Principal
}

func newIssueFixture(t *testing.T) *issueFixture {
	t.Helper()

	issues := store.NewMemoryIssueStore()
	depts := store.NewMemoryDepartmentStore()
	svc := NewIssueService(issues, depts)

	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	svc.now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	return &issueFixture{
		svc:     svc,
		issues:  issues,
		depts:   depts,
		admin:   adminPrincipal(),
		citizen: citizenPrincipal(primitive.NewObjectID()),
	}
}

func (f *issueFixture) seedDepartment(t *testing.T, name string) *models.Department {
	t.Helper()
	dept := &models.Department{Name: name}
	require.NoError(t, f.depts.Insert(context.Background(), dept))
	return dept
}

func validInput() CreateIssueInput {
	return CreateIssueInput{
		IssueType:   "Pothole",
		Location:    "5th Ave",
		Severity:    "HIGH",
		Description: "Large pothole",
	}
}

func (f *issueFixture) file(t *testing.T, input CreateIssueInput) *models.Issue {
	t.Helper()
	issue, err := f.svc.Create(context.Background(), input, f.citizen)
	require.NoError(t, err)
	return issue
}

// forward assigns the issue to a department as admin, without a status.
func (f *issueFixture) forward(t *testing.T, id primitive.ObjectID, dept *models.Department) *models.Issue {
	t.Helper()
	issue, err := f.svc.UpdateStatus(context.Background(), id, UpdateStatusInput{ForwardedTo: dept.ID.Hex()}, f.admin)
	require.NoError(t, err)
	return issue
}

// complete drives the issue to completed via its department officer.
func (f *issueFixture) complete(t *testing.T, id primitive.ObjectID, dept *models.Department) *models.Issue {
	t.Helper()
	officer := departmentPrincipal(dept.ID)
	issue, err := f.svc.DepartmentUpdate(context.Background(), id, DepartmentUpdateInput{Status: "completed"}, officer)
	require.NoError(t, err)
	return issue
}

func TestCreateNormalizesAndDefaults(t *testing.T) {
	f := newIssueFixture(t)

	issue := f.file(t, validInput())

	assert.Equal(t, models.SeverityHigh, issue.Severity)
	assert.Equal(t, models.RecurrenceNew, issue.Recurrence)
	assert.Equal(t, models.StatusPending, issue.Status)
	assert.Equal(t, models.ContactNone, issue.PreferredContactMethod)
	assert.Nil(t, issue.ForwardedTo)
	assert.NotEmpty(t, issue.Summary)
	require.NotNil(t, issue.CreatedBy)
	assert.Equal(t, f.citizen.ID, *issue.CreatedBy)
	assert.False(t, issue.ID.IsZero())
}

func TestCreateUnauthenticatedIntake(t *testing.T) {
	f := newIssueFixture(t)

	issue, err := f.svc.Create(context.Background(), validInput(), nil)
	require.NoError(t, err)
	assert.Nil(t, issue.CreatedBy)
	assert.Equal(t, models.StatusPending, issue.Status)
}

func TestCreateValidation(t *testing.T) {
	f := newIssueFixture(t)
	lat := 12.97

	tests := []struct {
		name   string
		mutate func(*CreateIssueInput)
		field  string
	}{
		{"missing issueType", func(i *CreateIssueInput) { i.IssueType = "" }, "issueType"},
		{"missing location", func(i *CreateIssueInput) { i.Location = " " }, "location"},
		{"missing severity", func(i *CreateIssueInput) { i.Severity = "" }, "severity"},
		{"missing description", func(i *CreateIssueInput) { i.Description = "" }, "description"},
		{"invalid severity", func(i *CreateIssueInput) { i.Severity = "catastrophic" }, "severity"},
		{"invalid recurrence", func(i *CreateIssueInput) { i.Recurrence = "sometimes" }, "recurrence"},
		{"invalid contact method", func(i *CreateIssueInput) { i.PreferredContactMethod = "fax" }, "preferredContactMethod"},
		{"too much evidence", func(i *CreateIssueInput) {
			i.EvidenceUrls = []string{"a", "b", "c", "d"}
		}, "evidenceUrls"},
		{"latitude without longitude", func(i *CreateIssueInput) { i.Latitude = &lat }, "geoLocation"},
		{"longitude without latitude", func(i *CreateIssueInput) { i.Longitude = &lat }, "geoLocation"},
		{"invalid geo source", func(i *CreateIssueInput) {
			i.Latitude = &lat
			i.Longitude = &lat
			i.GeoSource = "telepathy"
		}, "geoLocation.source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			_, err := f.svc.Create(context.Background(), input, f.citizen)
			require.Error(t, err)
			assert.True(t, IsKind(err, KindValidation), "expected validation error, got %v", err)

			var se *Error
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.field, se.Field)
		})
	}
}

func TestCreateInvalidRecurrenceNotCoerced(t *testing.T) {
	f := newIssueFixture(t)

	input := validInput()
	input.Recurrence = "RECURRING"
	issue := f.file(t, input)
	assert.Equal(t, models.RecurrenceRecurring, issue.Recurrence, "case-normalized, not rejected")

	input.Recurrence = "weekly"
	_, err := f.svc.Create(context.Background(), input, f.citizen)
	assert.True(t, IsKind(err, KindValidation), "invalid value is rejected, never defaulted")
}

func TestCreateGeoPair(t *testing.T) {
	f := newIssueFixture(t)

	lat, lng := 12.97, 77.59
	input := validInput()
	input.Latitude = &lat
	input.Longitude = &lng
	input.GeoSource = "map_click"

	issue := f.file(t, input)
	require.NotNil(t, issue.GeoLocation)
	assert.Equal(t, lat, issue.GeoLocation.Latitude)
	assert.Equal(t, lng, issue.GeoLocation.Longitude)
	assert.Equal(t, models.GeoMapClick, issue.GeoLocation.Source)
	assert.Contains(t, issue.Summary, "Precise map coordinates captured for field teams.")
}

func TestListForRole(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()
	dept := f.seedDepartment(t, "Roads")
	otherCitizen := citizenPrincipal(primitive.NewObjectID())

	mine := f.file(t, validInput())
	theirsInput := validInput()
	theirsInput.IssueType = "Streetlight outage"
	theirs, err := f.svc.Create(ctx, theirsInput, otherCitizen)
	require.NoError(t, err)

	f.forward(t, theirs.ID, dept)

	t.Run("admin sees all newest first", func(t *testing.T) {
		issues, err := f.svc.ListForRole(ctx, f.admin)
		require.NoError(t, err)
		require.Len(t, issues, 2)
		assert.Equal(t, theirs.ID, issues[0].ID, "newest first")
		assert.Equal(t, mine.ID, issues[1].ID)
	})

	t.Run("department sees its queue", func(t *testing.T) {
		issues, err := f.svc.ListForRole(ctx, departmentPrincipal(dept.ID))
		require.NoError(t, err)
		require.Len(t, issues, 1)
		assert.Equal(t, theirs.ID, issues[0].ID)
	})

	t.Run("citizen sees own", func(t *testing.T) {
		issues, err := f.svc.ListForRole(ctx, f.citizen)
		require.NoError(t, err)
		require.Len(t, issues, 1)
		assert.Equal(t, mine.ID, issues[0].ID)
	})

	t.Run("unauthenticated denied", func(t *testing.T) {
		_, err := f.svc.ListForRole(ctx, nil)
		assert.True(t, IsKind(err, KindPermission))
	})
}

func TestUpdateStatusAdminOnly(t *testing.T) {
	f := newIssueFixture(t)
	issue := f.file(t, validInput())

	for _, p := range []*models.Principal{f.citizen, departmentPrincipal(primitive.NewObjectID()), nil} {
		_, err := f.svc.UpdateStatus(context.Background(), issue.ID, UpdateStatusInput{Status: "in_review"}, p)
		assert.True(t, IsKind(err, KindPermission))
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()
	issue := f.file(t, validInput())

	updated, err := f.svc.UpdateStatus(ctx, issue.ID, UpdateStatusInput{Status: "in_review"}, f.admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInReview, updated.Status)

	_, err = f.svc.UpdateStatus(ctx, issue.ID, UpdateStatusInput{Status: "reopened"}, f.admin)
	assert.True(t, IsKind(err, KindValidation), "reopened is not an admin target")

	_, err = f.svc.UpdateStatus(ctx, issue.ID, UpdateStatusInput{Status: "bogus"}, f.admin)
	assert.True(t, IsKind(err, KindValidation))

	_, err = f.svc.UpdateStatus(ctx, issue.ID, UpdateStatusInput{}, f.admin)
	assert.True(t, IsKind(err, KindValidation), "empty update rejected")

	_, err = f.svc.UpdateStatus(ctx, issue.ID, UpdateStatusInput{Status: "forwarded"}, f.admin)
	assert.True(t, IsKind(err, KindConflict), "forwarded requires a department")

	_, err = f.svc.UpdateStatus(ctx, primitive.NewObjectID(), UpdateStatusInput{Status: "pending"}, f.admin)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestForwardWithoutStatusResetsToPending(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()
	dept := f.seedDepartment(t, "Roads")

	issue := f.file(t, validInput())
	_, err := f.svc.UpdateStatus(ctx, issue.ID, UpdateStatusInput{Status: "in_review"}, f.admin)
	require.NoError(t, err)

	updated := f.forward(t, issue.ID, dept)
	assert.Equal(t, models.StatusPending, updated.Status, "forward without status re-triages to pending")
	require.NotNil(t, updated.ForwardedTo)
	assert.Equal(t, dept.ID, *updated.ForwardedTo)
}

func TestForwardWithExplicitStatus(t *testing.T) {
	f := newIssueFixture(t)
	dept := f.seedDepartment(t, "Water")
	issue := f.file(t, validInput())

	updated, err := f.svc.UpdateStatus(context.Background(), issue.ID,
		UpdateStatusInput{Status: "forwarded", ForwardedTo: dept.ID.Hex()}, f.admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusForwarded, updated.Status)
	require.NotNil(t, updated.ForwardedTo)
	assert.Equal(t, dept.ID, *updated.ForwardedTo)
}

func TestForwardUnknownDepartment(t *testing.T) {
	f := newIssueFixture(t)
	issue := f.file(t, validInput())

	_, err := f.svc.UpdateStatus(context.Background(), issue.ID,
		UpdateStatusInput{ForwardedTo: primitive.NewObjectID().Hex()}, f.admin)
	assert.True(t, IsKind(err, KindValidation))

	_, err = f.svc.UpdateStatus(context.Background(), issue.ID,
		UpdateStatusInput{ForwardedTo: "not-an-id"}, f.admin)
	assert.True(t, IsKind(err, KindValidation))
}

func TestDepartmentUpdatePermissions(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()
	dept := f.seedDepartment(t, "Roads")
	other := f.seedDepartment(t, "Water")

	issue := f.file(t, validInput())
	f.forward(t, issue.ID, dept)

	// Wrong department is a permission failure regardless of payload.
	for _, input := range []DepartmentUpdateInput{
		{Comment: "on it"},
		{Status: "in_review"},
		{Status: "completed", ResolutionEvidence: []string{"url1"}},
	} {
		_, err := f.svc.DepartmentUpdate(ctx, issue.ID, input, departmentPrincipal(other.ID))
		assert.True(t, IsKind(err, KindPermission), "payload %+v", input)
	}

	// Non-department roles are refused outright.
	for _, p := range []*models.Principal{f.citizen, f.admin, nil} {
		_, err := f.svc.DepartmentUpdate(ctx, issue.ID, DepartmentUpdateInput{Comment: "hi"}, p)
		assert.True(t, IsKind(err, KindPermission))
	}
}

func TestDepartmentUpdateRequiresPayload(t *testing.T) {
	f := newIssueFixture(t)
	dept := f.seedDepartment(t, "Roads")
	issue := f.file(t, validInput())
	f.forward(t, issue.ID, dept)

	_, err := f.svc.DepartmentUpdate(context.Background(), issue.ID, DepartmentUpdateInput{}, departmentPrincipal(dept.ID))
	assert.True(t, IsKind(err, KindValidation))
}

func TestDepartmentUpdateCommentAppendsTimeline(t *testing.T) {
	f := newIssueFixture(t)
	dept := f.seedDepartment(t, "Roads")
	officer := departmentPrincipal(dept.ID)

	issue := f.file(t, validInput())
	f.forward(t, issue.ID, dept)

	updated, err := f.svc.DepartmentUpdate(context.Background(), issue.ID,
		DepartmentUpdateInput{Status: "in_review", Comment: "crew dispatched"}, officer)
	require.NoError(t, err)

	assert.Equal(t, models.StatusInReview, updated.Status)
	require.Len(t, updated.DepartmentUpdates, 1)
	entry := updated.DepartmentUpdates[0]
	assert.Equal(t, "crew dispatched", entry.Text)
	assert.Equal(t, models.StatusInReview, entry.Status)
	require.NotNil(t, entry.AddedBy)
	assert.Equal(t, officer.ID, *entry.AddedBy)
	require.NotNil(t, entry.Department)
	assert.Equal(t, dept.ID, *entry.Department)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestDepartmentCompleteWithEvidenceNoComment(t *testing.T) {
	f := newIssueFixture(t)
	dept := f.seedDepartment(t, "Roads")
	officer := departmentPrincipal(dept.ID)

	issue := f.file(t, validInput())
	f.forward(t, issue.ID, dept)

	updated, err := f.svc.DepartmentUpdate(context.Background(), issue.ID,
		DepartmentUpdateInput{Status: "completed", ResolutionEvidence: []string{"url1"}}, officer)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, []string{"url1"}, updated.ResolutionEvidence)
	assert.Empty(t, updated.DepartmentUpdates, "no comment means no timeline append")
}

func TestResolutionEvidenceOnlyWithCompletion(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()
	dept := f.seedDepartment(t, "Roads")
	officer := departmentPrincipal(dept.ID)

	issue := f.file(t, validInput())
	f.forward(t, issue.ID, dept)

	_, err := f.svc.DepartmentUpdate(ctx, issue.ID,
		DepartmentUpdateInput{Status: "in_review", ResolutionEvidence: []string{"url1"}}, officer)
	assert.True(t, IsKind(err, KindConflict))

	updated, err := f.svc.DepartmentUpdate(ctx, issue.ID,
		DepartmentUpdateInput{Status: "completed", ResolutionEvidence: []string{"url1"}}, officer)
	require.NoError(t, err)
	assert.Equal(t, []string{"url1"}, updated.ResolutionEvidence)

	// Comment-only with evidence is also rejected, even on a completed
	// issue: evidence needs a fresh completed transition.
	_, err = f.svc.DepartmentUpdate(ctx, issue.ID,
		DepartmentUpdateInput{Comment: "photos attached", ResolutionEvidence: []string{"url2"}}, officer)
	assert.True(t, IsKind(err, KindConflict))

	// A fresh completed transition accepts more evidence.
	updated, err = f.svc.DepartmentUpdate(ctx, issue.ID,
		DepartmentUpdateInput{Status: "completed", ResolutionEvidence: []string{"url2"}}, officer)
	require.NoError(t, err)
	assert.Equal(t, []string{"url1", "url2"}, updated.ResolutionEvidence)
}

func TestReopenFlow(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()
	dept := f.seedDepartment(t, "Roads")

	issue := f.file(t, validInput())
	f.forward(t, issue.ID, dept)
	f.complete(t, issue.ID, dept)

	updated, err := f.svc.Reopen(ctx, issue.ID, "still broken", f.citizen)
	require.NoError(t, err)

	assert.Equal(t, models.StatusReopened, updated.Status)
	require.NotEmpty(t, updated.DepartmentUpdates)
	last := updated.DepartmentUpdates[len(updated.DepartmentUpdates)-1]
	assert.Equal(t, models.StatusReopened, last.Status)
	assert.Contains(t, last.Text, "still broken")
	require.NotNil(t, last.Department)
	assert.Equal(t, dept.ID, *last.Department)
}

func TestReopenRejections(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()
	dept := f.seedDepartment(t, "Roads")

	issue := f.file(t, validInput())

	// Empty comment is rejected regardless of status.
	_, err := f.svc.Reopen(ctx, issue.ID, "  ", f.citizen)
	assert.True(t, IsKind(err, KindValidation))

	// Not completed yet.
	_, err = f.svc.Reopen(ctx, issue.ID, "still broken", f.citizen)
	assert.True(t, IsKind(err, KindConflict))

	f.forward(t, issue.ID, dept)
	f.complete(t, issue.ID, dept)

	// Officers cannot reopen.
	_, err = f.svc.Reopen(ctx, issue.ID, "not fixed", departmentPrincipal(dept.ID))
	assert.True(t, IsKind(err, KindPermission))

	// A different citizen cannot reopen.
	_, err = f.svc.Reopen(ctx, issue.ID, "not fixed", citizenPrincipal(primitive.NewObjectID()))
	assert.True(t, IsKind(err, KindPermission))

	// Admin can.
	updated, err := f.svc.Reopen(ctx, issue.ID, "verified still broken", f.admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReopened, updated.Status)

	// Reopening a reopened issue is a conflict.
	_, err = f.svc.Reopen(ctx, issue.ID, "again", f.admin)
	assert.True(t, IsKind(err, KindConflict))
}

func TestRate(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()
	dept := f.seedDepartment(t, "Roads")

	issue := f.file(t, validInput())

	// All ratings rejected while not completed.
	for rating := 1; rating <= 5; rating++ {
		_, err := f.svc.Rate(ctx, issue.ID, rating, "", f.citizen)
		assert.True(t, IsKind(err, KindConflict), "rating %d", rating)
	}

	f.forward(t, issue.ID, dept)
	f.complete(t, issue.ID, dept)

	_, err := f.svc.Rate(ctx, issue.ID, 0, "", f.citizen)
	assert.True(t, IsKind(err, KindValidation))
	_, err = f.svc.Rate(ctx, issue.ID, 6, "", f.citizen)
	assert.True(t, IsKind(err, KindValidation))

	_, err = f.svc.Rate(ctx, issue.ID, 4, "quick fix", departmentPrincipal(dept.ID))
	assert.True(t, IsKind(err, KindPermission), "officer cannot rate")

	updated, err := f.svc.Rate(ctx, issue.ID, 4, "quick fix", f.citizen)
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 4, *updated.Rating)
	assert.Equal(t, "quick fix", updated.Review)
	require.NotNil(t, updated.ReviewedAt)
	assert.Equal(t, models.StatusCompleted, updated.Status, "rating leaves status unchanged")

	// A completion cycle is rated at most once.
	_, err = f.svc.Rate(ctx, issue.ID, 5, "", f.citizen)
	assert.True(t, IsKind(err, KindConflict))
}

func TestAdminRatesForeignIssue(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()
	dept := f.seedDepartment(t, "Roads")

	issue := f.file(t, validInput())
	f.forward(t, issue.ID, dept)
	f.complete(t, issue.ID, dept)

	updated, err := f.svc.Rate(ctx, issue.ID, 5, "", f.admin)
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 5, *updated.Rating)
}

func TestReopenClearsRating(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()
	dept := f.seedDepartment(t, "Roads")

	issue := f.file(t, validInput())
	f.forward(t, issue.ID, dept)
	f.complete(t, issue.ID, dept)

	_, err := f.svc.Rate(ctx, issue.ID, 2, "half done", f.citizen)
	require.NoError(t, err)

	reopened, err := f.svc.Reopen(ctx, issue.ID, "finish the job", f.citizen)
	require.NoError(t, err)
	assert.Nil(t, reopened.Rating)
	assert.Empty(t, reopened.Review)
	assert.Nil(t, reopened.ReviewedAt)

	// After re-completion, the issue can be rated afresh.
	f.complete(t, issue.ID, dept)
	rated, err := f.svc.Rate(ctx, issue.ID, 5, "all good now", f.citizen)
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 5, *rated.Rating)
}

func TestAdminStatusChangeOnReopenedIssue(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()
	dept := f.seedDepartment(t, "Roads")

	issue := f.file(t, validInput())
	f.forward(t, issue.ID, dept)
	f.complete(t, issue.ID, dept)
	_, err := f.svc.Reopen(ctx, issue.ID, "still broken", f.citizen)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, issue.ID, UpdateStatusInput{Status: "completed"}, f.admin)
	assert.True(t, IsKind(err, KindConflict), "admin cannot directly move a reopened issue")

	// Re-forwarding the reopened issue re-triages it.
	updated := f.forward(t, issue.ID, dept)
	assert.Equal(t, models.StatusPending, updated.Status)
}

func TestDelete(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()
	issue := f.file(t, validInput())

	err := f.svc.Delete(ctx, issue.ID, f.citizen)
	assert.True(t, IsKind(err, KindPermission))

	require.NoError(t, f.svc.Delete(ctx, issue.ID, f.admin))

	err = f.svc.Delete(ctx, issue.ID, f.admin)
	assert.True(t, IsKind(err, KindNotFound))

	_, err = f.svc.ListForRole(ctx, f.citizen)
	require.NoError(t, err)
}

func TestStatusAndTimelineStayConsistent(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()
	dept := f.seedDepartment(t, "Roads")
	officer := departmentPrincipal(dept.ID)

	issue := f.file(t, validInput())
	f.forward(t, issue.ID, dept)

	updated, err := f.svc.DepartmentUpdate(ctx, issue.ID,
		DepartmentUpdateInput{Status: "completed", Comment: "patched", ResolutionEvidence: []string{"url1"}}, officer)
	require.NoError(t, err)

	// Status change and timeline entry land together.
	assert.Equal(t, models.StatusCompleted, updated.Status)
	require.Len(t, updated.DepartmentUpdates, 1)
	assert.Equal(t, models.StatusCompleted, updated.DepartmentUpdates[0].Status)

	stored, err := f.issues.FindByID(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Status, stored.Status)
	assert.Len(t, stored.DepartmentUpdates, 1)
}

func TestConcurrentDepartmentUpdates(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()
	dept := f.seedDepartment(t, "Roads")
	officer := departmentPrincipal(dept.ID)

	issue := f.file(t, validInput())
	f.forward(t, issue.ID, dept)

	const writers = 8
	done := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func() {
			_, err := f.svc.DepartmentUpdate(ctx, issue.ID, DepartmentUpdateInput{Comment: "note"}, officer)
			done <- err
		}()
	}
	for i := 0; i < writers; i++ {
		require.NoError(t, <-done)
	}

	stored, err := f.issues.FindByID(ctx, issue.ID)
	require.NoError(t, err)
	assert.Len(t, stored.DepartmentUpdates, writers, "every append survives the race")
}
