package services

import (
	"fmt"
	"strings"

	"civictrack-be/models"
)

// BuildSummary produces the human-readable synopsis stored on an issue at
// creation. It is pure: the same input always yields the same string, and
// it is computed exactly once; the stored summary is never regenerated.
//
// Sentence order is fixed; sentences whose source fields are absent are
// skipped entirely.
func BuildSummary(issue *models.Issue) string {
	parts := []string{}

	head := fmt.Sprintf("Citizen reports a %s severity %s at %s", issue.Severity, issue.IssueType, issue.Location)
	if issue.Landmark != "" {
		head += fmt.Sprintf(" (landmark: %s)", issue.Landmark)
	}
	parts = append(parts, head+".")

	if issue.Impact != "" {
		parts = append(parts, fmt.Sprintf("Impact: %s.", issue.Impact))
	}

	if issue.Recurrence != "" {
		parts = append(parts, fmt.Sprintf("Recurrence: %s.", issue.Recurrence))
	}

	if issue.GeoLocation != nil {
		parts = append(parts, "Precise map coordinates captured for field teams.")
	}

	if len(issue.EvidenceUrls) > 0 {
		parts = append(parts, fmt.Sprintf("Citizen attached %d piece(s) of evidence (photos/videos).", len(issue.EvidenceUrls)))
	}

	if issue.ContactName != "" || issue.ContactPhone != "" || issue.ContactEmail != "" {
		name := issue.ContactName
		if name == "" {
			name = "N/A"
		}
		contact := "Contact: " + name
		if issue.ContactPhone != "" {
			contact += ", phone: " + issue.ContactPhone
		}
		if issue.ContactEmail != "" {
			contact += ", email: " + issue.ContactEmail
		}
		parts = append(parts, contact+".")
	}

	return strings.Join(parts, " ")
}
