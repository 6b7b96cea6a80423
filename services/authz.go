package services

import (
	"civictrack-be/models"
)

// Action is one of the guarded operations on an issue.
type Action string

const (
	ActionCreateIssue      Action = "createIssue"
	ActionViewAsAdmin      Action = "viewAsAdmin"
	ActionViewAsDepartment Action = "viewAsDepartment"
	ActionViewAsCitizen    Action = "viewAsCitizen"
	ActionUpdateStatus     Action = "updateStatus"
	ActionForward          Action = "forward"
	ActionDepartmentUpdate Action = "departmentUpdate"
	ActionReopen           Action = "reopen"
	ActionRate             Action = "rate"
	ActionDelete           Action = "delete"
)

// Allowed is the single authorization decision point. Every mutating
// service operation evaluates it before touching state; a denial never
// leaves a partial mutation behind. It is stateless and safe for
// concurrent use.
//
// The record argument is required for the record-relationship checks
// (ownership, department assignment) and may be nil for actions that are
// purely role-gated (create, the list views).
func Allowed(p *models.Principal, action Action, issue *models.Issue) error {
	switch action {
	case ActionCreateIssue:
		// Unauthenticated system intake is permitted; any authenticated
		// role may file.
		return nil

	case ActionViewAsAdmin, ActionUpdateStatus, ActionForward, ActionDelete:
		if p == nil || p.Role != models.RoleAdmin {
			return permissionErr("admin access only")
		}
		return nil

	case ActionViewAsDepartment:
		if p == nil || p.Role != models.RoleDepartment || p.Department == nil {
			return permissionErr("department user and department assignment required")
		}
		return nil

	case ActionViewAsCitizen:
		if p == nil || p.Role != models.RoleCitizen {
			return permissionErr("citizen access only")
		}
		return nil

	case ActionDepartmentUpdate:
		if p == nil || p.Role != models.RoleDepartment || p.Department == nil {
			return permissionErr("department user and department assignment required")
		}
		if issue == nil || !issue.ForwardedToDept(*p.Department) {
			return permissionErr("issue is not assigned to your department")
		}
		return nil

	case ActionReopen, ActionRate:
		if p == nil {
			return permissionErr("authentication required")
		}
		if p.Role == models.RoleAdmin {
			return nil
		}
		if p.Role == models.RoleCitizen && issue != nil && issue.OwnedBy(p.ID) {
			return nil
		}
		return permissionErr("only the reporting citizen or an admin may do this")

	default:
		return permissionErr("unknown action %q", action)
	}
}
