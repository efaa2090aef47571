package auth

import "context"

const (
	RoleEmployee    = "employee"
	RoleManager     = "manager"
	RoleHR          = "hr"
	RoleSystemAdmin = "system_admin"
)

const (
	PermPerformanceRead    = "performance.read"
	PermPerformanceWrite   = "performance.write"
	PermPerformanceReview  = "performance.review"
	PermPerformanceApprove = "performance.approve"
	PermPerformanceAdmin   = "performance.admin"
	PermAuditRead          = "audit.read"
)

var DefaultPermissions = []string{
	PermPerformanceRead,
	PermPerformanceWrite,
	PermPerformanceReview,
	PermPerformanceApprove,
	PermPerformanceAdmin,
	PermAuditRead,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermPerformanceRead,
	},
	RoleManager: {
		PermPerformanceRead,
		PermPerformanceWrite,
		PermPerformanceReview,
	},
	RoleHR: {
		PermPerformanceRead,
		PermPerformanceWrite,
		PermPerformanceReview,
		PermPerformanceApprove,
		PermPerformanceAdmin,
		PermAuditRead,
	},
	RoleSystemAdmin: {
		PermPerformanceRead,
		PermPerformanceAdmin,
		PermAuditRead,
	},
}

// RoleTable answers permission checks from RolePermissions.
type RoleTable struct{}

func (RoleTable) HasPermission(_ context.Context, role, permission string) (bool, error) {
	for _, perm := range RolePermissions[role] {
		if perm == permission {
			return true, nil
		}
	}
	return false, nil
}

func ValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}
