package application

import (
	"github.com/example/travel-planner/internal/persistence"
)

// permissionRanks defines the total order READ < CHAT < EDIT < ALL. All
// permission comparisons in the system go through PermissionAtLeast so the
// ordering contract stays in one place.
var permissionRanks = map[persistence.Permission]int{
	persistence.PermissionRead: 0,
	persistence.PermissionChat: 1,
	persistence.PermissionEdit: 2,
	persistence.PermissionAll:  3,
}

// ValidPermission reports whether the value is one of the four known levels.
func ValidPermission(p persistence.Permission) bool {
	_, ok := permissionRanks[p]
	return ok
}

// PermissionAtLeast reports whether p grants at least the minimum level.
// Unknown values never satisfy any minimum.
func PermissionAtLeast(p, minimum persistence.Permission) bool {
	rank, ok := permissionRanks[p]
	if !ok {
		return false
	}
	minRank, ok := permissionRanks[minimum]
	if !ok {
		return false
	}
	return rank >= minRank
}

// requirePermission fails with a Forbidden error carrying the caller's code
// when the attendee's permission is below the minimum. The AUTHOR role always
// satisfies any minimum regardless of the stored permission value.
func requirePermission(attendee persistence.Attendee, minimum persistence.Permission, code, message string) error {
	if attendee.Role == persistence.RoleAuthor {
		return nil
	}
	if PermissionAtLeast(attendee.Permission, minimum) {
		return nil
	}
	return forbidden(code, message)
}
