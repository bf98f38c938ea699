package rbac

const (
	RoleAdmin  = "admin"
	RoleGrader = "grader"
	RoleViewer = "viewer"
)

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	RoleViewer: {
		"exam:view",
		"grade:preview",
		"grade:view",
	},
	RoleGrader: {
		"exam:view",
		"exam:create",
		"grade:*",
	},
	RoleAdmin: {
		"*", // everything
	},
}

// KnownRole reports whether role has an entry in RolePermissions.
func KnownRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}
