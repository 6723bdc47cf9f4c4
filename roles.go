package auth

// Role is the account's role
type Role string

const (
	// RoleVolunteer signs up for shifts (i.e. view, self-manage)
	RoleVolunteer Role = "volunteer"
	// RoleCoordinator organizes volunteers (i.e. view, edit, schedule)
	RoleCoordinator Role = "coordinator"
	// RoleAdmin administers the platform (i.e. view, edit, provision)
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleVolunteer, RoleCoordinator, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAtLeast checks if this role meets the minimum required level
func (r Role) IsAtLeast(minRole Role) bool {
	roleHierarchy := map[Role]int{
		RoleVolunteer:   0,
		RoleCoordinator: 1,
		RoleAdmin:       2,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []Role {
	return []Role{
		RoleVolunteer,
		RoleCoordinator,
		RoleAdmin,
	}
}

// ParseRole safely parses a string into a Role type
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}
