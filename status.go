package auth

// AccountStatus is the lifecycle status of an account
type AccountStatus string

const (
	// StatusActive accounts may authenticate and access resources
	StatusActive AccountStatus = "active"
	// StatusInactive accounts are blocked from authentication but retained
	StatusInactive AccountStatus = "inactive"
	// StatusDeleted accounts are tombstoned; the row is never removed
	StatusDeleted AccountStatus = "deleted"
)

// IsValid checks if the status is one of the predefined valid statuses
func (s AccountStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	default:
		return false
	}
}

// GetAllStatuses returns all predefined statuses
func GetAllStatuses() []AccountStatus {
	return []AccountStatus{
		StatusActive,
		StatusInactive,
		StatusDeleted,
	}
}

// ParseStatus safely parses a string into an AccountStatus type
func ParseStatus(statusStr string) (AccountStatus, bool) {
	status := AccountStatus(statusStr)
	return status, status.IsValid()
}

// statusAuthError maps a non active status to the uniform credentials error.
// Every non active status, unknown ones included, yields the identical error
// value; callers learn nothing about why authentication was refused. The
// status itself reaches audit sinks through event metadata.
func statusAuthError(status AccountStatus) error {
	if status == StatusActive {
		return nil
	}
	return ErrInvalidCredentials
}
