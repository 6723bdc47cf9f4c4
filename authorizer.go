package auth

import (
	goerrors "github.com/goliatone/go-errors"
)

// Action identifies an operation subject to an authorization decision
type Action string

const (
	// ActionRegister is self service account creation
	ActionRegister Action = "register"
	// ActionAdminCreate is account creation by an administrator
	ActionAdminCreate Action = "admin_create"
	// ActionAuthenticate is credential verification at login time
	ActionAuthenticate Action = "authenticate"
	// ActionAccessResource is protected resource access with a valid token
	ActionAccessResource Action = "access_resource"
)

// Decision captures one row of the authorization table: the requested
// action, the role and status it was evaluated against, and the outcome.
// Decisions are computed per request and never stored.
type Decision struct {
	Action Action
	Role   Role
	Status AccountStatus
	// MinRole is the resource requirement for ActionAccessResource rows
	MinRole Role
}

// CanRegister decides whether a role may self register. Administrators are
// never self registerable; attempting it is a client error.
func CanRegister(role Role) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}
	if role == RoleAdmin {
		return ErrRoleNotRegisterable
	}
	return nil
}

// CanAdminCreate decides whether a role may be provisioned by an
// administrator. No endpoint creates a second administrator; those are
// provisioned out of band. The acting caller's own privilege is checked
// upstream against the endpoint, not here.
func CanAdminCreate(role Role) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}
	if role == RoleAdmin {
		return ErrRoleNotAssignable
	}
	return nil
}

// CanAuthenticate decides whether an account in the given status may log
// in. Inactive and deleted reject with the same external shape; the text
// code preserves the internal reason for audit sinks.
func CanAuthenticate(status AccountStatus) error {
	return statusAuthError(status)
}

// CanAccessResource decides whether a role/status pair satisfies a
// resource's minimum role requirement.
func CanAccessResource(role Role, status AccountStatus, minRole Role) error {
	if err := statusAuthError(status); err != nil {
		return err
	}
	if !role.IsAtLeast(minRole) {
		return ErrInsufficientRole
	}
	return nil
}

// Authorize evaluates a Decision row. It never touches storage; the caller
// supplies role and status from an already loaded account or claim set.
func Authorize(d Decision) error {
	switch d.Action {
	case ActionRegister:
		return CanRegister(d.Role)
	case ActionAdminCreate:
		return CanAdminCreate(d.Role)
	case ActionAuthenticate:
		return CanAuthenticate(d.Status)
	case ActionAccessResource:
		return CanAccessResource(d.Role, d.Status, d.MinRole)
	default:
		return goerrors.New("unknown action", goerrors.CategoryValidation).
			WithTextCode("INVALID_ACTION").
			WithCode(goerrors.CodeBadRequest)
	}
}
