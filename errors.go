package auth

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Error taxonomy for the credential and session core. Every failure that
// crosses the service boundary is one of these categories; storage and
// cryptographic errors are wrapped before they can leak.

// ErrRoleNotRegisterable is returned when a role cannot self-register.
var ErrRoleNotRegisterable = goerrors.New("role is not eligible for self registration", goerrors.CategoryValidation).
	WithTextCode("ROLE_NOT_REGISTERABLE").
	WithCode(goerrors.CodeBadRequest)

// ErrRoleNotAssignable is returned when admin provisioning targets a role
// that cannot be created through the API (a second administrator).
var ErrRoleNotAssignable = goerrors.New("role cannot be assigned through this operation", goerrors.CategoryValidation).
	WithTextCode("ROLE_NOT_ASSIGNABLE").
	WithCode(goerrors.CodeBadRequest)

// ErrInvalidRole is returned for roles outside the closed set.
var ErrInvalidRole = goerrors.New("unknown or invalid role", goerrors.CategoryValidation).
	WithTextCode("INVALID_ROLE").
	WithCode(goerrors.CodeBadRequest)

// ErrInvalidStatus is returned for statuses outside the closed set.
var ErrInvalidStatus = goerrors.New("unknown or invalid account status", goerrors.CategoryValidation).
	WithTextCode("INVALID_STATUS").
	WithCode(goerrors.CodeBadRequest)

// ErrEmailTaken is the conflict we surface for duplicate registrations,
// whether caught by the existence pre check or by the unique index.
var ErrEmailTaken = goerrors.New("email is already registered", goerrors.CategoryConflict).
	WithTextCode("EMAIL_TAKEN").
	WithCode(goerrors.CodeConflict)

// ErrInvalidCredentials is the uniform unauthorized outcome. Unknown email,
// wrong password, and inactive or deleted accounts all return this exact
// value, so callers cannot tell the causes apart. The internal reason
// reaches audit sinks through event metadata, never through the error.
var ErrInvalidCredentials = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(goerrors.CodeUnauthorized)

// ErrAccountNotFound is returned on identifier lookups made after token
// verification already succeeded; distinct from the credentials error.
var ErrAccountNotFound = goerrors.New("account not found", goerrors.CategoryNotFound).
	WithTextCode("ACCOUNT_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)

// ErrInsufficientRole is returned when an authenticated caller's role does
// not satisfy a resource's minimum role requirement.
var ErrInsufficientRole = goerrors.New("insufficient role for this resource", goerrors.CategoryAuth).
	WithTextCode("INSUFFICIENT_ROLE").
	WithCode(goerrors.CodeForbidden)

// ErrTokenExpired is the error for expired session tokens.
var ErrTokenExpired = goerrors.New("session token is expired", goerrors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed covers signature mismatches, issuer mismatches, and
// structural decode failures. Verification fails closed onto this error.
var ErrTokenMalformed = goerrors.New("session token is invalid", goerrors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(goerrors.CodeUnauthorized)

// ErrMissingCredentials is returned when no bearer credential is presented.
var ErrMissingCredentials = goerrors.New("missing authentication credentials", goerrors.CategoryAuth).
	WithTextCode("MISSING_CREDENTIALS").
	WithCode(goerrors.CodeUnauthorized)

// ErrNoEmptyString rejects empty secrets before hashing.
var ErrNoEmptyString = goerrors.New("value should not be an empty string", goerrors.CategoryBadInput).
	WithTextCode("EMPTY_STRING")

// ErrMismatchedHashAndPassword is the internal mismatch signal from the
// credential verifier; the service maps it to ErrInvalidCredentials.
var ErrMismatchedHashAndPassword = goerrors.New("credentials do not match", goerrors.CategoryAuth).
	WithTextCode("CREDENTIAL_MISMATCH").
	WithCode(goerrors.CodeUnauthorized)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsUniqueViolation reports whether a storage error is a uniqueness
// constraint failure. Covers sqlite and postgres wording so the service can
// translate races on the email index into the conflict error.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: UNIQUE") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
