package models

import "fmt"

// ValidationError reports a record rejected before persisting: a missing
// required field, a malformed value, or a duplicate unique field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an id lookup miss on a collection.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// SerializationError reports corrupt-but-present store data or a value
// that could not be marshalled. Absent keys are never reported this way.
type SerializationError struct {
	Key string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization error on %q: %v", e.Key, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// AuthError reports bad credentials or an expired/exhausted OTP.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

// PermissionError reports a role-gated page accessed without privilege.
type PermissionError struct {
	Page string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("access denied to %s", e.Page)
}
