package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Student directory errors
var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrStudentAlreadyExists = errors.New("student with this auth id or student id already exists")
	ErrInvalidStudentID     = errors.New("invalid student id format")
	ErrInvalidRole          = errors.New("role must be student or teacher")
)

// Batch registry errors
var (
	ErrBatchNotFound     = errors.New("batch not found")
	ErrInvalidRoster     = errors.New("invalid student id in roster")
	ErrEmptyRoster       = errors.New("batch requires at least one student")
	ErrNotATeacher       = errors.New("caller is not a teacher")
	ErrNoBatchForTeacher = errors.New("no batches found for teacher")
)

// Eligibility errors
var (
	ErrSubjectNotFound     = errors.New("subject not found")
	ErrNoPackageForSubject = errors.New("no package includes this subject")
	ErrNoEligibleStudents  = errors.New("no eligible students")
)

// Catalog errors
var (
	ErrClassNotFound = errors.New("class not found")
	ErrUserNotFound  = errors.New("user not found")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewValidationError creates a validation error carrying a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewConflictError creates a conflict error carrying a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewNotFoundError creates a not-found error carrying a message
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewForbiddenError creates a permission-denied error carrying a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a bad-request error carrying a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
