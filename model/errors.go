package model

import "fmt"

// ErrorKind is the stable machine-readable classification of a domain
// error. Both API surfaces map kinds to their own error envelope so a
// failure looks the same regardless of the surface it came through.
type ErrorKind string

const (
	ErrNotFound          ErrorKind = "NOT_FOUND"
	ErrDuplicateIdentity ErrorKind = "DUPLICATE_IDENTITY"
	ErrInvalidCredentials ErrorKind = "INVALID_CREDENTIALS"
	ErrInvalidToken      ErrorKind = "INVALID_TOKEN"
	ErrExpiredToken      ErrorKind = "EXPIRED_TOKEN"
	ErrAlreadyFollowing  ErrorKind = "ALREADY_FOLLOWING"
	ErrNotFollowing      ErrorKind = "NOT_FOLLOWING"
	ErrAlreadyLiked      ErrorKind = "ALREADY_LIKED"
	ErrNotLiked          ErrorKind = "NOT_LIKED"
	ErrAlreadyVoted      ErrorKind = "ALREADY_VOTED"
	ErrNotVoted          ErrorKind = "NOT_VOTED"
	ErrVisibilityDenied  ErrorKind = "VISIBILITY_DENIED"
	ErrValidation        ErrorKind = "VALIDATION_ERROR"
	ErrDelivery          ErrorKind = "DELIVERY_ERROR"
	ErrInternal          ErrorKind = "INTERNAL_ERROR"
)

// AppError is a domain error with a stable kind and a human readable
// message. Wrapped causes are kept for logging, never serialized.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// KindOf extracts the error kind, defaulting to ErrInternal for
// anything that's not an AppError.
func KindOf(err error) ErrorKind {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Kind
	}
	return ErrInternal
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Kind:    ErrNotFound,
		Message: fmt.Sprintf("%s with id %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: ErrValidation, Message: message}
}

func NewError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func NewInternalError(err error) *AppError {
	return &AppError{Kind: ErrInternal, Message: "internal error", Err: err}
}
