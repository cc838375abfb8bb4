package serviceerrors

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindConflict
	KindUnprocessableEntity
	KindInvalidRequest
	KindValidation
	KindStorageUnavailable
	KindUnauthorized
)

func IsOfKind(err error, kind ErrorKind) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind == kind
	}
	return false
}

// FieldError reports one failed validation rule.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type ServiceError struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func NewUnprocessableEntityError(message string) *ServiceError {
	return &ServiceError{Kind: KindUnprocessableEntity, Message: message}
}

func NewInvalidRequestError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidRequest, Message: message}
}

func NewValidationError(fields []FieldError) *ServiceError {
	reasons := make([]string, len(fields))
	for i, f := range fields {
		reasons[i] = fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return &ServiceError{
		Kind:    KindValidation,
		Message: "validation failed: " + strings.Join(reasons, "; "),
		Fields:  fields,
	}
}

func NewStorageUnavailableError(message string, cause error) *ServiceError {
	if cause != nil {
		message = fmt.Sprintf("%s: %v", message, cause)
	}
	return &ServiceError{Kind: KindStorageUnavailable, Message: message}
}

func NewUnauthorizedError(message string) *ServiceError {
	return &ServiceError{Kind: KindUnauthorized, Message: message}
}
