package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeStorage      ErrorCode = "STORAGE_ERROR"

	// Tenancy specific errors
	CodeDuplicateEmail    ErrorCode = "DUPLICATE_EMAIL"
	CodeTenantHasUsers    ErrorCode = "TENANT_HAS_USERS"
	CodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	CodeLimitExceeded     ErrorCode = "LIMIT_EXCEEDED"
)

// Sentinels for errors.Is checks. Matching is by code only.
var (
	ErrNotFound          = &DomainError{Code: CodeNotFound, Message: "not found"}
	ErrInvalidInput      = &DomainError{Code: CodeInvalidInput, Message: "invalid input"}
	ErrUnauthorized      = &DomainError{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrForbidden         = &DomainError{Code: CodeForbidden, Message: "forbidden"}
	ErrDuplicateEmail    = &DomainError{Code: CodeDuplicateEmail, Message: "email already registered"}
	ErrTenantHasUsers    = &DomainError{Code: CodeTenantHasUsers, Message: "tenant has users"}
	ErrInvalidTransition = &DomainError{Code: CodeInvalidTransition, Message: "invalid status transition"}
	ErrLimitExceeded     = &DomainError{Code: CodeLimitExceeded, Message: "limit exceeded"}
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithContext attaches a key/value pair that is surfaced in API error details.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewStorageError(message string, err error) *DomainError {
	return NewError(CodeStorage, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewDuplicateEmailError(email string) *DomainError {
	return NewError(CodeDuplicateEmail, fmt.Sprintf("User with email %s already exists", email), nil).
		WithContext("email", email)
}

func NewTenantHasUsersError(tenantID string, users int) *DomainError {
	return NewError(CodeTenantHasUsers,
		fmt.Sprintf("Cannot delete tenant with %d existing user(s). Remove all users first.", users), nil).
		WithContext("tenant_id", tenantID)
}

func NewInvalidTransitionError(tenantID string, from TenantStatus) *DomainError {
	return NewError(CodeInvalidTransition,
		fmt.Sprintf("Tenant %s is %s; only pending tenants can be approved or rejected", tenantID, from), nil).
		WithContext("status", string(from))
}

func NewLimitExceededError(what string, limit int) *DomainError {
	return NewError(CodeLimitExceeded, fmt.Sprintf("Tenant limit reached: at most %d %s", limit, what), nil).
		WithContext("limit", limit)
}

func NewTenantNotFoundError(tenantID string) *DomainError {
	return NewNotFoundError(fmt.Sprintf("Tenant not found with ID: %s", tenantID))
}

func NewUserNotFoundError(userID string) *DomainError {
	return NewNotFoundError(fmt.Sprintf("User not found with ID: %s", userID))
}

func NewQuizSetNotFoundError(quizSetID string) *DomainError {
	return NewNotFoundError(fmt.Sprintf("Quiz set not found with ID: %s", quizSetID))
}
