package util

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Errors     []string
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, fieldErrors []string) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Errors: fieldErrors}
}

// NewValidationError reports one or more per-field validation failures.
func NewValidationError(fieldErrors ...string) error {
	return NewDomainError("VALIDATION_FAILED", "validation failed", http.StatusBadRequest, fieldErrors)
}

// NewDuplicate reports a unique-constraint collision on the named field.
func NewDuplicate(field string) error {
	return NewDomainError("DUPLICATE", fmt.Sprintf("%s already in use", field), http.StatusConflict, []string{field})
}

func NewNotFound(resource string) error {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

// NewInvalidCredentials is deliberately uniform for unknown email and wrong
// password to prevent account enumeration.
func NewInvalidCredentials() error {
	return NewDomainError("INVALID_CREDENTIALS", "invalid credentials", http.StatusUnauthorized, nil)
}

// NewInvalidResetToken covers unknown, consumed, and expired reset tokens.
func NewInvalidResetToken() error {
	return NewDomainError("INVALID_OR_EXPIRED_TOKEN", "reset token is invalid or expired", http.StatusBadRequest, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Storage errors are
// classified: missing rows become NOT_FOUND and unique violations become
// DUPLICATE naming the colliding field.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("resource").(*DomainError)
	}
	if field, ok := UniqueViolationField(err); ok {
		return NewDuplicate(field).(*DomainError)
	}
	return NewInternalError(err).(*DomainError)
}

func MapError(err error) error {
	return ToDomainError(err)
}

// UniqueViolationField extracts the offending column from a Postgres
// unique-violation error, relying on the <table>_<column>_key constraint
// naming convention.
func UniqueViolationField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return "", false
	}
	name := strings.TrimSuffix(pgErr.ConstraintName, "_key")
	if idx := strings.LastIndex(name, "_"); idx >= 0 {
		return name[idx+1:], true
	}
	if name == "" {
		return "field", true
	}
	return name, true
}
