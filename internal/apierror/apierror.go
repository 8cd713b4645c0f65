// Package apierror defines the error taxonomy shared by all workflow
// services and the HTTP envelope handlers return. All errors surfaced to
// clients go through this package so internal details (stack traces, DB
// errors) are never leaked in production responses.
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// Kind classifies an error for both HTTP mapping and caller recovery.
type Kind string

const (
	KindValidation        Kind = "validation_error"
	KindPermission        Kind = "permission_error"
	KindNotFound          Kind = "not_found"
	KindStateConflict     Kind = "state_conflict"
	KindInsufficientStock Kind = "insufficient_stock"
	KindInternal          Kind = "internal_error"
)

// Error is the canonical domain error. Message is always safe for
// clients; Err carries the internal cause and is only exposed outside
// production.
type Error struct {
	Kind    Kind              `json:"code"`
	Message string            `json:"detail"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the error kind to a response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindPermission:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindStateConflict:
		return http.StatusConflict
	case KindInsufficientStock:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// As extracts an *Error from any error chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "invalid request payload", Fields: fields}
}

func Forbidden(operation string) *Error {
	return &Error{Kind: KindPermission, Message: fmt.Sprintf("role not allowed to perform %s", operation)}
}

func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", entity)}
}

func StateConflict(msg string) *Error {
	return &Error{Kind: KindStateConflict, Message: msg}
}

// InsufficientStock names the offending product and carries available vs
// requested quantities for caller display.
func InsufficientStock(product string, available, requested decimal.Decimal) *Error {
	return &Error{
		Kind:    KindInsufficientStock,
		Message: fmt.Sprintf("insufficient stock for product %s: %s available, %s requested", product, available, requested),
		Fields: map[string]string{
			"product_id": product,
			"available":  available.String(),
			"requested":  requested.String(),
		},
	}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}
