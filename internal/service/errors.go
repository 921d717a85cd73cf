package service

import (
	"database/sql"
	"errors"

	"reviewapi/internal/repository"
)

// Error kinds returned by every service. Handlers map them to HTTP statuses;
// the message of the concrete error is safe to show to clients.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrValidation       = errors.New("validation failed")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrTooLarge         = errors.New("payload too large")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func notFound(what string) error    { return &kindError{kind: ErrNotFound, msg: what + " not found"} }
func conflict(msg string) error     { return &kindError{kind: ErrConflict, msg: msg} }
func unauthorized(msg string) error { return &kindError{kind: ErrUnauthorized, msg: msg} }
func forbidden(msg string) error    { return &kindError{kind: ErrForbidden, msg: msg} }
func invalid(msg string) error      { return &kindError{kind: ErrValidation, msg: msg} }

// translate maps repository errors onto service kinds. Unknown errors pass through.
func translate(err error, what, duplicateMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return notFound(what)
	case errors.Is(err, repository.ErrDuplicate):
		return conflict(duplicateMsg)
	case errors.Is(err, repository.ErrReferenced):
		return notFound("referenced record")
	default:
		return err
	}
}

// referenced names the missing parent of a foreign key violation, e.g. "retailer not found".
func referenced(err error, parent string) error {
	if errors.Is(err, repository.ErrReferenced) {
		return notFound(parent)
	}
	return err
}
