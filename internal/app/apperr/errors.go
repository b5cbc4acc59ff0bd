package apperr

import (
	"errors"
	"net/http"

	"github.com/lier-bua/gear-catalog-api/internal/domain"
	"github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeStorageWrite       = "STORAGE_WRITE_ERROR"
	CodeStorageCorrupt     = "STORAGE_CORRUPT"
	CodeStorage            = "STORAGE_ERROR"
)

// Error is an application-layer error that can be mapped to an HTTP response.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any

	// Err is the underlying cause, if any. It is never shown to clients.
	Err error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		msg = e.Code
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ClientError reports whether the caller is at fault (4xx) rather than the backend.
func (e *Error) ClientError() bool {
	return e != nil && e.Status >= 400 && e.Status < 500
}

// FromValidation maps a *domain.ValidationError to a 422. Other errors are returned unchanged.
func FromValidation(err error) error {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	return &Error{
		Status:  http.StatusUnprocessableEntity,
		Code:    CodeValidation,
		Message: "invalid " + verr.Entity,
		Details: verr.Details(),
		Err:     err,
	}
}

// FromStoreWrite maps a failed docstore Create.
func FromStoreWrite(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, docstore.ErrUnavailable) {
		return unavailable(err)
	}
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeStorageWrite,
		Message: "failed to store record",
		Err:     err,
	}
}

// FromStoreRead maps a failed docstore Query.
func FromStoreRead(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, docstore.ErrUnavailable) {
		return unavailable(err)
	}
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeStorage,
		Message: "failed to read records",
		Err:     err,
	}
}

// Corrupt reports a stored document that no longer decodes into its entity.
func Corrupt(id string, err error) error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeStorageCorrupt,
		Message: "stored record " + id + " is malformed",
		Err:     err,
	}
}

func unavailable(err error) *Error {
	return &Error{
		Status:  http.StatusServiceUnavailable,
		Code:    CodeStorageUnavailable,
		Message: "storage is unavailable",
		Err:     err,
	}
}
