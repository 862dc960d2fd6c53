// internal/app/system/httpjson/httpjson.go
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/shuzaifak/crowd/internal/app/banking"
	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/app/system/limits"
)

// Write sends v as a JSON response with the given status. Encoding errors are
// ignored: by the time Encode runs the status line is already on the wire.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Decode parses the JSON request body into dst. Reads stop at
// limits.MaxJSONBody, so an oversized body surfaces as a parse error.
func Decode(r *http.Request, dst any) error {
	return json.NewDecoder(io.LimitReader(r.Body, limits.MaxJSONBody)).Decode(dst)
}

// ErrorResponse is the envelope every error response uses. Fields is only set
// for validation failures, naming the offending field(s).
type ErrorResponse struct {
	Error  string   `json:"error"`
	Code   string   `json:"code"`
	Fields []string `json:"fields,omitempty"`
}

// Error writes a JSON error envelope with the given status and code.
func Error(w http.ResponseWriter, status int, code, message string) {
	Write(w, status, ErrorResponse{Error: message, Code: code})
}

// BadRequest reports a malformed request (unparseable body, bad parameter).
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, "BAD_REQUEST", message)
}

// ValidationFailed reports rejected request fields by name.
func ValidationFailed(w http.ResponseWriter, message string, fields []string) {
	Write(w, http.StatusBadRequest, ErrorResponse{
		Error:  message,
		Code:   "VALIDATION_FAILED",
		Fields: fields,
	})
}

// WriteError translates err into an HTTP status and JSON envelope using the
// store and banking error taxonomies:
//
//	ErrNotFound                       404
//	ErrDuplicateEmail                 409
//	ErrAlreadyInstalled/ErrNotInstalled 409
//	ErrInvalidAccount/ErrBelowMinimum/ErrInsufficientBalance 422
//	MissingFieldsError/InvalidFormatError 400
//
// Anything outside the taxonomy (storage failures, codec failures) is logged
// and reported as a bare 500 so internal detail never reaches a response.
func WriteError(w http.ResponseWriter, log *zap.Logger, err error) {
	var missing *banking.MissingFieldsError
	var format *banking.InvalidFormatError

	switch {
	case errors.Is(err, store.ErrNotFound):
		Error(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, store.ErrDuplicateEmail):
		Error(w, http.StatusConflict, "DUPLICATE_EMAIL", err.Error())
	case errors.Is(err, store.ErrAlreadyInstalled):
		Error(w, http.StatusConflict, "ALREADY_INSTALLED", err.Error())
	case errors.Is(err, store.ErrNotInstalled):
		Error(w, http.StatusConflict, "NOT_INSTALLED", err.Error())
	case errors.Is(err, store.ErrInvalidAccount):
		Error(w, http.StatusUnprocessableEntity, "INVALID_ACCOUNT", err.Error())
	case errors.Is(err, store.ErrBelowMinimum):
		Error(w, http.StatusUnprocessableEntity, "BELOW_MINIMUM", err.Error())
	case errors.Is(err, store.ErrInsufficientBalance):
		Error(w, http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE", err.Error())
	case errors.As(err, &missing):
		Write(w, http.StatusBadRequest, ErrorResponse{
			Error:  missing.Error(),
			Code:   "MISSING_FIELDS",
			Fields: missing.Fields,
		})
	case errors.As(err, &format):
		Write(w, http.StatusBadRequest, ErrorResponse{
			Error:  format.Error(),
			Code:   "INVALID_FORMAT",
			Fields: []string{format.Field},
		})
	default:
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
		Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
