package server

import (
	"encoding/json"
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-formkit/internal/apispec"
)

// envelope is the body of every mutation API response.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    any             `json:"data,omitempty"`
	Error   *goerrors.Error `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(body)
}

// toError maps err onto a go-errors value with an HTTP code.
func toError(err error) *goerrors.Error {
	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	if mapped.Code == 0 {
		mapped.Code = statusFor(mapped.Category)
	}
	if mapped.TextCode == "" {
		mapped.TextCode = goerrors.HTTPStatusToTextCode(mapped.Code)
	}
	return mapped
}

func statusFor(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports err with its message. Internal errors hide their
// message behind the generic one.
func writeError(w http.ResponseWriter, err error) {
	public := publicError(toError(err))
	writeJSON(w, public.Code, envelope{
		Success: false,
		Message: public.Message,
		Error:   public,
	})
}

// publicError copies mapped without its source and stack and, for internal
// errors, without its message.
func publicError(mapped *goerrors.Error) *goerrors.Error {
	public := *mapped
	public.Source = nil
	public.StackTrace = nil
	public.Location = nil
	if public.Code >= http.StatusInternalServerError {
		public.Message = http.StatusText(public.Code)
	}
	return &public
}

func invalidRequest(err error) error {
	return goerrors.NewValidation("request does not match the API contract", apispec.FieldErrors(err)...).
		WithCode(http.StatusBadRequest).
		WithTextCode("REQUEST_INVALID")
}

func badInput(message, textCode string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(textCode)
}

func notFound(textCode, message string) error {
	return goerrors.New(message, goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(textCode)
}
