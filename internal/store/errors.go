package store

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrDuplicateOption = errors.New("store: duplicate option")
	ErrEmptySlug       = errors.New("store: option name yields an empty slug")
	ErrUnknownDriver   = errors.New("store: unknown storage driver")
	ErrMissingDatabase = errors.New("store: bun repository requires a database")
)

func notFound(textCode, format string, args ...any) error {
	return goerrors.New(fmt.Sprintf(format, args...), goerrors.CategoryNotFound).
		WithCode(goerrors.CodeNotFound).
		WithTextCode(textCode)
}

func invalid(message string, fields ...goerrors.FieldError) error {
	return goerrors.NewValidation(message, fields...).
		WithCode(goerrors.CodeBadRequest).
		WithTextCode("ATTRIBUTE_VALUE_INVALID")
}

func internalError(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, message).
		WithCode(goerrors.CodeInternal)
}
