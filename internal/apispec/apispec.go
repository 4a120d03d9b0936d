// Package apispec embeds the OpenAPI document of the attribute API and
// validates incoming requests against it.
package apispec

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	goerrors "github.com/goliatone/go-errors"
)

//go:embed openapi.yaml
var document []byte

// Document returns a copy of the embedded OpenAPI YAML.
func Document() []byte {
	return append([]byte(nil), document...)
}

// Spec is the loaded and validated API document with its request router.
type Spec struct {
	doc    *openapi3.T
	router routers.Router
}

// Load parses the embedded document.
func Load(ctx context.Context) (*Spec, error) {
	return LoadData(ctx, document)
}

// LoadData parses and validates raw as an OpenAPI 3 document.
func LoadData(ctx context.Context, raw []byte) (*Spec, error) {
	if len(raw) == 0 {
		return nil, errors.New("apispec: document is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("apispec: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("apispec: invalid document: %w", err)
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("apispec: build router: %w", err)
	}
	return &Spec{doc: doc, router: router}, nil
}

// Operation is one documented endpoint.
type Operation struct {
	ID     string
	Method string
	Path   string
}

// Operations lists every documented operation ordered by path and method.
func (s *Spec) Operations() []Operation {
	var out []Operation
	if s == nil || s.doc == nil || s.doc.Paths == nil {
		return out
	}
	for path, item := range s.doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			out = append(out, Operation{ID: op.OperationID, Method: method, Path: path})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			return out[i].Method < out[j].Method
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// ValidateRequest checks r against the documented operation. Requests to
// undocumented paths return ErrUndocumented. The request body stays readable.
func (s *Spec) ValidateRequest(r *http.Request) error {
	route, params, err := s.router.FindRoute(r)
	if err != nil {
		if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
			return ErrUndocumented
		}
		return err
	}
	return openapi3filter.ValidateRequest(r.Context(), &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: params,
		Route:      route,
		Options: &openapi3filter.Options{
			MultiError:         true,
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	})
}

var ErrUndocumented = errors.New("apispec: undocumented route")

// FieldErrors flattens a validation failure into per-field errors. Body
// fields are named by their JSON pointer joined with dots; parameters by
// name.
func FieldErrors(err error) []goerrors.FieldError {
	var out []goerrors.FieldError
	collectFieldErrors(err, "body", &out)
	return out
}

func collectFieldErrors(err error, field string, out *[]goerrors.FieldError) {
	if err == nil {
		return
	}
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, inner := range multi {
			collectFieldErrors(inner, field, out)
		}
		return
	}
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			field = reqErr.Parameter.Name
		}
		if reqErr.Err != nil {
			collectFieldErrors(reqErr.Err, field, out)
			return
		}
		*out = append(*out, goerrors.FieldError{Field: field, Message: reqErr.Reason})
		return
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			field = strings.Join(pointer, ".")
		}
		*out = append(*out, goerrors.FieldError{Field: field, Message: schemaErr.Reason})
		return
	}
	*out = append(*out, goerrors.FieldError{Field: field, Message: err.Error()})
}

// ErrorHandler writes the response for a request that failed validation.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Middleware validates documented requests before next runs. Undocumented
// requests pass through untouched.
func (s *Spec) Middleware(onError ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := s.ValidateRequest(r)
			if err == nil || errors.Is(err, ErrUndocumented) {
				next.ServeHTTP(w, r)
				return
			}
			if onError == nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			onError(w, r, err)
		})
	}
}
