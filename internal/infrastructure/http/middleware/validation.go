package middleware

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/rezkam/todos/internal/infrastructure/http/response"
)

//go:embed schema/todo_request.json
var todoRequestSchema string

const todoRequestSchemaURL = "todo_request.json"

// FieldError locates a single schema violation in a request body.
type FieldError struct {
	Field string
	Issue string
}

// NewTodoBodyValidator returns middleware that checks create and update
// bodies against the todo request schema.
//
// The schema only constrains JSON types: title and description must be
// strings when present. Missing or empty fields pass and are persisted as
// empty strings. Malformed JSON yields 400 "Invalid JSON"; a type mismatch
// yields 400 "Invalid request body".
func NewTodoBodyValidator() (func(http.Handler) http.Handler, error) {
	schema, err := compileSchema(todoRequestSchemaURL, todoRequestSchema)
	if err != nil {
		return nil, err
	}
	return ValidateJSONBody(schema), nil
}

func compileSchema(url, source string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, strings.NewReader(source)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// ValidateJSONBody validates the request body against schema before the
// handler runs. The body is restored so handlers can decode it again.
func ValidateJSONBody(schema *jsonschema.Schema) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				response.InternalError(w, r, fmt.Errorf("read request body: %w", err))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			var doc any
			if err := json.Unmarshal(body, &doc); err != nil {
				slog.WarnContext(r.Context(), "request body is not valid JSON",
					"method", r.Method,
					"path", r.URL.Path,
					"error", err)
				response.BadRequest(w, r, response.MsgInvalidJSON)
				return
			}

			if err := schema.Validate(doc); err != nil {
				details := schemaErrorFields(err)
				slog.WarnContext(r.Context(), "request validation failed",
					"method", r.Method,
					"path", r.URL.Path,
					"invalid_field_count", len(details),
					"details", details,
					"error", err)
				response.BadRequest(w, r, response.MsgInvalidBody)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// schemaErrorFields flattens a validation error tree into its leaf causes.
func schemaErrorFields(err error) []FieldError {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "body", Issue: err.Error()}}
	}

	var out []FieldError
	collectFieldErrors(ve, &out)
	return out
}

func collectFieldErrors(ve *jsonschema.ValidationError, out *[]FieldError) {
	if len(ve.Causes) == 0 {
		field := strings.TrimPrefix(ve.InstanceLocation, "/")
		if field == "" {
			field = "body"
		}
		*out = append(*out, FieldError{Field: field, Issue: ve.Message})
		return
	}
	for _, cause := range ve.Causes {
		collectFieldErrors(cause, out)
	}
}
