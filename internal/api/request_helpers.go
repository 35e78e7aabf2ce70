package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%s is required", paramName)
	}
	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s has invalid format", paramName)
	}
	return id, nil
}

// queryInt parses an integer query parameter, returning def when absent
// or unparseable, clamped to be non-negative.
func queryInt(values url.Values, name string, def int) int {
	raw := values.Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// queryTime parses a query parameter as RFC 3339 or as a bare date.
// Returns the zero time when absent or unparseable.
func queryTime(values url.Values, name string) time.Time {
	raw := values.Get(name)
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.Parse(dateOnlyFormat, raw); err == nil {
		return t
	}
	return time.Time{}
}

// parseOrdering splits an ordering value like "-created_at" into the
// bare field name and a descending flag.
func parseOrdering(raw string) (field string, descending bool) {
	if raw == "" {
		return "", false
	}
	if raw[0] == '-' {
		return raw[1:], true
	}
	return raw, false
}

// parseYears parses a years-of-experience form value.
func parseYears(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}

// validationErrorFields converts a validator error into the per-field
// response map, keyed by the snake_case form of the struct field.
func validationErrorFields(err error) map[string][]string {
	fields := map[string][]string{}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		fields["non_field_errors"] = []string{"invalid request"}
		return fields
	}
	for _, fe := range validationErrs {
		name := snakeCase(fe.Field())
		fields[name] = append(fields[name], validationTagMessage(fe))
	}
	return fields
}

func validationTagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email format"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return "invalid value"
	}
}

// snakeCase converts an exported Go field name like AdminEmail to its
// wire form admin_email.
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
