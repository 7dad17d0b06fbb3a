package template

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when no template exists for the given id.
	ErrNotFound = errors.New("template not found")

	// ErrProtected is returned when a delete targets a built-in default.
	ErrProtected = errors.New("default templates cannot be deleted")
)

// ValidationError carries per-field messages from template validation.
// Fields are keyed by their JSON path, e.g. "config.columns[2].key".
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "template validation failed: " + strings.Join(parts, "; ")
}
