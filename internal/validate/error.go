package validate

import (
	"sort"
	"strings"
)

// FieldsError maps field paths to human-readable validation messages.
type FieldsError struct {
	Fields map[string]string
}

func NewFieldsError(fields map[string]string) *FieldsError {
	return &FieldsError{
		Fields: fields,
	}
}

func (f *FieldsError) Error() string {
	keys := make([]string, 0, len(f.Fields))
	for k := range f.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = k + ": " + f.Fields[k]
	}
	return "invalid fields: " + strings.Join(msgs, "; ")
}
