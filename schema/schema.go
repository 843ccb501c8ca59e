// Package schema validates raw request payloads against an explicit
// field table. The table is data, not struct tags: each field names the JSON
// type it expects and whether it is required, and a generic walker interprets
// it. No reflection is involved on this path.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sprachlab/event-gateway/models"
)

// FieldType is the JSON type a field must carry.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeObject FieldType = "object"
)

// Field describes one top-level field of a payload.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
}

// FieldError describes a single validation failure. Field is the offending
// field path, Expected/Actual are JSON type names, Actual is "missing" when
// the field was absent.
type FieldError struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// Validator checks payloads against a field table.
type Validator struct {
	fields []Field
}

// New builds a Validator for the given field table.
func New(fields ...Field) *Validator {
	return &Validator{fields: fields}
}

// EventFields is the accepted event shape: all three fields required,
// event_data an open mapping whose contents are not inspected.
func EventFields() []Field {
	return []Field{
		{Name: "event_id", Type: TypeString, Required: true},
		{Name: "event_type", Type: TypeString, Required: true},
		{Name: "event_data", Type: TypeObject, Required: true},
	}
}

// Validate checks body against the field table and returns every failure
// found, or nil when the payload conforms. Unknown top-level fields are
// ignored. A body that is not a JSON object at all yields a single
// body-level error.
func (v *Validator) Validate(body []byte) []FieldError {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		// A top-level null decodes into a nil map without error; it is
		// still not an object.
		return []FieldError{{
			Field:    "body",
			Message:  "request body must be a JSON object",
			Expected: "object",
			Actual:   typeOf(body),
		}}
	}

	var errs []FieldError
	for _, f := range v.fields {
		val, ok := raw[f.Name]
		if !ok {
			if f.Required {
				errs = append(errs, FieldError{
					Field:    f.Name,
					Message:  "field required",
					Expected: string(f.Type),
					Actual:   "missing",
				})
			}
			continue
		}
		if actual := typeOf(val); actual != string(f.Type) {
			errs = append(errs, FieldError{
				Field:    f.Name,
				Message:  fmt.Sprintf("%s must be of type %s", f.Name, f.Type),
				Expected: string(f.Type),
				Actual:   actual,
			})
		}
	}
	return errs
}

// ParseEvent validates body against the event field table and, on success,
// decodes it into an Event. The returned Event is a value: callers receive
// their own copy and nothing is shared across requests.
func ParseEvent(body []byte) (models.Event, []FieldError) {
	if errs := New(EventFields()...).Validate(body); errs != nil {
		return models.Event{}, errs
	}
	var ev models.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		// Cannot happen for a payload the field table accepted, but the
		// decoder has the final word.
		return models.Event{}, []FieldError{{
			Field:    "body",
			Message:  "request body could not be decoded",
			Expected: "object",
			Actual:   "invalid",
		}}
	}
	return ev, nil
}

// typeOf names the JSON type of a raw value by its first token. Returns
// "invalid" for bytes that are not a JSON value.
func typeOf(raw []byte) string {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return "invalid"
	}
	switch c := trimmed[0]; {
	case c == '"':
		return "string"
	case c == '{':
		return "object"
	case c == '[':
		return "array"
	case c == 't' || c == 'f':
		return "boolean"
	case c == 'n':
		return "null"
	case c == '-' || (c >= '0' && c <= '9'):
		return "number"
	default:
		return "invalid"
	}
}
