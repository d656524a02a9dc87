package api

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ErrorKind classifies a client-visible failure. Callers branch on the
// kind (or the HTTP status) and fall back to FormattedMessage for display.
type ErrorKind string

const (
	// KindHTTP is a response with a non-2xx status code.
	KindHTTP ErrorKind = "http"
	// KindTimeout is a request that exceeded the client timeout.
	KindTimeout ErrorKind = "timeout"
	// KindNetwork is a request that got no response at all.
	KindNetwork ErrorKind = "network"
	// KindValidation is a client-side check that failed before any request.
	KindValidation ErrorKind = "validation"
)

// Fixed messages for failures that never carry a server body.
const (
	TimeoutMessage = "Request timeout - server may be offline"
	NetworkMessage = "Cannot reach server - check your network connection"
)

// Error is the single error type surfaced by the HTTP client and the
// services built on it. Message is always populated (the normalization
// is total), so every error has a usable human-readable form.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return e.Message
}

// FormattedMessage returns the normalized human-readable message.
func (e *Error) FormattedMessage() string {
	return e.Message
}

// IsStatus reports whether the error is an HTTP error with the given status.
func (e *Error) IsStatus(code int) bool {
	return e.Kind == KindHTTP && e.StatusCode == code
}

// NewHTTPError builds an Error from a non-2xx response body, applying the
// message precedence: error field, detail field, first of non_field_errors,
// first key/value pair formatted as "key: value", raw body text.
func NewHTTPError(statusCode int, body []byte) *Error {
	return &Error{
		Kind:       KindHTTP,
		StatusCode: statusCode,
		Message:    normalizeBody(body),
	}
}

// NewTimeoutError builds the fixed timeout error.
func NewTimeoutError() *Error {
	return &Error{Kind: KindTimeout, Message: TimeoutMessage}
}

// NewNetworkError builds the fixed connectivity error.
func NewNetworkError() *Error {
	return &Error{Kind: KindNetwork, Message: NetworkMessage}
}

// NewValidationError builds a client-side validation error.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func normalizeBody(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		if len(body) == 0 {
			return "request failed"
		}
		return string(body)
	}

	if msg, ok := stringField(fields, "error"); ok {
		return msg
	}
	if msg, ok := stringField(fields, "detail"); ok {
		return msg
	}
	if raw, ok := fields["non_field_errors"]; ok {
		if msg, ok := firstArrayItem(raw); ok {
			return msg
		}
	}

	// Arbitrary {field: ...} shapes: take the first key in a stable order.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if msg, ok := fieldValue(fields[k]); ok {
			return fmt.Sprintf("%s: %s", k, msg)
		}
	}

	return string(body)
}

func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

func firstArrayItem(raw json.RawMessage) (string, bool) {
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return "", false
	}
	return items[0], true
}

// fieldValue extracts a display string from a field value that may be a
// bare string or an array of strings.
func fieldValue(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s, true
	}
	return firstArrayItem(raw)
}
