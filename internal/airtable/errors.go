package airtable

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates the referenced record id does not exist at the store.
var ErrNotFound = errors.New("airtable: record not found")

// APIError is a non-2xx response from the store, with the error payload
// decoded when the store supplied one.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("airtable: api error %d (%s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("airtable: api error %d", e.StatusCode)
}

func newAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	// {"error": {"type": "...", "message": "..."}} or {"error": "..."}
	var payload struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil && len(payload.Error) > 0 {
		var detail struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		}
		if json.Unmarshal(payload.Error, &detail) == nil {
			apiErr.Type = detail.Type
			apiErr.Message = detail.Message
		}
		var plain string
		if apiErr.Message == "" && json.Unmarshal(payload.Error, &plain) == nil {
			apiErr.Message = plain
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
