package duffel

import (
	"encoding/json"
	"fmt"
)

// APIErrorDetail is one entry of the provider's error envelope.
type APIErrorDetail struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIError is returned for every non-success provider response. It
// carries the upstream status code plus the parsed error body, or the
// raw text when the body is not the provider's JSON envelope. Callers
// decide whether it is fatal.
type APIError struct {
	StatusCode int
	Errors     []APIErrorDetail
	RequestID  string
	Raw        string
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		first := e.Errors[0]
		return fmt.Sprintf("duffel: status %d: %s: %s", e.StatusCode, first.Title, first.Message)
	}
	return fmt.Sprintf("duffel: status %d: %s", e.StatusCode, e.Raw)
}

// newAPIError parses the provider error envelope, falling back to the
// raw body text when the envelope does not decode.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Raw:        string(body),
	}

	var envelope struct {
		Errors []APIErrorDetail `json:"errors"`
		Meta   struct {
			RequestID string `json:"request_id"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		apiErr.Errors = envelope.Errors
		apiErr.RequestID = envelope.Meta.RequestID
	}

	return apiErr
}
