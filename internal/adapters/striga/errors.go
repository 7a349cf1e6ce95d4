package striga

import "fmt"

// APIError represents a Striga API error response or a failed HTTP
// exchange. It carries the provider's payload when one was returned.
type APIError struct {
	StatusCode int                    `json:"status_code"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("Striga API error [%d]: %s (code: %s, details: %v)", e.StatusCode, e.Message, e.Code, e.Details)
	}
	return fmt.Sprintf("Striga API error [%d]: %s (code: %s)", e.StatusCode, e.Message, e.Code)
}

// IsNotFound returns true if the error is a 404 not found error
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized returns true if the error is a 401 unauthorized error
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// IsRateLimited returns true if the error is a 429 rate limit error
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// UnsupportedKindError is returned when a caller asks for an iframe kind
// the service does not recognize. It is raised before any network call.
type UnsupportedKindError struct {
	Kind IframeKind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported iframe kind %q", string(e.Kind))
}

// ProtocolError is returned when a provider response omits a field the
// flow cannot continue without, such as the card-data token. It is never
// retried.
type ProtocolError struct {
	Missing string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("striga response missing required field %q", e.Missing)
}
