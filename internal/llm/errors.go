package llm

import "fmt"

// APICallError represents a failed call to the model provider: transport
// failure, non-2xx status, or a client-side cancellation.
type APICallError struct {
	Provider   Provider
	StatusCode int // 0 when no HTTP response was received
	Message    string
	Cause      error
}

func (e *APICallError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s API error: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// EmptyResponseError is returned when the provider answered but the reply
// held no text block.
type EmptyResponseError struct {
	Provider Provider
	Reason   string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("%s returned no text content in the response: %s", e.Provider, e.Reason)
}
