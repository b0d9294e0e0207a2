//nolint:revive // types is a standard Go package name pattern
package types

// ErrorCode is the stable wire value reported to clients on failure.
type ErrorCode string

// Error codes returned by the parse endpoint.
const (
	ErrorNoFileProvided  ErrorCode = "NO_FILE_PROVIDED"
	ErrorInvalidFileType ErrorCode = "INVALID_FILE_TYPE"
	ErrorFileTooLarge    ErrorCode = "FILE_TOO_LARGE"
	ErrorParseFailed     ErrorCode = "PARSE_FAILED"
	ErrorInvalidResponse ErrorCode = "INVALID_RESPONSE"
	ErrorAPI             ErrorCode = "API_ERROR"
)

// ParseError is the error body of a failed parse request.
type ParseError struct {
	Error string    `json:"error"`
	Code  ErrorCode `json:"code"`
}

// ParsePDFResponse is the success envelope of the parse endpoint.
type ParsePDFResponse struct {
	Success  bool      `json:"success"`
	Data     *Profile  `json:"data"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// ParsePDFErrorResponse is the failure envelope of the parse endpoint.
type ParsePDFErrorResponse struct {
	Success bool       `json:"success"`
	Error   ParseError `json:"error"`
}

// GenerateCardErrorResponse is the failure envelope of the card endpoint.
type GenerateCardErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
