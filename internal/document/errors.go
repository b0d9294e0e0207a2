package document

import (
	"fmt"

	"github.com/jonathan/profile-card/internal/types"
)

// InvalidError is returned when an upload fails a pre-flight check. Code is
// one of the input error codes and Message is safe to show to the client.
type InvalidError struct {
	Code    types.ErrorCode
	Message string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func noFile() *InvalidError {
	return &InvalidError{
		Code:    types.ErrorNoFileProvided,
		Message: "No PDF file was provided in the request.",
	}
}

func wrongType(mediaType string) *InvalidError {
	if mediaType == "" {
		mediaType = "unknown"
	}
	return &InvalidError{
		Code:    types.ErrorInvalidFileType,
		Message: fmt.Sprintf("Expected a PDF file but received %q. Please upload a .pdf file.", mediaType),
	}
}

func tooLarge(size, limit int64) *InvalidError {
	return &InvalidError{
		Code: types.ErrorFileTooLarge,
		Message: fmt.Sprintf("File size (%.1f MB) exceeds the %s MB limit.",
			float64(size)/mib, formatMB(limit)),
	}
}
