//nolint:revive // types is a standard Go package name pattern
package types

// WarningCode identifies a non-fatal quality concern about an extracted profile.
type WarningCode string

const (
	// WarningLowConfidence means the PDF may not be a LinkedIn export.
	WarningLowConfidence WarningCode = "LOW_CONFIDENCE"
	// WarningSparseProfile means one or more sections had too little data.
	WarningSparseProfile WarningCode = "SPARSE_PROFILE"
)

// Warning is attached to a successful extraction for the caller to surface.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// ExtractionResult is the output of a successful extraction request.
type ExtractionResult struct {
	Profile  *Profile
	Warnings []Warning
}
