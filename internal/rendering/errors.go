// Package rendering turns card data into a PNG image. The card is laid out as
// an HTML document and captured by a headless browser.
package rendering

import "fmt"

// Render steps reported by RenderError.
const (
	StepFonts   = "fonts"
	StepPage    = "page"
	StepCapture = "capture"
)

// TemplateError is returned when the card template cannot be parsed or executed.
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause == nil {
		return "card template: " + e.Message
	}
	return fmt.Sprintf("card template: %s: %v", e.Message, e.Cause)
}

func (e *TemplateError) Unwrap() error { return e.Cause }

// RenderError wraps a failure at one step of producing the PNG.
type RenderError struct {
	Step  string
	Cause error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render card (%s): %v", e.Step, e.Cause)
}

func (e *RenderError) Unwrap() error { return e.Cause }

// FontError names the font file that could not be read. Missing files are not
// errors; the card falls back to the browser's sans-serif.
type FontError struct {
	Path  string
	Cause error
}

func (e *FontError) Error() string {
	return fmt.Sprintf("read font %s: %v", e.Path, e.Cause)
}

func (e *FontError) Unwrap() error { return e.Cause }
