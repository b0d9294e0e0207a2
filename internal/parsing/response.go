// Package parsing turns the raw text of a model reply into a decoded JSON
// tree. It applies exactly two repairs (fence stripping and the bare
// undefined token) and leaves every shape question to the profile package.
package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/profile-card/internal/jsontree"
	"github.com/jonathan/profile-card/internal/logging"
)

// DefaultPrefixChars bounds ParseError.RawPrefix when no limit is given.
const DefaultPrefixChars = 500

var (
	fenceRe     = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")
	undefinedRe = regexp.MustCompile(`:\s*undefined\b`)
)

// Parser decodes model replies.
type Parser struct {
	prefixChars int
}

// NewParser returns a Parser whose errors carry at most prefixChars runes of
// the original reply. A non-positive value uses DefaultPrefixChars.
func NewParser(prefixChars int) *Parser {
	if prefixChars <= 0 {
		prefixChars = DefaultPrefixChars
	}
	return &Parser{prefixChars: prefixChars}
}

// Parse is NewParser(DefaultPrefixChars).Parse.
func Parse(raw string) (jsontree.Value, error) {
	return NewParser(DefaultPrefixChars).Parse(raw)
}

// Parse trims raw, keeps only the interior of the first fenced code block if
// there is one, rewrites ": undefined" to ": null" and strictly decodes the
// result. Failures are *ParseError.
func (p *Parser) Parse(raw string) (jsontree.Value, error) {
	trimmed := strings.TrimSpace(raw)

	v, err := jsontree.Decode([]byte(Sanitize(trimmed)))
	if err != nil {
		return jsontree.Value{}, &ParseError{
			Message:   "model response was not valid JSON",
			RawPrefix: logging.Truncate(trimmed, p.prefixChars),
			Cause:     err,
		}
	}
	return v, nil
}

// Sanitize applies the two textual repairs to already-trimmed text.
func Sanitize(text string) string {
	return RepairUndefined(StripFence(text))
}

// StripFence returns the trimmed interior of the first ``` or ```json block
// in text, or text unchanged when there is none.
func StripFence(text string) string {
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// RepairUndefined replaces the JavaScript token undefined in value position
// with null.
func RepairUndefined(text string) string {
	return undefinedRe.ReplaceAllString(text, ": null")
}
