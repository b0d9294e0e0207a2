// Package server provides the HTTP API for profile extraction and card
// rendering.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/profile-card/internal/document"
	"github.com/jonathan/profile-card/internal/llm"
	"github.com/jonathan/profile-card/internal/parsing"
	"github.com/jonathan/profile-card/internal/profile"
	"github.com/jonathan/profile-card/internal/types"
)

// Client-facing messages. None of them carry document content.
const (
	MessageAPIError        = "The AI service encountered an error processing your PDF. Please try again."
	MessageParseFailed     = "Could not extract profile data from this PDF. Please ensure it is a LinkedIn profile export."
	MessageInvalidResponse = "The extracted data was incomplete or malformed: "
	MessageUnexpected      = "An unexpected error occurred. Please try again."

	MessageInvalidCard = "Invalid card data provided."
	MessageCardFailed  = "Failed to generate card. Please try again."
)

// Classify maps an extraction failure to its HTTP status, wire code and
// user-facing message.
func Classify(err error) (int, types.ErrorCode, string) {
	var (
		invalid    *document.InvalidError
		apiErr     *llm.APICallError
		emptyErr   *llm.EmptyResponseError
		parseErr   *parsing.ParseError
		validation *profile.ValidationError
	)

	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest, invalid.Code, invalid.Message
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, types.ErrorAPI, MessageAPIError
	case errors.As(err, &parseErr), errors.As(err, &emptyErr):
		return http.StatusUnprocessableEntity, types.ErrorParseFailed, MessageParseFailed
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity, types.ErrorInvalidResponse, MessageInvalidResponse + validation.Message
	default:
		return http.StatusInternalServerError, types.ErrorParseFailed, MessageUnexpected
	}
}
