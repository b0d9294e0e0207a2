package schemas

import (
	"github.com/jonathan/profile-card/internal/jsontree"
	schemafiles "github.com/jonathan/profile-card/schemas"
)

// ProfileDrift reports where a decoded model reply departs from the
// extraction contract. An empty result means the reply matched. A schema
// load failure is returned as the error.
func ProfileDrift(v jsontree.Value) ([]FieldError, error) {
	err := ValidateValue(schemafiles.Profile, v.Interface())
	if err == nil {
		return nil, nil
	}
	if fields := FieldErrors(err); fields != nil {
		return fields, nil
	}
	return nil, err
}

// ValidateCardRequest checks the shape of a generate-card request body.
func ValidateCardRequest(body []byte) error {
	return ValidateBytes(schemafiles.CardRequest, body)
}
