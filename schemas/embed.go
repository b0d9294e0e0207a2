// Package schemas embeds the JSON Schema documents that describe the
// extraction contract and the card request body.
package schemas

import "embed"

// Files holds every *.schema.json in this directory.
//
//go:embed *.schema.json
var Files embed.FS

// Schema file names.
const (
	Profile     = "profile.schema.json"
	CardRequest = "card_request.schema.json"
)

// All lists the embedded schema files.
var All = []string{Profile, CardRequest}
