package profile

// ValidationError reports the first structural problem found in decoded
// model output. Message is the human-readable reason; Field names the
// offending member when there is one.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
