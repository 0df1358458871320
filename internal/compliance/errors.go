package compliance

import "fmt"

// InputError reports a malformed framework-mapping shape. The resolver
// recovers from it locally (empty mapping plus warnings); it never crosses
// the package boundary as a returned error.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("malformed input in %s: %s", e.Field, e.Reason)
}

// NoQuestionsError means a regulation has no readiness questionnaire.
// Callers must surface it to the user; readiness must not be silently
// reported as zero.
type NoQuestionsError struct {
	RegulationID string
}

func (e *NoQuestionsError) Error() string {
	return fmt.Sprintf("regulation %s has no readiness questionnaire", e.RegulationID)
}

// NotFoundError means a referenced client or regulation does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
