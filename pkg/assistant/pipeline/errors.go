package pipeline

import "fmt"

// PlanValidationError marks a fatal Plan stage failure: the model
// response held no parseable JSON object or the object was missing
// required fields. The run aborts with no partial state.
type PlanValidationError struct {
	Reason string
	Err    error
}

func (e *PlanValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("plan validation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("plan validation failed: %s", e.Reason)
}

func (e *PlanValidationError) Unwrap() error {
	return e.Err
}
