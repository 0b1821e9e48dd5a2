package llm

import "fmt"

// ServiceError marks a completion backend failure: transport errors,
// non-2xx responses and malformed response bodies all map to it so
// callers can distinguish backend trouble from their own logic errors.
type ServiceError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
