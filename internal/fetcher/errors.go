package fetcher

import "fmt"

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Rover   string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d for %s: %s", e.Code, e.Rover, e.Message)
	}
	return fmt.Sprintf("backend returned %d for %s", e.Code, e.Rover)
}

// APIError reports a 2xx response whose body carries an error field.
type APIError struct {
	Rover   string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error for %s: %s", e.Rover, e.Message)
}
