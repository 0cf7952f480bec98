package lunchmoney

import "fmt"

// SecurityViolation reports an attempt to build a non-GET request. This
// client is read-only by contract; a violation is a programming defect and
// must never be swallowed or retried.
type SecurityViolation struct {
	Method string
}

func (e *SecurityViolation) Error() string {
	return fmt.Sprintf("security violation: only GET requests are allowed, attempted %s", e.Method)
}

// APIError reports a non-2xx response from the Lunch Money API.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lunch money api error: %s", e.Status)
}

// NetworkError reports a transport-level failure (timeout, DNS, offline)
// before any response arrived.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("lunch money network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
