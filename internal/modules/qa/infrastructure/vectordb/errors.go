package vectordb

import (
	"fmt"
)

// ValidationError reports a raw record that failed schema checks before
// upload. It is never retried and aborts the batch that contains it.
type ValidationError struct {
	Field    string
	Expected string
	Detail   string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("validation failed on field %q: expected %s (%s)", e.Field, e.Expected, e.Detail)
	}
	return fmt.Sprintf("validation failed on field %q: expected %s", e.Field, e.Expected)
}

// TransportError covers timeouts, connection failures and unexpected non-2xx
// responses. Mutating upload calls retry these; searches do not.
type TransportError struct {
	Op         string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Op, e.URL, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError reports a non-JSON body where JSON was expected.
// The raw text is kept for diagnosis.
type MalformedResponseError struct {
	URL  string
	Body string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("expected JSON from %s: %v (body: %s)", e.URL, e.Err, e.Body)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
