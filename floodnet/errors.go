package floodnet

import (
	"fmt"
	"time"
)

// TransportError reports a failed network round trip or a non-2xx response.
// StatusCode is zero when the request never completed.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("floodnet: request %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("floodnet: request %s: API returned status %d", e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that is not valid JSON or does not
// match the expected envelope shape.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("floodnet: decoding response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError reports a record field that is missing or fails a
// type/range check. Batch parsing skips records that fail validation; the
// error surfaces only when a single record is parsed directly.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("floodnet: invalid record: field %s: %s", e.Field, e.Reason)
}

// InvalidRangeError reports a depth query whose start time is not strictly
// before its end time. It is returned before any network request is made.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("floodnet: invalid time range: start %s is not before end %s",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}
