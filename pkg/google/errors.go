package google

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// RemoteError reports a failed Google Tasks API call.
type RemoteError struct {
	Op         string
	StatusCode int // zero when no HTTP response was received
	Err        error
}

func newRemoteError(op string, err error) *RemoteError {
	e := &RemoteError{Op: op, Err: err}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		e.StatusCode = apiErr.Code
	}
	return e
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: the API returned an error (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: the API returned an error: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }
