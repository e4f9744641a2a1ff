package tvmaze

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// NetworkError means the request to TVMaze could not complete: DNS failures,
// refused connections, timeouts, cancelled contexts and truncated bodies.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("tvmaze: request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was caused by a deadline rather than a
// refused or broken connection.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// InvalidResponseError means TVMaze answered but not with the payload we expect.
// StatusCode is set when the failure was a non-2xx response.
type InvalidResponseError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *InvalidResponseError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("tvmaze: unexpected status %d from %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("tvmaze: invalid response from %s: %v", e.URL, e.Err)
}

func (e *InvalidResponseError) Unwrap() error {
	return e.Err
}

// EmptyShowError is returned when a show has no episodes at all, so there is
// nothing to derive a season count from.
type EmptyShowError struct {
	ShowID int
}

func (e *EmptyShowError) Error() string {
	return fmt.Sprintf("tvmaze: show %d has no episodes", e.ShowID)
}
