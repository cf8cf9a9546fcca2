package remote

import "fmt"

// FetchError reports a failed read from the POS API: a transport failure or a
// non-2xx status. The cache is never written when one is returned.
type FetchError struct {
	URL    string
	Status int // 0 when the request never got a response
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("remote fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// WriteError reports a failed item save or login. No optimistic apply happens
// after one of these.
type WriteError struct {
	URL     string
	Status  int
	Message string // server-provided message, when present
	Err     error
}

func (e *WriteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote write %s: %s", e.URL, e.Message)
	}
	if e.Status != 0 {
		return fmt.Sprintf("remote write %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("remote write %s: %v", e.URL, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ShapeError reports a response whose envelope is missing the expected data
// array, or whose data array does not decode.
type ShapeError struct {
	URL string
	Err error
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote response %s: malformed data array: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("remote response %s: missing data array", e.URL)
}

func (e *ShapeError) Unwrap() error { return e.Err }
