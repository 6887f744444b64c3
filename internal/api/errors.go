package api

import "fmt"

// TransportError means the call never produced a usable HTTP response
// (network unreachable, request build failure, truncated body).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means the server answered but the body was not the JSON shape
// the endpoint promises.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bad response body: %s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
