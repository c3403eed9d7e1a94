package catalog

import (
	"errors"
	"fmt"
)

// ErrNetwork is matched by every failure to reach the catalog or get a
// successful answer from it. Callers use it to decide whether a local
// fallback applies.
var ErrNetwork = errors.New("catalog unreachable")

// NetworkError is a transport failure talking to the catalog.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() []error {
	return []error{ErrNetwork, e.Err}
}

// StatusError is a non-2xx answer from the catalog.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog %s: unexpected status: %d", e.Op, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNetwork
}
