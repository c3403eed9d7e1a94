package breeds

import (
	"errors"
	"fmt"
)

// ErrStore is matched by every local persistence failure.
var ErrStore = errors.New("local store failure")

// StoreError wraps a failed local read or write.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStore, e.Err}
}
