package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateFamily is returned when two collectors describe the same family.
	ErrDuplicateFamily = errors.New("duplicate metric family")

	// ErrCollectorFailed is matched by every *CollectError.
	ErrCollectorFailed = errors.New("collector failed")
)

// CollectError reports the collector that aborted a scrape.
type CollectError struct {
	Collector string
	Err       error
}

func (e *CollectError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrCollectorFailed, e.Collector, e.Err)
}

func (e *CollectError) Unwrap() []error {
	return []error{ErrCollectorFailed, e.Err}
}
