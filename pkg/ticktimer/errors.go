package ticktimer

import (
	"errors"
	"fmt"
)

var (
	// ErrTickOverlap is a start on a scope that is already running.
	ErrTickOverlap = errors.New("tick started before the previous tick stopped")

	// ErrTickUnderflow is a stop on a scope that is not running.
	ErrTickUnderflow = errors.New("tick stopped without an active tick")

	// ErrUnknownPolicy is returned by ParsePolicy.
	ErrUnknownPolicy = errors.New("unknown tick error policy")
)

// TickError is a tick protocol violation on one scope.
type TickError struct {
	// Scope is "server" or "dimension".
	Scope string

	// DimensionID is set for dimension scopes.
	DimensionID int

	// DimensionName is set for dimension scopes.
	DimensionName string

	Err error
}

func (e *TickError) Error() string {
	if e.Scope == scopeServer {
		return fmt.Sprintf("server: %v", e.Err)
	}
	return fmt.Sprintf("dimension %d (%s): %v", e.DimensionID, e.DimensionName, e.Err)
}

func (e *TickError) Unwrap() error {
	return e.Err
}
