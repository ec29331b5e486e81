package metrics

import (
	"errors"
	"fmt"
)

var (
	// ErrLabelArity is returned when a sample's label values do not match
	// the family's label names.
	ErrLabelArity = errors.New("label arity mismatch")

	// ErrKindMismatch is returned when a value is added with the wrong
	// operation for the family kind.
	ErrKindMismatch = errors.New("metric kind mismatch")

	// ErrInvalidName is returned for metric or label names outside the
	// Prometheus data model.
	ErrInvalidName = errors.New("invalid metric name")

	// ErrDuplicateLabel is returned when a family declares a label twice.
	ErrDuplicateLabel = errors.New("duplicate label name")

	// ErrInvalidLabelValue is returned for label values that are not
	// valid UTF-8.
	ErrInvalidLabelValue = errors.New("invalid label value")
)

// ArityError reports a label arity mismatch on a family.
type ArityError struct {
	Family string
	Want   int
	Got    int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: %s wants %d label values, got %d", ErrLabelArity, e.Family, e.Want, e.Got)
}

func (e *ArityError) Unwrap() error {
	return ErrLabelArity
}
