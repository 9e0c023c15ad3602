package picker

import (
	"errors"
	"fmt"
)

// ErrNotReady is returned by queries made before a controller has data.
var ErrNotReady = errors.New("picker not ready: no data loaded")

// InvalidCodeError reports a region code that is not exactly six ASCII digits.
type InvalidCodeError struct {
	Code string
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid region code %q (expected 6 digits)", e.Code)
}

// NotFoundError reports an id or code without a match.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// OutOfRangeError reports a value outside the configured bounds.
type OutOfRangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// DatasetLoadError wraps a failure to read or parse the region dataset.
type DatasetLoadError struct {
	Source string
	Err    error
}

func (e *DatasetLoadError) Error() string {
	return fmt.Sprintf("load region dataset %s: %v", e.Source, e.Err)
}

func (e *DatasetLoadError) Unwrap() error { return e.Err }
