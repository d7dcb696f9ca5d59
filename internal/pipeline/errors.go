package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSettings = errors.New("pipeline: invalid settings")
	ErrNilFloor        = errors.New("pipeline: generator returned no floor")
)

// CollaboratorError reports a generator or exporter failure on one floor.
// The underlying error stays reachable through errors.Is and errors.As.
type CollaboratorError struct {
	Stage string
	Floor int
	Err   error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("floor %d: %s: %v", e.Floor, e.Stage, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}
