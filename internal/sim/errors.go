package sim

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFPS = errors.New("sim: fps must be between 1 and 1e9")
	ErrNotIdle    = errors.New("sim: driver is not idle")
	ErrStopped    = errors.New("sim: driver has stopped")
	ErrNilWorld   = errors.New("sim: world is nil")
	ErrNilQueue   = errors.New("sim: command queue is nil")
	ErrNegTicks   = errors.New("sim: tick count is negative")
)

// PublishError reports that a snapshot could not be delivered because the
// state channel was closed. It ends the run.
type PublishError struct {
	Tick    uint64
	SimTime float64
	Err     error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("sim: publish tick %d (t=%.0fs): %v", e.Tick, e.SimTime, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}
