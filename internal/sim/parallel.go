package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Ensemble runs independent drivers side by side in batch mode, one
// goroutine each. Drivers must not share a World.
type Ensemble struct {
	names   []string
	drivers []*Driver
}

func NewEnsemble() *Ensemble {
	return &Ensemble{}
}

func (e *Ensemble) Add(name string, d *Driver) {
	e.names = append(e.names, name)
	e.drivers = append(e.drivers, d)
}

func (e *Ensemble) Len() int { return len(e.drivers) }

// Run advances every driver by ticks. Errors are joined and labelled with
// the driver's name.
func (e *Ensemble) Run(ctx context.Context, ticks int) error {
	errs := make([]error, len(e.drivers))

	var wg sync.WaitGroup
	for i, d := range e.drivers {
		wg.Add(1)
		go func(idx int, d *Driver) {
			defer wg.Done()
			if err := d.Run(ctx, ticks); err != nil {
				errs[idx] = fmt.Errorf("%s: %w", e.names[idx], err)
			}
		}(i, d)
	}

	wg.Wait()

	return errors.Join(errs...)
}
