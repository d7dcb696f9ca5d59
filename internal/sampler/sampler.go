// Package sampler owns random variate samplers used to size drill holes and
// geological shapes.
//
// Ownership boundary:
// - the Sampler capability and its two variants (theoretical, empirical)
// - distribution descriptor parsing
// - empirical sample file loading
//
// Variants are chosen once, when configuration is loaded. Generation code
// only ever sees the Sampler interface.
package sampler

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownDistribution = errors.New("sampler: unknown distribution")
	ErrInvalidDescriptor   = errors.New("sampler: invalid distribution descriptor")
	ErrNoSamples           = errors.New("sampler: no samples")
)

// Sampler produces one sample value per call.
type Sampler interface {
	Sample() float64
}

// Set bundles the samplers a floor generator consumes.
type Set struct {
	X           Sampler
	Y           Sampler
	Z           Sampler
	DrillLength Sampler
}

// Validate reports the first missing sampler.
func (s Set) Validate() error {
	switch {
	case s.X == nil:
		return fmt.Errorf("%w: x size sampler missing", ErrInvalidDescriptor)
	case s.Y == nil:
		return fmt.Errorf("%w: y size sampler missing", ErrInvalidDescriptor)
	case s.Z == nil:
		return fmt.Errorf("%w: z size sampler missing", ErrInvalidDescriptor)
	case s.DrillLength == nil:
		return fmt.Errorf("%w: drill length sampler missing", ErrInvalidDescriptor)
	}
	return nil
}
