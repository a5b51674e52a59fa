package spring

import (
	"errors"
	"fmt"
)

// Sentinel errors for invalid spring constants.
// Use errors.Is to check: errors.Is(err, spring.ErrInvalidMass)
var (
	ErrInvalidMass      = errors.New("spring: mass must be positive")
	ErrInvalidStiffness = errors.New("spring: spring constant must be positive")
	ErrInvalidDamping   = errors.New("spring: damping must not be negative")
)

func validate(m, k, c float64) error {
	switch {
	case !(m > 0):
		return fmt.Errorf("%w (got %v)", ErrInvalidMass, m)
	case !(k > 0):
		return fmt.Errorf("%w (got %v)", ErrInvalidStiffness, k)
	case !(c >= 0):
		return fmt.Errorf("%w (got %v)", ErrInvalidDamping, c)
	}
	return nil
}
