package sim

import "errors"

var (
	// ErrInvalidTemperature indicates a temperature that is not a finite, strictly positive value.
	ErrInvalidTemperature = errors.New("temperature must be finite and > 0")

	// ErrNoTemperatures indicates a sweep with an empty temperature list.
	ErrNoTemperatures = errors.New("temperature sweep is empty")

	// ErrTooManyTemperatures indicates a temperature range longer than MaxTemperatures.
	ErrTooManyTemperatures = errors.New("temperature range has too many points")

	// ErrNegativeWalkLength indicates a walk length below zero.
	ErrNegativeWalkLength = errors.New("walk length must be >= 0")

	// ErrEmptyStepSet indicates a step set with no moves.
	ErrEmptyStepSet = errors.New("step set is empty")

	// ErrNegativeEnergyWeight indicates a negative or non-finite contact energy.
	ErrNegativeEnergyWeight = errors.New("contact energies must be finite and >= 0")

	// ErrDegeneratePartition indicates a partition sum that is zero or not finite,
	// which leaves every thermal average undefined.
	ErrDegeneratePartition = errors.New("partition sum is zero or not finite")

	// ErrLeafCountOverflow indicates |steps|^length does not fit in 64 bits.
	ErrLeafCountOverflow = errors.New("leaf count overflows uint64")
)
