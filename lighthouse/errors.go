package lighthouse

import "github.com/pkg/errors"

var (
	// ErrCannotLinkBaseStations is returned when the base stations do not form a single group of
	// co-observed base stations reachable from the reference sample.
	ErrCannotLinkBaseStations = errors.New("can not link positions between all base stations")

	// ErrNoObservations is returned when a sample has no base station pose to derive its own pose from.
	ErrNoObservations = errors.New("sample has no observed base stations")

	// ErrUnknownBaseStation is returned when a base station has no global pose.
	ErrUnknownBaseStation = errors.New("base station has no global pose")

	// ErrNoSolution is returned by a Solver that can not produce any candidate for its input.
	// The base station is then left out of the sample.
	ErrNoSolution = errors.New("solver found no solution")

	// ErrNotOrthonormal is returned when a solver produces a rotation outside SO(3).
	ErrNotOrthonormal = errors.New("rotation is not orthonormal")

	// ErrNoSamples is returned when estimation is asked to run without samples.
	ErrNoSamples = errors.New("no samples to estimate from")
)
