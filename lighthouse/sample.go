package lighthouse

import (
	"go.viam.com/lighthouse/spatialmath"
)

// PoseSample is one snapshot of base station observations taken by the sensor rig.
// The estimator never modifies a sample.
type PoseSample struct {
	Angles map[BaseStationID]Observation
}

// BaseStations returns the ids of the base stations observed in the sample, in ascending order.
func (s *PoseSample) BaseStations() []BaseStationID {
	if s == nil {
		return nil
	}
	return sortedIDs(s.Angles)
}

// SampleEstimate holds what was derived for one sample.
type SampleEstimate struct {
	// Index is the position of the sample in the estimator input.
	Index int
	// BaseStations are the base station poses expressed in the rig frame of this sample.
	BaseStations map[BaseStationID]spatialmath.Pose
	// SolutionErrors holds, for every base station in BaseStations, the error the solver reported for the
	// solution used.
	SolutionErrors map[BaseStationID]float64
	// Pose is the rig pose of this sample in the global frame.
	Pose spatialmath.Pose
}

// Estimate is the result of an estimation.
type Estimate struct {
	// Reference is the index of the sample whose rig frame is the global frame.
	Reference int
	// BaseStations maps every observed base station to its pose in the global frame.
	BaseStations map[BaseStationID]spatialmath.Pose
	// Samples holds one entry per input sample, in input order.
	Samples []SampleEstimate
}
