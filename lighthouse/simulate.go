package lighthouse

import (
	"go.viam.com/lighthouse/spatialmath"
)

// Scene is a synthetic setup of base stations and rig poses sharing one global frame.
// It produces the observation samples a real rig would have recorded.
type Scene struct {
	Geometry     SensorGeometry
	BaseStations map[BaseStationID]spatialmath.Pose
	Rigs         []spatialmath.Pose
	// Visible optionally limits which base stations each sample sees. When nil every base station
	// with all sensors in front of it is seen.
	Visible func(sample int, id BaseStationID) bool
}

// Samples returns one sample per rig pose.
func (s *Scene) Samples() []*PoseSample {
	samples := make([]*PoseSample, 0, len(s.Rigs))
	for i, rig := range s.Rigs {
		sample := &PoseSample{Angles: map[BaseStationID]Observation{}}
		for _, id := range sortedIDs(s.BaseStations) {
			if s.Visible != nil && !s.Visible(i, id) {
				continue
			}
			if vectors, ok := Observe(s.BaseStations[id], rig, s.Geometry); ok {
				sample.Angles[id] = vectors
			}
		}
		samples = append(samples, sample)
	}
	return samples
}

// ExpectedBaseStations returns the base station poses in the rig frame of samples[reference],
// which is what an exact estimation anchored on that sample yields.
func (s *Scene) ExpectedBaseStations(reference int) map[BaseStationID]spatialmath.Pose {
	toRef := spatialmath.PoseInverse(s.Rigs[reference])
	expected := make(map[BaseStationID]spatialmath.Pose, len(s.BaseStations))
	for id, pose := range s.BaseStations {
		expected[id] = spatialmath.Compose(toRef, pose)
	}
	return expected
}

// ExpectedRig returns the rig pose of samples[index] in the rig frame of samples[reference].
func (s *Scene) ExpectedRig(reference, index int) spatialmath.Pose {
	return spatialmath.Compose(spatialmath.PoseInverse(s.Rigs[reference]), s.Rigs[index])
}

// Observe computes the sweep angles measured by each sensor of a rig at rigPose, seen from a base station
// at bsPose. It reports false if any sensor is not in front of the base station.
func Observe(bsPose, rigPose spatialmath.Pose, geometry SensorGeometry) (BsVectors, bool) {
	toBs := spatialmath.PoseInverse(bsPose)
	vectors := make(BsVectors, 0, len(geometry))
	for _, sensor := range geometry {
		p := spatialmath.Transform(toBs, spatialmath.Transform(rigPose, sensor))
		if p.X <= 0 {
			return nil, false
		}
		vectors = append(vectors, NewBsVectorFromPoint(p))
	}
	return vectors, true
}
