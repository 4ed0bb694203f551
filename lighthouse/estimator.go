package lighthouse

import (
	"github.com/pkg/errors"

	"go.viam.com/lighthouse/logging"
	"go.viam.com/lighthouse/spatialmath"
	"go.viam.com/lighthouse/utils"
)

// orthonormalEps bounds how far a solver rotation may be from SO(3).
const orthonormalEps = 1e-6

// InitialEstimator makes initial estimates of base station and rig poses.
// It keeps no state between calls.
type InitialEstimator struct {
	solver Solver
	logger logging.Logger
}

// NewInitialEstimator returns an estimator solving each observation with the given solver.
func NewInitialEstimator(solver Solver, logger logging.Logger) *InitialEstimator {
	return &InitialEstimator{solver: solver, logger: logger}
}

// Estimate makes a rough estimate of the poses of all base stations found in the samples.
// The rig pose of the first sample defines the global frame.
func (ie *InitialEstimator) Estimate(samples []*PoseSample, geometry SensorGeometry) (*Estimate, error) {
	return ie.EstimateWithReference(samples, geometry, 0)
}

// EstimateWithReference is like Estimate but the rig pose of samples[reference] defines the global frame.
// Either every base station is linked into the global frame or an error is returned.
func (ie *InitialEstimator) EstimateWithReference(
	samples []*PoseSample,
	geometry SensorGeometry,
	reference int,
) (*Estimate, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	if reference < 0 || reference >= len(samples) {
		return nil, errors.Wrap(utils.NewOutOfRangeError("reference sample", reference, len(samples)), "cannot anchor global frame")
	}

	locals, solutionErrs, err := ie.localPoses(samples, geometry)
	if err != nil {
		return nil, err
	}

	bsPoses := referencePoses(locals[reference])
	if err := ie.propagate(locals, bsPoses); err != nil {
		return nil, err
	}

	estimates, err := samplePoses(locals, solutionErrs, bsPoses)
	if err != nil {
		return nil, err
	}

	ie.logger.Debugw("initial estimate done", "samples", len(samples), "base_stations", len(bsPoses), "reference", reference)
	return &Estimate{Reference: reference, BaseStations: bsPoses, Samples: estimates}, nil
}

// localPoses solves every observation and returns, per sample, the base station poses in the rig frame of that sample
// along with the error the solver reported for each.
func (ie *InitialEstimator) localPoses(
	samples []*PoseSample,
	geometry SensorGeometry,
) ([]map[BaseStationID]spatialmath.Pose, []map[BaseStationID]float64, error) {
	locals := make([]map[BaseStationID]spatialmath.Pose, 0, len(samples))
	solutionErrs := make([]map[BaseStationID]float64, 0, len(samples))
	for i, sample := range samples {
		if sample == nil {
			return nil, nil, errors.Errorf("sample %d is nil", i)
		}
		poses := map[BaseStationID]spatialmath.Pose{}
		errs := map[BaseStationID]float64{}
		for _, id := range sortedIDs(sample.Angles) {
			obs := sample.Angles[id]
			if obs == nil {
				return nil, nil, errors.Errorf("sample %d has a nil observation of base station %d", i, id)
			}
			corr, err := obs.Correspondences(geometry)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "sample %d base station %d", i, id)
			}

			solutions, err := ie.solver.Solve(geometry, corr)
			if errors.Is(err, ErrNoSolution) || (err == nil && len(solutions) == 0) {
				ie.logger.Debugw("no pose solution, leaving base station out of sample", "sample", i, "base_station", id)
				continue
			}
			if err != nil {
				return nil, nil, errors.Wrapf(err, "solving sample %d base station %d", i, id)
			}

			// The first solution is the best one. It is the rig in the base station frame, we want the
			// base station in the rig frame.
			best := solutions[0]
			if !best.Rotation.IsOrthonormal(orthonormalEps) {
				return nil, nil, errors.Wrapf(ErrNotOrthonormal, "solution for sample %d base station %d", i, id)
			}
			poses[id] = spatialmath.PoseInverse(spatialmath.NewPose(best.Translation, best.Rotation))
			errs[id] = best.Error
		}
		locals = append(locals, poses)
		solutionErrs = append(solutionErrs, errs)
	}
	return locals, solutionErrs, nil
}

// referencePoses seeds the global table with the base stations of the reference sample, whose rig frame is the global frame.
func referencePoses(reference map[BaseStationID]spatialmath.Pose) map[BaseStationID]spatialmath.Pose {
	bsPoses := make(map[BaseStationID]spatialmath.Pose, len(reference))
	for id, pose := range reference {
		bsPoses[id] = pose
	}
	return bsPoses
}

// propagate runs passes over the samples, resolving unknown base stations through a known base station
// seen in the same sample, until all are known. A pass without progress means the remaining base stations
// are not linked to the reference.
func (ie *InitialEstimator) propagate(locals []map[BaseStationID]spatialmath.Pose, bsPoses map[BaseStationID]spatialmath.Pose) error {
	all := map[BaseStationID]struct{}{}
	for _, local := range locals {
		for id := range local {
			all[id] = struct{}{}
		}
	}

	toFind := unresolved(all, bsPoses)
	remaining := len(toFind)
	for pass := 1; remaining > 0; pass++ {
		ie.logger.Debugw("propagation pass", "pass", pass, "unresolved", toFind)
		for i, local := range locals {
			bridge, ok := lowestKnown(local, bsPoses)
			if !ok {
				continue
			}
			for _, id := range sortedIDs(local) {
				if _, known := bsPoses[id]; known {
					continue
				}
				bsPoses[id] = spatialmath.ReexpressPose(bsPoses[bridge], local[bridge], local[id])
				ie.logger.Debugw("resolved base station", "base_station", id, "sample", i, "bridge", bridge)
			}

			toFind = unresolved(all, bsPoses)
			if len(toFind) == 0 {
				break
			}
		}

		if len(toFind) == remaining {
			visibility := NewVisibilityGraph(observedIDs(locals))
			return errors.Wrapf(ErrCannotLinkBaseStations, "unresolved base stations %v, visibility groups %v",
				toFind, visibility.Components())
		}
		remaining = len(toFind)
	}
	return nil
}

// samplePoses derives each sample's rig pose in the global frame from the lowest numbered base station it observed.
func samplePoses(
	locals []map[BaseStationID]spatialmath.Pose,
	solutionErrs []map[BaseStationID]float64,
	bsPoses map[BaseStationID]spatialmath.Pose,
) ([]SampleEstimate, error) {
	estimates := make([]SampleEstimate, 0, len(locals))
	for i, local := range locals {
		ids := sortedIDs(local)
		if len(ids) == 0 {
			return nil, errors.Wrapf(ErrNoObservations, "sample %d", i)
		}
		ref := ids[0]
		global, ok := bsPoses[ref]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownBaseStation, "sample %d base station %d", i, ref)
		}
		estimates = append(estimates, SampleEstimate{
			Index:          i,
			BaseStations:   local,
			SolutionErrors: solutionErrs[i],
			Pose:           spatialmath.MapFrame(global, local[ref]),
		})
	}
	return estimates, nil
}

func unresolved(all map[BaseStationID]struct{}, known map[BaseStationID]spatialmath.Pose) []BaseStationID {
	var ids []BaseStationID
	for _, id := range sortedIDs(all) {
		if _, ok := known[id]; !ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func lowestKnown(local, known map[BaseStationID]spatialmath.Pose) (BaseStationID, bool) {
	for _, id := range sortedIDs(local) {
		if _, ok := known[id]; ok {
			return id, true
		}
	}
	return 0, false
}

func observedIDs(locals []map[BaseStationID]spatialmath.Pose) [][]BaseStationID {
	ids := make([][]BaseStationID, 0, len(locals))
	for _, local := range locals {
		ids = append(ids, sortedIDs(local))
	}
	return ids
}

func sortedIDs[V any](m map[BaseStationID]V) []BaseStationID {
	return utils.SortedKeys(m)
}
