package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"go.viam.com/lighthouse/lighthouse"
	"go.viam.com/lighthouse/spatialmath"
	"go.viam.com/lighthouse/utils"
)

type poseJSON struct {
	Translation    [3]float64 `json:"translation"`
	RotationMatrix [9]float64 `json:"rotation_matrix"`
	// Quaternion is stored as w, x, y, z.
	Quaternion [4]float64 `json:"quaternion"`
}

type sampleJSON struct {
	Index        int                       `json:"index"`
	Pose         poseJSON                  `json:"pose"`
	BaseStations []lighthouse.BaseStationID `json:"base_stations"`
}

type estimateJSON struct {
	ReferenceSample int                                   `json:"reference_sample"`
	BaseStations    map[lighthouse.BaseStationID]poseJSON `json:"base_stations"`
	Samples         []sampleJSON                          `json:"samples"`
}

func newPoseJSON(p spatialmath.Pose) poseJSON {
	pt := p.Point()
	q := p.Orientation().Quaternion()
	return poseJSON{
		Translation:    [3]float64{pt.X, pt.Y, pt.Z},
		RotationMatrix: p.Orientation().RotationMatrix().Elements(),
		Quaternion:     [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag},
	}
}

func writeEstimateJSON(w io.Writer, est *lighthouse.Estimate) error {
	out := estimateJSON{
		ReferenceSample: est.Reference,
		BaseStations:    make(map[lighthouse.BaseStationID]poseJSON, len(est.BaseStations)),
	}
	for id, pose := range est.BaseStations {
		out.BaseStations[id] = newPoseJSON(pose)
	}
	for _, s := range est.Samples {
		out.Samples = append(out.Samples, sampleJSON{
			Index:        s.Index,
			Pose:         newPoseJSON(s.Pose),
			BaseStations: utils.SortedKeys(s.BaseStations),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(out), "failed to encode estimate")
}

func translationString(p spatialmath.Pose) string {
	tra := p.Point()
	return fmt.Sprintf("X:%.3f, Y:%.3f, Z:%.3f", tra.X, tra.Y, tra.Z)
}

func orientationString(p spatialmath.Pose) string {
	ori := p.Orientation().EulerAngles()
	return fmt.Sprintf(
		"Roll:%.2f, Pitch:%.2f, Yaw:%.2f",
		utils.RadToDeg(ori.Roll),
		utils.RadToDeg(ori.Pitch),
		utils.RadToDeg(ori.Yaw),
	)
}

// baseStationTable renders a table with one row per base station, with columns of id, translation and orientation.
func baseStationTable(poses map[lighthouse.BaseStationID]spatialmath.Pose) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Base station", "Translation", "Orientation"})
	for _, id := range utils.SortedKeys(poses) {
		t.AppendRow(table.Row{id, translationString(poses[id]), orientationString(poses[id])})
	}
	return t.Render()
}

// estimateTables renders the base station poses followed by the sample poses.
func estimateTables(est *lighthouse.Estimate) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Sample", "Base stations", "Translation", "Orientation"})
	for _, s := range est.Samples {
		index := fmt.Sprintf("%d", s.Index)
		if s.Index == est.Reference {
			index += " (reference)"
		}
		t.AppendRow(table.Row{index, fmt.Sprint(utils.SortedKeys(s.BaseStations)), translationString(s.Pose), orientationString(s.Pose)})
	}
	return strings.Join([]string{baseStationTable(est.BaseStations), t.Render()}, "\n")
}

// visibilityTable renders the connected groups of the visibility graph.
func visibilityTable(graph *lighthouse.VisibilityGraph) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Group", "Base stations"})
	for i, group := range graph.Components() {
		t.AppendRow(table.Row{i, fmt.Sprint(group)})
	}
	return t.Render()
}

// solutionErrorSummary describes the errors the solver reported for the solutions the estimate is built from.
func solutionErrorSummary(est *lighthouse.Estimate) string {
	var errs []float64
	for _, s := range est.Samples {
		for _, id := range utils.SortedKeys(s.SolutionErrors) {
			errs = append(errs, s.SolutionErrors[id])
		}
	}
	mean, err := stats.Mean(errs)
	if err != nil {
		return "no solution errors reported"
	}
	median, err := stats.Median(errs)
	if err != nil {
		return "no solution errors reported"
	}
	maxErr, err := stats.Max(errs)
	if err != nil {
		return "no solution errors reported"
	}
	return fmt.Sprintf("solution error over %d solutions: mean %.3g, median %.3g, max %.3g", len(errs), mean, median, maxErr)
}
