package cli

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/lighthouse/lighthouse"
	"go.viam.com/lighthouse/spatialmath"
)

func sampleEstimate() *lighthouse.Estimate {
	quarterTurn := spatialmath.NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, &spatialmath.EulerAngles{Yaw: math.Pi / 2})
	return &lighthouse.Estimate{
		Reference:    0,
		BaseStations: map[lighthouse.BaseStationID]spatialmath.Pose{7: quarterTurn, 2: spatialmath.NewZeroPose()},
		Samples: []lighthouse.SampleEstimate{
			{
				Index:          0,
				BaseStations:   map[lighthouse.BaseStationID]spatialmath.Pose{2: spatialmath.NewZeroPose(), 7: quarterTurn},
				SolutionErrors: map[lighthouse.BaseStationID]float64{2: 1, 7: 3},
				Pose:           spatialmath.NewZeroPose(),
			},
			{
				Index:          1,
				BaseStations:   map[lighthouse.BaseStationID]spatialmath.Pose{7: quarterTurn},
				SolutionErrors: map[lighthouse.BaseStationID]float64{7: 8},
				Pose:           spatialmath.NewPoseFromPoint(r3.Vector{X: 0.5}),
			},
		},
	}
}

func TestWriteEstimateJSON(t *testing.T) {
	var buf bytes.Buffer
	test.That(t, writeEstimateJSON(&buf, sampleEstimate()), test.ShouldBeNil)

	var out estimateJSON
	test.That(t, json.Unmarshal(buf.Bytes(), &out), test.ShouldBeNil)
	test.That(t, out.BaseStations[7].Translation, test.ShouldResemble, [3]float64{1, 2, 3})
	rm := out.BaseStations[7].RotationMatrix
	test.That(t, rm[1], test.ShouldAlmostEqual, -1)
	test.That(t, rm[3], test.ShouldAlmostEqual, 1)
	q := out.BaseStations[7].Quaternion
	test.That(t, q[0], test.ShouldAlmostEqual, math.Sqrt2/2)
	test.That(t, q[3], test.ShouldAlmostEqual, math.Sqrt2/2)
	test.That(t, out.Samples[0].BaseStations, test.ShouldResemble, []lighthouse.BaseStationID{2, 7})
	test.That(t, out.Samples[1].Pose.Translation, test.ShouldResemble, [3]float64{0.5, 0, 0})
}

func TestEstimateTables(t *testing.T) {
	out := estimateTables(sampleEstimate())
	test.That(t, out, test.ShouldContainSubstring, "X:1.000, Y:2.000, Z:3.000")
	test.That(t, out, test.ShouldContainSubstring, "Yaw:90.00")
	test.That(t, out, test.ShouldContainSubstring, "0 (reference)")
	test.That(t, out, test.ShouldContainSubstring, "[2 7]")
}

func TestSolutionErrorSummary(t *testing.T) {
	test.That(t, solutionErrorSummary(sampleEstimate()), test.ShouldEqual,
		"solution error over 3 solutions: mean 4, median 3, max 8")
	test.That(t, solutionErrorSummary(&lighthouse.Estimate{}), test.ShouldEqual, "no solution errors reported")
}

func TestTopView(t *testing.T) {
	p, err := topView(sampleEstimate())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Title.Text, test.ShouldEqual, "Top view in the frame of sample 0")
	test.That(t, p.X.Max, test.ShouldBeGreaterThanOrEqualTo, 1)
	test.That(t, p.Y.Max, test.ShouldBeGreaterThanOrEqualTo, 2)
}
