package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/lighthouse/config"
	"go.viam.com/lighthouse/lighthouse"
	"go.viam.com/lighthouse/spatialmath"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"lhestimate"}, args...))
	return out.String(), errOut.String(), err
}

func simulated(t *testing.T, args ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "samples.json")
	out, _, err := runApp(t, append([]string{"simulate", "--out", path}, args...)...)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "expected base station poses in the frame of sample 0")
	return path
}

func checkEstimateJSON(t *testing.T, out string, reference int) {
	t.Helper()
	var est estimateJSON
	test.That(t, json.Unmarshal([]byte(out), &est), test.ShouldBeNil)
	test.That(t, est.ReferenceSample, test.ShouldEqual, reference)

	scene := roomScene(8, false)
	expected := scene.ExpectedBaseStations(reference)
	test.That(t, len(est.BaseStations), test.ShouldEqual, len(expected))
	for id, got := range est.BaseStations {
		want := newPoseJSON(expected[id])
		for i := range got.Translation {
			test.That(t, got.Translation[i], test.ShouldAlmostEqual, want.Translation[i], 1e-5)
		}
		for i := range got.RotationMatrix {
			test.That(t, got.RotationMatrix[i], test.ShouldAlmostEqual, want.RotationMatrix[i], 1e-5)
		}
	}
	test.That(t, len(est.Samples), test.ShouldEqual, 8)
	for _, x := range est.Samples[reference].Pose.Translation {
		test.That(t, x, test.ShouldAlmostEqual, 0, 1e-12)
	}
}

func TestSimulateThenEstimate(t *testing.T) {
	path := simulated(t)

	out, _, err := runApp(t, "estimate", "--config", path, "--json")
	test.That(t, err, test.ShouldBeNil)
	checkEstimateJSON(t, out, 0)

	out, _, err = runApp(t, "estimate", "--config", path, "--json", "--reference", "3")
	test.That(t, err, test.ShouldBeNil)
	checkEstimateJSON(t, out, 3)

	out, _, err = runApp(t, "estimate", "-c", path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "BASE STATION")
	test.That(t, out, test.ShouldContainSubstring, "0 (reference)")
	test.That(t, out, test.ShouldContainSubstring, "Roll:")
}

func TestSimulateLH2(t *testing.T) {
	path := simulated(t, "--lh2")
	raw, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(raw), test.ShouldContainSubstring, `"lh2"`)
	test.That(t, string(raw), test.ShouldNotContainSubstring, `"lh1"`)

	out, _, err := runApp(t, "estimate", "--config", path, "--json")
	test.That(t, err, test.ShouldBeNil)
	checkEstimateJSON(t, out, 0)
}

func TestSimulateToStdout(t *testing.T) {
	out, _, err := runApp(t, "simulate", "--samples", "2", "--all-visible")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, `"samples"`)
	test.That(t, strings.Count(out, `"base_stations"`), test.ShouldEqual, 2)

	_, _, err = runApp(t, "simulate", "--samples", "0")
	test.That(t, err, test.ShouldBeError, "need at least 1 sample, got 0")
}

func TestEstimateErrors(t *testing.T) {
	_, _, err := runApp(t, "estimate")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "config")

	path := simulated(t)
	_, _, err = runApp(t, "estimate", "--config", path, "--reference", "8")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "reference sample index 8 out of range [0, 8)")

	// sample 0 sees base stations 0 and 1, sample 2 sees 2 and 3
	scene := roomScene(3, false).Samples()
	cfg, err := config.FromPoseSamples([]*lighthouse.PoseSample{scene[0], scene[2]}, lighthouse.DeckSensorPositions(), false)
	test.That(t, err, test.ShouldBeNil)
	disconnected := filepath.Join(t.TempDir(), "disconnected.json")
	f, err := os.Create(disconnected)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Write(f), test.ShouldBeNil)
	test.That(t, f.Close(), test.ShouldBeNil)

	_, errOut, err := runApp(t, "estimate", "--config", disconnected)
	test.That(t, errors.Is(err, lighthouse.ErrCannotLinkBaseStations), test.ShouldBeTrue)
	test.That(t, errOut, test.ShouldContainSubstring, "lhestimate graph")

	out, errOut, err := runApp(t, "graph", "--config", disconnected)
	test.That(t, errors.Is(err, lighthouse.ErrCannotLinkBaseStations), test.ShouldBeTrue)
	test.That(t, out, test.ShouldContainSubstring, "[0 1]")
	test.That(t, out, test.ShouldContainSubstring, "[2 3]")
	test.That(t, errOut, test.ShouldContainSubstring, "base stations [2 3] cannot be linked to reference sample 0")
}

func TestGraph(t *testing.T) {
	out, _, err := runApp(t, "graph", "--config", simulated(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "[0 1 2 3]")
	test.That(t, out, test.ShouldContainSubstring, "all base stations can be linked to reference sample 0")
}

func TestRoomScene(t *testing.T) {
	scene := roomScene(5, false)
	samples := scene.Samples()
	test.That(t, len(samples), test.ShouldEqual, 5)
	test.That(t, samples[0].BaseStations(), test.ShouldResemble, []lighthouse.BaseStationID{0, 1})
	test.That(t, samples[3].BaseStations(), test.ShouldResemble, []lighthouse.BaseStationID{0, 3})
	test.That(t, samples[4].BaseStations(), test.ShouldResemble, []lighthouse.BaseStationID{0, 1})

	for _, s := range roomScene(3, true).Samples() {
		test.That(t, s.BaseStations(), test.ShouldResemble, []lighthouse.BaseStationID{0, 1, 2, 3})
	}

	rm := scene.BaseStations[0].Orientation().RotationMatrix()
	test.That(t, rm.IsOrthonormal(1e-12), test.ShouldBeTrue)
	// looking at the room centre
	toCentre := spatialmath.Transform(spatialmath.PoseInverse(scene.BaseStations[0]), r3.Vector{})
	test.That(t, toCentre.Y, test.ShouldAlmostEqual, 0)
	test.That(t, toCentre.Z, test.ShouldAlmostEqual, 0)
	test.That(t, toCentre.X, test.ShouldBeGreaterThan, 0)
}

func TestPlot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "estimate.png")
	_, _, err := runApp(t, "plot", "--config", simulated(t), "--out", out)
	test.That(t, err, test.ShouldBeNil)
	info, err := os.Stat(out)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)
}
