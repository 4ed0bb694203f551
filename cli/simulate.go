package cli

import (
	"math"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	goutils "go.viam.com/utils"

	"go.viam.com/lighthouse/config"
	"go.viam.com/lighthouse/lighthouse"
	"go.viam.com/lighthouse/spatialmath"
)

// roomScene returns four base stations in the upper corners of a 4 x 4 m room, all looking at its centre,
// and numSamples rig poses on a circle around the centre. Unless allVisible is set, sample i only sees
// base stations i and i+1 (mod 4), so that linking them takes more than one sample.
func roomScene(numSamples int, allVisible bool) *lighthouse.Scene {
	scene := &lighthouse.Scene{
		Geometry:     lighthouse.DeckSensorPositions(),
		BaseStations: map[lighthouse.BaseStationID]spatialmath.Pose{},
	}
	corners := []r3.Vector{{X: 2, Y: 2, Z: 2.5}, {X: -2, Y: 2, Z: 2.5}, {X: -2, Y: -2, Z: 2.5}, {X: 2, Y: -2, Z: 2.5}}
	for i, p := range corners {
		scene.BaseStations[lighthouse.BaseStationID(i)] = spatialmath.NewPose(p, &spatialmath.EulerAngles{
			Yaw:   math.Atan2(-p.Y, -p.X),
			Pitch: math.Atan2(p.Z, math.Hypot(p.X, p.Y)),
		})
	}

	for i := 0; i < numSamples; i++ {
		a := 2 * math.Pi * float64(i) / float64(numSamples)
		scene.Rigs = append(scene.Rigs, spatialmath.NewPose(
			r3.Vector{X: 0.5 * math.Cos(a), Y: 0.5 * math.Sin(a), Z: 0.1 + 0.05*float64(i%3)},
			&spatialmath.EulerAngles{Roll: 0.02 * float64(i%2), Yaw: 0.7 * float64(i)},
		))
	}

	if !allVisible {
		scene.Visible = func(sample int, id lighthouse.BaseStationID) bool {
			n := len(corners)
			return int(id) == sample%n || int(id) == (sample+1)%n
		}
	}
	return scene
}

// SimulateAction writes the samples of a synthetic room to a config file.
func SimulateAction(c *cli.Context) error {
	numSamples := c.Int(flagSamples)
	if numSamples < 1 {
		return errors.Errorf("need at least 1 sample, got %d", numSamples)
	}
	logger := newLogger(c)

	scene := roomScene(numSamples, c.Bool(flagAll))
	cfg, err := config.FromPoseSamples(scene.Samples(), scene.Geometry, c.Bool(flagLH2))
	if err != nil {
		return err
	}

	out := c.Path(flagOut)
	if out == "-" {
		return cfg.Write(c.App.Writer)
	}
	//nolint:gosec
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer goutils.UncheckedErrorFunc(f.Close)
	if err := cfg.Write(f); err != nil {
		return err
	}

	logger.Infow("wrote simulated samples", "path", out, "samples", numSamples)
	printf(c.App.Writer, "expected base station poses in the frame of sample 0:\n%s",
		baseStationTable(scene.ExpectedBaseStations(0)))
	return nil
}
