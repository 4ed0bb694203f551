package cli

import (
	"fmt"
	"image/color"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"go.viam.com/lighthouse/lighthouse"
	"go.viam.com/lighthouse/utils"
)

var (
	baseStationColor = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	sampleColor      = color.RGBA{R: 40, G: 80, B: 200, A: 255}
)

// topView plots the x and y coordinates of the estimated base stations and samples.
func topView(est *lighthouse.Estimate) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top view in the frame of sample %d", est.Reference)
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	bsPts := make(plotter.XYs, 0, len(est.BaseStations))
	bsNames := make([]string, 0, len(est.BaseStations))
	for _, id := range utils.SortedKeys(est.BaseStations) {
		pt := est.BaseStations[id].Point()
		bsPts = append(bsPts, plotter.XY{X: pt.X, Y: pt.Y})
		bsNames = append(bsNames, fmt.Sprintf("bs %d", id))
	}
	bsScatter, err := plotter.NewScatter(bsPts)
	if err != nil {
		return nil, errors.Wrap(err, "plotting base stations")
	}
	bsScatter.GlyphStyle.Shape = draw.TriangleGlyph{}
	bsScatter.GlyphStyle.Color = baseStationColor
	bsScatter.GlyphStyle.Radius = vg.Points(4)
	bsLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: bsPts, Labels: bsNames})
	if err != nil {
		return nil, errors.Wrap(err, "labelling base stations")
	}

	samplePts := make(plotter.XYs, 0, len(est.Samples))
	for _, s := range est.Samples {
		pt := s.Pose.Point()
		samplePts = append(samplePts, plotter.XY{X: pt.X, Y: pt.Y})
	}
	sampleLine, err := plotter.NewLine(samplePts)
	if err != nil {
		return nil, errors.Wrap(err, "plotting samples")
	}
	sampleLine.Color = sampleColor
	sampleLine.Width = vg.Points(1)
	sampleLine.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	sampleScatter, err := plotter.NewScatter(samplePts)
	if err != nil {
		return nil, errors.Wrap(err, "plotting samples")
	}
	sampleScatter.GlyphStyle.Color = sampleColor

	p.Add(plotter.NewGrid(), bsScatter, bsLabels, sampleLine, sampleScatter)
	p.Legend.Add("base stations", bsScatter)
	p.Legend.Add("samples", sampleScatter)
	p.Legend.Top = true
	return p, nil
}

// PlotAction estimates from the samples of a config and saves a top view of the result.
func PlotAction(c *cli.Context) error {
	cfg, logger, err := readConfig(c)
	if err != nil {
		return err
	}
	est, err := runEstimate(c, cfg, logger)
	if err != nil {
		return err
	}

	p, err := topView(est)
	if err != nil {
		return err
	}
	out := c.Path(flagOut)
	if err := p.Save(6*vg.Inch, 6*vg.Inch, out); err != nil {
		return errors.Wrapf(err, "saving plot to %s", out)
	}
	logger.Infow("saved top view", "path", out)
	return nil
}
