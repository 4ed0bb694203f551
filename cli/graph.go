package cli

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/lighthouse/lighthouse"
)

// GraphAction prints the groups of base stations linked by being seen together, and the base stations
// that cannot be linked to the reference sample.
func GraphAction(c *cli.Context) error {
	cfg, logger, err := readConfig(c)
	if err != nil {
		return err
	}

	samples := cfg.PoseSamples()
	graph := lighthouse.NewVisibilityGraphFromSamples(samples)
	logger.Debugw("built visibility graph", "base_stations", graph.BaseStations())

	printf(c.App.Writer, "%s", visibilityTable(graph))

	reference := samples[cfg.ReferenceSample].BaseStations()
	if len(reference) == 0 {
		return errors.Errorf("reference sample %d sees no base station", cfg.ReferenceSample)
	}
	if unreachable := graph.Unreachable(reference); len(unreachable) > 0 {
		warningf(c.App.ErrWriter, "base stations %v cannot be linked to reference sample %d", unreachable, cfg.ReferenceSample)
		return errors.Wrapf(lighthouse.ErrCannotLinkBaseStations, "unreachable base stations %v", unreachable)
	}
	printf(c.App.Writer, "all base stations can be linked to reference sample %d", cfg.ReferenceSample)
	return nil
}
