package cli

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/lighthouse/config"
	"go.viam.com/lighthouse/lighthouse"
	"go.viam.com/lighthouse/lighthouse/ippe"
	"go.viam.com/lighthouse/logging"
)

// runEstimate estimates from the samples of cfg, anchored on --reference when set.
func runEstimate(c *cli.Context, cfg *config.Config, logger logging.Logger) (*lighthouse.Estimate, error) {
	reference := cfg.ReferenceSample
	if c.IsSet(flagReference) {
		reference = c.Int(flagReference)
	}

	estimator := lighthouse.NewInitialEstimator(ippe.NewSolver(), logger)
	est, err := estimator.EstimateWithReference(cfg.PoseSamples(), cfg.Geometry(), reference)
	if err != nil {
		if errors.Is(err, lighthouse.ErrCannotLinkBaseStations) {
			warningf(c.App.ErrWriter, "run %q to see which base stations are seen together", "lhestimate graph")
		}
		return nil, errors.Wrapf(err, "estimating from %s", cfg.ConfigFilePath)
	}
	return est, nil
}

// EstimateAction estimates base station and sample poses from the samples of a config and prints them.
func EstimateAction(c *cli.Context) error {
	cfg, logger, err := readConfig(c)
	if err != nil {
		return err
	}
	est, err := runEstimate(c, cfg, logger)
	if err != nil {
		return err
	}

	if c.Bool(flagJSON) {
		return writeEstimateJSON(c.App.Writer, est)
	}
	printf(c.App.Writer, "%s", estimateTables(est))
	printf(c.App.Writer, "%s", solutionErrorSummary(est))
	return nil
}
