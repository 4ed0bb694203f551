// Package cli contains the lhestimate command line application.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	flagDebug     = "debug"
	flagConfig    = "config"
	flagJSON      = "json"
	flagReference = "reference"
	flagOut       = "out"
	flagLH2       = "lh2"
	flagSamples   = "samples"
	flagAll       = "all-visible"
)

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	configFlag := &cli.PathFlag{
		Name:      flagConfig,
		Aliases:   []string{"c"},
		Usage:     "load samples from `FILE`",
		Required:  true,
		TakesFile: true,
	}
	return &cli.App{
		Name:            "lhestimate",
		Usage:           "estimate lighthouse base station poses from recorded samples",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "estimate",
				Usage: "estimate base station and sample poses in the frame of a reference sample",
				Flags: []cli.Flag{
					configFlag,
					&cli.BoolFlag{
						Name:  flagJSON,
						Usage: "print the estimate as json",
					},
					&cli.IntFlag{
						Name:  flagReference,
						Usage: "index of the sample defining the global frame, overrides reference_sample of the config",
					},
				},
				Action: EstimateAction,
			},
			{
				Name:  "simulate",
				Usage: "write the samples of a synthetic room with four base stations",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:      flagOut,
						Aliases:   []string{"o"},
						Usage:     "write the samples to `FILE`, - for standard output",
						Value:     "-",
						TakesFile: true,
					},
					&cli.IntFlag{
						Name:  flagSamples,
						Usage: "number of samples",
						Value: 8,
					},
					&cli.BoolFlag{
						Name:  flagLH2,
						Usage: "store angles as measured by LH2 base stations",
					},
					&cli.BoolFlag{
						Name:  flagAll,
						Usage: "let every sample see every base station",
					},
				},
				Action: SimulateAction,
			},
			{
				Name:  "plot",
				Usage: "estimate and save a top view of base stations and samples",
				Flags: []cli.Flag{
					configFlag,
					&cli.PathFlag{
						Name:      flagOut,
						Aliases:   []string{"o"},
						Usage:     "save the plot to `FILE`, the extension selects the format",
						Value:     "estimate.png",
						TakesFile: true,
					},
					&cli.IntFlag{
						Name:  flagReference,
						Usage: "index of the sample defining the global frame, overrides reference_sample of the config",
					},
				},
				Action: PlotAction,
			},
			{
				Name:   "graph",
				Usage:  "print which base stations can be linked to the reference sample",
				Flags:  []cli.Flag{configFlag},
				Action: GraphAction,
			},
		},
	}
}
