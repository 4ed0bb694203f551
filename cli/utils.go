package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"go.viam.com/lighthouse/config"
	"go.viam.com/lighthouse/logging"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

var warningColor = color.New(color.FgYellow, color.Bold)

// warningf prints a message prefixed with a bold yellow "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	warningColor.Fprint(w, "Warning: ")
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// newLogger returns the logger of a command, at debug level when --debug is set.
func newLogger(c *cli.Context) logging.Logger {
	if c.Bool(flagDebug) {
		return logging.NewDebugLogger("lhestimate")
	}
	return logging.NewLogger("lhestimate")
}

// readConfig reads the config given by --config and returns it with a logger at its log level.
func readConfig(c *cli.Context) (*config.Config, logging.Logger, error) {
	cfg, err := config.Read(c.Path(flagConfig), newLogger(c))
	if err != nil {
		return nil, nil, err
	}
	if c.Bool(flagDebug) {
		return cfg, logging.NewDebugLogger("lhestimate"), nil
	}
	return cfg, logging.NewLoggerAtLevel("lhestimate", cfg.LogLevel), nil
}
