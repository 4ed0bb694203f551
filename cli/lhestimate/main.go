// Package main is the lhestimate command itself.
package main

import (
	"os"

	"go.viam.com/lighthouse/cli"
	"go.viam.com/lighthouse/logging"
)

func main() {
	logging.ReplaceGlobal(logging.NewLogger("lhestimate"))
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.Global().Fatal(err)
	}
}
