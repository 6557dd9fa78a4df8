package main

import (
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/fleximart-data/fleximart/cmd"
)

var (
	version = "dev"
	commit  = ""
)

func main() {
	isDebug := false
	color.NoColor = false

	app := &cli.App{
		Name:     "fleximart",
		Version:  version,
		Usage:    "The CLI for loading FlexiMart's raw CSV extracts into the relational MySQL schema",
		Compiled: time.Now(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "debug",
				Value:       false,
				Usage:       "show debug information",
				Destination: &isDebug,
			},
		},
		Commands: []*cli.Command{
			cmd.Run(&isDebug),
			cmd.Schema(),
			cmd.VersionCmd(commit),
		},
	}

	_ = app.Run(os.Args)
}
