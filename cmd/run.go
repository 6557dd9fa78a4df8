package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/fleximart-data/fleximart/pkg/config"
	"github.com/fleximart-data/fleximart/pkg/mysql"
	"github.com/fleximart-data/fleximart/pkg/pipeline"
)

func Run(isDebug *bool) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "run the full pipeline: clean the raw extracts, load them into MySQL and write the data quality report",
		ArgsUsage: "[path to config file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "do not ask for confirmation when the target database looks like production",
			},
		},
		Action: func(c *cli.Context) error {
			logger := makeLogger(*isDebug)

			configPath := c.Args().Get(0)
			if configPath == "" {
				configPath = config.DefaultConfigFile
			}

			cfg, err := config.LoadFromFile(fs, configPath)
			if err != nil {
				errorPrinter.Printf("Failed to load the config: %v\n", err)
				return cli.Exit("", 1)
			}

			if err := confirmProductionTarget(cfg.MySQL.Database, c.Bool("force"), os.Stdin); err != nil {
				return err
			}

			db, err := mysql.NewDB(&cfg.MySQL)
			if err != nil {
				errorPrinter.Printf("Failed to open the database connection: %v\n", err)
				return cli.Exit("", 1)
			}
			defer db.Close()

			ctx := context.Background()
			if err := db.Ping(ctx); err != nil {
				errorPrinter.Printf("Failed to connect to MySQL: %v\n", err)
				return cli.Exit("", 1)
			}

			rep, err := pipeline.NewRunner(fs, cfg, db, logger).Run(ctx)
			if err != nil {
				errorPrinter.Printf("Pipeline failed: %v\n", err)
				return cli.Exit("", 1)
			}

			rep.Render(os.Stdout)

			if err := rep.Write(fs, cfg.ReportPath); err != nil {
				errorPrinter.Printf("Failed to write the report: %v\n", err)
				return cli.Exit("", 1)
			}

			successPrinter.Printf("Report written to %s\n", cfg.ReportPath)
			return nil
		},
	}
}
