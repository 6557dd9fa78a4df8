package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/fleximart-data/fleximart/pkg/config"
	"github.com/fleximart-data/fleximart/pkg/mysql"
)

func Schema() *cli.Command {
	return &cli.Command{
		Name:      "schema",
		Usage:     "create the target tables without running the pipeline",
		ArgsUsage: "[path to config file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "do not ask for confirmation when the target database looks like production",
			},
		},
		Action: func(c *cli.Context) error {
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

			if err := db.EnsureSchema(context.Background()); err != nil {
				errorPrinter.Printf("Failed to create the schema: %v\n", err)
				return cli.Exit("", 1)
			}

			successPrinter.Printf("Schema is ready in database %s\n", cfg.MySQL.Database)
			return nil
		},
	}
}
