package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/Rakhulsr/go-admin-dashboard/app/configs"
	"github.com/Rakhulsr/go-admin-dashboard/app/db/seeders"
	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/Rakhulsr/go-admin-dashboard/app/models/migrations"
	"github.com/Rakhulsr/go-admin-dashboard/app/services"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

// NewCommand builds the command line. Running it without a subcommand
// starts the server.
func NewCommand(env configs.ENV, log *logrus.Logger) *cli.Command {
	serve := func(ctx context.Context, c *cli.Command) error {
		return Serve(ctx, env, log)
	}

	return &cli.Command{
		Name:   "admin-dashboard",
		Usage:  "Catalog admin dashboard service",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP API",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "Create or update the catalog tables",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "media", Usage: "only add the product media columns to an existing books table"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env, log)
					if err != nil {
						return err
					}
					if c.Bool("media") {
						added, err := migrations.AddMediaColumns(db)
						if err != nil {
							return err
						}
						log.WithField("columns", added).Info("media columns migration complete")
						return nil
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Info("migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Fill the catalog with demo data",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "books", Value: seeders.DefaultOptions().BooksPerCategory, Usage: "books per category"},
					&cli.IntFlag{Name: "orders", Value: seeders.DefaultOptions().Orders},
					&cli.IntFlag{Name: "seed", Usage: "random seed, defaults to the current time"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env, log)
					if err != nil {
						return err
					}
					opts := seeders.DefaultOptions()
					opts.BooksPerCategory = int(c.Int("books"))
					opts.Orders = int(c.Int("orders"))
					if s := c.Int("seed"); s != 0 {
						opts.Seed = int64(s)
					}
					_, err = seeders.DBSeed(db, opts, log)
					return err
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate session and CSRF keys for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Value: ".env.new_keys", Usage: "file to write the keys to"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					keys, err := configs.NewSessionKeys()
					if err != nil {
						return err
					}
					if err := configs.WriteKeyFile(c.String("out"), keys); err != nil {
						return err
					}
					fmt.Fprint(c.Root().Writer, keys.Env())
					log.WithField("file", c.String("out")).Info("keys written, regenerating them ends every admin session")
					return nil
				},
			},
			{
				Name:      "hash-password",
				Usage:     "Print the bcrypt hash to use as ADMIN_PASSWORD_HASH",
				ArgsUsage: "<password>",
				Action: func(ctx context.Context, c *cli.Command) error {
					password := c.Args().First()
					if password == "" {
						return errors.New("password argument is required")
					}
					hash, err := services.HashPassword(password)
					if err != nil {
						return err
					}
					fmt.Println(hash)
					return nil
				},
			},
			{
				Name:  "capabilities",
				Usage: "Show which optional schema features the database supports",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env, log)
					if err != nil {
						return err
					}
					_, caps := probeCapabilities(db, log)
					flags := caps.Snapshot()
					names := make([]string, 0, len(flags))
					for name := range flags {
						names = append(names, string(name))
					}
					sort.Strings(names)
					for _, name := range names {
						fmt.Printf("%-16s %v\n", name, flags[gateway.Capability(name)])
					}
					return nil
				},
			},
		},
	}
}

func RunCli(env configs.ENV, log *logrus.Logger) {
	if err := NewCommand(env, log).Run(context.Background(), os.Args); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}
