package main

import (
	"os"

	"github.com/azuldeco/azul-admin/internal/config"
	"github.com/azuldeco/azul-admin/internal/db"
	"github.com/azuldeco/azul-admin/internal/logging"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "azul-admin",
		Usage:  "Azul Deco back office API",
		Action: serve,
		Commands: []*cli.Command{
			{Name: "serve", Usage: "run the HTTP API (default)", Action: serve},
			{Name: "migrate", Usage: "apply the schema and exit", Action: migrateOnly},
			{Name: "seed", Usage: "apply the schema, insert reference data and exit", Action: seedOnly},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("azul-admin failed")
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a, err := NewApp(c.Context, cfg, logging.New(cfg.Log))
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(c.Context)
}

func migrateOnly(*cli.Context) error {
	cfg, l, conn, err := connect()
	if err != nil {
		return err
	}
	if err := db.Migrate(conn, cfg.Database.Driver, cfg.Database.ConnString(), cfg.App.Migrations, l); err != nil {
		return err
	}
	l.Info("migrations completed")
	return nil
}

func seedOnly(*cli.Context) error {
	cfg, l, conn, err := connect()
	if err != nil {
		return err
	}
	if err := db.Migrate(conn, cfg.Database.Driver, cfg.Database.ConnString(), cfg.App.Migrations, l); err != nil {
		return err
	}
	if err := db.Seed(conn); err != nil {
		return err
	}
	l.Info("seed completed")
	return nil
}
