package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/knownasnaffy/saldo/internal/cli"
	"github.com/knownasnaffy/saldo/internal/config"
	"github.com/knownasnaffy/saldo/internal/ledger"
	"github.com/knownasnaffy/saldo/internal/repository"
	"github.com/knownasnaffy/saldo/pkg/logger"
	"github.com/knownasnaffy/saldo/pkg/sqlite"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was
	// built against. It's set via ldflags when building.
	CommitSHA = ""

	app struct {
		Version kong.VersionFlag `help:"Show version information."`
		Env     string           `help:"Path to an env file." default:".env"`
		cli.Commands
	}
)

func main() {
	ctx := kong.Parse(&app,
		kong.Name("saldo"),
		kong.Description("Track a running balance against a per-item service rate."),
		kong.UsageOnError(),
		kong.Vars{
			"version": buildVersion(),
		},
	)

	if err := run(ctx); err != nil {
		cli.PrintErr(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *kong.Context) error {
	if err := config.Load(app.Env); err != nil {
		return err
	}
	cfg := config.Get()

	if err := logger.Init(cfg.AppDebug); err != nil {
		return err
	}

	path, err := cfg.ResolveDatabasePath()
	if err != nil {
		return err
	}

	db, err := sqlite.Open(path, cfg.AppDebug)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Warn("failed to close database", "error", cerr)
		}
	}()

	if err := db.Migrate(); err != nil {
		return err
	}

	eng := ledger.New(
		repository.NewConfigurationRepository(db),
		repository.NewTransactionRepository(db),
		ledger.WithCurrency(cfg.Currency),
	)

	return ctx.Run(&cli.Context{
		Ledger: eng,
		Out:    os.Stdout,
	})
}

func buildVersion() string {
	if Version == "" {
		Version = "dev"
	}
	if CommitSHA == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, CommitSHA)
}
