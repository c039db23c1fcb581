// seed provisions the back-office administrator and the demo accounts.
//
// Usage:
//
//	seed [--dry-run] [--only-admin]
//
// Existing accounts are updated in place: password reset, role synced and
// re-activated.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/rentalinx/backoffice/internal/core/service"
	"github.com/rentalinx/backoffice/internal/infrastructure/db"
	"github.com/rentalinx/backoffice/internal/pkg/config"
	"github.com/rentalinx/backoffice/internal/seed"
	"github.com/rentalinx/backoffice/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var opts seed.Options

	flagSet := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	flagSet.BoolVar(&opts.DryRun, "dry-run", false, "list the planned actions without writing")
	flagSet.BoolVar(&opts.OnlyAdmin, "only-admin", false, "seed the administrator only")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "backoffice-seed",
	})

	ctx := context.Background()
	store, closeStore, err := db.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	defer closeStore(ctx)

	accounts := service.NewAccountService(store, service.NewCompositeHasher(), logger.Component("accounts"))
	results, err := seed.New(store, accounts, log).Run(ctx, opts)
	if err != nil {
		return err
	}

	for _, r := range results {
		fmt.Printf("%-7s %-28s %s\n", r.Action, r.Email, r.Role)
	}
	return nil
}
