// Package db opens the credential store selected by configuration.
package db

import (
	"context"
	"fmt"

	"github.com/rentalinx/backoffice/internal/core/ports"
	"github.com/rentalinx/backoffice/internal/infrastructure/db/mongo"
	"github.com/rentalinx/backoffice/internal/infrastructure/db/postgres"
	"github.com/rentalinx/backoffice/internal/pkg/config"
)

// Store is an opened credential store.
type Store interface {
	ports.AccountRepository
	ports.Pinger
}

// Open connects the backend named by cfg.StoreDriver and prepares its
// indexes or schema. The returned func closes the connection.
func Open(ctx context.Context, cfg *config.Config) (Store, func(context.Context), error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		if err := mongo.EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		closeFn := func(ctx context.Context) { _ = client.Disconnect(ctx) }
		return mongo.NewAccountRepository(database), closeFn, nil

	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewAccountRepository(pool), func(context.Context) { pool.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}
