package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/verte-zerg/lexideck/internal/config"
	"github.com/verte-zerg/lexideck/internal/flashcard"
	"github.com/verte-zerg/lexideck/internal/model"
	"github.com/verte-zerg/lexideck/internal/store"
	"github.com/verte-zerg/lexideck/internal/store/pgstore"
)

const (
	driverSQLite   = "sqlite"
	driverPostgres = "postgres"
)

// databaseURLEnv holds the PostgreSQL URL when it is kept out of the config.
const databaseURLEnv = "LEXIDECK_DATABASE_URL"

type deckStore interface {
	flashcard.DeckStore
	Close() error
}

func openStore(ctx context.Context, cfg model.StoreConfig) (deckStore, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	dsn := strings.TrimSpace(cfg.DSN)
	switch driver {
	case "", driverSQLite:
		if dsn == "" {
			dsn = config.DefaultDBPath()
		}
		st, err := store.Open(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open db: %w", err)
		}
		return st, nil
	case driverPostgres, "postgresql", "supabase":
		if dsn == "" {
			dsn = strings.TrimSpace(os.Getenv(databaseURLEnv))
		}
		if dsn == "" {
			return nil, fmt.Errorf("--dsn or %s is required for the %s store", databaseURLEnv, driverPostgres)
		}
		st, err := pgstore.Connect(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown --store %q (use %s or %s)", cfg.Driver, driverSQLite, driverPostgres)
	}
}
