package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"whatsupp/pkg/config"
)

const pingTimeout = 5 * time.Second

// Open builds the runtime pool and verifies connectivity. The process must not
// serve traffic when this fails.
func Open(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	pcfg, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("db: new pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db: ping: %w", err)
	}
	return pool, nil
}

// PoolConfig parses DATABASE_URL and applies the service key and pooler quirks.
func PoolConfig(cfg config.Config) (*pgxpool.Config, error) {
	connString := strings.TrimSpace(cfg.DatabaseURL)
	if connString == "" {
		return nil, fmt.Errorf("db: empty connection string")
	}

	pcfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		// pgx errors can echo the DSN; keep credentials out of logs.
		return nil, fmt.Errorf("db: invalid DATABASE_URL")
	}

	if key := strings.TrimSpace(cfg.DatabaseServiceKey); key != "" {
		pcfg.ConnConfig.Password = key
	}

	// Supabase pooler (PgBouncer) does not support prepared statements.
	// Their pooler DSN typically includes `pgbouncer=true`.
	if strings.Contains(strings.ToLower(connString), "pgbouncer=true") {
		pcfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
		pcfg.ConnConfig.StatementCacheCapacity = 0
		pcfg.ConnConfig.DescriptionCacheCapacity = 0
	}
	return pcfg, nil
}
