package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l1jgo/groundzero/internal/config"
	"go.uber.org/zap"
)

// ledgerMaxConns caps the pool. A run writes its ledger row once, from
// one goroutine, so a couple of connections is plenty.
const ledgerMaxConns = 2

// DB wraps the pgx pool behind the run ledger.
type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

func NewDB(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns, poolCfg.MinConns = poolSize(cfg)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "groundzero"

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	db := &DB{Pool: pool, log: log.Named("ledger")}
	db.log.Info("ledger database connected",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("max_conns", poolCfg.MaxConns),
	)
	return db, nil
}

// poolSize clamps the configured pool to the ledger's needs. Idle
// connections never exceed the maximum.
func poolSize(cfg config.DatabaseConfig) (maxConns, minConns int32) {
	maxConns = int32(cfg.MaxOpenConns)
	if maxConns <= 0 || maxConns > ledgerMaxConns {
		maxConns = ledgerMaxConns
	}
	minConns = int32(cfg.MaxIdleConns)
	if minConns < 0 {
		minConns = 0
	}
	if minConns > maxConns {
		minConns = maxConns
	}
	return maxConns, minConns
}

func (db *DB) Close() {
	db.Pool.Close()
	db.log.Debug("ledger database closed")
}
