package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/deskops/incident-desk/internal/config"
	"github.com/deskops/incident-desk/internal/domain"
)

// Postgres wraps access to a pgx connection pool.
type Postgres struct {
	Pool *pgxpool.Pool
}

// NewPostgres establishes a connection pool when DSN is provided.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.DSN == "" {
		logger.Warn("POSTGRES_DSN not provided; skipping database connection")
		return &Postgres{Pool: nil}, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("connected to postgres")
	return &Postgres{Pool: pool}, nil
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}

// Ping verifies database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return errors.New("postgres pool not configured")
	}
	return p.Pool.Ping(ctx)
}

// PoolHandle returns the underlying pgx pool.
func (p *Postgres) PoolHandle() *pgxpool.Pool {
	if p == nil {
		return nil
	}
	return p.Pool
}

var incidentColumns = []string{
	"position", "id", "caller", "category", "state", "priority", "owner", "name",
	"on_hold_reason", "resolution_code", "cancellation_code", "change_request", "notes",
}

// PostgresStore keeps the desk in the incidents table. The position column
// preserves listing order.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a store backed by pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Load reads every stored incident in listing order.
func (s *PostgresStore) Load(ctx context.Context) ([]domain.Record, error) {
	const query = `
		SELECT id, caller, category, state, priority, owner, name,
		       on_hold_reason, resolution_code, cancellation_code, change_request, notes
		FROM incidents
		ORDER BY position`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query incidents: %w", err)
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		var rec domain.Record
		if err := rows.Scan(
			&rec.ID,
			&rec.Caller,
			&rec.Category,
			&rec.State,
			&rec.Priority,
			&rec.Owner,
			&rec.Name,
			&rec.OnHoldReason,
			&rec.ResolutionCode,
			&rec.CancellationCode,
			&rec.ChangeRequest,
			&rec.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate incidents: %w", err)
	}
	return records, nil
}

// Save replaces the stored desk with records in a single transaction.
func (s *PostgresStore) Save(ctx context.Context, records []domain.Record) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM incidents`); err != nil {
		return fmt.Errorf("clear incidents: %w", err)
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{"incidents"}, incidentColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			rec := records[i]
			return []any{
				i, rec.ID, rec.Caller, rec.Category, rec.State, rec.Priority, rec.Owner, rec.Name,
				rec.OnHoldReason, rec.ResolutionCode, rec.CancellationCode, rec.ChangeRequest, rec.Notes,
			}, nil
		}))
	if err != nil {
		return fmt.Errorf("copy incidents: %w", err)
	}

	return tx.Commit(ctx)
}
