package kv

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	baliuserrors "github.com/cuemby/baliusd/pkg/errors"
	"github.com/cuemby/baliusd/pkg/metrics"
)

// PostgresStore is the production Store, expecting a kv table as described
// in pkg/migrations/.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore builds a PostgresStore over pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, workerID, key string) ([]byte, error) {
	metrics.KVGetTotal.WithLabelValues(workerID).Inc()
	var value []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM kv WHERE worker = $1 AND key = $2`,
		workerID, key,
	).Scan(&value)
	if err == pgx.ErrNoRows {
		return nil, baliuserrors.KvNotFound("key %q not found for worker %q", key, workerID)
	}
	if err != nil {
		return nil, baliuserrors.KvInternal(err, "querying kv")
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, workerID, key string, value []byte) error {
	metrics.KVSetTotal.WithLabelValues(workerID).Inc()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO kv (worker, key, value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (worker, key) DO UPDATE SET value = EXCLUDED.value`,
		workerID, key, value,
	)
	if err != nil {
		return baliuserrors.KvInternal(err, "setting kv")
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, workerID, prefix string) ([]string, error) {
	metrics.KVListTotal.WithLabelValues(workerID).Inc()
	// Escape LIKE's wildcards so prefix is matched literally.
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	rows, err := s.pool.Query(ctx,
		`SELECT key FROM kv WHERE worker = $1 AND key LIKE $2 ORDER BY key`,
		workerID, escaped+"%",
	)
	if err != nil {
		return nil, baliuserrors.KvInternal(err, "listing kv")
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, baliuserrors.KvInternal(err, "scanning kv row")
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, baliuserrors.KvInternal(err, "iterating kv rows")
	}
	return keys, nil
}
