package store

import (
	"context"
	"encoding/binary"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	baliuserrors "github.com/cuemby/baliusd/pkg/errors"
	"github.com/cuemby/baliusd/pkg/types"
)

// PostgresStore is the Store implementation used in production. It expects
// a database already migrated with the wal and cursors tables (see
// pkg/migrations/).
type PostgresStore struct {
	pool  *pgxpool.Pool
	shard string
}

// NewPostgresStore builds a PostgresStore scoped to shard, sharing pool
// with every other shard-scoped store in the process.
func NewPostgresStore(pool *pgxpool.Pool, shard string) *PostgresStore {
	return &PostgresStore{pool: pool, shard: shard}
}

// decodeChainPoint extracts the chain point a block's opaque wire bytes
// resolve to. The real block codec lives in the out-of-scope chain-sync
// driver; baliusd only needs the leading slot number to order entries, so
// it reads the first 8 bytes as a big-endian slot and treats the remainder
// as the block hash.
func decodeChainPoint(nextBlock []byte) *types.ChainPoint {
	if len(nextBlock) < 8 {
		return &types.ChainPoint{}
	}
	return &types.ChainPoint{
		Slot: binary.BigEndian.Uint64(nextBlock[:8]),
		Hash: nextBlock[8:],
	}
}

func (s *PostgresStore) FindChainPoint(ctx context.Context, seq types.LogSeq) (*types.ChainPoint, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT logentry FROM wal WHERE logseq = $1 AND shard = $2`,
		int64(seq), s.shard,
	).Scan(&raw)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, baliuserrors.Store(err, "querying wal")
	}

	entry, err := decodeLogEntry(raw)
	if err != nil {
		return nil, baliuserrors.Store(err, "decoding logentry")
	}
	return decodeChainPoint(entry.NextBlock), nil
}

func (s *PostgresStore) WriteAhead(ctx context.Context, undoBlocks [][]byte, nextBlock []byte) (types.LogSeq, error) {
	entry := types.LogEntry{NextBlock: nextBlock, UndoBlocks: undoBlocks}

	var seq int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO wal (logentry, shard) VALUES ($1, $2) RETURNING logseq`,
		encodeLogEntry(entry), s.shard,
	).Scan(&seq)
	if err != nil {
		return 0, baliuserrors.Store(err, "inserting wal entry")
	}
	return types.LogSeq(seq), nil
}

func (s *PostgresStore) GetWorkerCursor(ctx context.Context, workerID string) (*types.LogSeq, error) {
	var seq int64
	err := s.pool.QueryRow(ctx,
		`SELECT logseq FROM cursors WHERE worker = $1 AND shard = $2`,
		workerID, s.shard,
	).Scan(&seq)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, baliuserrors.Store(err, "querying cursor")
	}
	logSeq := types.LogSeq(seq)
	return &logSeq, nil
}

func (s *PostgresStore) StartAtomicUpdate(logSeq types.LogSeq) AtomicUpdate {
	return &postgresAtomicUpdate{
		pool:    s.pool,
		shard:   s.shard,
		logSeq:  logSeq,
		workers: make(map[string]struct{}),
	}
}

type postgresAtomicUpdate struct {
	pool    *pgxpool.Pool
	shard   string
	logSeq  types.LogSeq
	workers map[string]struct{}
}

func (u *postgresAtomicUpdate) Add(workerID string) {
	u.workers[workerID] = struct{}{}
}

func (u *postgresAtomicUpdate) Commit(ctx context.Context) error {
	if len(u.workers) == 0 {
		return nil
	}

	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return baliuserrors.Store(err, "beginning cursor transaction")
	}
	defer tx.Rollback(ctx)

	for worker := range u.workers {
		_, err := tx.Exec(ctx,
			`INSERT INTO cursors (worker, logseq, shard)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (worker, shard) DO UPDATE SET logseq = EXCLUDED.logseq`,
			worker, int64(u.logSeq), u.shard,
		)
		if err != nil {
			return baliuserrors.Store(err, "updating cursor for %s", worker)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return baliuserrors.Store(err, "committing cursor transaction")
	}
	return nil
}
