package logsink

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	baliuserrors "github.com/cuemby/baliusd/pkg/errors"
	"github.com/cuemby/baliusd/pkg/log"
	"github.com/cuemby/baliusd/pkg/metrics"
	"github.com/cuemby/baliusd/pkg/types"
)

// DefaultThreshold is the buffer size that triggers an automatic flush.
const DefaultThreshold = 1024

// batchSender is the subset of *pgxpool.Pool BatchLogger needs; narrowed
// to an interface so tests can flush against a fake.
type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BatchLogger buffers LogRows and bulk-inserts them into Postgres. Safe
// for concurrent use.
type BatchLogger struct {
	pool      batchSender
	threshold int

	mu  sync.Mutex
	buf []types.LogRow
}

// NewBatchLogger returns a BatchLogger flushing every threshold rows; a
// threshold <= 0 uses DefaultThreshold.
func NewBatchLogger(pool *pgxpool.Pool, threshold int) *BatchLogger {
	return newBatchLogger(pool, threshold)
}

func newBatchLogger(pool batchSender, threshold int) *BatchLogger {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &BatchLogger{pool: pool, threshold: threshold}
}

// Log appends a row to the buffer, flushing synchronously once the buffer
// reaches its threshold.
func (b *BatchLogger) Log(ctx context.Context, row types.LogRow) error {
	metrics.LogWritesTotal.WithLabelValues(row.WorkerID, row.Level).Inc()

	b.mu.Lock()
	b.buf = append(b.buf, row)
	shouldFlush := len(b.buf) >= b.threshold
	b.mu.Unlock()

	if shouldFlush {
		return b.Flush(ctx)
	}
	return nil
}

// Flush bulk-inserts every buffered row and clears the buffer, even on
// failure: a batch worth of log lines is not worth retrying forever.
func (b *BatchLogger) Flush(ctx context.Context) error {
	b.mu.Lock()
	rows := b.buf
	b.buf = nil
	b.mu.Unlock()

	if len(rows) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(
			`INSERT INTO logs (timestamp, worker, level, context, message)
			 VALUES ($1, $2, $3, $4, $5)`,
			r.Timestamp, r.WorkerID, r.Level, r.Context, r.Message,
		)
	}

	br := b.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range rows {
		if _, err := br.Exec(); err != nil {
			log.Errorf("flushing log batch", err)
			return baliuserrors.Store(err, "flushing %d buffered log rows", len(rows))
		}
	}
	return nil
}

// Len reports how many rows are currently buffered, for tests and
// metrics.
func (b *BatchLogger) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buf)
}
