package logsink

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/baliusd/pkg/types"
)

// fakeBatchSender records how many times SendBatch was called and how many
// rows each batch carried, optionally failing every exec.
type fakeBatchSender struct {
	calls    int
	lastSize int
	failEach bool
}

type fakeBatchResults struct {
	remaining int
	fail      bool
}

func (r *fakeBatchResults) Exec() (pgconn.CommandTag, error) {
	if r.remaining == 0 {
		return pgconn.CommandTag{}, errors.New("no more queued statements")
	}
	r.remaining--
	if r.fail {
		return pgconn.CommandTag{}, errors.New("boom")
	}
	return pgconn.CommandTag{}, nil
}
func (r *fakeBatchResults) Query() (pgx.Rows, error) { return nil, nil }
func (r *fakeBatchResults) QueryRow() pgx.Row        { return nil }
func (r *fakeBatchResults) Close() error             { return nil }

func (s *fakeBatchSender) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	s.calls++
	s.lastSize = b.Len()
	return &fakeBatchResults{remaining: b.Len(), fail: s.failEach}
}

func TestBatchLoggerFlushesAtThreshold(t *testing.T) {
	sender := &fakeBatchSender{}
	logger := newBatchLogger(sender, 3)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, logger.Log(ctx, types.LogRow{WorkerID: "w", Message: "m"}))
	}
	assert.Equal(t, 0, sender.calls)
	assert.Equal(t, 2, logger.Len())

	require.NoError(t, logger.Log(ctx, types.LogRow{WorkerID: "w", Message: "m"}))
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, 3, sender.lastSize)
	assert.Equal(t, 0, logger.Len())
}

func TestBatchLoggerClearsBufferOnFlushFailure(t *testing.T) {
	sender := &fakeBatchSender{failEach: true}
	logger := newBatchLogger(sender, 10)
	ctx := context.Background()

	require.NoError(t, logger.Log(ctx, types.LogRow{WorkerID: "w", Message: "m"}))
	err := logger.Flush(ctx)
	require.Error(t, err)
	assert.Equal(t, 0, logger.Len())
}

func TestBatchLoggerFlushNoopWhenEmpty(t *testing.T) {
	sender := &fakeBatchSender{}
	logger := newBatchLogger(sender, 10)
	require.NoError(t, logger.Flush(context.Background()))
	assert.Equal(t, 0, sender.calls)
}
