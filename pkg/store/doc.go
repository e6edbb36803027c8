/*
Package store persists the per-shard write-ahead log (WAL) and worker
cursors that drive baliusd's chain-sync fan-out, using Postgres as the
backing database.

# Architecture

	┌──────────────────── POSTGRES STORE ──────────────────────┐
	│                                                            │
	│  Table wal      (shard, logseq BIGSERIAL, logentry BYTEA) │
	│  Table cursors  (shard, worker, logseq)                   │
	│                                                            │
	│  WriteAhead(undo, next) ──▶ INSERT INTO wal RETURNING logseq
	│  FindChainPoint(seq)    ──▶ SELECT logentry FROM wal       │
	│  GetWorkerCursor(id)    ──▶ SELECT logseq FROM cursors     │
	│  AtomicUpdate           ──▶ one INSERT..ON CONFLICT         │
	│                             per touched worker, in a       │
	│                             single transaction              │
	└────────────────────────────────────────────────────────────┘

Every query is scoped by shard, so a single Postgres database can back
multiple shards without cross-contamination. LogEntry values are encoded
with protobuf (see entry.go) before being written to the logentry
column, matching the wire format the chain-sync driver already speaks.

A PostgresStore is scoped to one shard (NewPostgresStore takes the shard
name); neither the reconciler nor the JSON-RPC server takes a Store.
AtomicUpdate batches cursor advances for every worker
that consumed a given WAL entry into one transaction, so a crash between
commits can never leave cursors pointing past an entry a worker never
actually saw.
*/
package store
