/*
Package types defines the core data structures shared across baliusd's
subsystems: the shard-scoped Worker registry, the write-ahead log entry and
cursor records that back the durable store, and the proxy's consumer/tier
tables.

# Architecture

	┌──────────────────── DATA MODEL ──────────────────────────┐
	│                                                            │
	│  Shard "cardano-mainnet:gold"                             │
	│    ├── Worker "nft-marketplace"  (cursor: 1042)           │
	│    ├── Worker "dex-aggregator"   (cursor: 1042)           │
	│    └── WAL: [1..1042] LogEntry{next_block, undo_blocks}   │
	│                                                            │
	│  Consumer "abc123" → (network, tier)                      │
	│    Tier "gold" → [(1s, 50), (1h, 10000)]                  │
	└────────────────────────────────────────────────────────────┘

WAL entries and worker cursors are scoped by Shard, a string naming a
partition of workers — typically "network:tier". KV entries and log rows
are keyed by worker only and carry no shard.
A Worker is a registered tenant unit identified by a unique name; it may
carry a "failed to register" reason which is tracked out-of-band by the
registry package rather than on this struct, since that state is in-memory
only and process-wide.
*/
package types
