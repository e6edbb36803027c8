/*
Package leaderelection wraps client-go's Lease-based leader election so
exactly one pod per shard runs the chain-sync driver at a time. Every pod
in a shard contends for a Lease named after the shard, holder identity
"shard-<shard>-pod-<pod>"; whichever pod holds the lease sets IsLeader
true until it loses the lease or its context is cancelled.
*/
package leaderelection
