/*
Package chainsync gates the (out-of-scope) chain-follower driver behind
shard leadership: it sleeps while this process is not the shard leader,
runs the follower while it is, and treats the follower returning while
still leader as fatal, since that only happens on an unrecoverable driver
error.

This mirrors the original balius instance's chainsync.run loop, with one
documented simplification: leadership loss does not preempt an in-flight
follower run (see Follower doc comment).
*/
package chainsync
