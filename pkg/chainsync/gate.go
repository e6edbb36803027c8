package chainsync

import (
	"context"
	"time"

	"github.com/cuemby/baliusd/pkg/log"
)

// LeaderChecker reports whether this process currently holds shard
// leadership; satisfied by *leaderelection.Elector in production.
type LeaderChecker interface {
	IsLeader() bool
}

// Follower runs the chain-sync driver to completion or until ctx is
// cancelled. It is only ever invoked while this process holds shard
// leadership.
//
// Simplification: once started, a Follower run is not preempted if
// leadership is lost mid-run — only a future Gate iteration checks
// IsLeader again. The original driver has no mid-run cancellation point
// for this either, so a lost lease is only observed the next time the
// gate polls.
type Follower func(ctx context.Context) error

// Gate runs follower whenever checker reports leadership, polling every
// pollInterval while not leading. If follower returns while this process
// is still the leader, Gate returns that error: a follower returning is
// only expected on an unrecoverable driver failure, or on context
// cancellation.
func Gate(ctx context.Context, checker LeaderChecker, pollInterval time.Duration, follower Follower) error {
	gateLog := log.WithComponent("chainsync")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if !checker.IsLeader() {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(pollInterval):
				continue
			}
		}

		gateLog.Info().Msg("shard leader acquired, starting chain-sync driver")
		err := follower(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			gateLog.Error().Err(err).Msg("chain-sync driver exited with error while leader")
			return err
		}
		gateLog.Error().Msg("chain-sync driver returned while still leader")
		return nil
	}
}
