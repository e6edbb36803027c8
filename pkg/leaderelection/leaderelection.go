package leaderelection

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/leaderelection"
	"k8s.io/client-go/tools/leaderelection/resourcelock"

	"github.com/cuemby/baliusd/pkg/log"
	"github.com/cuemby/baliusd/pkg/metrics"
)

// Elector tracks whether this process currently holds the shard's lease.
type Elector struct {
	namespace string
	shard     string
	pod       string

	ttl    time.Duration
	renew  time.Duration
	leader atomic.Bool
}

// New builds an Elector for shard in namespace, identifying this process
// as pod. ttl is the lease duration; renew is how often this process
// tries to acquire or renew it.
func New(namespace, shard, pod string, ttl, renew time.Duration) *Elector {
	return &Elector{namespace: namespace, shard: shard, pod: pod, ttl: ttl, renew: renew}
}

// IsLeader reports whether this process currently holds the shard lease.
func (e *Elector) IsLeader() bool {
	return e.leader.Load()
}

// HolderIdentity is the identity this Elector registers in the Lease.
func (e *Elector) HolderIdentity() string {
	return fmt.Sprintf("shard-%s-pod-%s", e.shard, e.pod)
}

// Run contends for the shard's lease until ctx is cancelled, updating
// IsLeader as leadership changes. It steps down (best-effort) before
// returning.
func (e *Elector) Run(ctx context.Context, clientset kubernetes.Interface) error {
	leLog := log.WithShard(e.shard)

	lock := &resourcelock.LeaseLock{
		LeaseMeta: metaObject(e.namespace, e.shard),
		Client:    clientset.CoordinationV1(),
		LockConfig: resourcelock.ResourceLockConfig{
			Identity: e.HolderIdentity(),
		},
	}

	elector, err := leaderelection.NewLeaderElector(leaderelection.LeaderElectionConfig{
		Lock:          lock,
		LeaseDuration: e.ttl,
		RenewDeadline: e.ttl / 2,
		RetryPeriod:   e.renew,
		Callbacks: leaderelection.LeaderCallbacks{
			OnStartedLeading: func(context.Context) {
				e.leader.Store(true)
				metrics.ShardIsLeader.Set(1)
				leLog.Info().Str("holder", e.HolderIdentity()).Msg("acquired shard lease")
			},
			OnStoppedLeading: func() {
				e.leader.Store(false)
				metrics.ShardIsLeader.Set(0)
				leLog.Warn().Str("holder", e.HolderIdentity()).Msg("lost shard lease")
			},
		},
	})
	if err != nil {
		return fmt.Errorf("building leader elector: %w", err)
	}

	elector.Run(ctx)
	e.leader.Store(false)
	metrics.ShardIsLeader.Set(0)
	return nil
}
