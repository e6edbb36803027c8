package operator

import (
	"context"
	"fmt"
	"time"

	"github.com/cuemby/baliusd/pkg/crd"
	baliuserrors "github.com/cuemby/baliusd/pkg/errors"
	"github.com/cuemby/baliusd/pkg/hostname"
	"github.com/cuemby/baliusd/pkg/log"
	"github.com/cuemby/baliusd/pkg/metrics"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// requeueAfter is the fixed backoff applied on reconcile failure, mirroring
// the original operator's error_policy Action::requeue(Duration::from_secs(5)).
const requeueAfter = 5 * time.Second

// StatusReconciler watches BaliusWorker resources and publishes each
// worker's public endpoint URLs onto its status.
type StatusReconciler struct {
	Client          client.Client
	ExtensionDomain string
}

var _ ctrl.Reconciler = (*StatusReconciler)(nil)

// Reconcile fetches the named BaliusWorker, computes its endpoint
// hostnames from ExtensionDomain and the worker's own auth token, and
// merge-patches them onto the resource's status.
func (r *StatusReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.WithComponent("operator")

	var worker crd.BaliusWorker
	if err := r.Client.Get(ctx, req.NamespacedName, &worker); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return r.fail(req.Name, baliuserrors.Operator(err, "fetching worker %s", req.Name))
	}

	endpointHost, authenticatedHost := hostname.Build(r.ExtensionDomain, worker.Spec.AuthToken)
	path := worker.Name

	patch := client.MergeFrom(worker.DeepCopy())
	worker.Status.EndpointURL = fmt.Sprintf("https://%s/%s", endpointHost, path)
	worker.Status.AuthenticatedEndpointURL = fmt.Sprintf("https://%s/%s", authenticatedHost, path)
	worker.Status.AuthToken = worker.Spec.AuthToken
	worker.Status.Error = ""

	if err := r.Client.Status().Patch(ctx, &worker, patch); err != nil {
		return r.fail(req.Name, baliuserrors.Operator(err, "patching status for worker %s", req.Name))
	}

	logger.Info().Str("worker", req.Name).Msg("reconcile completed")
	return ctrl.Result{}, nil
}

// fail records the reconcile-failure metric and requeues after the fixed
// backoff instead of letting controller-runtime's exponential rate
// limiter decide, matching error_policy's flat 5-second requeue.
func (r *StatusReconciler) fail(resource string, err error) (ctrl.Result, error) {
	log.WithComponent("operator").Error().Err(err).Str("worker", resource).Msg("reconcile failed")
	metrics.OperatorReconcileFailuresTotal.WithLabelValues(resource).Inc()
	return ctrl.Result{RequeueAfter: requeueAfter}, nil
}

// SetupWithManager registers the reconciler against every BaliusWorker
// resource in the cluster.
func (r *StatusReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&crd.BaliusWorker{}).
		Complete(r)
}
