// Command baliusd-operator runs the CRD status operator (C9): it watches
// BaliusWorker resources cluster-wide and publishes each worker's public
// endpoint URLs onto its status.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	k8sruntime "k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	ctrlmetricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	"github.com/cuemby/baliusd/pkg/config"
	"github.com/cuemby/baliusd/pkg/crd"
	"github.com/cuemby/baliusd/pkg/log"
	"github.com/cuemby/baliusd/pkg/metrics"
	"github.com/cuemby/baliusd/pkg/operator"
)

var Version = "dev"

func main() {
	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true})

	_ = godotenv.Load() // best-effort, mirrors the original's dotenv::dotenv().ok()

	cfg, err := config.GetOperatorConfig()
	if err != nil {
		fail("loading operator config", err)
	}

	metrics.SetVersion(Version)

	scheme := k8sruntime.NewScheme()
	if err := crd.AddToScheme(scheme); err != nil {
		fail("registering scheme", err)
	}

	// MetricsDelay staggers this operator's manager start relative to the
	// shard instances it watches over, so a fleet-wide rollout doesn't have
	// every pod scrape-ready in the same instant, mirroring the original
	// operator's METRICS_DELAY env var.
	if cfg.MetricsDelay > 0 {
		time.Sleep(cfg.MetricsDelay)
	}

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme:  scheme,
		Metrics: ctrlmetricsserver.Options{BindAddress: cfg.PrometheusURL},
	})
	if err != nil {
		fail("building controller manager", err)
	}

	reconciler := &operator.StatusReconciler{
		Client:          mgr.GetClient(),
		ExtensionDomain: cfg.ExtensionDomain,
	}
	if err := reconciler.SetupWithManager(mgr); err != nil {
		fail("setting up reconciler", err)
	}

	log.Info("baliusd-operator started")
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		fail("manager exited", err)
	}
}

func fail(action string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", action, err)
	os.Exit(1)
}
