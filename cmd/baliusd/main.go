// Command baliusd runs one shard's instance process (C1-C7): it contends
// for the shard's lease, runs the chain-sync driver while leading,
// reconciles BaliusWorker resources into the WASM runtime, serves
// per-tenant JSON-RPC requests, and renews its Vault signing token.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	"github.com/cuemby/baliusd/pkg/chainsync"
	"github.com/cuemby/baliusd/pkg/config"
	baliuserrors "github.com/cuemby/baliusd/pkg/errors"
	"github.com/cuemby/baliusd/pkg/health"
	"github.com/cuemby/baliusd/pkg/leaderelection"
	"github.com/cuemby/baliusd/pkg/log"
	"github.com/cuemby/baliusd/pkg/logsink"
	"github.com/cuemby/baliusd/pkg/metrics"
	"github.com/cuemby/baliusd/pkg/metricsserver"
	"github.com/cuemby/baliusd/pkg/reconciler"
	"github.com/cuemby/baliusd/pkg/registry"
	"github.com/cuemby/baliusd/pkg/rpcserver"
	"github.com/cuemby/baliusd/pkg/runtime"
	"github.com/cuemby/baliusd/pkg/signer"

	vault "github.com/hashicorp/vault/api"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "baliusd",
	Short:   "baliusd runs a single shard's chain-sync, reconciler and JSON-RPC server",
	Version: Version,
	RunE:    run,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("baliusd version %s\nCommit: %s\n", Version, Commit))
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", true, "Output logs in JSON format")
	rootCmd.Flags().String("config", "", "Path to an explicit config file")
	cobra.OnInitialize(initLogging)
}

func initLogging() {
	level, _ := rootCmd.PersistentFlags().GetString("log-level")
	jsonOutput, _ := rootCmd.PersistentFlags().GetBool("log-json")
	log.Init(log.Config{Level: log.Level(level), JSONOutput: jsonOutput})
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load() // best-effort, mirrors the original's dotenv::dotenv().ok()

	explicitConfig, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(explicitConfig)
	if err != nil {
		return baliuserrors.Config(err, "loading config")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	metrics.SetVersion(Version)

	// pkg/store, pkg/kv and pkg/logsink implement the WAL, key-value and
	// application-log backends a WASM worker's host calls read and write
	// through. The WASM host runtime that would invoke them is the
	// platform's one out-of-scope external component (see
	// pkg/runtime.Runtime's doc comment), so this process's own job ends
	// at opening the pool those backends share. logSink is the only one of
	// the three built here; this process appends nothing to it and only
	// flushes it on return.
	pool, err := pgxpool.New(ctx, cfg.Connection)
	if err != nil {
		return baliuserrors.Store(err, "connecting to postgres")
	}
	defer pool.Close()

	logSink := logsink.NewBatchLogger(pool, logsink.DefaultThreshold)
	defer logSink.Flush(context.Background())

	restConfig, err := rest.InClusterConfig()
	if err != nil {
		return baliuserrors.Config(err, "loading in-cluster kubernetes config")
	}
	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return baliuserrors.Config(err, "building kubernetes clientset")
	}
	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return baliuserrors.Config(err, "building kubernetes dynamic client")
	}

	elector := leaderelection.New(cfg.Namespace, cfg.Shard, cfg.Pod, cfg.LeaseTTL(), cfg.LeaseRenewInterval())
	go func() {
		if err := elector.Run(ctx, clientset); err != nil {
			log.Errorf("leader election exited: %v", err)
		}
	}()

	vaultCfg := vault.DefaultConfig()
	vaultCfg.Address = cfg.VaultAddress
	vaultClient, err := vault.NewClient(vaultCfg)
	if err != nil {
		return baliuserrors.Config(err, "building vault client")
	}
	vaultClient.SetToken(cfg.VaultToken)
	go signer.RunTokenRenewer(ctx, vaultClient, cfg.VaultTokenRenewInterval(), cfg.VaultTokenRenewIncrementOrDefault())

	// RegisterWorker/HandleRequest dispatch ultimately runs inside the WASM
	// host runtime itself, which this platform treats as an external,
	// out-of-scope collaborator (see runtime.Runtime's doc comment): no
	// production implementation exists anywhere in this module. FakeRuntime
	// is wired here as the only concrete Runtime available, standing in for
	// the real host process this binary would otherwise dial into.
	wasmRuntime := runtime.NewFakeRuntime()

	failedWorkers := registry.New()

	watcher := reconciler.NewK8sWatcher(ctx, dynamicClient, cfg.Namespace)
	recon := reconciler.New(cfg.Network, wasmRuntime, failedWorkers)
	go recon.Run(ctx, watcher)

	go func() {
		err := chainsync.Gate(ctx, elector, cfg.LeaseRenewInterval(), func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		})
		if err != nil {
			log.Errorf("chain-sync gate exited: %v", err)
		}
	}()

	rpc := rpcserver.New(cfg.RPC.ListenAddress, wasmRuntime, failedWorkers)
	go func() {
		if err := rpc.ListenAndServe(); err != nil {
			log.Errorf("json-rpc server exited: %v", err)
		}
	}()

	metricsSrv := metricsserver.New(cfg.PrometheusAddr)
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil {
			log.Errorf("metrics server exited: %v", err)
		}
	}()

	vaultProber := health.NewProber("vault", health.NewHTTPChecker(cfg.VaultAddress+"/v1/sys/health"), health.DefaultConfig())
	go vaultProber.Run(ctx)

	pgConn := pool.Config().ConnConfig
	postgresProber := health.NewProber("postgres", health.NewTCPChecker(fmt.Sprintf("%s:%d", pgConn.Host, pgConn.Port)), health.DefaultConfig())
	go postgresProber.Run(ctx)

	log.Info(fmt.Sprintf("baliusd shard %s started as pod %s", cfg.Shard, cfg.Pod))

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := rpc.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutting down json-rpc server: %v", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutting down metrics server: %v", err)
	}

	log.Info("shutdown complete")
	return nil
}
