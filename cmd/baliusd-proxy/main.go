// Command baliusd-proxy runs the edge proxy (C8): a single process in
// front of every shard that authenticates a tenant's dmtr-api-key,
// enforces their tier's rate limits, and forwards to the right shard's
// JSON-RPC server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"

	"github.com/cuemby/baliusd/pkg/config"
	"github.com/cuemby/baliusd/pkg/consumer"
	baliuserrors "github.com/cuemby/baliusd/pkg/errors"
	"github.com/cuemby/baliusd/pkg/log"
	"github.com/cuemby/baliusd/pkg/metrics"
	"github.com/cuemby/baliusd/pkg/metricsserver"
	"github.com/cuemby/baliusd/pkg/proxy"
	"github.com/cuemby/baliusd/pkg/ratelimit"
)

var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "baliusd-proxy",
	Short:   "baliusd-proxy routes tenant requests to the right shard",
	Version: Version,
	RunE:    run,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", true, "Output logs in JSON format")
	rootCmd.Flags().String("config", "", "Path to an explicit config file")
	cobra.OnInitialize(func() {
		level, _ := rootCmd.PersistentFlags().GetString("log-level")
		jsonOutput, _ := rootCmd.PersistentFlags().GetBool("log-json")
		log.Init(log.Config{Level: log.Level(level), JSONOutput: jsonOutput})
	})
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load() // best-effort, mirrors the original's dotenv::dotenv().ok()

	explicitConfig, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadProxyConfig(explicitConfig)
	if err != nil {
		return baliuserrors.Config(err, "loading proxy config")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	metrics.SetVersion(Version)

	restConfig, err := rest.InClusterConfig()
	if err != nil {
		return baliuserrors.Config(err, "loading in-cluster kubernetes config")
	}
	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return baliuserrors.Config(err, "building kubernetes dynamic client")
	}

	source := consumer.NewCRDSource(dynamicClient, cfg.ProxyNamespace)
	registry := consumer.NewRegistry(source)
	if err := registry.Refresh(ctx); err != nil {
		return baliuserrors.Config(err, "loading initial consumer registry")
	}
	go registry.Run(ctx, cfg.ConsumerRefreshInterval())

	limiter := ratelimit.New(cfg.Tiers)

	p := proxy.New(cfg.ListenAddress, cfg.BaliusDNS, cfg.BaliusPort, cfg.HealthEndpoint, cfg.ProxyNamespace, registry, limiter)
	go func() {
		if err := p.ListenAndServe(); err != nil {
			log.Errorf("edge proxy exited: %v", err)
		}
	}()

	metricsSrv := metricsserver.New("0.0.0.0:9090")
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil {
			log.Errorf("metrics server exited: %v", err)
		}
	}()

	log.Info("baliusd-proxy started")

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := p.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutting down edge proxy: %v", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutting down metrics server: %v", err)
	}

	log.Info("shutdown complete")
	return nil
}
