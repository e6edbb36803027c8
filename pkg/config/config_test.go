package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	os.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxPoolSize != 15 {
		t.Errorf("MaxPoolSize = %d, want 15", cfg.MaxPoolSize)
	}
	if cfg.LeaseTTL().Seconds() != 10 {
		t.Errorf("LeaseTTL = %v, want 10s", cfg.LeaseTTL())
	}
	if cfg.VaultTokenRenewIncrementOrDefault() != "1h" {
		t.Errorf("VaultTokenRenewIncrementOrDefault = %q, want 1h", cfg.VaultTokenRenewIncrementOrDefault())
	}
	if cfg.RPC.ListenAddress != "0.0.0.0:8080" {
		t.Errorf("RPC.ListenAddress = %q", cfg.RPC.ListenAddress)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("network: cardano-mainnet\nmax_pool_size: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Network != "cardano-mainnet" {
		t.Errorf("Network = %q", cfg.Network)
	}
	if cfg.MaxPoolSize != 30 {
		t.Errorf("MaxPoolSize = %d, want 30", cfg.MaxPoolSize)
	}
}

func TestLoadProxyConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	os.Chdir(dir)

	cfg, err := LoadProxyConfig("")
	if err != nil {
		t.Fatalf("LoadProxyConfig: %v", err)
	}
	if cfg.ListenAddress != "0.0.0.0:8443" {
		t.Errorf("ListenAddress = %q", cfg.ListenAddress)
	}
	if cfg.HealthEndpoint != "/healthz" {
		t.Errorf("HealthEndpoint = %q", cfg.HealthEndpoint)
	}
	if cfg.BaliusPort != 8080 {
		t.Errorf("BaliusPort = %d, want 8080", cfg.BaliusPort)
	}
}

func TestOperatorConfigFromEnvRequiresMetricsDelay(t *testing.T) {
	os.Unsetenv("EXTENSION_DOMAIN")
	os.Unsetenv("METRICS_DELAY")
	os.Unsetenv("PROMETHEUS_URL")

	if _, err := OperatorConfigFromEnv(); err == nil {
		t.Fatal("expected error when METRICS_DELAY is unset")
	}

	os.Setenv("METRICS_DELAY", "30")
	os.Setenv("PROMETHEUS_URL", "http://prometheus:9090")
	defer os.Unsetenv("METRICS_DELAY")
	defer os.Unsetenv("PROMETHEUS_URL")

	cfg, err := OperatorConfigFromEnv()
	if err != nil {
		t.Fatalf("OperatorConfigFromEnv: %v", err)
	}
	if cfg.ExtensionDomain != "balius-m1.demeter.run" {
		t.Errorf("ExtensionDomain = %q", cfg.ExtensionDomain)
	}
	if cfg.MetricsDelay.Seconds() != 30 {
		t.Errorf("MetricsDelay = %v, want 30s", cfg.MetricsDelay)
	}
}
