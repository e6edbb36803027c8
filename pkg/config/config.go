/*
Package config loads baliusd's layered configuration the way the original
balius instance did: an optional file named by $BALIUSD_CONFIG, an optional
baliusd.yaml in the working directory, an explicit --config file (mandatory
once passed), and finally environment overrides with prefix BALIUSD_ and
"_" as the nested-key separator. Every optional field carries the default
named in the spec.
*/
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level configuration for the baliusd instance process
// (chain-follower + JSON-RPC server + signer + reconciler, per pod).
type Config struct {
	Network      string `mapstructure:"network"`
	Connection   string `mapstructure:"connection"`
	MaxPoolSize  int    `mapstructure:"max_pool_size"`
	Namespace    string `mapstructure:"namespace"`
	Pod          string `mapstructure:"pod"`
	Shard        string `mapstructure:"shard"`

	LeaseTTLSeconds   int `mapstructure:"lease_ttl_seconds"`
	LeaseRenewSeconds int `mapstructure:"lease_renew_seconds"`

	RPC       RPCConfig       `mapstructure:"rpc"`
	Chainsync ChainsyncConfig `mapstructure:"chainsync"`

	PrometheusAddr string `mapstructure:"prometheus_addr"`

	VaultAddress             string `mapstructure:"vault_address"`
	VaultToken               string `mapstructure:"vault_token"`
	VaultTokenRenewSeconds   int    `mapstructure:"vault_token_renew_seconds"`
	VaultTokenRenewIncrement string `mapstructure:"vault_token_renew_increment"`

	HTTPClientTimeoutSeconds int `mapstructure:"http_client_timeout_seconds"`
}

// RPCConfig configures the per-tenant JSON-RPC HTTP server (C7).
type RPCConfig struct {
	ListenAddress string `mapstructure:"listen_address"`
}

// ChainsyncConfig is forwarded verbatim to the (out-of-scope) chain-sync
// driver; baliusd only needs to know it exists and to pass it through.
type ChainsyncConfig struct {
	Peer         string `mapstructure:"peer"`
	IntersectAt  uint64 `mapstructure:"intersect_at"`
}

func (c *Config) setDefaults(v *viper.Viper) {
	v.SetDefault("max_pool_size", 15)
	v.SetDefault("lease_ttl_seconds", 10)
	v.SetDefault("lease_renew_seconds", 5)
	v.SetDefault("vault_token_renew_seconds", 3600)
	v.SetDefault("vault_token_renew_increment", "1h")
	v.SetDefault("http_client_timeout_seconds", 10)
	v.SetDefault("rpc.listen_address", "0.0.0.0:8080")
	v.SetDefault("prometheus_addr", "0.0.0.0:9090")

	// Keys with no real default still get an empty one: viper's Unmarshal
	// only consults BALIUSD_ environment variables for keys it knows.
	for _, key := range []string{"network", "connection", "namespace", "pod", "shard",
		"chainsync.peer", "vault_address", "vault_token"} {
		v.SetDefault(key, "")
	}
	v.SetDefault("chainsync.intersect_at", 0)
}

// Load builds a Config from, in increasing priority: $BALIUSD_CONFIG,
// ./baliusd.yaml, explicitFile (if non-empty, required to exist), then
// BALIUSD_-prefixed environment variables.
func Load(explicitFile string) (*Config, error) {
	var cfg Config
	lv := newLayeredViper(explicitFile, cfg.setDefaults)
	if err := lv.unmarshalInto(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// VaultTokenRenewIncrementOrDefault returns the configured renewal
// increment, defaulting to "1h" as the spec requires.
func (c *Config) VaultTokenRenewIncrementOrDefault() string {
	if c.VaultTokenRenewIncrement == "" {
		return "1h"
	}
	return c.VaultTokenRenewIncrement
}

// LeaseTTL and LeaseRenewInterval convert the configured seconds into
// time.Duration for the leader-election and chain-sync-gate subsystems.
func (c *Config) LeaseTTL() time.Duration {
	return time.Duration(c.LeaseTTLSeconds) * time.Second
}

func (c *Config) LeaseRenewInterval() time.Duration {
	return time.Duration(c.LeaseRenewSeconds) * time.Second
}

func (c *Config) HTTPClientTimeout() time.Duration {
	return time.Duration(c.HTTPClientTimeoutSeconds) * time.Second
}

func (c *Config) VaultTokenRenewInterval() time.Duration {
	return time.Duration(c.VaultTokenRenewSeconds) * time.Second
}
