package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/cuemby/baliusd/pkg/types"
)

// ProxyConfig configures the edge proxy (C8): its own binary, so it gets
// its own config type, loaded with the same layered precedence as Config.
type ProxyConfig struct {
	ListenAddress   string `mapstructure:"listen_address"`
	HealthEndpoint  string `mapstructure:"health_endpoint"`
	BaliusDNS       string `mapstructure:"balius_dns"`
	BaliusPort      int    `mapstructure:"balius_port"`
	ProxyNamespace  string `mapstructure:"proxy_namespace"`
	ConsumersSource string `mapstructure:"consumers_source"` // not read: cmd/baliusd-proxy always lists consumers via consumer.CRDSource

	ConsumerRefreshSeconds int          `mapstructure:"consumer_refresh_seconds"`
	Tiers                  []types.Tier `mapstructure:"tiers"`
}

func (c *ProxyConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("listen_address", "0.0.0.0:8443")
	v.SetDefault("health_endpoint", "/healthz")
	v.SetDefault("balius_port", 8080)
	v.SetDefault("consumer_refresh_seconds", 30)
	// Empty defaults let BALIUSD_ environment variables set these keys.
	v.SetDefault("balius_dns", "")
	v.SetDefault("proxy_namespace", "")
	v.SetDefault("consumers_source", "")
}

// ConsumerRefreshInterval converts the configured seconds into the
// interval consumer.Registry.Run polls its source at.
func (c *ProxyConfig) ConsumerRefreshInterval() time.Duration {
	return time.Duration(c.ConsumerRefreshSeconds) * time.Second
}

// LoadProxyConfig follows the same $BALIUSD_CONFIG / ./baliusd.yaml /
// explicit-file / BALIUSD_ env precedence as Load.
func LoadProxyConfig(explicitFile string) (*ProxyConfig, error) {
	var cfg ProxyConfig
	v := newLayeredViper(explicitFile, cfg.setDefaults)
	if err := v.unmarshalInto(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
