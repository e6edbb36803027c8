package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// layeredViper wires up the $BALIUSD_CONFIG / ./baliusd.yaml / explicit
// file / BALIUSD_ env precedence shared by every baliusd binary's config.
type layeredViper struct {
	v   *viper.Viper
	err error
}

func newLayeredViper(explicitFile string, setDefaults func(*viper.Viper)) *layeredViper {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if envCfg := os.Getenv("BALIUSD_CONFIG"); envCfg != "" {
		v.SetConfigFile(envCfg)
		_ = v.MergeInConfig() // optional source; absence is not an error
	}

	v.SetConfigName("baliusd")
	v.AddConfigPath(".")
	_ = v.MergeInConfig() // optional source

	var explicitErr error
	if explicitFile != "" {
		v.SetConfigFile(explicitFile)
		if err := v.MergeInConfig(); err != nil {
			explicitErr = fmt.Errorf("reading config file %q: %w", explicitFile, err)
		}
	}

	v.SetEnvPrefix("BALIUSD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &layeredViper{v: v, err: explicitErr}
}

func (l *layeredViper) unmarshalInto(dst any) error {
	if l.err != nil {
		return l.err
	}
	if err := l.v.Unmarshal(dst); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}
