package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type MetricsConfig struct {
	Enabled bool
	Addr    string
}

func (c MetricsConfig) Validate() error {
	if c.Enabled && c.Addr == "" {
		return fmt.Errorf("missing Prometheus listen address")
	}
	return nil
}

func LoadMetricsConfigFromCLI() MetricsConfig {
	return MetricsConfig{
		Enabled: viper.GetBool("enable-prometheus"),
		Addr:    viper.GetString("prometheus-addr"),
	}
}
