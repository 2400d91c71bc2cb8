package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type BenchConfig struct {
	Workers int
	Timeout time.Duration
}

func (c BenchConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("need at least one worker")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	return nil
}

func LoadBenchConfigFromCLI() BenchConfig {
	return BenchConfig{
		Workers: viper.GetInt("workers"),
		Timeout: viper.GetDuration("timeout"),
	}
}
