package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type MineConfig struct {
	Blocks  int
	Records int
}

func (c MineConfig) Validate() error {
	if c.Blocks < 1 {
		return fmt.Errorf("must mine at least one block")
	}
	if c.Records < 1 {
		return fmt.Errorf("each block needs at least one record")
	}
	return nil
}

func LoadMineConfigFromCLI() MineConfig {
	return MineConfig{
		Blocks:  viper.GetInt("blocks"),
		Records: viper.GetInt("records"),
	}
}
