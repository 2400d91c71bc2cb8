package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// MaxDifficulty is the number of hex characters in a SHA-256 digest; a
// longer prefix of zeros can never be satisfied.
const MaxDifficulty = 64

type ChainConfig struct {
	Difficulty int
}

func (c ChainConfig) Validate() error {
	if c.Difficulty < 0 {
		return fmt.Errorf("difficulty cannot be negative")
	}
	if c.Difficulty > MaxDifficulty {
		return fmt.Errorf("difficulty cannot exceed %d", MaxDifficulty)
	}
	return nil
}

func LoadChainConfigFromCLI() ChainConfig {
	return ChainConfig{
		Difficulty: viper.GetInt("difficulty"),
	}
}
