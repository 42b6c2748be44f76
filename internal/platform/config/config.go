package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the tool-level configuration. The accounting core itself is
// configuration-free; these knobs only steer the CLI around it.
type Config struct {
	// DefaultCurrency is used for ledgers whose records carry no other hint.
	DefaultCurrency string
	// ImbalanceAccountUID receives auto-balance splits during normalization.
	ImbalanceAccountUID string
	// IsProduction selects JSON log output.
	IsProduction bool
}

// LoadConfig loads configuration from environment variables, with an optional
// .env file underneath.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DEFAULT_CURRENCY", "USD")
	viper.SetDefault("IMBALANCE_ACCOUNT_UID", "imbalance")
	viper.SetDefault("IS_PRODUCTION", false)

	viper.AutomaticEnv()

	cfg := &Config{}
	cfg.DefaultCurrency = viper.GetString("DEFAULT_CURRENCY")
	cfg.ImbalanceAccountUID = viper.GetString("IMBALANCE_ACCOUNT_UID")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	return cfg, nil
}
