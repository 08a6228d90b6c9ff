package staking

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/multiversed/staking-server/pkg/solana"
)

// Config is the environment-driven configuration for the staking service.
type Config struct {
	SolanaRpcEndpoint string `mapstructure:"solana_rpc_endpoint"`
	StakingProgramID  string `mapstructure:"staking_program_id"`

	// Base58 ed25519 private key for the pool admin. Only required when
	// the process initializes pools.
	AdminPrivateKey string `mapstructure:"admin_private_key"`

	Commitment string `mapstructure:"commitment"`
}

var defaultConfig = Config{
	SolanaRpcEndpoint: "https://api.devnet.solana.com",
	StakingProgramID:  "A5sbJW4hgVtaYU8TvfJc8bxeWsvFgapc88qX1VruTfq4",
	Commitment:        "confirmed",
}

func init() {
	_ = viper.BindEnv("solana_rpc_endpoint", "SOLANA_RPC_ENDPOINT")
	_ = viper.BindEnv("staking_program_id", "STAKING_PROGRAM_ID")
	_ = viper.BindEnv("admin_private_key", "ADMIN_PRIVATE_KEY")
	_ = viper.BindEnv("commitment", "COMMITMENT")
}

// LoadConfig resolves configuration from the environment on top of
// the defaults.
func LoadConfig() (*Config, error) {
	config := defaultConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "error unmarshalling config")
	}

	if _, err := config.GetCommitment(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) GetCommitment() (solana.Commitment, error) {
	switch c.Commitment {
	case "processed":
		return solana.CommitmentProcessed, nil
	case "confirmed":
		return solana.CommitmentConfirmed, nil
	case "finalized":
		return solana.CommitmentFinalized, nil
	}
	return solana.Commitment{}, errors.Errorf("unsupported commitment: %s", c.Commitment)
}
