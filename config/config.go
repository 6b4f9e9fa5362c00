package config

import (
	"errors"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingContract is returned when no contract address can be found in
// the config file, the environment, or the command line.
var ErrMissingContract = errors.New("contract address not configured. Set MARTINA_CONTRACT_ADDRESS, add contract_address to martina.json, or pass --contract")

// DefaultEndpoints maps chain IDs to public RPC endpoints used when no
// explicit URL is configured.
var DefaultEndpoints = map[uint64]string{
	1:     "https://eth.llamarpc.com",
	10:    "https://mainnet.optimism.io",
	56:    "https://bsc-dataseed.binance.org",
	137:   "https://polygon-rpc.com",
	8453:  "https://mainnet.base.org",
	42161: "https://arb1.arbitrum.io/rpc",
}

// Config holds the application configuration.
type Config struct {
	ChainID         uint64
	RPCURL          string
	ContractAddress string
	PrivateKey      string
	SlippageBps     int64
	DeadlineOffset  time.Duration
	ConfirmTimeout  time.Duration
	Endpoints       map[uint64]string
}

// Load reads configuration from an optional martina.json file merged with
// MARTINA_-prefixed environment variables. Env values are coerced through
// viper's typed getters (digit strings to integers, "true"/"false" to
// booleans, everything else stays a string).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("martina")
	v.SetConfigType("json")
	v.AddConfigPath("$HOME")
	v.AddConfigPath(".")

	v.SetDefault("chain_id", 1)
	v.SetDefault("slippage_bps", 50)
	v.SetDefault("deadline_offset_seconds", 600)
	v.SetDefault("confirm_timeout_seconds", 120)

	v.SetEnvPrefix("MARTINA")
	v.AutomaticEnv()

	// Config file is optional
	_ = v.ReadInConfig()

	endpoints := make(map[uint64]string, len(DefaultEndpoints))
	for id, url := range DefaultEndpoints {
		endpoints[id] = url
	}
	for id, url := range v.GetStringMapString("endpoints") {
		chainID, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			continue
		}
		endpoints[chainID] = url
	}

	cfg := &Config{
		ChainID:         v.GetUint64("chain_id"),
		RPCURL:          v.GetString("rpc_url"),
		ContractAddress: v.GetString("contract_address"),
		PrivateKey:      v.GetString("private_key"),
		SlippageBps:     v.GetInt64("slippage_bps"),
		DeadlineOffset:  time.Duration(v.GetInt64("deadline_offset_seconds")) * time.Second,
		ConfirmTimeout:  time.Duration(v.GetInt64("confirm_timeout_seconds")) * time.Second,
		Endpoints:       endpoints,
	}

	return cfg, nil
}

// EndpointFor resolves the RPC endpoint for a chain. An explicit RPC URL
// always wins over the per-chain table.
func (c *Config) EndpointFor(chainID uint64) (string, error) {
	if c.RPCURL != "" {
		return c.RPCURL, nil
	}
	url, ok := c.Endpoints[chainID]
	if !ok {
		return "", errors.New("no RPC endpoint known for chain, pass --rpc-url")
	}
	return url, nil
}
