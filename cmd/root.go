package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"martinaai/config"
	"martinaai/pkg/bot"
)

var rootCmd = &cobra.Command{
	Use:   "martina",
	Short: "A CLI for the MartinaAI trading bot contract",
	Long: `martina places, executes, and cancels swap orders on the MartinaAI
trading bot contract, and inspects the contract's on-chain state.

Examples:
  martina info --contract 0x1234...abcd
  martina get-order 7 --contract 0x1234...abcd --json
  martina place-order 1.5 0xC02a...6Cc2 to 0xA0b8...eB48 --contract 0x1234...abcd`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Uint64("chain-id", 1, "Chain ID of the target network")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC endpoint override (defaults to a public endpoint for the chain)")
	rootCmd.PersistentFlags().String("contract", "", "MartinaAI contract address (required unless configured)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

// loadConfig merges the config file, environment, and command-line flags.
// Flags win over everything.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("chain-id") {
		cfg.ChainID, _ = cmd.Flags().GetUint64("chain-id")
	}
	if url, _ := cmd.Flags().GetString("rpc-url"); url != "" {
		cfg.RPCURL = url
	}
	if addr, _ := cmd.Flags().GetString("contract"); addr != "" {
		cfg.ContractAddress = addr
	}
	if cfg.ContractAddress == "" {
		return nil, config.ErrMissingContract
	}
	return cfg, nil
}

// newClient dials the chain for the merged configuration.
func newClient(cmd *cobra.Command) (*bot.Client, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	opts := []bot.Option{}
	if verbose {
		log, err := zap.NewDevelopment()
		if err == nil {
			opts = append(opts, bot.WithLogger(log))
		}
	}

	client, err := bot.NewClient(context.Background(), cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}
