package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"martinaai/config"
	"martinaai/pkg/bot"
	"martinaai/pkg/parser"
	"martinaai/pkg/units"
)

var (
	keyFlag      string
	slippageBps  int64
	expectedOut  string
	minOutFlag   string
	deadlineSecs int64
	noConfirm    bool
)

var placeOrderCmd = &cobra.Command{
	Use:   "place-order <amount> <token-in> to <token-out>",
	Short: "Place a swap order on the contract",
	Long: `Place an order swapping <amount> of <token-in> for <token-out>.

The amount is human-denominated and scaled by the token's decimals (read
on-chain, defaulting to 18). The minimum output is --min-out when given,
otherwise --expect reduced by --slippage basis points.

Examples:
  martina place-order 1.5 0xC02a...6Cc2 to 0xA0b8...eB48 --expect 4200 --slippage 50
  martina place-order 100 0xA0b8...eB48 to 0xC02a...6Cc2 --min-out 0.03 --yes`,
	Args: cobra.MinimumNArgs(4),
	Run:  runPlaceOrder,
}

var executeOrderCmd = &cobra.Command{
	Use:   "execute-order <order-id>",
	Short: "Execute a previously placed order",
	Args:  cobra.ExactArgs(1),
	Run:   runExecuteOrder,
}

var cancelOrderCmd = &cobra.Command{
	Use:   "cancel-order <order-id>",
	Short: "Cancel a previously placed order",
	Args:  cobra.ExactArgs(1),
	Run:   runCancelOrder,
}

var swapCmd = &cobra.Command{
	Use:   "swap <amount> <token-in> to <token-out>",
	Short: "Swap immediately without leaving an order record",
	Args:  cobra.MinimumNArgs(4),
	Run:   runSwap,
}

func init() {
	for _, c := range []*cobra.Command{placeOrderCmd, executeOrderCmd, cancelOrderCmd, swapCmd} {
		c.Flags().StringVar(&keyFlag, "key", "", "Hex private key (or set MARTINA_PRIVATE_KEY)")
		c.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{placeOrderCmd, swapCmd} {
		c.Flags().Int64Var(&slippageBps, "slippage", 50, "Slippage tolerance in basis points (max 100)")
		c.Flags().StringVar(&expectedOut, "expect", "", "Expected output amount, reduced by slippage to the minimum")
		c.Flags().StringVar(&minOutFlag, "min-out", "", "Explicit minimum output amount (overrides --expect)")
		c.Flags().Int64Var(&deadlineSecs, "deadline", 600, "Deadline offset from now in seconds")
	}
}

// swapParams holds the fully converted arguments for placeOrder and
// executeSwapDirect.
type swapParams struct {
	tokenIn      string
	tokenOut     string
	amountIn     *big.Int
	amountOutMin *big.Int
	deadline     uint64
	human        *parser.SwapArgs
}

func resolveSwapParams(client *bot.Client, args []string) (*swapParams, error) {
	parsed, err := parser.ParseSwapCommand(strings.Join(args, " "))
	if err != nil {
		return nil, err
	}

	if slippageBps < 0 || slippageBps > units.MaxSlippageBps {
		return nil, fmt.Errorf("%w: slippage %d bps outside [0, %d]", units.ErrInvalidAmount, slippageBps, units.MaxSlippageBps)
	}

	ctx := context.Background()
	inDecimals := client.TokenDecimals(ctx, parsed.TokenIn)
	outDecimals := client.TokenDecimals(ctx, parsed.TokenOut)

	amountIn, err := units.ParseAmount(parsed.Amount, inDecimals)
	if err != nil {
		return nil, err
	}

	minOut := big.NewInt(0)
	switch {
	case minOutFlag != "":
		minOut, err = units.ParseAmount(minOutFlag, outDecimals)
		if err != nil {
			return nil, err
		}
	case expectedOut != "":
		expected, err := units.ParseAmount(expectedOut, outDecimals)
		if err != nil {
			return nil, err
		}
		minOut = units.ApplySlippage(expected, slippageBps)
	default:
		color.Yellow("Warning: no --min-out or --expect given; placing with zero minimum output\n")
	}

	return &swapParams{
		tokenIn:      parsed.TokenIn,
		tokenOut:     parsed.TokenOut,
		amountIn:     amountIn,
		amountOutMin: minOut,
		deadline:     units.DeadlineFromNow(time.Duration(deadlineSecs) * time.Second),
		human:        parsed,
	}, nil
}

func resolveSigner(cfg *config.Config) (bot.Signer, error) {
	key := keyFlag
	if key == "" {
		key = cfg.PrivateKey
	}
	return bot.NewPrivateKeySigner(key)
}

func runPlaceOrder(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client, cfg, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer client.Close()

	params, err := resolveSwapParams(client, args)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	signer, err := resolveSigner(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if !noConfirm && !jsonOutput {
		fmt.Printf("\nPlacing order: %s %s -> %s (min out %s base units)\n",
			params.human.Amount, params.human.TokenIn, params.human.TokenOut, params.amountOutMin)
		if !confirmPrompt("Proceed with order?") {
			fmt.Println("\nOrder cancelled.")
			os.Exit(0)
		}
	}

	s := submitSpinner(jsonOutput)
	result, err := client.PlaceOrder(context.Background(), signer,
		params.tokenIn, params.tokenOut, params.amountIn, params.amountOutMin,
		params.deadline, cfg.ConfirmTimeout)
	stopSpinner(s, jsonOutput)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(jsonData))
		return
	}
	if result.Success {
		color.Green("\n✓ Order placed!")
		fmt.Printf("  Order ID: %s\n", color.CyanString("%d", result.OrderID))
	} else {
		color.Red("\n✗ Transaction mined but reverted by the contract")
	}
	fmt.Printf("  Tx Hash:  %s\n\n", result.TxHash)
	if !result.Success {
		os.Exit(1)
	}
}

func runExecuteOrder(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	orderID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || orderID == 0 {
		printError(fmt.Errorf("invalid order ID %q: expected a positive integer", args[0]))
		os.Exit(1)
	}

	client, cfg, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer client.Close()

	signer, err := resolveSigner(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	s := submitSpinner(jsonOutput)
	result, err := client.ExecuteOrder(context.Background(), signer, orderID, cfg.ConfirmTimeout)
	stopSpinner(s, jsonOutput)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(jsonData))
		return
	}
	if result.Success {
		color.Green("\n✓ Order %d executed", result.OrderID)
		fmt.Printf("  Min output: %s base units\n", result.AmountOut)
	} else {
		color.Red("\n✗ Transaction mined but reverted by the contract")
	}
	fmt.Printf("  Tx Hash:  %s\n", result.TxHash)
	fmt.Printf("  Block:    %d\n", result.BlockNumber)
	fmt.Printf("  Gas Used: %d\n\n", result.GasUsed)
	if !result.Success {
		os.Exit(1)
	}
}

func runCancelOrder(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	orderID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || orderID == 0 {
		printError(fmt.Errorf("invalid order ID %q: expected a positive integer", args[0]))
		os.Exit(1)
	}

	client, cfg, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer client.Close()

	signer, err := resolveSigner(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if !noConfirm && !jsonOutput {
		if !confirmPrompt(fmt.Sprintf("Cancel order %d?", orderID)) {
			fmt.Println("\nAborted.")
			os.Exit(0)
		}
	}

	s := submitSpinner(jsonOutput)
	txHash, err := client.CancelOrder(context.Background(), signer, orderID, cfg.ConfirmTimeout)
	stopSpinner(s, jsonOutput)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		fmt.Printf("{\"order_id\": %d, \"transaction_hash\": %q}\n", orderID, txHash)
		return
	}
	color.Green("\n✓ Cancellation confirmed")
	fmt.Printf("  Tx Hash: %s\n\n", txHash)
}

func runSwap(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client, cfg, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer client.Close()

	params, err := resolveSwapParams(client, args)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	signer, err := resolveSigner(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if !noConfirm && !jsonOutput {
		fmt.Printf("\nDirect swap: %s %s -> %s (min out %s base units)\n",
			params.human.Amount, params.human.TokenIn, params.human.TokenOut, params.amountOutMin)
		if !confirmPrompt("Proceed with swap?") {
			fmt.Println("\nSwap cancelled.")
			os.Exit(0)
		}
	}

	s := submitSpinner(jsonOutput)
	receipt, err := client.ExecuteSwapDirect(context.Background(), signer,
		params.tokenIn, params.tokenOut, params.amountIn, params.amountOutMin,
		params.deadline, cfg.ConfirmTimeout)
	stopSpinner(s, jsonOutput)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		out := map[string]interface{}{
			"transaction_hash": receipt.TxHash.Hex(),
			"success":          receipt.Success,
			"block_number":     receipt.BlockNumber,
			"gas_used":         receipt.GasUsed,
		}
		jsonData, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(jsonData))
		return
	}
	if receipt.Success {
		color.Green("\n✓ Swap confirmed")
	} else {
		color.Red("\n✗ Transaction mined but reverted by the contract")
	}
	fmt.Printf("  Tx Hash:  %s\n", receipt.TxHash.Hex())
	fmt.Printf("  Block:    %d\n", receipt.BlockNumber)
	fmt.Printf("  Gas Used: %d\n\n", receipt.GasUsed)
	if !receipt.Success {
		os.Exit(1)
	}
}

func submitSpinner(jsonOutput bool) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Submitting transaction and awaiting confirmation..."
		s.Start()
	}
	return s
}

func stopSpinner(s *spinner.Spinner, jsonOutput bool) {
	if !jsonOutput {
		s.Stop()
	}
}

func confirmPrompt(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("\n%s (y/N): ", question)

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
