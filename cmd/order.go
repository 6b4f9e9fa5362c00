package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"martinaai/pkg/bot"
	"martinaai/pkg/retry"
)

var listAll bool

var orderCountCmd = &cobra.Command{
	Use:   "order-count",
	Short: "Print the number of orders the contract has recorded",
	Run:   runOrderCount,
}

var getOrderCmd = &cobra.Command{
	Use:   "get-order <order-id>",
	Short: "Fetch one order record and print it as JSON",
	Long: `Fetch a point-in-time snapshot of an order by its ID.

Examples:
  martina get-order 7 --contract 0x1234...abcd
  martina get-order --all --contract 0x1234...abcd`,
	Args: cobra.MaximumNArgs(1),
	Run:  runGetOrder,
}

func init() {
	rootCmd.AddCommand(orderCountCmd)
	rootCmd.AddCommand(getOrderCmd)

	getOrderCmd.Flags().BoolVar(&listAll, "all", false, "Fetch every order from 1 through the counter")
}

func runOrderCount(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client, _, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer client.Close()

	count, err := retry.Do(context.Background(), retry.Config{}, client.OrderCount)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		fmt.Printf("{\"order_count\": %d}\n", count)
	} else {
		fmt.Printf("\nOrder count: %s\n\n", color.CyanString("%d", count))
	}
}

func runGetOrder(cmd *cobra.Command, args []string) {
	if listAll {
		runListOrders(cmd)
		return
	}
	if len(args) != 1 {
		printError(fmt.Errorf("an order ID is required unless --all is set"))
		os.Exit(1)
	}

	orderID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || orderID == 0 {
		printError(fmt.Errorf("invalid order ID %q: expected a positive integer", args[0]))
		os.Exit(1)
	}

	client, _, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer client.Close()

	order, err := retry.Do(context.Background(), retry.Config{},
		func(ctx context.Context) (*bot.Order, error) {
			return client.GetOrder(ctx, orderID)
		})
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	// get-order always prints JSON
	jsonData, err := json.MarshalIndent(order, "", "  ")
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	fmt.Println(string(jsonData))
}

func runListOrders(cmd *cobra.Command) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client, _, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer client.Close()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching orders..."
		s.Start()
	}

	orders, err := client.FetchAllOrders(context.Background())
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	jsonData, _ := json.MarshalIndent(orders, "", "  ")
	fmt.Println(string(jsonData))
}
