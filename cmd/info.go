package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"martinaai/pkg/retry"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the contract's configuration and counters",
	Long: `Read the MartinaAI contract's operator, router, treasury, and vault
addresses, its pause flag, order count, and genesis block.

Examples:
  martina info --contract 0x1234...abcd
  martina info --contract 0x1234...abcd --json`,
	Run: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client, _, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer client.Close()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Reading contract state..."
		s.Start()
	}

	info, err := retry.Do(context.Background(), retry.Config{}, client.Info)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(info, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                 MARTINAAI CONTRACT")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("\n  Contract:      %s\n", color.CyanString(client.ContractAddress()))
	fmt.Printf("  Operator:      %s\n", info.Operator)
	fmt.Printf("  Router:        %s\n", info.Router)
	fmt.Printf("  Treasury:      %s\n", info.Treasury)
	fmt.Printf("  Vault:         %s\n", info.Vault)
	if info.Paused {
		fmt.Printf("  Paused:        %s\n", color.RedString("yes"))
	} else {
		fmt.Printf("  Paused:        %s\n", color.GreenString("no"))
	}
	fmt.Printf("  Orders:        %d\n", info.OrderCount)
	fmt.Printf("  Genesis Block: %d\n", info.GenesisBlock)
	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}
