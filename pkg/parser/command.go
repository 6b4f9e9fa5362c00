package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// SwapArgs is a parsed trade command.
type SwapArgs struct {
	Amount   string
	TokenIn  string
	TokenOut string
}

var swapPattern = regexp.MustCompile(`^(\d+\.?\d*)\s+(0x[0-9a-fA-F]{40})\s+(?i:to)\s+(0x[0-9a-fA-F]{40})$`)

// ParseSwapCommand parses a trade command of the form
// "<amount> <token-in> to <token-out>", e.g.
//
//	"1.5 0xC02a...6Cc2 to 0xA0b8...eB48"
func ParseSwapCommand(command string) (*SwapArgs, error) {
	command = strings.TrimSpace(command)

	matches := swapPattern.FindStringSubmatch(command)
	if matches == nil {
		return nil, fmt.Errorf("invalid trade format. Expected: '<amount> <token-in> to <token-out>' with 0x-prefixed token addresses")
	}

	return &SwapArgs{
		Amount:   matches[1],
		TokenIn:  matches[2],
		TokenOut: matches[3],
	}, nil
}
