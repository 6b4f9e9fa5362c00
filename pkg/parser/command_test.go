package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	weth = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
	usdc = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
)

func TestParseSwapCommand(t *testing.T) {
	testCases := []struct {
		name    string
		command string
		amount  string
		wantErr bool
	}{
		{name: "whole amount", command: "1 " + weth + " to " + usdc, amount: "1"},
		{name: "fractional amount", command: "1.5 " + weth + " to " + usdc, amount: "1.5"},
		{name: "uppercase TO", command: "100 " + weth + " TO " + usdc, amount: "100"},
		{name: "surrounding whitespace", command: "  2 " + weth + " to " + usdc + "  ", amount: "2"},
		{name: "missing to", command: "1 " + weth + " " + usdc, wantErr: true},
		{name: "symbol instead of address", command: "1 ETH to USDC", wantErr: true},
		{name: "short address", command: "1 0x1234 to " + usdc, wantErr: true},
		{name: "empty", command: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSwapCommand(tc.command)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.amount, got.Amount)
			assert.Equal(t, weth, got.TokenIn)
			assert.Equal(t, usdc, got.TokenOut)
		})
	}
}
