package units

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		name     string
		amount   string
		decimals int
		expected string
		wantErr  bool
	}{
		{name: "whole token 18 decimals", amount: "1", decimals: 18, expected: "1000000000000000000"},
		{name: "fractional", amount: "1.5", decimals: 18, expected: "1500000000000000000"},
		{name: "six decimals", amount: "100.25", decimals: 6, expected: "100250000"},
		{name: "zero decimals", amount: "42", decimals: 0, expected: "42"},
		{name: "smallest unit", amount: "0.000000000000000001", decimals: 18, expected: "1"},
		{name: "truncates excess precision", amount: "0.0000005", decimals: 6, expected: "0"},
		{name: "zero", amount: "0", decimals: 18, expected: "0"},
		{name: "not a number", amount: "abc", decimals: 18, wantErr: true},
		{name: "empty", amount: "", decimals: 18, wantErr: true},
		{name: "negative", amount: "-1", decimals: 18, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount(tc.amount, tc.decimals)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got.String())
		})
	}
}

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		name     string
		amount   string
		decimals int
		expected string
	}{
		{name: "one wei", amount: "1", decimals: 18, expected: "0.000000000000000001"},
		{name: "one token", amount: "1000000000000000000", decimals: 18, expected: "1"},
		{name: "usdc style", amount: "100250000", decimals: 6, expected: "100.25"},
		{name: "zero decimals", amount: "42", decimals: 0, expected: "42"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := new(big.Int).SetString(tc.amount, 10)
			require.True(t, ok)
			assert.Equal(t, tc.expected, FormatAmount(v, tc.decimals))
		})
	}
}

// Formatting then reparsing must reproduce the base-unit value exactly
// for every decimal count the contract can see, with no float drift.
func TestAmountRoundTrip(t *testing.T) {
	values := []string{"0", "1", "7", "999", "123456789", "1000000000000000001", "987654321987654321987654321"}

	for _, raw := range values {
		x, ok := new(big.Int).SetString(raw, 10)
		require.True(t, ok)
		for d := 0; d <= 18; d++ {
			formatted := FormatAmount(x, d)
			back, err := ParseAmount(formatted, d)
			require.NoError(t, err, "value %s decimals %d", raw, d)
			assert.Zero(t, x.Cmp(back), "value %s decimals %d: formatted %q reparsed to %s", raw, d, formatted, back)
		}
	}
}

func TestApplySlippage(t *testing.T) {
	testCases := []struct {
		name     string
		amount   int64
		bps      int64
		expected int64
	}{
		{name: "zero bps is identity", amount: 1000, bps: 0, expected: 1000},
		{name: "one percent", amount: 10000, bps: 100, expected: 9900},
		{name: "truncates toward zero", amount: 999, bps: 10, expected: 998},
		{name: "half percent", amount: 1000000, bps: 50, expected: 995000},
		{name: "zero amount", amount: 0, bps: 100, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplySlippage(big.NewInt(tc.amount), tc.bps)
			assert.Equal(t, tc.expected, got.Int64())
		})
	}
}

// The slippage-reduced amount never exceeds its input anywhere in the
// allowed tolerance range.
func TestApplySlippageNeverIncreases(t *testing.T) {
	amounts := []int64{0, 1, 17, 999, 1000000, 1 << 40}
	for _, a := range amounts {
		amount := big.NewInt(a)
		for bps := int64(0); bps <= MaxSlippageBps; bps += 5 {
			got := ApplySlippage(amount, bps)
			assert.LessOrEqual(t, got.Cmp(amount), 0, "amount %d bps %d", a, bps)
			if bps == 0 {
				assert.Zero(t, got.Cmp(amount))
			}
		}
	}
}

func TestDeadlineFromNow(t *testing.T) {
	before := time.Now().Unix()
	deadline := DeadlineFromNow(600 * time.Second)
	after := time.Now().Unix()

	assert.GreaterOrEqual(t, deadline, uint64(before+600))
	assert.LessOrEqual(t, deadline, uint64(after+600))

	// non-positive offsets fall back to the default
	fallback := DeadlineFromNow(0)
	assert.GreaterOrEqual(t, fallback, uint64(before+int64(DefaultDeadlineOffset/time.Second)))
}
