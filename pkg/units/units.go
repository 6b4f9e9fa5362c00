package units

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount reports an amount that is not a valid decimal numeral
// or is out of range for the operation.
var ErrInvalidAmount = errors.New("invalid amount")

const (
	// BpsDenominator is the basis-point denominator used by the contract.
	BpsDenominator = 10000

	// MaxSlippageBps caps the slippage tolerance at 1%.
	MaxSlippageBps = 100

	// DefaultDeadlineOffset is how far in the future a deadline lands
	// when the caller does not pick one.
	DefaultDeadlineOffset = 600 * time.Second
)

// ParseAmount converts a human decimal amount into the token's integer
// base units by scaling with 10^decimals and truncating. The math is
// exact decimal arithmetic, never binary floating point.
func ParseAmount(amount string, decimals int) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	if d.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, amount)
	}
	scaled := d.Shift(int32(decimals))
	return scaled.Truncate(0).BigInt(), nil
}

// FormatAmount renders an integer base-unit amount as a human decimal
// string, exactly. FormatAmount and ParseAmount round-trip for any
// non-negative value.
func FormatAmount(amount *big.Int, decimals int) string {
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}

// ApplySlippage returns amount * (denominator - bps) / denominator with
// integer division truncating toward zero. It does not clamp bps; callers
// building orders must validate bps against MaxSlippageBps first.
func ApplySlippage(amount *big.Int, bps int64) *big.Int {
	out := new(big.Int).Mul(amount, big.NewInt(BpsDenominator-bps))
	return out.Quo(out, big.NewInt(BpsDenominator))
}

// DeadlineFromNow returns the current wall-clock time plus offset as a
// Unix timestamp. The value goes stale as time passes; derive it right
// before building a transaction.
func DeadlineFromNow(offset time.Duration) uint64 {
	if offset <= 0 {
		offset = DefaultDeadlineOffset
	}
	return uint64(time.Now().Add(offset).Unix())
}
