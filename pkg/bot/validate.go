package bot

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ValidateAddress checks for a 0x-prefixed 40-hex-character address.
func ValidateAddress(addr string) error {
	if !strings.HasPrefix(addr, "0x") || len(addr) != 42 || !common.IsHexAddress(addr) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	return nil
}

// ValidateOrderParams is the mandatory pre-check in front of every
// order-building workflow. It is deliberately separate from the builders
// so they stay pure and callers can validate against a fresher clock if
// they need to.
func ValidateOrderParams(tokenIn, tokenOut string, amountIn, amountOutMin *big.Int, deadline uint64) error {
	if err := ValidateAddress(tokenIn); err != nil {
		return err
	}
	if err := ValidateAddress(tokenOut); err != nil {
		return err
	}
	if amountIn == nil || amountIn.Sign() <= 0 {
		return fmt.Errorf("%w: amount in must be positive", ErrInvalidAmount)
	}
	if amountOutMin == nil || amountOutMin.Sign() < 0 {
		return fmt.Errorf("%w: minimum amount out must not be negative", ErrInvalidAmount)
	}
	if deadline <= uint64(time.Now().Unix()) {
		return fmt.Errorf("%w: %d", ErrExpiredDeadline, deadline)
	}
	return nil
}
