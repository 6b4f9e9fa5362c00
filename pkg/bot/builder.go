package bot

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"martinaai/pkg/units"
)

// Default gas limits per operation, overridable through BuildOpts. A
// zero limit means the pipeline estimates at submit time.
const (
	PlaceOrderGasLimit   = 400000
	ExecuteOrderGasLimit = 350000
	DirectSwapGasLimit   = 350000
)

// defaultDeadline derives a fresh deadline; re-derive right before
// building because the value goes stale as time passes.
func defaultDeadline() uint64 {
	return units.DeadlineFromNow(units.DefaultDeadlineOffset)
}

// BuildOpts carries the optional knobs shared by all builders.
type BuildOpts struct {
	// Sender, when non-empty, is recorded on the unsigned transaction;
	// otherwise the pipeline fills it in from the signer.
	Sender string

	// GasLimit overrides the operation's default when positive.
	GasLimit uint64
}

// Builders are pure: no network I/O, no signing, no validation. Run
// ValidateOrderParams before calling them from any workflow.

// BuildPlaceOrder assembles an unsigned placeOrder call. A zero deadline
// defaults to now plus units.DefaultDeadlineOffset.
func (c *Client) BuildPlaceOrder(tokenIn, tokenOut string, amountIn, amountOutMin *big.Int, deadline uint64, opts BuildOpts) (*UnsignedTransaction, error) {
	return c.buildSwapCall("placeOrder", PlaceOrderGasLimit, tokenIn, tokenOut, amountIn, amountOutMin, deadline, opts)
}

// BuildExecuteOrder assembles an unsigned executeOrder call.
func (c *Client) BuildExecuteOrder(orderID uint64, opts BuildOpts) (*UnsignedTransaction, error) {
	return c.buildOrderCall("executeOrder", ExecuteOrderGasLimit, orderID, opts)
}

// BuildCancelOrder assembles an unsigned cancelOrder call. No default
// gas limit; the pipeline estimates one at submit time.
func (c *Client) BuildCancelOrder(orderID uint64, opts BuildOpts) (*UnsignedTransaction, error) {
	return c.buildOrderCall("cancelOrder", 0, orderID, opts)
}

// BuildExecuteSwapDirect assembles an unsigned executeSwapDirect call.
func (c *Client) BuildExecuteSwapDirect(tokenIn, tokenOut string, amountIn, amountOutMin *big.Int, deadline uint64, opts BuildOpts) (*UnsignedTransaction, error) {
	return c.buildSwapCall("executeSwapDirect", DirectSwapGasLimit, tokenIn, tokenOut, amountIn, amountOutMin, deadline, opts)
}

func (c *Client) buildSwapCall(method string, defaultGas uint64, tokenIn, tokenOut string, amountIn, amountOutMin *big.Int, deadline uint64, opts BuildOpts) (*UnsignedTransaction, error) {
	if deadline == 0 {
		deadline = defaultDeadline()
	}
	// HexToAddress canonicalizes; Hex() later renders checksum case
	data, err := c.abi.Pack(method,
		common.HexToAddress(tokenIn),
		common.HexToAddress(tokenOut),
		amountIn,
		amountOutMin,
		new(big.Int).SetUint64(deadline),
	)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	return c.newUnsigned(data, defaultGas, opts), nil
}

func (c *Client) buildOrderCall(method string, defaultGas uint64, orderID uint64, opts BuildOpts) (*UnsignedTransaction, error) {
	data, err := c.abi.Pack(method, new(big.Int).SetUint64(orderID))
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	return c.newUnsigned(data, defaultGas, opts), nil
}

func (c *Client) newUnsigned(data []byte, defaultGas uint64, opts BuildOpts) *UnsignedTransaction {
	tx := &UnsignedTransaction{
		To:       c.contract,
		Data:     data,
		Value:    big.NewInt(0),
		GasLimit: defaultGas,
	}
	if opts.GasLimit > 0 {
		tx.GasLimit = opts.GasLimit
	}
	if opts.Sender != "" {
		from := common.HexToAddress(opts.Sender)
		tx.From = &from
	}
	return tx
}
