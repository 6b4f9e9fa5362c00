package bot

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// decodeOrder maps the fixed positional getOrder tuple onto an Order.
// The contract returns (tokenIn, tokenOut, amountIn, amountOutMin,
// deadline, filled, cancelled, placedAtBlock), in that order; the order
// ID is not part of the tuple and comes from the caller.
func decodeOrder(orderID uint64, vals []interface{}) (*Order, error) {
	if len(vals) != 8 {
		return nil, fmt.Errorf("decode order %d: expected 8 fields, got %d", orderID, len(vals))
	}
	tokenIn, ok0 := vals[0].(common.Address)
	tokenOut, ok1 := vals[1].(common.Address)
	amountIn, ok2 := vals[2].(*big.Int)
	amountOutMin, ok3 := vals[3].(*big.Int)
	deadline, ok4 := vals[4].(*big.Int)
	filled, ok5 := vals[5].(bool)
	cancelled, ok6 := vals[6].(bool)
	placedAt, ok7 := vals[7].(*big.Int)
	if !(ok0 && ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7) {
		return nil, fmt.Errorf("decode order %d: unexpected field types", orderID)
	}
	return &Order{
		OrderID:       orderID,
		TokenIn:       tokenIn.Hex(),
		TokenOut:      tokenOut.Hex(),
		AmountIn:      amountIn.String(),
		AmountOutMin:  amountOutMin.String(),
		Deadline:      deadline.Uint64(),
		Filled:        filled,
		Cancelled:     cancelled,
		PlacedAtBlock: placedAt.Uint64(),
	}, nil
}

// GetOrder fetches a fresh snapshot of one order record.
func (c *Client) GetOrder(ctx context.Context, orderID uint64) (*Order, error) {
	vals, err := c.call(ctx, c.contract, c.abi, "getOrder", new(big.Int).SetUint64(orderID))
	if err != nil {
		return nil, err
	}
	return decodeOrder(orderID, vals)
}

// FetchAllOrders reads every order from 1 through the current counter.
// An individual failed read is logged and skipped; partial results are
// an accepted outcome and the batch never aborts.
func (c *Client) FetchAllOrders(ctx context.Context) ([]*Order, error) {
	count, err := c.OrderCount(ctx)
	if err != nil {
		return nil, err
	}
	orders := make([]*Order, 0, count)
	for id := uint64(1); id <= count; id++ {
		order, err := c.GetOrder(ctx, id)
		if err != nil {
			c.log.Warn("skipping unreadable order", zap.Uint64("order_id", id), zap.Error(err))
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// PlaceOrder validates, builds, signs, and submits a placeOrder call,
// and reports the new order ID once the transaction is mined. The ID is
// the contract's order counter as observed after confirmation.
func (c *Client) PlaceOrder(ctx context.Context, signer Signer, tokenIn, tokenOut string, amountIn, amountOutMin *big.Int, deadline uint64, timeout time.Duration) (*PlaceResult, error) {
	if deadline == 0 {
		deadline = defaultDeadline()
	}
	if err := ValidateOrderParams(tokenIn, tokenOut, amountIn, amountOutMin, deadline); err != nil {
		return nil, err
	}
	if err := c.ensureNotPaused(ctx); err != nil {
		return nil, err
	}
	unsigned, err := c.BuildPlaceOrder(tokenIn, tokenOut, amountIn, amountOutMin, deadline, BuildOpts{})
	if err != nil {
		return nil, err
	}
	receipt, err := c.SubmitAndConfirm(ctx, unsigned, signer, timeout)
	if err != nil {
		return nil, err
	}
	result := &PlaceResult{
		TxHash:  receipt.TxHash.Hex(),
		Success: receipt.Success,
	}
	if receipt.Success {
		if count, err := c.OrderCount(ctx); err == nil {
			result.OrderID = count
		} else {
			c.log.Warn("could not read order counter after placement", zap.Error(err))
		}
	}
	return result, nil
}

// ExecuteOrder submits an executeOrder call for an existing order. On a
// successful execution it re-reads the order, best-effort, to populate
// AmountOut; the contract only exposes the requested minimum, so the
// value is a lower bound on what was swapped, and a failed follow-up
// read leaves it at zero without failing the call.
func (c *Client) ExecuteOrder(ctx context.Context, signer Signer, orderID uint64, timeout time.Duration) (*ExecuteResult, error) {
	if err := c.ensureNotPaused(ctx); err != nil {
		return nil, err
	}
	unsigned, err := c.BuildExecuteOrder(orderID, BuildOpts{})
	if err != nil {
		return nil, err
	}
	receipt, err := c.SubmitAndConfirm(ctx, unsigned, signer, timeout)
	if err != nil {
		return nil, err
	}
	result := &ExecuteResult{
		OrderID:     orderID,
		AmountOut:   "0",
		TxHash:      receipt.TxHash.Hex(),
		Success:     receipt.Success,
		BlockNumber: receipt.BlockNumber,
		GasUsed:     receipt.GasUsed,
	}
	if receipt.Success {
		if order, err := c.GetOrder(ctx, orderID); err == nil {
			result.AmountOut = order.AmountOutMin
		} else {
			c.log.Debug("amount-out follow-up read failed", zap.Uint64("order_id", orderID), zap.Error(err))
		}
	}
	return result, nil
}

// CancelOrder submits a cancelOrder call and returns the transaction
// hash once it is included. No receipt decoding beyond waiting for
// inclusion.
func (c *Client) CancelOrder(ctx context.Context, signer Signer, orderID uint64, timeout time.Duration) (string, error) {
	unsigned, err := c.BuildCancelOrder(orderID, BuildOpts{})
	if err != nil {
		return "", err
	}
	receipt, err := c.SubmitAndConfirm(ctx, unsigned, signer, timeout)
	if err != nil {
		return "", err
	}
	return receipt.TxHash.Hex(), nil
}

// ExecuteSwapDirect validates, builds, and submits an executeSwapDirect
// call: a one-shot swap with no order record left behind.
func (c *Client) ExecuteSwapDirect(ctx context.Context, signer Signer, tokenIn, tokenOut string, amountIn, amountOutMin *big.Int, deadline uint64, timeout time.Duration) (*Receipt, error) {
	if deadline == 0 {
		deadline = defaultDeadline()
	}
	if err := ValidateOrderParams(tokenIn, tokenOut, amountIn, amountOutMin, deadline); err != nil {
		return nil, err
	}
	if err := c.ensureNotPaused(ctx); err != nil {
		return nil, err
	}
	unsigned, err := c.BuildExecuteSwapDirect(tokenIn, tokenOut, amountIn, amountOutMin, deadline, BuildOpts{})
	if err != nil {
		return nil, err
	}
	return c.SubmitAndConfirm(ctx, unsigned, signer, timeout)
}
