package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// DefaultConfirmTimeout bounds how long SubmitAndConfirm waits for a
// receipt before giving up.
const DefaultConfirmTimeout = 120 * time.Second

// SubmitAndConfirm signs an unsigned call, broadcasts it, and blocks
// until the receipt arrives or the timeout expires. The run walks
// UNSIGNED -> SIGNED -> SUBMITTED and terminates in CONFIRMED, REVERTED,
// or TIMED_OUT; the returned Receipt carries Success=false for a
// reverted call, which is a normal outcome, not an error. Timing out
// returns a *ConfirmationTimeoutError carrying the hash, because the
// transaction may still land after we stop watching.
func (c *Client) SubmitAndConfirm(ctx context.Context, unsigned *UnsignedTransaction, signer Signer, timeout time.Duration) (*Receipt, error) {
	if timeout <= 0 {
		timeout = DefaultConfirmTimeout
	}
	from := signer.Address()
	log := c.log.With(zap.Stringer("from", from), zap.Stringer("to", unsigned.To))
	log.Debug("pipeline start", zap.String("state", string(stateUnsigned)))

	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("fetch nonce: %w", err)
	}
	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch gas price: %w", err)
	}

	gasLimit := unsigned.GasLimit
	if gasLimit == 0 {
		gasLimit, err = c.backend.EstimateGas(ctx, ethereum.CallMsg{
			From:  from,
			To:    &unsigned.To,
			Value: unsigned.Value,
			Data:  unsigned.Data,
		})
		if err != nil {
			return nil, fmt.Errorf("estimate gas: %w", err)
		}
	}

	// The signature binds the real sender; any placeholder From set for
	// gas estimation is dropped here.
	tx := types.NewTransaction(nonce, unsigned.To, unsigned.Value, gasLimit, gasPrice, unsigned.Data)
	signed, err := signer.SignTx(tx, c.chainID)
	if err != nil {
		return nil, err
	}
	log.Debug("transaction signed",
		zap.String("state", string(stateSigned)),
		zap.Uint64("nonce", nonce),
		zap.Uint64("gas_limit", gasLimit))

	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailure, err)
	}
	hash := signed.Hash()
	log.Info("transaction submitted",
		zap.String("state", string(stateSubmitted)),
		zap.Stringer("hash", hash))

	receipt, err := c.waitForReceipt(ctx, hash, timeout)
	if err != nil {
		log.Warn("confirmation timed out",
			zap.String("state", string(stateTimedOut)),
			zap.Stringer("hash", hash))
		return nil, err
	}

	result := &Receipt{
		TxHash:      hash,
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
		Success:     receipt.Status == types.ReceiptStatusSuccessful,
	}
	state := stateConfirmed
	if !result.Success {
		state = stateReverted
	}
	log.Info("transaction mined",
		zap.String("state", string(state)),
		zap.Stringer("hash", hash),
		zap.Uint64("block", result.BlockNumber),
		zap.Uint64("gas_used", result.GasUsed))
	return result, nil
}

// waitForReceipt polls the node until the receipt shows up or the
// timeout budget runs out.
func (c *Client) waitForReceipt(ctx context.Context, hash common.Hash, timeout time.Duration) (*types.Receipt, error) {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			c.log.Debug("receipt poll error", zap.Stringer("hash", hash), zap.Error(err))
		}
		if time.Now().After(deadline) {
			return nil, &ConfirmationTimeoutError{TxHash: hash, Timeout: timeout}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// ensureNotPaused is the best-effort precondition in front of the
// mutating calls. The pause flag can flip between this check and the
// broadcast; that race is accepted, the contract enforces the real
// guard.
func (c *Client) ensureNotPaused(ctx context.Context) error {
	paused, err := c.BotPaused(ctx)
	if err != nil {
		return fmt.Errorf("pause check: %w", err)
	}
	if paused {
		return ErrBotPaused
	}
	return nil
}
