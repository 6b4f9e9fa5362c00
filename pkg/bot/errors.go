package bot

import (
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"martinaai/pkg/units"
)

var (
	// ErrConnectionFailure means the RPC endpoint could not be reached
	// at client construction time.
	ErrConnectionFailure = errors.New("rpc endpoint unreachable")

	// ErrDependencyUnavailable means the contract ABI could not be
	// prepared; nothing else works without it.
	ErrDependencyUnavailable = errors.New("contract interface unavailable")

	// ErrInvalidAddress marks an address that is not a 0x-prefixed
	// 40-hex-character string.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidAmount is shared with pkg/units: order amounts must be
	// positive (amount in) or non-negative (minimum out).
	ErrInvalidAmount = units.ErrInvalidAmount

	// ErrExpiredDeadline marks a deadline at or before the current time.
	ErrExpiredDeadline = errors.New("deadline already passed")

	// ErrBotPaused means the contract's pause flag was set when a
	// mutating call was about to go out. The check races with the chain
	// and is best-effort only.
	ErrBotPaused = errors.New("bot is paused")

	// ErrSigningFailure means key material was missing or unusable.
	ErrSigningFailure = errors.New("signing failed")

	// ErrSubmissionFailure means the network rejected the broadcast.
	ErrSubmissionFailure = errors.New("transaction broadcast rejected")
)

// ConfirmationTimeoutError reports that no receipt was observed within
// the timeout. The transaction may still confirm later; the hash is
// carried so the caller can keep polling.
type ConfirmationTimeoutError struct {
	TxHash  common.Hash
	Timeout time.Duration
}

func (e *ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf("no receipt for %s within %s; the transaction may still confirm", e.TxHash.Hex(), e.Timeout)
}
