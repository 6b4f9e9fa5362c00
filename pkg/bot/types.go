package bot

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Order is a point-in-time snapshot of an on-chain order record. The
// contract owns the state; a fresh value is decoded on every read and
// never cached across calls.
type Order struct {
	OrderID       uint64 `json:"order_id"`
	TokenIn       string `json:"token_in"`
	TokenOut      string `json:"token_out"`
	AmountIn      string `json:"amount_in"`
	AmountOutMin  string `json:"amount_out_min"`
	Deadline      uint64 `json:"deadline"`
	Filled        bool   `json:"filled"`
	Cancelled     bool   `json:"cancelled"`
	PlacedAtBlock uint64 `json:"placed_at_block"`
}

// Terminal reports whether the order has reached one of its mutually
// exclusive end states.
func (o *Order) Terminal() bool {
	return o.Filled || o.Cancelled
}

// UnsignedTransaction is a pure-data description of a contract call.
// Nonce and gas price are a submission-time concern and deliberately
// absent; a zero GasLimit means "estimate at submit".
type UnsignedTransaction struct {
	To       common.Address
	Data     []byte
	Value    *big.Int
	GasLimit uint64

	// From is optional; when nil the pipeline fills it in from the
	// signer before estimating gas.
	From *common.Address
}

// Receipt is the network's confirmation record for a mined transaction.
// Success=false means the contract reverted the call, which is a normal
// outcome path, not an error.
type Receipt struct {
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
	Success     bool
}

// ExecuteResult is the outcome of one execute-order submission.
type ExecuteResult struct {
	OrderID uint64 `json:"order_id"`

	// AmountOut is best-effort, populated by a follow-up order read on
	// success. The contract does not expose the realized output, so the
	// value is the order's requested minimum, a lower bound; zero when
	// the follow-up read fails.
	AmountOut string `json:"amount_out"`

	TxHash      string `json:"transaction_hash"`
	Success     bool   `json:"success"`
	BlockNumber uint64 `json:"block_number,omitempty"`
	GasUsed     uint64 `json:"gas_used,omitempty"`
}

// PlaceResult reports a confirmed place-order call.
type PlaceResult struct {
	OrderID uint64 `json:"order_id"`
	TxHash  string `json:"transaction_hash"`
	Success bool   `json:"success"`
}

// Info aggregates the contract's configured addresses and counters for
// display.
type Info struct {
	Operator     string `json:"operator"`
	Router       string `json:"router"`
	Treasury     string `json:"treasury"`
	Vault        string `json:"vault"`
	Paused       bool   `json:"paused"`
	OrderCount   uint64 `json:"order_count"`
	GenesisBlock uint64 `json:"genesis_block"`
}

// txState tracks a submission through the pipeline for logging. Each
// pipeline run walks UNSIGNED -> SIGNED -> SUBMITTED and ends in exactly
// one terminal state.
type txState string

const (
	stateUnsigned  txState = "UNSIGNED"
	stateSigned    txState = "SIGNED"
	stateSubmitted txState = "SUBMITTED"
	stateConfirmed txState = "CONFIRMED"
	stateTimedOut  txState = "TIMED_OUT"
	stateReverted  txState = "REVERTED"
)
