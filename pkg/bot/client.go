// Package bot is the client SDK for the MartinaAI trading-bot contract.
// It builds, signs, and submits the contract's four mutating calls and
// decodes its read-only state. The contract itself and the RPC node are
// external collaborators; nothing here reimplements their logic.
package bot

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"martinaai/config"
)

// defaultTokenDecimals is assumed whenever a token's decimals() lookup
// fails for any reason. Best-effort with a safe default: 18 is what the
// overwhelming majority of ERC-20 tokens use.
const defaultTokenDecimals = 18

// Backend is the slice of node capability the SDK needs: read-only
// calls, broadcast, and receipt lookup. *ethclient.Client satisfies it.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Client talks to one deployed trading-bot contract over one RPC
// endpoint. All I/O is synchronous and blocking; the client holds no
// mutable state between calls, so a single instance is safe to share.
type Client struct {
	backend      Backend
	chainID      *big.Int
	contract     common.Address
	abi          abi.ABI
	erc20        abi.ABI
	log          *zap.Logger
	pollInterval time.Duration
	closeFn      func()
}

// Option tweaks client construction.
type Option func(*Client)

// WithLogger installs a structured logger; the default discards
// everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithPollInterval changes how often the pipeline polls for a receipt.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

// NewClient dials the RPC endpoint for the configured chain and verifies
// it is reachable before returning. The endpoint comes from the config's
// per-chain table unless an explicit URL overrides it.
func NewClient(ctx context.Context, cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg.ContractAddress == "" {
		return nil, config.ErrMissingContract
	}
	if err := ValidateAddress(cfg.ContractAddress); err != nil {
		return nil, err
	}

	endpoint, err := cfg.EndpointFor(cfg.ChainID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailure, err)
	}

	eth, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrConnectionFailure, endpoint, err)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("%w: chain id probe against %s: %v", ErrConnectionFailure, endpoint, err)
	}

	c, err := NewClientWithBackend(eth, chainID, common.HexToAddress(cfg.ContractAddress), opts...)
	if err != nil {
		eth.Close()
		return nil, err
	}
	c.closeFn = eth.Close
	return c, nil
}

// NewClientWithBackend wires the client onto an existing backend. Used
// directly in tests and by callers that manage their own connection.
func NewClientWithBackend(backend Backend, chainID *big.Int, contract common.Address, opts ...Option) (*Client, error) {
	parsed, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	erc20, err := abi.JSON(strings.NewReader(erc20DecimalsABI))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	c := &Client{
		backend:      backend,
		chainID:      chainID,
		contract:     contract,
		abi:          parsed,
		erc20:        erc20,
		log:          zap.NewNop(),
		pollInterval: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases the underlying connection when the client owns one.
func (c *Client) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}

// ContractAddress returns the target contract in checksum form.
func (c *Client) ContractAddress() string {
	return c.contract.Hex()
}

// ChainID returns the chain the client is bound to.
func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// IsConnected probes the endpoint with a chain-id call.
func (c *Client) IsConnected(ctx context.Context) bool {
	_, err := c.backend.ChainID(ctx)
	return err == nil
}

// call packs a read-only invocation, runs it through the backend, and
// unpacks the positional results.
func (c *Client) call(ctx context.Context, to common.Address, target abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := target.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	vals, err := target.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("decode %s result: %w", method, err)
	}
	return vals, nil
}

func (c *Client) readAddress(ctx context.Context, method string) (string, error) {
	vals, err := c.call(ctx, c.contract, c.abi, method)
	if err != nil {
		return "", err
	}
	addr, ok := vals[0].(common.Address)
	if !ok {
		return "", fmt.Errorf("decode %s result: unexpected type %T", method, vals[0])
	}
	return addr.Hex(), nil
}

func (c *Client) readUint(ctx context.Context, method string) (uint64, error) {
	vals, err := c.call(ctx, c.contract, c.abi, method)
	if err != nil {
		return 0, err
	}
	v, ok := vals[0].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("decode %s result: unexpected type %T", method, vals[0])
	}
	return v.Uint64(), nil
}

// Operator returns the configured martinaOperator address.
func (c *Client) Operator(ctx context.Context) (string, error) {
	return c.readAddress(ctx, "martinaOperator")
}

// Router returns the swap router address the contract routes through.
func (c *Client) Router(ctx context.Context) (string, error) {
	return c.readAddress(ctx, "router")
}

// Treasury returns the treasury address.
func (c *Client) Treasury(ctx context.Context) (string, error) {
	return c.readAddress(ctx, "treasury")
}

// Vault returns the vault address.
func (c *Client) Vault(ctx context.Context) (string, error) {
	return c.readAddress(ctx, "vault")
}

// BotPaused reads the contract's pause flag.
func (c *Client) BotPaused(ctx context.Context) (bool, error) {
	vals, err := c.call(ctx, c.contract, c.abi, "botPaused")
	if err != nil {
		return false, err
	}
	paused, ok := vals[0].(bool)
	if !ok {
		return false, fmt.Errorf("decode botPaused result: unexpected type %T", vals[0])
	}
	return paused, nil
}

// GenesisBlock returns the block the contract was deployed at.
func (c *Client) GenesisBlock(ctx context.Context) (uint64, error) {
	return c.readUint(ctx, "genesisBlock")
}

// OrderCount reads the contract's order counter. Order IDs run from 1
// through this value.
func (c *Client) OrderCount(ctx context.Context) (uint64, error) {
	return c.readUint(ctx, "orderCounter")
}

// TokenDecimals reads a token's decimals(). Best-effort with a safe
// default: any failure, including a token that does not implement the
// function, yields 18 rather than an error.
func (c *Client) TokenDecimals(ctx context.Context, token string) int {
	if err := ValidateAddress(token); err != nil {
		c.log.Debug("decimals lookup skipped", zap.String("token", token), zap.Error(err))
		return defaultTokenDecimals
	}
	vals, err := c.call(ctx, common.HexToAddress(token), c.erc20, "decimals")
	if err != nil {
		c.log.Debug("decimals lookup failed, assuming 18", zap.String("token", token), zap.Error(err))
		return defaultTokenDecimals
	}
	d, ok := vals[0].(uint8)
	if !ok {
		c.log.Debug("decimals lookup returned unexpected shape, assuming 18", zap.String("token", token))
		return defaultTokenDecimals
	}
	return int(d)
}

// Info reads the contract's configured addresses and counters in one
// sweep.
func (c *Client) Info(ctx context.Context) (*Info, error) {
	info := &Info{}
	var err error
	if info.Operator, err = c.Operator(ctx); err != nil {
		return nil, err
	}
	if info.Router, err = c.Router(ctx); err != nil {
		return nil, err
	}
	if info.Treasury, err = c.Treasury(ctx); err != nil {
		return nil, err
	}
	if info.Vault, err = c.Vault(ctx); err != nil {
		return nil, err
	}
	if info.Paused, err = c.BotPaused(ctx); err != nil {
		return nil, err
	}
	if info.OrderCount, err = c.OrderCount(ctx); err != nil {
		return nil, err
	}
	if info.GenesisBlock, err = c.GenesisBlock(ctx); err != nil {
		return nil, err
	}
	return info, nil
}
