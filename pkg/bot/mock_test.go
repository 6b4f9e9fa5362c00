package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

// Well-known hardhat dev key; only ever used for offline signing in
// tests.
const testKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

const testContract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

// mockBackend is a scriptable node double satisfying Backend.
type mockBackend struct {
	chainIDErr  error
	callFn      func(msg ethereum.CallMsg) ([]byte, error)
	receiptFn   func(hash common.Hash) (*types.Receipt, error)
	sendErr     error
	sent        []*types.Transaction
	estimateGas uint64
	estimated   int
}

func (m *mockBackend) ChainID(ctx context.Context) (*big.Int, error) {
	if m.chainIDErr != nil {
		return nil, m.chainIDErr
	}
	return big.NewInt(1), nil
}

func (m *mockBackend) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if m.callFn == nil {
		return nil, errors.New("no call handler installed")
	}
	return m.callFn(msg)
}

func (m *mockBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return 7, nil
}

func (m *mockBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (m *mockBackend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	m.estimated++
	if m.estimateGas == 0 {
		return 90000, nil
	}
	return m.estimateGas, nil
}

func (m *mockBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, tx)
	return nil
}

func (m *mockBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	if m.receiptFn == nil {
		return nil, ethereum.NotFound
	}
	return m.receiptFn(txHash)
}

func newTestClient(t *testing.T, backend *mockBackend) *Client {
	t.Helper()
	c, err := NewClientWithBackend(backend, big.NewInt(1), common.HexToAddress(testContract),
		WithPollInterval(2*time.Millisecond))
	require.NoError(t, err)
	return c
}

func testSigner(t *testing.T) Signer {
	t.Helper()
	s, err := NewPrivateKeySigner(testKeyHex)
	require.NoError(t, err)
	return s
}

// packOutput ABI-encodes a read-call result the way the node would.
func packOutput(t *testing.T, c *Client, method string, vals ...interface{}) []byte {
	t.Helper()
	out, err := c.abi.Methods[method].Outputs.Pack(vals...)
	require.NoError(t, err)
	return out
}

// routeCalls dispatches mocked eth_call traffic by method selector.
func routeCalls(c *Client, handlers map[string]func(args []interface{}) ([]byte, error)) func(ethereum.CallMsg) ([]byte, error) {
	return func(msg ethereum.CallMsg) ([]byte, error) {
		if len(msg.Data) < 4 {
			return nil, fmt.Errorf("malformed calldata")
		}
		for name, method := range c.abi.Methods {
			if !bytes.Equal(msg.Data[:4], method.ID) {
				continue
			}
			handler, ok := handlers[name]
			if !ok {
				return nil, fmt.Errorf("unexpected call to %s", name)
			}
			args, err := method.Inputs.Unpack(msg.Data[4:])
			if err != nil {
				return nil, err
			}
			return handler(args)
		}
		return nil, fmt.Errorf("unknown method selector %x", msg.Data[:4])
	}
}

func pausedHandler(t *testing.T, c *Client, paused bool) func(args []interface{}) ([]byte, error) {
	return func([]interface{}) ([]byte, error) {
		return packOutput(t, c, "botPaused", paused), nil
	}
}
