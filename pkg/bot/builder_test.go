package bot

import (
	"bytes"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPlaceOrder(t *testing.T) {
	client := newTestClient(t, &mockBackend{})
	deadline := futureDeadline()

	tx, err := client.BuildPlaceOrder(tokenInAddr, tokenOutAddr, big.NewInt(1000), big.NewInt(950), deadline, BuildOpts{})
	require.NoError(t, err)

	assert.Equal(t, common.HexToAddress(testContract), tx.To)
	assert.Equal(t, uint64(PlaceOrderGasLimit), tx.GasLimit)
	assert.Nil(t, tx.From)
	assert.Zero(t, tx.Value.Sign())
	assert.True(t, bytes.Equal(tx.Data[:4], client.abi.Methods["placeOrder"].ID))

	args, err := client.abi.Methods["placeOrder"].Inputs.Unpack(tx.Data[4:])
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(tokenInAddr), args[0])
	assert.Equal(t, common.HexToAddress(tokenOutAddr), args[1])
	assert.Equal(t, big.NewInt(1000), args[2])
	assert.Equal(t, big.NewInt(950), args[3])
	assert.Equal(t, new(big.Int).SetUint64(deadline), args[4])
}

func TestBuildPlaceOrderDefaultsDeadline(t *testing.T) {
	client := newTestClient(t, &mockBackend{})

	tx, err := client.BuildPlaceOrder(tokenInAddr, tokenOutAddr, big.NewInt(1), big.NewInt(0), 0, BuildOpts{})
	require.NoError(t, err)

	args, err := client.abi.Methods["placeOrder"].Inputs.Unpack(tx.Data[4:])
	require.NoError(t, err)
	deadline := args[4].(*big.Int).Uint64()
	assert.Greater(t, deadline, uint64(time.Now().Unix()))
}

func TestBuildOptsOverrides(t *testing.T) {
	client := newTestClient(t, &mockBackend{})

	tx, err := client.BuildExecuteOrder(9, BuildOpts{Sender: tokenInAddr, GasLimit: 500000})
	require.NoError(t, err)

	assert.Equal(t, uint64(500000), tx.GasLimit)
	require.NotNil(t, tx.From)
	assert.Equal(t, common.HexToAddress(tokenInAddr), *tx.From)
}

func TestBuildExecuteAndCancelOrder(t *testing.T) {
	client := newTestClient(t, &mockBackend{})

	exec, err := client.BuildExecuteOrder(9, BuildOpts{})
	require.NoError(t, err)
	assert.Equal(t, uint64(ExecuteOrderGasLimit), exec.GasLimit)
	assert.True(t, bytes.Equal(exec.Data[:4], client.abi.Methods["executeOrder"].ID))

	cancel, err := client.BuildCancelOrder(9, BuildOpts{})
	require.NoError(t, err)
	// no default: left for the pipeline to estimate
	assert.Zero(t, cancel.GasLimit)
	assert.True(t, bytes.Equal(cancel.Data[:4], client.abi.Methods["cancelOrder"].ID))

	execArgs, err := client.abi.Methods["executeOrder"].Inputs.Unpack(exec.Data[4:])
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(9), execArgs[0])
}

func TestBuildExecuteSwapDirect(t *testing.T) {
	client := newTestClient(t, &mockBackend{})

	tx, err := client.BuildExecuteSwapDirect(tokenInAddr, tokenOutAddr, big.NewInt(5), big.NewInt(4), futureDeadline(), BuildOpts{})
	require.NoError(t, err)
	assert.Equal(t, uint64(DirectSwapGasLimit), tx.GasLimit)
	assert.True(t, bytes.Equal(tx.Data[:4], client.abi.Methods["executeSwapDirect"].ID))
}

// Builders normalize address case through the canonical form before
// encoding.
func TestBuildNormalizesAddressCase(t *testing.T) {
	client := newTestClient(t, &mockBackend{})

	lower, err := client.BuildPlaceOrder("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", tokenOutAddr, big.NewInt(1), big.NewInt(0), futureDeadline(), BuildOpts{})
	require.NoError(t, err)
	checksum, err := client.BuildPlaceOrder(tokenInAddr, tokenOutAddr, big.NewInt(1), big.NewInt(0), futureDeadline(), BuildOpts{})
	require.NoError(t, err)

	argsLower, err := client.abi.Methods["placeOrder"].Inputs.Unpack(lower.Data[4:])
	require.NoError(t, err)
	argsChecksum, err := client.abi.Methods["placeOrder"].Inputs.Unpack(checksum.Data[4:])
	require.NoError(t, err)
	assert.Equal(t, argsChecksum[0], argsLower[0])
}
