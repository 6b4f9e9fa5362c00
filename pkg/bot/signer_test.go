package bot

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrivateKeySigner(t *testing.T) {
	s, err := NewPrivateKeySigner(testKeyHex)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), s.Address())

	// 0x prefix is accepted too
	prefixed, err := NewPrivateKeySigner("0x" + testKeyHex)
	require.NoError(t, err)
	assert.Equal(t, s.Address(), prefixed.Address())
}

func TestNewPrivateKeySignerRejectsBadMaterial(t *testing.T) {
	_, err := NewPrivateKeySigner("")
	require.ErrorIs(t, err, ErrSigningFailure)

	_, err = NewPrivateKeySigner("zz")
	require.ErrorIs(t, err, ErrSigningFailure)
}

func TestSignTxRecoversToSignerAddress(t *testing.T) {
	s, err := NewPrivateKeySigner(testKeyHex)
	require.NoError(t, err)

	chainID := big.NewInt(1)
	tx := types.NewTransaction(0, common.HexToAddress(testContract), big.NewInt(0), 21000, big.NewInt(1), nil)
	signed, err := s.SignTx(tx, chainID)
	require.NoError(t, err)

	sender, err := types.Sender(types.NewEIP155Signer(chainID), signed)
	require.NoError(t, err)
	assert.Equal(t, s.Address(), sender)
}

func TestResolveSigner(t *testing.T) {
	fromHex, err := ResolveSigner(testKeyHex)
	require.NoError(t, err)

	key, err := crypto.HexToECDSA(testKeyHex)
	require.NoError(t, err)
	fromKey, err := ResolveSigner(key)
	require.NoError(t, err)
	assert.Equal(t, fromHex.Address(), fromKey.Address())

	// an existing signer passes through untouched
	passthrough, err := ResolveSigner(fromHex)
	require.NoError(t, err)
	assert.Same(t, fromHex, passthrough)

	_, err = ResolveSigner(42)
	require.ErrorIs(t, err, ErrSigningFailure)
}
