package bot

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer can produce a signature for a transaction and expose the
// address behind it. Anything satisfying this works as key material for
// the pipeline: a local private key, a hardware wallet shim, a test
// double.
type Signer interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// PrivateKeySigner signs with a locally held ECDSA key.
type PrivateKeySigner struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

// NewPrivateKeySigner builds a signer from a hex-encoded private key,
// with or without a 0x prefix.
func NewPrivateKeySigner(hexKey string) (*PrivateKeySigner, error) {
	if hexKey == "" {
		return nil, fmt.Errorf("%w: no private key provided", ErrSigningFailure)
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailure, err)
	}
	return newKeySigner(key), nil
}

func newKeySigner(key *ecdsa.PrivateKey) *PrivateKeySigner {
	return &PrivateKeySigner{
		key:  key,
		addr: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// Address returns the address derived from the key.
func (s *PrivateKeySigner) Address() common.Address {
	return s.addr
}

// SignTx signs with the EIP-155 signer for the given chain.
func (s *PrivateKeySigner) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signed, err := types.SignTx(tx, types.NewEIP155Signer(chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailure, err)
	}
	return signed, nil
}

// ResolveSigner accepts the key-material shapes callers actually hold: a
// hex private key string, a parsed *ecdsa.PrivateKey, or an
// already-constructed Signer.
func ResolveSigner(keyMaterial any) (Signer, error) {
	switch km := keyMaterial.(type) {
	case Signer:
		return km, nil
	case *ecdsa.PrivateKey:
		if km == nil {
			return nil, fmt.Errorf("%w: nil private key", ErrSigningFailure)
		}
		return newKeySigner(km), nil
	case string:
		return NewPrivateKeySigner(km)
	default:
		return nil, fmt.Errorf("%w: unsupported key material %T", ErrSigningFailure, keyMaterial)
	}
}
