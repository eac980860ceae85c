package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// KeyWallet signs locally with a secp256k1 private key. It is the CLI's
// stand-in for a browser wallet extension: same address derivation, same
// personal-message signature format.
type KeyWallet struct {
	key     *ecdsa.PrivateKey
	address string
}

// LoadKeyWallet reads a hex-encoded private key from path.
func LoadKeyWallet(path string) (*KeyWallet, error) {
	key, err := crypto.LoadECDSA(path)
	if err != nil {
		return nil, fmt.Errorf("wallet: load key file %q: %w", path, err)
	}
	return NewKeyWallet(key), nil
}

// NewKeyWallet wraps an in-memory private key. Tests use this with
// generated keys.
func NewKeyWallet(key *ecdsa.PrivateKey) *KeyWallet {
	return &KeyWallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
	}
}

// Address returns the checksummed address derived from the key.
func (w *KeyWallet) Address() string {
	return w.address
}

// SignMessage signs msg with the personal-message scheme.
// A local key never prompts, so the only context sensitivity is an early
// cancel before any work is done.
func (w *KeyWallet) SignMessage(ctx context.Context, msg []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("wallet: sign canceled: %w", err)
	}

	sig, err := crypto.Sign(signHash(msg), w.key)
	if err != nil {
		return "", fmt.Errorf("wallet: sign: %w", err)
	}
	sig[64] += 27 // yellow-paper V
	return hexutil.Encode(sig), nil
}
