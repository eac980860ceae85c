// Package wallet defines the wallet capability boundary: an account address
// plus the ability to sign an arbitrary byte string with its key.
//
// The signature scheme is Ethereum personal-message signing over the
// Keccak-256 of the message, which is what the Hash Cloud server recovers
// when it verifies a request. Signatures are 65-byte [R || S || V] with
// V in {27, 28}, hex-encoded with a 0x prefix.
package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrSigningDenied is returned by a wallet that refuses to sign.
var ErrSigningDenied = errors.New("wallet: signing denied")

// Wallet is an external signing capability the caller does not control.
//
// SignMessage may block for an unbounded, user-mediated duration (a human
// may ignore a signing prompt indefinitely); callers must treat a pending
// sign as a valid state, pass a context they can walk away from, and never
// serialize unrelated work behind it.
type Wallet interface {
	// Address returns the EIP-55 checksummed account address.
	Address() string

	// SignMessage signs msg and returns the hex-encoded signature.
	// It may return ErrSigningDenied if the holder rejects the request.
	SignMessage(ctx context.Context, msg []byte) (string, error)
}

// signHash applies the Ethereum personal-message prefix to the Keccak-256
// of the message and hashes again. This is the exact byte sequence the
// server-side verifier reconstructs; any deviation invalidates every
// signature the client produces.
func signHash(msg []byte) []byte {
	inner := crypto.Keccak256(msg)
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(inner), inner)
	return crypto.Keccak256([]byte(prefixed))
}

// Recover returns the checksummed address that produced sigHex over msg.
// It mirrors the server-side verifier; the client uses it in tests and as a
// self-check that a freshly minted signature binds to the expected account.
func Recover(msg []byte, sigHex string) (string, error) {
	sig, err := hexutil.Decode(sigHex)
	if err != nil {
		return "", fmt.Errorf("wallet: decode signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return "", fmt.Errorf("wallet: signature must be %d bytes, got %d", crypto.SignatureLength, len(sig))
	}
	if sig[64] != 27 && sig[64] != 28 {
		return "", fmt.Errorf("wallet: invalid recovery id %d (want 27 or 28)", sig[64])
	}

	// Transform yellow-paper V from 27/28 to 0/1 without mutating the input.
	adjusted := make([]byte, crypto.SignatureLength)
	copy(adjusted, sig)
	adjusted[64] -= 27

	pub, err := crypto.SigToPub(signHash(msg), adjusted)
	if err != nil {
		return "", fmt.Errorf("wallet: recover public key: %w", err)
	}
	return crypto.PubkeyToAddress(*pub).Hex(), nil
}

// ValidAddress reports whether s is a syntactically well-formed hex address.
func ValidAddress(s string) bool {
	return common.IsHexAddress(s)
}

// NormalizeAddress converts a well-formed hex address to its canonical
// EIP-55 checksummed form. Returns an error for malformed input; it never
// guesses.
func NormalizeAddress(s string) (string, error) {
	if !common.IsHexAddress(s) {
		return "", fmt.Errorf("wallet: malformed address %q", s)
	}
	return common.HexToAddress(s).Hex(), nil
}
