// Package auth turns action descriptors into wallet signatures.
//
// Every file operation is authorized by a signature over the canonical
// action message (types.ActionMessage). Listing the account's files is the
// one exception: it is authorized by a signature over the bare account
// address, computed once per account and cached so repeated refreshes never
// re-prompt the wallet.
package auth

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hashcloud-io/hashcloud/log"
	"github.com/hashcloud-io/hashcloud/types"
	"github.com/hashcloud-io/hashcloud/wallet"
)

// Signer produces authorization signatures for one wallet.
type Signer struct {
	wallet wallet.Wallet
	store  Store
	logger *log.Logger

	// mu guards listSigs and spans the wallet interaction during a list
	// signature miss: two concurrent refreshes for the same account must
	// produce exactly one signing prompt.
	mu       sync.Mutex
	listSigs map[string]string
}

// NewSigner creates a Signer. store may be nil for a memory-only cache.
// Previously persisted list signatures are loaded eagerly; a corrupt or
// unreadable store degrades to an empty cache rather than failing.
func NewSigner(w wallet.Wallet, store Store, logger *log.Logger) *Signer {
	if logger == nil {
		logger = log.NewNop()
	}

	cached := make(map[string]string)
	if store != nil {
		loaded, err := store.Load()
		if err != nil {
			logger.Warn("signature cache unreadable, starting empty", zap.Error(err))
		} else {
			cached = loaded
		}
	}

	return &Signer{
		wallet:   w,
		store:    store,
		logger:   logger,
		listSigs: cached,
	}
}

// Address returns the signing account's checksummed address.
func (s *Signer) Address() string {
	return s.wallet.Address()
}

// Authorize signs the canonical encoding of msg. The action kind prefix in
// the encoding is the anti-replay boundary between kinds; Authorize never
// signs a message that fails validation.
func (s *Signer) Authorize(ctx context.Context, msg types.ActionMessage) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", fmt.Errorf("auth: refusing to sign: %w", err)
	}

	encoded := msg.Encode()
	sig, err := s.wallet.SignMessage(ctx, []byte(encoded))
	if err != nil {
		return "", fmt.Errorf("auth: sign %s action: %w", msg.Kind, err)
	}

	s.logger.Debug("action authorized",
		zap.String("action", string(msg.Kind)),
		zap.Int("digests", len(msg.Digests)),
	)
	return sig, nil
}

// ListAccess returns the cached identity signature for the wallet's account,
// signing once on first use. The signature commits to the bare address, not
// to any action kind, so it is valid for list fetches only; the server
// rejects it for anything else. The cache is invalidated only by switching
// accounts, never by time.
func (s *Signer) ListAccess(ctx context.Context) (string, error) {
	address := s.wallet.Address()

	s.mu.Lock()
	defer s.mu.Unlock()

	if sig, ok := s.listSigs[address]; ok {
		return sig, nil
	}

	sig, err := s.wallet.SignMessage(ctx, []byte(address))
	if err != nil {
		return "", fmt.Errorf("auth: sign list access: %w", err)
	}
	s.listSigs[address] = sig

	if s.store != nil {
		if err := s.store.Save(s.listSigs); err != nil {
			// A failed persist costs one extra prompt next run, nothing more.
			s.logger.Warn("persist signature cache failed", zap.Error(err))
		}
	}

	s.logger.Info("list-access signature minted", zap.String("cache_account", address))
	return sig, nil
}
