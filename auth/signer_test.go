package auth

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/hashcloud-io/hashcloud/types"
	"github.com/hashcloud-io/hashcloud/wallet"
)

// recordingWallet captures every message offered for signing.
type recordingWallet struct {
	mu       sync.Mutex
	address  string
	messages []string
	signErr  error
}

func (w *recordingWallet) Address() string { return w.address }

func (w *recordingWallet) SignMessage(_ context.Context, msg []byte) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.signErr != nil {
		return "", w.signErr
	}
	w.messages = append(w.messages, string(msg))
	return "0xsig-" + string(msg), nil
}

func (w *recordingWallet) signCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.messages)
}

func TestAuthorize_SignsCanonicalMessage(t *testing.T) {
	w := &recordingWallet{address: "0xAccount"}
	s := NewSigner(w, nil, nil)

	sig, err := s.Authorize(t.Context(), types.NewActionMessage(types.ActionUpload, "d1", "d2"))
	if err != nil {
		t.Fatalf("Authorize failed: %v", err)
	}
	if sig != "0xsig-upload+d1+d2" {
		t.Errorf("signature = %q", sig)
	}
	if len(w.messages) != 1 || w.messages[0] != "upload+d1+d2" {
		t.Errorf("signed messages = %v, want [upload+d1+d2]", w.messages)
	}
}

func TestAuthorize_InvalidMessage_NoWalletCall(t *testing.T) {
	w := &recordingWallet{address: "0xAccount"}
	s := NewSigner(w, nil, nil)

	_, err := s.Authorize(t.Context(), types.NewActionMessage(types.ActionDownload, "d1", "d2"))
	if err == nil {
		t.Fatal("expected error for multi-digest download")
	}
	if w.signCount() != 0 {
		t.Errorf("wallet was prompted %d times for an invalid message", w.signCount())
	}
}

func TestAuthorize_WalletDenied(t *testing.T) {
	w := &recordingWallet{address: "0xAccount", signErr: wallet.ErrSigningDenied}
	s := NewSigner(w, nil, nil)

	_, err := s.Authorize(t.Context(), types.NewActionMessage(types.ActionDelete, "d1"))
	if !errors.Is(err, wallet.ErrSigningDenied) {
		t.Errorf("error = %v, want ErrSigningDenied", err)
	}
}

func TestAuthorize_KindsNotInterchangeable(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	kw := wallet.NewKeyWallet(key)
	s := NewSigner(kw, nil, nil)

	downloadSig, err := s.Authorize(t.Context(), types.NewActionMessage(types.ActionDownload, "d1"))
	if err != nil {
		t.Fatalf("Authorize failed: %v", err)
	}

	// A download signature must verify for the download message only.
	addr, err := wallet.Recover([]byte("download+d1"), downloadSig)
	if err != nil || addr != kw.Address() {
		t.Fatalf("download signature did not verify for its own message: %v", err)
	}
	addr, err = wallet.Recover([]byte("delete+d1"), downloadSig)
	if err == nil && addr == kw.Address() {
		t.Fatal("download signature verified as a delete authorization")
	}
}

func TestListAccess_CachedPerAccount(t *testing.T) {
	w := &recordingWallet{address: "0xAccount"}
	s := NewSigner(w, nil, nil)

	first, err := s.ListAccess(t.Context())
	if err != nil {
		t.Fatalf("ListAccess failed: %v", err)
	}
	second, err := s.ListAccess(t.Context())
	if err != nil {
		t.Fatalf("ListAccess failed: %v", err)
	}

	if first != second {
		t.Errorf("cached signature changed: %q vs %q", first, second)
	}
	if w.signCount() != 1 {
		t.Errorf("wallet prompted %d times, want 1", w.signCount())
	}
	if w.messages[0] != "0xAccount" {
		t.Errorf("list signature over %q, want bare address", w.messages[0])
	}
}

func TestListAccess_ConcurrentRefreshesSignOnce(t *testing.T) {
	w := &recordingWallet{address: "0xAccount"}
	s := NewSigner(w, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.ListAccess(context.Background()); err != nil {
				t.Errorf("ListAccess failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if w.signCount() != 1 {
		t.Errorf("wallet prompted %d times under concurrency, want 1", w.signCount())
	}
}

func TestListAccess_PersistsAcrossSigners(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "sigs.bin")
	store := NewFileStore(path)

	w1 := &recordingWallet{address: "0xAccount"}
	s1 := NewSigner(w1, store, nil)
	sig, err := s1.ListAccess(t.Context())
	if err != nil {
		t.Fatalf("ListAccess failed: %v", err)
	}

	// A fresh signer against the same store must reuse the persisted
	// signature without prompting.
	w2 := &recordingWallet{address: "0xAccount"}
	s2 := NewSigner(w2, store, nil)
	reused, err := s2.ListAccess(t.Context())
	if err != nil {
		t.Fatalf("ListAccess failed: %v", err)
	}

	if reused != sig {
		t.Errorf("persisted signature = %q, want %q", reused, sig)
	}
	if w2.signCount() != 0 {
		t.Errorf("second signer prompted %d times, want 0", w2.signCount())
	}
}

func TestListAccess_AccountSwitchInvalidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sigs.bin")
	store := NewFileStore(path)

	s1 := NewSigner(&recordingWallet{address: "0xAlice"}, store, nil)
	if _, err := s1.ListAccess(t.Context()); err != nil {
		t.Fatalf("ListAccess failed: %v", err)
	}

	// Different account: the cache entry for Alice must not be reused.
	w := &recordingWallet{address: "0xBob"}
	s2 := NewSigner(w, store, nil)
	if _, err := s2.ListAccess(t.Context()); err != nil {
		t.Fatalf("ListAccess failed: %v", err)
	}
	if w.signCount() != 1 {
		t.Errorf("new account prompted %d times, want 1", w.signCount())
	}
}
