// Package gateway is the HTTP transport to the Hash Cloud storage service.
//
// One convention everywhere: the authorizing signature travels as a
// `signature` query parameter, paths are /users/{account}/files and
// /users/{account}/files/{digest}, and the digest in a path is always the
// bare digest, never the signed message. Requests are single-shot; failed
// workflow steps are abandoned by the caller, not retried here.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/hashcloud-io/hashcloud/iox"
	"github.com/hashcloud-io/hashcloud/types"
)

// DefaultTimeout is the default per-request timeout. Uploads of a full
// selection can be slow, so this is deliberately generous.
const DefaultTimeout = 60 * time.Second

// Config configures the gateway client.
type Config struct {
	// BaseURL is the service prefix, e.g. "https://api.hashcloud.example/api/v1".
	BaseURL string
	// Timeout is the per-request timeout (default DefaultTimeout).
	Timeout time.Duration
}

// Client issues signed requests to the storage service.
type Client struct {
	base   *url.URL
	client *http.Client
}

// New creates a gateway client. Returns an error for a missing or
// unparsable base URL.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("gateway: base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("gateway: invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		base:   base,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// StatusError is returned for non-2xx responses. Callers use it to
// distinguish an authorization refusal from other transport failures.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// Unauthorized reports whether the server refused the signature.
func (e *StatusError) Unauthorized() bool {
	return e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden
}

// IsUnauthorized reports whether err is a signature refusal.
func IsUnauthorized(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Unauthorized()
}

// filesURL builds /users/{account}/files[/{digest}]?signature=...
func (c *Client) filesURL(account, signature, fileDigest string) string {
	u := c.base.JoinPath("users", account, "files")
	if fileDigest != "" {
		u = u.JoinPath(fileDigest)
	}
	q := u.Query()
	q.Set("signature", signature)
	u.RawQuery = q.Encode()
	return u.String()
}

// ListFiles fetches the account's file records. The signature is the cached
// list-access signature over the bare account address.
func (c *Client) ListFiles(ctx context.Context, account, signature string) ([]types.RemoteFileRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.filesURL(account, signature, ""), nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: create list request: %w", err)
	}

	var records []types.RemoteFileRecord
	if err := c.doJSON(req, &records); err != nil {
		return nil, fmt.Errorf("gateway: list files: %w", err)
	}
	return records, nil
}

// Upload submits the selection as a multipart POST. Every descriptor's
// payload is transmitted, oversized ones included; the signed digest set is
// the caller's concern and already baked into the signature. Returns the
// digests the server actually stored.
func (c *Client) Upload(ctx context.Context, account, signature string, files []*types.FileDescriptor) ([]string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreatePart(partHeader(f))
		if err != nil {
			return nil, fmt.Errorf("gateway: create multipart section: %w", err)
		}
		if _, err := part.Write(f.Payload); err != nil {
			return nil, fmt.Errorf("gateway: write payload %q: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("gateway: finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.filesURL(account, signature, ""), &body)
	if err != nil {
		return nil, fmt.Errorf("gateway: create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var stored []string
	if err := c.doJSON(req, &stored); err != nil {
		return nil, fmt.Errorf("gateway: upload: %w", err)
	}
	return stored, nil
}

// Download fetches the raw bytes of one file.
func (c *Client) Download(ctx context.Context, account, signature, fileDigest string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.filesURL(account, signature, fileDigest), nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: create download request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: download: %w", err)
	}
	defer iox.DiscardClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		drain(resp.Body)
		return nil, fmt.Errorf("gateway: download: %w", &StatusError{Code: resp.StatusCode})
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gateway: read download body: %w", err)
	}
	return payload, nil
}

// Share grants role to address on one file. The body carries only the
// access-control delta.
func (c *Client) Share(ctx context.Context, account, signature, fileDigest, address string, role types.Role) error {
	body, err := json.Marshal(map[string]types.Role{address: role})
	if err != nil {
		return fmt.Errorf("gateway: marshal ACL delta: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.filesURL(account, signature, fileDigest), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("gateway: create share request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var ack serviceAck
	if err := c.doJSON(req, &ack); err != nil {
		return fmt.Errorf("gateway: share: %w", err)
	}
	if !ack.OK {
		return fmt.Errorf("gateway: share rejected: %s", ack.ErrorMessage)
	}
	return nil
}

// Delete removes one file. Returns the server's ok flag; a false ok with a
// 2xx status means the server declined without an error status, and the
// caller keeps its sub-state open for retry.
func (c *Client) Delete(ctx context.Context, account, signature, fileDigest string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.filesURL(account, signature, fileDigest), nil)
	if err != nil {
		return false, fmt.Errorf("gateway: create delete request: %w", err)
	}

	var ack serviceAck
	if err := c.doJSON(req, &ack); err != nil {
		return false, fmt.Errorf("gateway: delete: %w", err)
	}
	return ack.OK, nil
}

// serviceAck is the service's generic result envelope.
type serviceAck struct {
	OK           bool   `json:"ok"`
	ErrorMessage string `json:"errorMessage"`
}

// doJSON executes the request and decodes a 2xx JSON body into out.
func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer iox.DiscardClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		drain(resp.Body)
		return &StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	drain(resp.Body)
	return nil
}

// drain consumes the rest of a body to allow connection reuse.
func drain(r io.Reader) {
	_, _ = io.Copy(io.Discard, r)
}

func partHeader(f *types.FileDescriptor) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, f.Name))
	h.Set("Content-Type", f.MimeType)
	return h
}
