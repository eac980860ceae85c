package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hashcloud-io/hashcloud/digest"
	"github.com/hashcloud-io/hashcloud/gateway"
	"github.com/hashcloud-io/hashcloud/types"
)

// Download fetches one file and writes it to destDir under its original
// filename. Single request per invocation, no retry; a signature refusal or
// wallet rejection surfaces one "unauthorized" report.
//
// Returns the path of the saved file.
func (c *Controller) Download(ctx context.Context, fileDigest, filename, destDir string) (string, error) {
	logger := c.workflowLogger(types.ActionDownload)

	if !digest.Valid(fileDigest) {
		return "", fmt.Errorf("workflow: malformed digest %q", fileDigest)
	}

	msg := types.NewActionMessage(types.ActionDownload, fileDigest)
	sig, err := c.signer.Authorize(ctx, msg)
	if err != nil {
		c.reporter.Report(SeverityError, "unauthorized", err)
		return "", err
	}

	payload, err := c.gateway.Download(ctx, c.Account(), sig, fileDigest)
	if err != nil {
		if gateway.IsUnauthorized(err) {
			c.reporter.Report(SeverityError, "unauthorized", err)
		} else {
			c.reporter.Report(SeverityError, "download failed", err)
		}
		return "", err
	}

	// The saved name comes from the remote record; strip any path the
	// server may have smuggled into it.
	path := filepath.Join(destDir, filepath.Base(filename))
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return "", fmt.Errorf("workflow: save download %q: %w", path, err)
	}

	logger.Info("file downloaded",
		zap.String("digest", fileDigest),
		zap.String("path", path),
		zap.Int("bytes", len(payload)),
	)
	return path, nil
}
