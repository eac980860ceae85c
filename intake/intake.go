// Package intake turns a local file selection into upload-ready descriptors.
//
// Each selected file is read and hashed concurrently; the pipeline joins on
// all per-file tasks and returns descriptors in the original selection
// order. Files above types.MaxFileSize are flagged oversize instead of
// hashed: they keep their payload (the server rejects them explicitly) but
// never enter the digest set or the selection aggregates.
package intake

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/hashcloud-io/hashcloud/digest"
	"github.com/hashcloud-io/hashcloud/types"
)

// maxConcurrentReads bounds how many files are read and hashed at once.
const maxConcurrentReads = 8

// Result is the outcome of one selection pass through the pipeline.
// Aggregates count accepted files only; oversize files are excluded.
type Result struct {
	Descriptors       []*types.FileDescriptor
	AcceptedCount     int
	TotalAcceptedSize int64
}

// AcceptedDigests returns the digests of accepted files in selection order.
// This is the exact ordered list an upload ActionMessage commits to.
func (r *Result) AcceptedDigests() []string {
	digests := make([]string, 0, r.AcceptedCount)
	for _, d := range r.Descriptors {
		if !d.Oversize {
			digests = append(digests, d.Digest)
		}
	}
	return digests
}

// Process reads and hashes the selected files. An empty selection yields an
// empty result and no error. One file's failure never aborts its siblings:
// every task runs to completion, the first failure is returned, and the
// result still carries every descriptor that was built, in selection order.
// Only caller cancellation stops not-yet-started tasks.
func Process(ctx context.Context, paths []string) (*Result, error) {
	if len(paths) == 0 {
		return &Result{}, nil
	}

	descriptors := make([]*types.FileDescriptor, len(paths))

	var g errgroup.Group
	g.SetLimit(maxConcurrentReads)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := processFile(path)
			if err != nil {
				return err
			}
			descriptors[i] = d
			return nil
		})
	}

	err := g.Wait()

	result := &Result{}
	for _, d := range descriptors {
		if d == nil {
			continue
		}
		result.Descriptors = append(result.Descriptors, d)
		if d.Oversize {
			continue
		}
		result.AcceptedCount++
		result.TotalAcceptedSize += d.Size
	}
	return result, err
}

// processFile builds the descriptor for one file.
func processFile(path string) (*types.FileDescriptor, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("intake: stat %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("intake: %q is a directory", path)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("intake: read %q: %w", path, err)
	}

	d := &types.FileDescriptor{
		Name:     filepath.Base(path),
		MimeType: mimeType(path),
		Size:     int64(len(payload)),
		Payload:  payload,
		State:    types.SubmissionPending,
	}

	if d.Size > types.MaxFileSize {
		d.Oversize = true
		return d, nil
	}

	d.Digest = digest.Bytes(payload)
	return d, nil
}

func mimeType(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "application/octet-stream"
}
