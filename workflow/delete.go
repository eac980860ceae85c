package workflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hashcloud-io/hashcloud/digest"
	"github.com/hashcloud-io/hashcloud/log"
	"github.com/hashcloud-io/hashcloud/types"
)

// Delete is the transient sub-state for removing one file. It closes only
// on a response that explicitly confirms success; any other outcome leaves
// it open for an explicit retry.
type Delete struct {
	ctrl   *Controller
	logger *log.Logger

	fileDigest string
	open       bool
}

// NewDelete opens a delete sub-state for one file.
func (c *Controller) NewDelete(fileDigest string) *Delete {
	return &Delete{
		ctrl:       c,
		logger:     c.workflowLogger(types.ActionDelete),
		fileDigest: fileDigest,
		open:       true,
	}
}

// Open reports whether the sub-state is still awaiting a confirmed delete.
func (d *Delete) Open() bool { return d.open }

// Close abandons the sub-state without deleting.
func (d *Delete) Close() { d.open = false }

// Confirm signs and submits the delete. On `ok: true` the sub-state closes
// and exactly one list refresh runs, returning the fresh records. On
// `ok: false` or any failure the sub-state stays open and no state is
// mutated; a failed delete never marks the record deleted.
func (d *Delete) Confirm(ctx context.Context) ([]types.RemoteFileRecord, error) {
	if !d.open {
		return nil, fmt.Errorf("%w: confirm on closed delete", ErrBadTransition)
	}
	if !digest.Valid(d.fileDigest) {
		return nil, fmt.Errorf("workflow: malformed digest %q", d.fileDigest)
	}

	msg := types.NewActionMessage(types.ActionDelete, d.fileDigest)
	sig, err := d.ctrl.signer.Authorize(ctx, msg)
	if err != nil {
		d.ctrl.reporter.Report(SeverityError, "delete authorization failed", err)
		return nil, err
	}

	ok, err := d.ctrl.gateway.Delete(ctx, d.ctrl.Account(), sig, d.fileDigest)
	if err != nil {
		d.ctrl.reporter.Report(SeverityError, "delete submission failed", err)
		return nil, err
	}
	if !ok {
		d.ctrl.reporter.Report(SeverityWarning, "delete declined by server", nil)
		return nil, nil
	}

	d.open = false
	d.logger.Info("file deleted", zap.String("digest", d.fileDigest))
	return d.ctrl.Refresh(ctx)
}
